package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/RohanMehta-11/ligo/config"
	"github.com/RohanMehta-11/ligo/internal/access"
	"github.com/RohanMehta-11/ligo/internal/auth"
	"github.com/RohanMehta-11/ligo/internal/invite"
	"github.com/RohanMehta-11/ligo/internal/league"
	"github.com/RohanMehta-11/ligo/internal/match"
	"github.com/RohanMehta-11/ligo/internal/middleware"
	"github.com/RohanMehta-11/ligo/internal/notification"
	"github.com/RohanMehta-11/ligo/internal/team"
	"github.com/RohanMehta-11/ligo/pkg/log"
)

func SetupRoutes(db *gorm.DB, appConfig *config.Config) *gin.Engine {
	if appConfig.App.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	logger := log.New(appConfig.App.Env)

	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(logger))
	r.Use(cors.Default()) // allows all origins, GET/POST/PUT

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Swagger route
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes
	api := r.Group("/api")
	auth.RegisterAuthRoutes(api, db, appConfig)
	access.RegisterAccessRoutes(api, db, appConfig)
	invite.RegisterInviteRoutes(api, db, appConfig)
	league.RegisterLeagueRoutes(api, db, appConfig)
	team.RegisterTeamRoutes(api, db, appConfig)
	match.RegisterMatchRoutes(api, db, appConfig)
	notification.RegisterNotificationRoutes(api, db, appConfig)

	return r
}
