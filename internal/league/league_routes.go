package league

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/RohanMehta-11/ligo/config"
	"github.com/RohanMehta-11/ligo/internal/access"
	"github.com/RohanMehta-11/ligo/internal/middleware"
)

func RegisterLeagueRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	repo := NewLeagueRepository(db)
	accessService := access.NewService(access.NewMembershipRepository(db))
	controller := NewLeagueController(repo, accessService)

	leagues := router.Group("/leagues")
	{
		leagues.GET("", controller.ListLeagues)
		leagues.GET("/:league_id", controller.GetLeague)
	}

	protected := router.Group("/leagues")
	protected.Use(middleware.AuthMiddleware(appConfig.JWT.AccessTokenSecret))
	{
		protected.POST("", controller.CreateLeague)
		protected.PUT("/:league_id", controller.UpdateLeague)
		protected.DELETE("/:league_id", controller.DeleteLeague)
	}
}
