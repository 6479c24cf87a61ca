package match

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/RohanMehta-11/ligo/config"
	"github.com/RohanMehta-11/ligo/internal/access"
	"github.com/RohanMehta-11/ligo/internal/middleware"
)

func RegisterMatchRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	repo := NewMatchRepository(db)
	accessService := access.NewService(access.NewMembershipRepository(db))
	controller := NewMatchController(repo, accessService)

	router.GET("/matches/:match_id", controller.GetMatch)
	router.GET("/leagues/:league_id/matches", controller.ListMatchesByLeague)

	protected := router.Group("")
	protected.Use(middleware.AuthMiddleware(appConfig.JWT.AccessTokenSecret))
	{
		protected.POST("/matches", controller.CreateMatch)
		protected.PUT("/matches/:match_id", controller.UpdateMatch)
		protected.PUT("/matches/:match_id/score", controller.UpdateScore)
		protected.DELETE("/matches/:match_id", controller.DeleteMatch)
	}
}
