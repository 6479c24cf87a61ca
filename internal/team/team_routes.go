package team

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/RohanMehta-11/ligo/config"
	"github.com/RohanMehta-11/ligo/internal/access"
	"github.com/RohanMehta-11/ligo/internal/middleware"
)

func RegisterTeamRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	repo := NewTeamRepository(db)
	memberships := access.NewMembershipRepository(db)
	accessService := access.NewService(memberships)
	controller := NewTeamController(repo, memberships, accessService)

	router.GET("/teams/:team_id", controller.GetTeam)
	router.GET("/leagues/:league_id/teams", controller.ListTeamsByLeague)

	protected := router.Group("")
	protected.Use(middleware.AuthMiddleware(appConfig.JWT.AccessTokenSecret))
	{
		protected.POST("/teams", controller.CreateTeam)
		protected.PUT("/teams/:team_id", controller.UpdateTeam)
		protected.DELETE("/teams/:team_id", controller.DeleteTeam)
		protected.GET("/teams/:team_id/roster", controller.GetRoster)
		protected.DELETE("/teams/:team_id/players/:user_id", controller.RemovePlayer)
	}
}
