package invite

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/RohanMehta-11/ligo/config"
	"github.com/RohanMehta-11/ligo/internal/access"
	"github.com/RohanMehta-11/ligo/internal/middleware"
)

func RegisterInviteRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	repo := NewInviteRepository(db)
	accessService := access.NewService(access.NewMembershipRepository(db))
	controller := NewInviteController(NewService(repo), accessService)

	protected := router.Group("")
	protected.Use(middleware.AuthMiddleware(appConfig.JWT.AccessTokenSecret))
	{
		protected.POST("/teams/:team_id/invites", controller.CreateTeamCode)
		protected.GET("/teams/:team_id/invites", controller.ListTeamCodes)
		protected.DELETE("/invites/teams/:id", controller.RevokeTeamCode)
		protected.POST("/invites/teams/redeem", controller.RedeemTeamCode)

		protected.POST("/leagues/:league_id/invites", controller.CreateLeagueInvitation)
		protected.GET("/leagues/:league_id/invites", controller.ListLeagueInvitations)
		protected.DELETE("/invites/leagues/:id", controller.RevokeLeagueInvitation)
		protected.POST("/invites/leagues/redeem", controller.RedeemLeagueInvitation)
	}
}
