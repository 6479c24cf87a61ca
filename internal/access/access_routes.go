package access

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/RohanMehta-11/ligo/config"
	"github.com/RohanMehta-11/ligo/internal/middleware"
)

func RegisterAccessRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	repo := NewMembershipRepository(db)
	service := NewService(repo)
	controller := NewAccessController(service)

	accessGroup := router.Group("/access")
	accessGroup.Use(middleware.AuthMiddleware(appConfig.JWT.AccessTokenSecret))
	{
		accessGroup.POST("/grants", controller.Grant)
		accessGroup.DELETE("/grants", controller.Revoke)
		accessGroup.GET("/users/:user_id/memberships", controller.GetUserMemberships)
	}
}
