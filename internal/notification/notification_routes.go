package notification

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/RohanMehta-11/ligo/config"
	"github.com/RohanMehta-11/ligo/internal/middleware"
)

func RegisterNotificationRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	repo := NewDeviceTokenRepository(db)
	controller := NewNotificationController(repo)

	devices := router.Group("/notifications/devices")
	devices.Use(middleware.AuthMiddleware(appConfig.JWT.AccessTokenSecret))
	{
		devices.POST("", controller.RegisterDevice)
		devices.GET("", controller.ListDevices)
		devices.DELETE("", controller.UnregisterDevice)
	}
}
