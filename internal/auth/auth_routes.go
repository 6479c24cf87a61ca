package auth

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/RohanMehta-11/ligo/config"
	"github.com/RohanMehta-11/ligo/internal/access"
	"github.com/RohanMehta-11/ligo/internal/middleware"
	"github.com/RohanMehta-11/ligo/internal/user"
	"github.com/RohanMehta-11/ligo/pkg/identity"
)

func RegisterAuthRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	verifier, err := identity.NewFirebaseVerifier(context.Background(), appConfig.Firebase.CredentialsFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize credential verifier")
	}

	userRepo := user.NewUserRepository(db)
	authRepo := NewAuthRepository(db)
	tokens := NewTokenService(authRepo, userRepo, appConfig.JWT.AccessTokenSecret, appConfig.JWT.RefreshTokenExpiryDays)
	accessService := access.NewService(access.NewMembershipRepository(db))
	controller := NewAuthController(verifier, userRepo, tokens, accessService)

	authPublic := router.Group("/auth")
	{
		authPublic.POST("/login", controller.Login)
		authPublic.POST("/refresh-token", controller.RefreshToken)
	}

	authProtected := router.Group("/auth")
	authProtected.Use(middleware.AuthMiddleware(appConfig.JWT.AccessTokenSecret))
	{
		authProtected.GET("/me", controller.GetProfile)
		authProtected.POST("/logout", controller.Logout)
	}
}
