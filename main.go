package main

import (
	"log"

	"github.com/RohanMehta-11/ligo/config"
	_ "github.com/RohanMehta-11/ligo/docs"
	"github.com/RohanMehta-11/ligo/internal/access"
	"github.com/RohanMehta-11/ligo/internal/auth"
	"github.com/RohanMehta-11/ligo/internal/invite"
	"github.com/RohanMehta-11/ligo/internal/league"
	"github.com/RohanMehta-11/ligo/internal/match"
	"github.com/RohanMehta-11/ligo/internal/notification"
	"github.com/RohanMehta-11/ligo/internal/team"
	"github.com/RohanMehta-11/ligo/internal/user"
	"github.com/RohanMehta-11/ligo/routes"
)

// @title Ligo REST API
// @version 1.0
// @description League, team and match management backend.
// @host localhost:8088
// @BasePath /api
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := config.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&user.User{},
		&access.Membership{},
		&auth.RefreshToken{},
		&invite.InvitationCode{}, &invite.LeagueInvitation{},
		&league.League{},
		&team.Team{},
		&match.Match{},
		&notification.DeviceToken{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	r := routes.SetupRoutes(db, cfg)

	log.Printf("Starting server on port %s in %s mode\n", cfg.App.Port, cfg.App.Env)
	if err := r.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
