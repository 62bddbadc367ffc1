package main

import (
	"os"

	"dailywag-backend/cmd/bootstrap"
	"dailywag-backend/config"
	"dailywag-backend/internal/infrastructure/database"

	"github.com/sirupsen/logrus"
)

// Usage:
//
//	dailywag-backend          serve the API
//	dailywag-backend migrate  apply pending migrations and exit
func main() {
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		migrate()
		return
	}

	app, err := bootstrap.New()
	if err != nil {
		logrus.Fatalf("Failed to initialize application: %v", err)
	}
	app.Run()
}

func migrate() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}
	if err := database.RunMigrations(cfg.DB); err != nil {
		logrus.Fatalf("Failed to run migrations: %v", err)
	}
	logrus.Info("Migrations applied")
}
