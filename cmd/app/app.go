package app

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tourneyhq/pokernights-api/internal/api"
	"github.com/tourneyhq/pokernights-api/internal/config"
	"github.com/tourneyhq/pokernights-api/internal/db"
	"github.com/tourneyhq/pokernights-api/internal/jobs"
	"github.com/tourneyhq/pokernights-api/internal/logger"
)

func Start() error {
	conf, err := config.Load("./cmd/app/config.yml")
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}

	dbURL := os.Getenv("DATABASE_URL")
	var postgresDB *gorm.DB
	if dbURL != "" {
		postgresDB, err = db.OpenPostgresWithURL(dbURL)
	} else {
		postgresDB, err = db.OpenPostgres(conf.Postgres)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database -> %w", err)
	}

	s := api.NewServer(conf, postgresDB)

	sched, err := jobs.NewScheduler(s.SeasonSvc, time.Hour)
	if err != nil {
		return fmt.Errorf("failed to initialize scheduler -> %w", err)
	}
	sched.Start()
	defer sched.Shutdown()

	addr := ":" + s.Config.API.Port
	zap.L().Info(fmt.Sprintf("starting server at %v", addr))
	if err = s.Router.Run(addr); err != nil {
		return fmt.Errorf("failed to start the server -> %w", err)
	}

	return nil
}
