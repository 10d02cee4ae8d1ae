package application

import (
	"errors"

	"github.com/shindelr/Session-Logger-API/pkg/config"
	"github.com/shindelr/Session-Logger-API/pkg/fetcher"
	"github.com/shindelr/Session-Logger-API/pkg/logger"
	"github.com/shindelr/Session-Logger-API/pkg/models"
	"github.com/shindelr/Session-Logger-API/pkg/observability"
	"github.com/shindelr/Session-Logger-API/pkg/sessions"
	"github.com/shindelr/Session-Logger-API/pkg/store"

	"github.com/glebarez/sqlite"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type Application struct {
	Cfg      *config.Config
	DB       *gorm.DB
	Metrics  *observability.Metrics
	Ingestor *sessions.Ingestor
	Store    *store.Store
	Buoy     fetcher.BuoyService
	Tides    fetcher.TideService
}

func Start() (*Application, error) {
	cfg := config.Load()

	logger.Init(cfg.GetLogLevel(), cfg.GetLogChannel(), cfg.GetLogFile())

	zap.S().Info("Starting Session Logger API")

	db, err := openDB(cfg)
	if err != nil {
		return nil, err
	}

	zap.S().Debug("Running migrations")
	err = db.AutoMigrate(
		&models.Location{},
		&models.LogUser{},
		&models.Temps{},
		&models.Swell{},
		&models.Tide{},
		&models.Wind{},
		&models.SessionInfo{},
	)
	if err != nil {
		zap.S().Errorf("Error running auto migration: %v", err)
		return nil, err
	}

	metrics := observability.NewMetrics()
	clock := clockwork.NewRealClock()

	app := &Application{
		Cfg:      cfg,
		DB:       db,
		Metrics:  metrics,
		Ingestor: sessions.NewIngestor(db, metrics),
		Store:    store.New(db),
		Buoy:     fetcher.NewNDBCClient(cfg.GetNDBCBaseURL(), cfg.GetSpotTimezone(), clock, metrics),
		Tides:    fetcher.NewCOOPSClient(cfg.GetCOOPSBaseURL(), metrics),
	}

	return app, nil
}

func openDB(cfg *config.Config) (*gorm.DB, error) {
	switch cfg.GetDBDriver() {
	case "sqlite":
		dsn := cfg.GetDBDSN()
		if dsn == "" {
			dsn = "file:session-logger.db?_pragma=foreign_keys(1)"
		}
		return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	case "mysql":
		if cfg.GetDBDSN() == "" {
			return nil, errors.New("DB_DSN is required for the mysql driver")
		}
		return gorm.Open(mysql.Open(cfg.GetDBDSN()), &gorm.Config{})
	default:
		return nil, errors.New("unsupported DB_DRIVER: " + cfg.GetDBDriver())
	}
}
