package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis_rate/v10"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/comitanigiacomo/kanso-fit/internal/adapters/cache"
	adapterHTTP "github.com/comitanigiacomo/kanso-fit/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-fit/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-fit/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-fit/internal/config"
	"github.com/comitanigiacomo/kanso-fit/internal/core/domain"
	"github.com/comitanigiacomo/kanso-fit/internal/core/services"
	"github.com/comitanigiacomo/kanso-fit/internal/core/workers"
	"github.com/comitanigiacomo/kanso-fit/internal/metrics"
)

var errMissingSecret = errors.New("JWT_SECRET is required")

type app struct {
	router *gin.Engine
	worker *workers.SnapshotWorker

	db  *sqlx.DB
	rdb *redis.Client
}

func newApp(cfg *config.Config, m *metrics.Manager, gatherer prometheus.Gatherer) (*app, error) {
	if cfg.JWTSecret == "" {
		return nil, errMissingSecret
	}

	catalog, err := config.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	a := &app{}

	var (
		users     domain.UserRepository
		sessions  domain.SessionRepository
		snapshots domain.SnapshotRepository
	)

	switch cfg.Storage {
	case config.StoragePostgres:
		log.Info("connecting to database...")
		db, err := sqlx.Connect("pgx", cfg.DSN())
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		db.SetMaxOpenConns(cfg.DBMaxOpenConns)
		db.SetMaxIdleConns(cfg.DBMaxIdleConns)
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime())
		a.db = db

		users = repository.NewPostgresUserRepository(db)
		sessions = repository.NewPostgresSessionRepository(db)
		snapshots = repository.NewPostgresSnapshotRepository(db)
	default:
		log.Warn("using in-memory storage, data is lost on restart")
		users = repository.NewInMemoryUserRepository()
		sessions = repository.NewInMemorySessionRepository()
		snapshots = repository.NewInMemorySnapshotRepository()
	}

	var (
		store   cache.Store
		limiter middleware.RequestRateLimiter
	)
	if cfg.RedisEnabled {
		rdb, err := cache.NewRedisClient(cfg.RedisHost, cfg.RedisPort, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, multierr.Append(err, a.close())
		}
		a.rdb = rdb
		store = cache.NewRedisStore(rdb)
		limiter = redis_rate.NewLimiter(rdb)
	} else {
		store = cache.NewLocalStore(cfg.LocalCacheSizeMB)
	}

	sessions = repository.NewCachedSessionRepository(sessions, store, cfg.HistoryCacheTTL(), m)

	granularity := cfg.Granularity()
	clock := adapterHTTP.Clock{Now: time.Now, Location: cfg.Location()}

	tokenService := services.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL(), users)
	authService := services.NewAuthService(users, tokenService)

	historyReader := services.NewSessionService(sessions, catalog, nil)
	a.worker = workers.NewSnapshotWorker(historyReader, snapshots, granularity, cfg.SnapshotQueueSize, m).
		WithClock(clock.Current)
	sessionService := services.NewSessionService(sessions, catalog, a.worker)

	progressService := services.NewProgressService(sessionService, catalog, snapshots, granularity)

	a.router = adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:      adapterHTTP.NewAuthHandler(authService),
		SessionHandler:   adapterHTTP.NewSessionHandler(sessionService, clock, m),
		ProgressHandler:  adapterHTTP.NewProgressHandler(progressService, clock),
		CatalogHandler:   adapterHTTP.NewCatalogHandler(services.NewCatalogService(catalog), progressService),
		BootstrapHandler: adapterHTTP.NewBootstrapHandler(authService, sessionService, clock),
		TokenValidator:   tokenService,
		Metrics:          m,
		Gatherer:         gatherer,
		RateLimiter:      limiter,
		RateLimit:        cfg.RateLimitRequests,
		RateLimitWindow:  cfg.RateLimitWindow(),
		DB:               a.db,
		Redis:            a.rdb,
		SwaggerEnabled:   cfg.SwaggerEnabled,
		StartTime:        time.Now(),
	})

	return a, nil
}

func (a *app) close() error {
	var err error
	if a.rdb != nil {
		err = multierr.Append(err, a.rdb.Close())
	}
	if a.db != nil {
		err = multierr.Append(err, a.db.Close())
	}
	return err
}
