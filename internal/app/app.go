package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/prediction-league/external/anubis"
	"github.com/riskibarqy/prediction-league/external/jobqueue"
	"github.com/riskibarqy/prediction-league/internal/config"
	"github.com/riskibarqy/prediction-league/internal/domain/league"
	"github.com/riskibarqy/prediction-league/internal/infrastructure/export/xlsx"
	"github.com/riskibarqy/prediction-league/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/prediction-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/prediction-league/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/prediction-league/internal/interfaces/httpapi"
	"github.com/riskibarqy/prediction-league/internal/observability"
	basecache "github.com/riskibarqy/prediction-league/internal/platform/cache"
	idgen "github.com/riskibarqy/prediction-league/internal/platform/id"
	"github.com/riskibarqy/prediction-league/internal/platform/logging"
	"github.com/riskibarqy/prediction-league/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

// Container holds the services shared by the API server and leaguectl.
type Container struct {
	LeagueRepo        league.Repository
	LeagueService     *usecase.LeagueService
	PredictionService *usecase.PredictionService
	ChipService       *usecase.ChipService
	CorrectionService *usecase.CorrectionService
	StandingsService  *usecase.StandingsService
	Metrics           *observability.Metrics

	db *sqlx.DB
}

func Build(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Container, error) {
	if logger == nil {
		logger = logging.Default()
	}

	c := &Container{}
	if cfg.MetricsEnabled {
		c.Metrics = observability.NewMetrics()
	}

	var leagueRepo league.Repository
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := OpenDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		c.db = db
		leagueRepo = postgres.NewLeagueRepository(db)
	default:
		leagueRepo = memory.NewLeagueRepository(memory.SeedLeagues(time.Now()))
	}
	if cfg.CacheEnabled {
		leagueRepo = cache.NewLeagueRepository(leagueRepo, basecache.NewStore(cfg.CacheTTL))
	}
	c.LeagueRepo = leagueRepo

	var queue usecase.JobQueue = usecase.NewNoopJobQueue()
	if cfg.QStashEnabled {
		queue = jobqueue.NewQStashPublisher(jobqueue.QStashPublisherConfig{
			BaseURL:          cfg.QStashBaseURL,
			Token:            cfg.QStashToken,
			TargetBaseURL:    cfg.QStashTargetBaseURL,
			Retries:          cfg.QStashRetries,
			InternalJobToken: cfg.InternalJobToken,
			Timeout:          cfg.QStashTimeout,
			CircuitBreaker:   cfg.QStashCircuit,
		}, logger)
	}

	var recorder usecase.CorrectionRecorder
	if c.Metrics != nil {
		recorder = c.Metrics
	}

	c.LeagueService = usecase.NewLeagueService(leagueRepo, idgen.NewUUIDGenerator())
	c.PredictionService = usecase.NewPredictionService(leagueRepo)
	c.ChipService = usecase.NewChipService(leagueRepo)
	c.CorrectionService = usecase.NewCorrectionService(leagueRepo, queue, recorder, logger)
	c.StandingsService = usecase.NewStandingsService(leagueRepo, xlsx.NewStandingsExporter(), cfg.StandingsRebuildWorkers, logger)

	logger.Info("services ready",
		"storage_driver", cfg.StorageDriver,
		"cache_enabled", cfg.CacheEnabled,
		"qstash_enabled", cfg.QStashEnabled,
		"metrics_enabled", cfg.MetricsEnabled,
	)

	return c, nil
}

func (c *Container) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

func NewHTTPServer(cfg config.Config, c *Container, logger *logging.Logger) (*http.Server, error) {
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}
	if c == nil {
		return nil, errors.New("service container is required")
	}

	anubisClient := anubis.NewClient(anubis.Config{
		BaseURL:           cfg.AnubisBaseURL,
		IntrospectPath:    cfg.AnubisIntrospectURL,
		AdminKey:          cfg.AnubisAdminKey,
		Timeout:           cfg.AnubisTimeout,
		PrincipalCacheTTL: cfg.AnubisPrincipalCacheTTL,
		CircuitBreaker:    cfg.AnubisCircuit,
	}, logger)

	handler := httpapi.NewHandler(
		c.LeagueService,
		c.PredictionService,
		c.ChipService,
		c.CorrectionService,
		c.StandingsService,
		logger,
	)

	routerCfg := httpapi.RouterConfig{
		SwaggerEnabled:     cfg.SwaggerEnabled,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		InternalJobToken:   cfg.InternalJobToken,
	}
	if c.Metrics != nil {
		routerCfg.MetricsHandler = c.Metrics.Handler()
		routerCfg.Recorder = c.Metrics
	}

	return &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpapi.NewRouter(handler, anubisClient, logger, routerCfg),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}, nil
}

// OpenDB opens the traced postgres pool and checks it answers within five seconds.
func OpenDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dsn := NormalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(dsn)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return db, nil
}
