package cli

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/andrescamacho/factory-planner/internal/adapters/gamedata"
	"github.com/andrescamacho/factory-planner/internal/adapters/metrics"
	"github.com/andrescamacho/factory-planner/internal/adapters/persistence"
	"github.com/andrescamacho/factory-planner/internal/application/common"
	"github.com/andrescamacho/factory-planner/internal/application/planning"
	domain "github.com/andrescamacho/factory-planner/internal/domain/gamedata"
	"github.com/andrescamacho/factory-planner/internal/domain/production"
	"github.com/andrescamacho/factory-planner/internal/domain/shared"
	"github.com/andrescamacho/factory-planner/internal/infrastructure/config"
	"github.com/andrescamacho/factory-planner/internal/infrastructure/database"
	"github.com/andrescamacho/factory-planner/internal/infrastructure/logging"
)

// application bundles everything a subcommand needs: the mediator with all
// planning handlers registered, the registry provider and a logger-carrying ctx
type application struct {
	cfg      *config.Config
	opts     *rootOptions
	ctx      context.Context
	mediator common.Mediator
	registry common.RegistryProvider
	logger   *zap.Logger
	db       *gorm.DB
	out      io.Writer
	metrics  bool
}

// newApplication wires config, logging, persistence, metrics and handlers
func newApplication(ctx context.Context, opts *rootOptions, out io.Writer) (*application, error) {
	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if opts.verbose {
		cfg.Logging.Level = "debug"
	}
	zapLogger, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	ctx = common.WithLogger(ctx, logging.NewZapLogger(zapLogger))

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		_ = database.Close(db)
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	app := &application{
		cfg:     cfg,
		opts:    opts,
		logger:  zapLogger,
		db:      db,
		out:     out,
		metrics: cfg.Metrics.Enabled || opts.metrics,
	}

	m := common.NewMediator()
	m.Use(common.LoggingMiddleware())
	if app.metrics {
		collector, err := registerMetrics()
		if err != nil {
			_ = database.Close(db)
			return nil, err
		}
		m.Use(metrics.PrometheusMiddleware(collector))
	}

	cache, err := gamedata.NewRegistryCache(cfg.Planner.RegistryCacheSize)
	if err != nil {
		_ = database.Close(db)
		return nil, fmt.Errorf("failed to create registry cache: %w", err)
	}
	dataPath, _ := opts.resolveDataPath(cfg)
	app.registry = gamedata.NewFileRegistryProvider(cache, dataPath)

	calculator := production.NewCalculator(production.EffectLimits{
		MinSpeed:       cfg.Planner.SpeedFloor,
		MinEnergyUsage: cfg.Planner.EnergyFloor,
		MinQuality:     cfg.Planner.QualityFloor,
	})

	err = planning.RegisterHandlers(m, planning.Dependencies{
		Calculator:            calculator,
		Settings:              persistence.NewGormSettingsRepository(db),
		Preferences:           persistence.NewGormPreferencesRepository(db),
		ShoppingLists:         persistence.NewGormShoppingListRepository(db),
		Registry:              app.registry,
		Clock:                 shared.NewRealClock(),
		Workers:               cfg.Planner.CalculationWorkers,
		MaxDecompositionSteps: cfg.Planner.DecompositionMaxSteps,
	})
	if err != nil {
		_ = database.Close(db)
		return nil, err
	}

	app.mediator = m
	app.ctx = ctx
	return app, nil
}

func registerMetrics() (*metrics.CommandMetricsCollector, error) {
	metrics.InitRegistry()

	planner := metrics.NewPlannerMetricsCollector()
	if err := planner.Register(); err != nil {
		return nil, fmt.Errorf("failed to register planner metrics: %w", err)
	}
	metrics.SetGlobalPlannerCollector(planner)

	commandCollector := metrics.NewCommandMetricsCollector()
	if err := commandCollector.Register(); err != nil {
		return nil, fmt.Errorf("failed to register command metrics: %w", err)
	}
	return commandCollector, nil
}

// loadRegistry returns the game data registry for this invocation
func (a *application) loadRegistry() (*domain.Registry, error) {
	if _, err := a.opts.resolveDataPath(a.cfg); err != nil {
		return nil, err
	}
	return a.registry.Registry(a.ctx)
}

// loadPlan resolves the plan file against the game data
func (a *application) loadPlan() (*gamedata.Plan, error) {
	registry, err := a.loadRegistry()
	if err != nil {
		return nil, err
	}
	planPath, err := a.opts.resolvePlanPath(a.cfg)
	if err != nil {
		return nil, err
	}
	return gamedata.LoadPlanFile(planPath, registry)
}

// close flushes the logger, releases the database and prints metrics if requested
func (a *application) close() {
	if a.metrics {
		if a.opts.metrics || a.cfg.Metrics.Print {
			fmt.Fprintln(a.out)
			if err := metrics.WriteText(a.out, metrics.GetRegistry()); err != nil {
				a.logger.Warn("failed to write metrics", zap.Error(err))
			}
		}
		metrics.Reset()
	}
	_ = a.logger.Sync()
	_ = database.Close(a.db)
}

// runWithApp wires the application for one command invocation and tears it down afterwards
func runWithApp(ctx context.Context, opts *rootOptions, out io.Writer, fn func(app *application) error) error {
	app, err := newApplication(ctx, opts, out)
	if err != nil {
		return err
	}
	defer app.close()
	return fn(app)
}
