package cli

import (
	"context"
	"fmt"
	"os"

	"gorm.io/gorm"

	"github.com/andrescamacho/colonybot/internal/adapters/metrics"
	"github.com/andrescamacho/colonybot/internal/adapters/persistence"
	"github.com/andrescamacho/colonybot/internal/adapters/world"
	"github.com/andrescamacho/colonybot/internal/application/colony"
	"github.com/andrescamacho/colonybot/internal/application/common"
	economyCmd "github.com/andrescamacho/colonybot/internal/application/economy/commands"
	economyQuery "github.com/andrescamacho/colonybot/internal/application/economy/queries"
	"github.com/andrescamacho/colonybot/internal/application/mediator"
	spawningCmd "github.com/andrescamacho/colonybot/internal/application/spawning/commands"
	"github.com/andrescamacho/colonybot/internal/domain/shared"
	"github.com/andrescamacho/colonybot/internal/infrastructure/config"
	"github.com/andrescamacho/colonybot/internal/infrastructure/database"
	"github.com/andrescamacho/colonybot/internal/infrastructure/logging"
)

// app holds everything a command needs once flags are resolved
type app struct {
	cfg       *config.Config
	logger    *logging.Logger
	db        *gorm.DB
	world     *world.SnapshotWorld
	worldPath string
	ticks     *shared.CounterTicks
	queue     *persistence.GormProductionQueue
	mediator  common.Mediator
}

// newApp loads configuration, opens the ledger store and wires the mediator.
// The world snapshot is optional; without one, world queries see an empty
// world.
func newApp(requireWorld bool) (*app, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	logger, err := logging.NewLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	worldPath, err := resolveWorldPath()
	if err != nil {
		return nil, err
	}
	if worldPath == "" && requireWorld {
		return nil, fmt.Errorf("no world snapshot specified: use --world, or set a default with 'colonybot config set-world'")
	}

	snapshot := &world.Snapshot{}
	if worldPath != "" {
		snapshot, err = world.LoadSnapshot(worldPath)
		if err != nil {
			return nil, err
		}
	}

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	startTick := cfg.Cycle.StartTick
	if snapshot.Tick > 0 {
		startTick = snapshot.Tick
	}

	a := &app{
		cfg:       cfg,
		logger:    logger,
		db:        db,
		world:     world.NewSnapshotWorld(snapshot),
		worldPath: worldPath,
		ticks:     shared.NewCounterTicks(startTick),
		queue:     persistence.NewGormProductionQueue(db),
	}

	commandMetrics, err := initMetrics(cfg.Metrics)
	if err != nil {
		return nil, err
	}

	a.mediator, err = a.buildMediator(commandMetrics)
	if err != nil {
		return nil, err
	}

	return a, nil
}

// initMetrics sets up the global registry and collectors when metrics are
// enabled. It returns nil when they are not.
func initMetrics(cfg config.MetricsConfig) (*metrics.CommandMetricsCollector, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	metrics.InitRegistry()

	economyCollector := metrics.NewEconomyMetricsCollector()
	if err := economyCollector.Register(); err != nil {
		return nil, fmt.Errorf("failed to register economy metrics: %w", err)
	}
	metrics.SetGlobalEconomyCollector(economyCollector)

	spawningCollector := metrics.NewSpawningMetricsCollector()
	if err := spawningCollector.Register(); err != nil {
		return nil, fmt.Errorf("failed to register spawning metrics: %w", err)
	}
	metrics.SetGlobalSpawningCollector(spawningCollector)

	commandCollector := metrics.NewCommandMetricsCollector()
	if err := commandCollector.Register(); err != nil {
		return nil, fmt.Errorf("failed to register command metrics: %w", err)
	}
	return commandCollector, nil
}

func (a *app) buildMediator(commandMetrics *metrics.CommandMetricsCollector) (common.Mediator, error) {
	med := common.NewMediator()
	med.RegisterMiddleware(metrics.PrometheusMiddleware(commandMetrics))

	ledgerRepo := persistence.NewGormLedgerRepository(a.db)
	tuning := a.cfg.Economy.Tuning(a.cfg.Spawning.MaxBodySize)

	registrations := []func() error{
		func() error {
			return mediator.RegisterHandler[*economyCmd.PrepareOutpostsCommand](med,
				economyCmd.NewPrepareOutpostsHandler(ledgerRepo, a.world, a.ticks, nil, tuning))
		},
		func() error {
			return mediator.RegisterHandler[*economyCmd.SettleOutpostsCommand](med,
				economyCmd.NewSettleOutpostsHandler(ledgerRepo, tuning))
		},
		func() error {
			return mediator.RegisterHandler[*economyCmd.RecordNodeIncomeCommand](med,
				economyCmd.NewRecordNodeIncomeHandler(ledgerRepo))
		},
		func() error {
			return mediator.RegisterHandler[*economyCmd.RegisterOutpostCommand](med,
				economyCmd.NewRegisterOutpostHandler(ledgerRepo))
		},
		func() error {
			return mediator.RegisterHandler[*economyCmd.AbandonOutpostCommand](med,
				economyCmd.NewAbandonOutpostHandler(ledgerRepo))
		},
		func() error {
			return mediator.RegisterHandler[*economyQuery.GetOutpostRequirementsQuery](med,
				economyQuery.NewGetOutpostRequirementsHandler(ledgerRepo))
		},
		func() error {
			return mediator.RegisterHandler[*economyQuery.ListOutpostsQuery](med,
				economyQuery.NewListOutpostsHandler(ledgerRepo))
		},
		func() error {
			return mediator.RegisterHandler[*spawningCmd.ConstructSpawnRequestsCommand](med,
				spawningCmd.NewConstructSpawnRequestsHandler(a.world, a.world, a.queue, a.cfg.Spawning.MaxBodySize))
		},
		func() error {
			return mediator.RegisterHandler[*colony.RunCycleCommand](med,
				colony.NewRunCycleHandler(med, a.ticks, tuning.ReserverBaseline, a.cfg.Spawning.DefaultThreshold))
		},
	}

	for _, register := range registrations {
		if err := register(); err != nil {
			return nil, fmt.Errorf("failed to register handler: %w", err)
		}
	}

	return med, nil
}

// context returns a context carrying the application logger
func (a *app) context() context.Context {
	return common.WithLogger(context.Background(), a.logger)
}

// reloadWorld re-reads the snapshot file so an external simulator can
// advance the world between cycles
func (a *app) reloadWorld() error {
	if a.worldPath == "" {
		return nil
	}
	snapshot, err := world.LoadSnapshot(a.worldPath)
	if err != nil {
		return err
	}
	a.world.Replace(snapshot)
	return nil
}

// Close releases the database and the log output
func (a *app) Close() {
	if err := database.Close(a.db); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to close database: %v\n", err)
	}
	if err := a.logger.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to close log output: %v\n", err)
	}
}

// resolveColony resolves the colony from flags or defaults
// Priority: --colony flag > user config default
func resolveColony() (string, error) {
	if colonyName != "" {
		return colonyName, nil
	}

	userCfg, err := loadUserConfig()
	if err != nil {
		return "", fmt.Errorf("no colony specified and failed to load user config: %w", err)
	}
	if userCfg.DefaultColony != "" {
		return userCfg.DefaultColony, nil
	}

	return "", fmt.Errorf("no colony specified: use --colony, or set a default with 'colonybot config set-colony'")
}

// resolveWorldPath resolves the snapshot path from flags or defaults. An
// empty result means no snapshot is configured.
func resolveWorldPath() (string, error) {
	if worldPath != "" {
		return worldPath, nil
	}

	userCfg, err := loadUserConfig()
	if err != nil {
		return "", fmt.Errorf("failed to load user config: %w", err)
	}
	return userCfg.DefaultWorld, nil
}

func loadUserConfig() (*config.UserConfig, error) {
	handler, err := config.NewUserConfigHandler(userConfigDir)
	if err != nil {
		return nil, err
	}
	return handler.Load()
}
