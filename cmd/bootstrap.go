package cmd

import (
	"context"
	"fmt"

	"scrapper/core/cache"
	"scrapper/core/config"
	"scrapper/core/database"
	"scrapper/core/logger"
	"scrapper/core/notify"
	"scrapper/core/source"
	"scrapper/core/storage"
	"scrapper/feature/scrapping"
	"scrapper/feature/scrapping/classify"
	"scrapper/feature/scrapping/convert"
	"scrapper/feature/scrapping/integrate"
	"scrapper/feature/scrapping/limits"
	"scrapper/feature/scrapping/orchestrator"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// runtime holds every component built from the configuration.
type runtime struct {
	cfg        *config.Config
	logger     *zap.Logger
	db         *gorm.DB
	store      storage.Client
	classifier *classify.Classifier
	dispatcher *notify.Dispatcher
	archive    *scrapping.Archive
	orch       *orchestrator.Orchestrator
	service    *scrapping.Service
}

// bootstrap loads the configuration and wires the pipeline. The database is
// required; object storage only when archiving is enabled.
func bootstrap(ctx context.Context) (*runtime, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("database connection required: %w", err)
	}
	if err := integrate.Migrate(db); err != nil {
		return nil, err
	}
	logg.Info("Connected to database", zap.String("driver", cfg.Database.Driver))

	respCache, err := cache.New(cfg.Cache)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache: %w", err)
	}
	src := source.NewClient(cfg.Source, respCache, cfg.Cache.TTL, cfg.Pipeline.Retry.Collection, logg)

	limitTable, err := loadLimits(ctx, cfg, db)
	if err != nil {
		return nil, err
	}
	lang, fallback := src.Language()
	engine := convert.NewEngine(limitTable, lang, fallback)

	lists, err := classify.ListsFromConfig(cfg.Pipeline.Classifier)
	if err != nil {
		return nil, fmt.Errorf("failed to load classifier lists: %w", err)
	}
	classifier, err := classify.New(cfg.Pipeline.Classifier.Mode, lists, classify.NewGormRegistry(db), logg)
	if err != nil {
		return nil, err
	}
	if err := classifier.Refresh(ctx); err != nil {
		return nil, fmt.Errorf("failed to load classifier registry: %w", err)
	}

	integrator, err := integrate.NewService(integrate.NewGormStore(db), cfg.Pipeline.ConflictStrategy, logg)
	if err != nil {
		return nil, err
	}

	logg.Info("Pipeline configured",
		zap.String("classifier_mode", classifier.Mode()),
		zap.String("conflict_strategy", integrator.Strategy()),
		zap.String("language", lang),
	)

	dispatcher, err := newDispatcher(cfg, respCache, logg)
	if err != nil {
		return nil, err
	}

	var store storage.Client
	if cfg.Storage.Enabled {
		store, err = storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		if err := storage.EnsureBucket(ctx, store, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
			logg.Warn("Report bucket unavailable, reports stay in memory", zap.Error(err))
		}
	}
	archive := scrapping.NewArchive(store, cfg.Storage.Bucket, 0, logg)

	orch, err := orchestrator.New(orchestrator.Deps{
		Source:     src,
		Classifier: classifier,
		Converter:  engine,
		Integrator: integrator,
		Notifier:   dispatcher,
		Logger:     logg,
	}, cfg.Pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to create orchestrator: %w", err)
	}

	return &runtime{
		cfg:        cfg,
		logger:     logg,
		db:         db,
		store:      store,
		classifier: classifier,
		dispatcher: dispatcher,
		archive:    archive,
		orch:       orch,
		service:    scrapping.NewService(orch, classifier, archive, logg),
	}, nil
}

// Close drains pending events and flushes the logger.
func (r *runtime) Close() {
	r.dispatcher.Close()
	_ = r.logger.Sync()
}

func loadLimits(ctx context.Context, cfg *config.Config, db *gorm.DB) (limits.Source, error) {
	switch {
	case cfg.Pipeline.LimitsFile != "":
		return limits.LoadFile(cfg.Pipeline.LimitsFile)
	case cfg.Pipeline.LimitsFromDB:
		return limits.LoadDB(ctx, db)
	default:
		return limits.Defaults(), nil
	}
}

func newDispatcher(cfg *config.Config, respCache cache.Cache, logg *zap.Logger) (*notify.Dispatcher, error) {
	var sinks []notify.Sink
	for _, name := range cfg.Notify.Sinks {
		switch name {
		case "":
		case "log":
			sinks = append(sinks, notify.LogSink{Logger: logg})
		case "redis":
			var client redis.UniversalClient
			if rc, ok := respCache.(*cache.Redis); ok {
				client = rc.Client()
			} else {
				client = redis.NewClient(&redis.Options{
					Addr:     cfg.Cache.RedisAddr,
					Password: cfg.Cache.RedisPassword,
					DB:       cfg.Cache.RedisDB,
				})
			}
			sinks = append(sinks, notify.RedisSink{Client: client, Channel: cfg.Notify.RedisChannel})
		default:
			return nil, fmt.Errorf("unknown notify sink: %q", name)
		}
	}
	return notify.NewDispatcher(logg, cfg.Notify.QueueSize, sinks...), nil
}
