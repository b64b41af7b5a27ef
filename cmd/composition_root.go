package cmd

import (
	"context"
	"errors"
	"fmt"

	httpapi "procurement/internal/adapters/in/http"
	"procurement/internal/adapters/out/cache"
	"procurement/internal/adapters/out/memory"
	"procurement/internal/adapters/out/notification"
	"procurement/internal/adapters/out/postgres"
	"procurement/internal/adapters/out/postgres/migration"
	"procurement/internal/adapters/out/tracking"
	"procurement/internal/core/application/usecases/commands"
	"procurement/internal/core/application/usecases/queries"
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/services"
	"procurement/internal/core/ports"
	"procurement/internal/jobs"

	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// CompositionRoot owns the adapters of one process and builds use case handlers on top of
// them. Close releases everything it opened.
type CompositionRoot struct {
	cfg         Config
	logger      *zap.Logger
	uowFactory  ports.UnitOfWorkFactory
	emitter     ports.NotificationEmitter
	cache       ports.ComparisonCache
	clock       kernel.Clock
	adjudicator services.Adjudicator
	closers     []func() error
}

// NewCompositionRoot connects the configured store, cache and notification sink.
func NewCompositionRoot(ctx context.Context, cfg Config, logger *zap.Logger) (_ *CompositionRoot, err error) {
	root := &CompositionRoot{
		cfg:         cfg,
		logger:      logger,
		clock:       kernel.SystemClock{},
		adjudicator: services.NewAdjudicator(),
	}
	defer func() {
		if err != nil {
			_ = root.Close()
		}
	}()

	emitter, closeEmitter, err := notification.New(notification.Config{
		Driver:       cfg.NotifyDriver,
		Brokers:      cfg.KafkaBrokers,
		Topic:        cfg.KafkaTopic,
		ClientID:     cfg.KafkaClientID,
		WriteTimeout: cfg.KafkaWriteTimeout,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("notifications: %w", err)
	}
	root.emitter = emitter
	root.closers = append(root.closers, closeEmitter)

	comparisonCache, closeCache, err := cache.New(ctx, cache.Config{
		Driver:   cfg.CacheDriver,
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
		TTL:      cfg.CacheTTL,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("comparison cache: %w", err)
	}
	root.cache = comparisonCache
	root.closers = append(root.closers, closeCache)

	switch cfg.Store {
	case StorePostgres:
		db, err := OpenPostgres(cfg)
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		root.closers = append(root.closers, sqlDB.Close)

		if cfg.DBAutoMigrate {
			migrator, err := migration.New(sqlDB, logger)
			if err != nil {
				return nil, err
			}
			if err := migrator.Up(ctx); err != nil {
				return nil, fmt.Errorf("apply migrations: %w", err)
			}
		}
		root.uowFactory = postgres.NewGormUnitOfWorkFactory(db, emitter)
	default:
		root.uowFactory = memory.NewStore(emitter)
	}

	logger.Info("Composition root ready",
		zap.String("store", cfg.Store),
		zap.String("cache", cfg.CacheDriver),
		zap.String("notifications", cfg.NotifyDriver),
	)
	return root, nil
}

// OpenPostgres opens the GORM connection pool described by cfg.
func OpenPostgres(cfg Config) (*gorm.DB, error) {
	db, err := gorm.Open(gormpostgres.Open(cfg.PostgresDSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	return db, nil
}

// HTTPHandlers builds every command and query handler served by the HTTP API.
func (c *CompositionRoot) HTTPHandlers() httpapi.Handlers {
	return httpapi.Handlers{
		CreateOrder:     commands.NewCreateOrderCommandHandler(c.uowFactory, c.clock),
		PublishOrder:    commands.NewPublishOrderCommandHandler(c.uowFactory, c.clock),
		RejectOrder:     commands.NewRejectOrderCommandHandler(c.uowFactory, c.clock),
		AdjudicateOrder: commands.NewAdjudicateOrderCommandHandler(c.uowFactory, c.adjudicator, c.clock),
		DispatchOrder:   commands.NewDispatchOrderCommandHandler(c.uowFactory, c.clock, tracking.NewGenerator()),
		ConfirmDelivery: commands.NewConfirmDeliveryCommandHandler(c.uowFactory, c.clock),
		AddComment:      commands.NewAddCommentCommandHandler(c.uowFactory, c.clock),
		SubmitQuote:     commands.NewSubmitQuoteCommandHandler(c.uowFactory, c.clock),

		GetOrder:           queries.NewGetOrderQueryHandler(c.uowFactory),
		ListOrders:         queries.NewListOrdersQueryHandler(c.uowFactory),
		GetQuote:           queries.NewGetQuoteQueryHandler(c.uowFactory),
		ListQuotes:         queries.NewListQuotesQueryHandler(c.uowFactory),
		ListQuoteRevisions: queries.NewListQuoteRevisionsQueryHandler(c.uowFactory),
		GetBestOffer:       queries.NewGetBestOfferQueryHandler(c.uowFactory, c.adjudicator),
		GetComparison:      queries.NewGetQuoteComparisonQueryHandler(c.uowFactory, c.adjudicator, c.cache),
	}
}

// JobManager builds the scheduled jobs.
func (c *CompositionRoot) JobManager() *jobs.JobManager {
	reminders := commands.NewSendAdjudicationRemindersCommandHandler(c.uowFactory, c.emitter, c.clock)
	return jobs.NewJobManager(c.logger,
		jobs.NewAdjudicationReminderJob(reminders, c.cfg.ReminderSchedule, c.logger),
	)
}

// Close releases adapters in reverse order of creation.
func (c *CompositionRoot) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}
