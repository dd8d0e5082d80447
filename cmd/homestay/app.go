package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"homestay/internal/app/commands"
	bookingapp "homestay/internal/app/handlers/booking"
	catalogapp "homestay/internal/app/handlers/catalog"
	quoteapp "homestay/internal/app/handlers/quote"
	"homestay/internal/app/middleware"
	"homestay/internal/app/policies"
	"homestay/internal/app/queries"
	domainquote "homestay/internal/domain/quote"
	"homestay/internal/infra/broker/kafka"
	"homestay/internal/infra/cache/redis"
	"homestay/internal/infra/config"
	mongostore "homestay/internal/infra/db/mongo"
	ginserver "homestay/internal/infra/http/gin"
	"homestay/internal/infra/obs"
	"homestay/internal/infra/storage/memory"
	"homestay/internal/infra/voucher"
)

type application struct {
	handlers ginserver.Handlers
	checks   map[string]obs.Check
	closers  []func(context.Context) error
}

func (a *application) close(logger *slog.Logger) {
	ctx := context.Background()
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			logger.Warn("shutdown step failed", "error", err)
		}
	}
}

func buildApplication(ctx context.Context, cfg config.Config, logger *slog.Logger) (*application, error) {
	app := &application{checks: map[string]obs.Check{}}

	var mongoClient *mongostore.Client
	if cfg.UsesMongo() {
		client, err := mongostore.New(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, fmt.Errorf("mongo connect: %w", err)
		}
		mongoClient = client
		app.checks["mongo"] = client.Ping
		app.closers = append(app.closers, client.Close)
	}

	places, err := buildCatalog(ctx, cfg, mongoClient, logger)
	if err != nil {
		return nil, err
	}
	lookup, err := buildVoucherLookup(cfg, mongoClient, logger)
	if err != nil {
		return nil, err
	}
	submitter, err := app.buildSubmitter(cfg)
	if err != nil {
		return nil, err
	}
	idStore := app.buildIdempotencyStore(ctx, cfg, mongoClient)

	engine := domainquote.NewEngine(lookup)
	drafts := quoteapp.NewDrafts()

	queryBus := queries.NewInMemoryBus()
	queries.RegisterHandler(queryBus, quoteapp.ComputeQuoteQuery{}.Key(), &quoteapp.ComputeQuoteHandler{
		Places:   places,
		Engine:   engine,
		Drafts:   drafts,
		Currency: cfg.Currency,
	})
	queries.RegisterHandler(queryBus, quoteapp.GetDraftQuery{}.Key(), &quoteapp.GetDraftHandler{Drafts: drafts})
	queries.RegisterHandler(queryBus, quoteapp.ResolveVoucherQuery{}.Key(), &quoteapp.ResolveVoucherHandler{Resolver: engine.Vouchers})
	queries.RegisterHandler(queryBus, catalogapp.QueryCatalogQuery{}.Key(), &catalogapp.QueryCatalogHandler{
		Places:  places,
		Cursors: catalogapp.NewCursors(),
	})
	queries.RegisterHandler(queryBus, catalogapp.GetPlaceQuery{}.Key(), &catalogapp.GetPlaceHandler{Places: places})

	commandBus := commands.NewInMemoryBus()
	commands.RegisterHandler(commandBus, bookingapp.SubmitBookingCommand{}.Key(), &bookingapp.SubmitBookingHandler{
		Places:    places,
		Engine:    engine,
		Submitter: submitter,
		Currency:  cfg.Currency,
	})

	validator := middleware.NewStructValidator()
	authorizer := middleware.SessionAuthorizer{}
	queryBusWithMiddleware := middleware.ChainQueries(
		queryBus,
		middleware.QueryLogging(logger),
		middleware.QueryAuthorization(authorizer),
		middleware.QueryValidation(validator),
	)
	commandBusWithMiddleware := middleware.ChainCommands(
		commandBus,
		middleware.CommandLogging(logger),
		middleware.Authorization(authorizer),
		middleware.Validation(validator),
		middleware.Idempotency(idStore, nil, logger),
	)

	app.handlers = ginserver.Handlers{
		Quote:     ginserver.QuoteHandler{Queries: queryBusWithMiddleware, Logger: logger},
		Place:     ginserver.PlaceHandler{Queries: queryBusWithMiddleware, Logger: logger},
		Booking:   ginserver.BookingHandler{Commands: commandBusWithMiddleware, Logger: logger},
		RateLimit: ginserver.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, logger).Middleware(),
	}
	return app, nil
}

func buildCatalog(ctx context.Context, cfg config.Config, mongoClient *mongostore.Client, logger *slog.Logger) (policies.CatalogSource, error) {
	fixtures := memory.NewPlaceRepository()
	loaded, err := fixtures.LoadPlaces(ctx, cfg.CatalogFixtures)
	switch {
	case errors.Is(err, os.ErrNotExist):
		logger.Info("catalog fixtures file not found, skipping", "path", cfg.CatalogFixtures)
	case err != nil:
		return nil, err
	default:
		logger.Info("catalog fixtures imported", "count", loaded, "path", cfg.CatalogFixtures)
	}

	if cfg.CatalogSource != "mongo" {
		return fixtures, nil
	}
	repo := mongostore.NewPlaceRepository(mongoClient.DB)
	if cfg.CatalogSeed && fixtures.Len() > 0 {
		items, _ := fixtures.Items(ctx)
		if err := repo.Seed(ctx, items); err != nil {
			return nil, fmt.Errorf("seed places: %w", err)
		}
		logger.Info("mongo catalog seeded", "count", len(items))
	}
	return repo, nil
}

func buildVoucherLookup(cfg config.Config, mongoClient *mongostore.Client, logger *slog.Logger) (policies.VoucherLookup, error) {
	switch cfg.VoucherSource {
	case "http":
		return voucher.NewHTTPLookup(cfg.VoucherAPIURL, cfg.VoucherTimeout, logger), nil
	case "mongo":
		return mongostore.NewVoucherLookup(mongoClient.DB), nil
	default:
		table := memory.NewVoucherTable()
		n, err := table.LoadVouchers(cfg.VoucherFixtures)
		switch {
		case errors.Is(err, os.ErrNotExist):
			logger.Info("voucher fixtures file not found, skipping", "path", cfg.VoucherFixtures)
		case err != nil:
			return nil, err
		default:
			logger.Info("voucher fixtures imported", "count", n)
		}
		return table, nil
	}
}

func (a *application) buildSubmitter(cfg config.Config) (policies.BookingSubmitter, error) {
	if cfg.BookingSink != "kafka" {
		return memory.NewBookingRecorder(), nil
	}
	producer, err := kafka.NewProducer(cfg.KafkaBrokers, nil)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	a.closers = append(a.closers, func(context.Context) error { return producer.Close() })
	return kafka.NewBookingSubmitter(producer, cfg.KafkaTopicPrefix), nil
}

func (a *application) buildIdempotencyStore(ctx context.Context, cfg config.Config, mongoClient *mongostore.Client) middleware.IdempotencyStore {
	switch cfg.IdempotencyStore {
	case "mongo":
		return mongostore.NewIdempotencyStore(ctx, mongoClient.DB, cfg.IdempotencyTTL)
	case "redis":
		client := redis.NewClient(cfg.RedisAddr, cfg.RedisDB)
		store := redis.NewIdempotencyStore(client, cfg.IdempotencyTTL)
		a.checks["redis"] = store.Ping
		a.closers = append(a.closers, func(context.Context) error { return client.Close() })
		return store
	default:
		return memory.NewIdempotencyStore(cfg.IdempotencyTTL)
	}
}
