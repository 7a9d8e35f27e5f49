package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/twmb/franz-go/pkg/kgo"

	"scaffold/internal/cqrs"
	"scaffold/internal/eventlog"
	eventlogmemory "scaffold/internal/eventlog/store/memory"
	eventlogpostgres "scaffold/internal/eventlog/store/postgres"
	"scaffold/internal/example/application"
	examplehandler "scaffold/internal/example/handler"
	"scaffold/internal/example/ports"
	"scaffold/internal/example/store"
	jwttoken "scaffold/internal/jwt_token"
	"scaffold/internal/platform/config"
	"scaffold/internal/platform/kafka"
	"scaffold/internal/platform/metrics"
	"scaffold/internal/platform/middleware"
	"scaffold/internal/platform/postgres"
	platformredis "scaffold/internal/platform/redis"
	"scaffold/internal/subscribers"
	httptransport "scaffold/internal/transport/http"
	"scaffold/pkg/platform/circuit"
)

// infra holds the process's external resources in the order they were opened.
type infra struct {
	db      *sql.DB
	redis   *platformredis.Client
	kafka   *kgo.Client
	bus     *cqrs.Bus
	checks  []httptransport.RouterOption
	closers []func() error
}

func (i *infra) onClose(fn func() error) {
	i.closers = append(i.closers, fn)
}

// Close releases resources newest first.
func (i *infra) Close() error {
	var errs []error
	for n := len(i.closers) - 1; n >= 0; n-- {
		errs = append(errs, i.closers[n]())
	}
	return errors.Join(errs...)
}

// app is the assembled process: the router plus everything it holds open.
type app struct {
	handler http.Handler
	infra   *infra
}

func build(ctx context.Context, cfg config.Config, log *slog.Logger, reg *prometheus.Registry) (_ *app, err error) {
	in := &infra{}
	defer func() {
		if err != nil {
			_ = in.Close()
		}
	}()

	if err := in.connect(ctx, cfg); err != nil {
		return nil, err
	}

	examples, err := in.examples(ctx, cfg)
	if err != nil {
		return nil, err
	}
	events, err := in.eventLog(ctx, cfg)
	if err != nil {
		return nil, err
	}

	in.bus = cqrs.NewBus(cqrs.WithBusLogger(log), cqrs.WithBusMetrics(metrics.NewBus(reg)))
	in.onClose(in.bus.Close)
	if err := in.subscribe(ctx, cfg, log, reg, events); err != nil {
		return nil, err
	}

	registry := cqrs.NewRegistry()
	if err := application.Register(registry, application.Deps{Examples: examples, Events: events}); err != nil {
		return nil, fmt.Errorf("register example handlers: %w", err)
	}
	routes, err := registry.Build()
	if err != nil {
		return nil, fmt.Errorf("build handler registry: %w", err)
	}
	dispatcher := cqrs.NewDispatcher(routes, in.bus,
		cqrs.WithLogger(log),
		cqrs.WithMetrics(metrics.NewDispatch(reg)),
	)
	log.InfoContext(ctx, "handlers registered",
		"commands", routes.Commands(),
		"queries", routes.Queries(),
	)

	var handlerOpts []examplehandler.Option
	if cfg.Server.JWTSigningKey != "" {
		validator := jwttoken.NewJWTServiceAdapter(
			jwttoken.NewJWTService(cfg.Server.JWTSigningKey, cfg.Server.JWTIssuer, cfg.Server.JWTAudience),
		)
		handlerOpts = append(handlerOpts, examplehandler.WithWriteGuard(middleware.RequireAuth(validator, log)))
	}

	routerOpts := append([]httptransport.RouterOption{
		httptransport.WithMetricsGatherer(reg),
		httptransport.WithRoutes(examplehandler.New(dispatcher, log, handlerOpts...)),
	}, in.checks...)

	return &app{
		handler: httptransport.NewRouter(cfg.Server, log, routerOpts...),
		infra:   in,
	}, nil
}

// connect opens the shared clients the configuration asks for.
func (i *infra) connect(ctx context.Context, cfg config.Config) error {
	if cfg.Storage.Driver == config.DriverPostgres {
		db, err := postgres.Open(ctx, cfg.Database)
		if err != nil {
			return err
		}
		i.db = db
		i.onClose(db.Close)
		i.checks = append(i.checks, httptransport.WithHealthCheck("postgres", db.PingContext))
	}

	if cfg.Redis.URL != "" {
		client, err := platformredis.New(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		i.redis = client
		i.onClose(client.Close)
		i.checks = append(i.checks, httptransport.WithHealthCheck("redis", client.Health))
	}

	if len(cfg.Kafka.Brokers) > 0 {
		kcfg := kafka.Config{Brokers: cfg.Kafka.Brokers, Topic: cfg.Kafka.Topic, ClientID: cfg.Kafka.ClientID}
		client, err := kafka.NewClient(ctx, kcfg)
		if err != nil {
			return err
		}
		i.kafka = client
		i.onClose(func() error { client.Close(); return nil })
		if err := kafka.EnsureTopic(ctx, client, kcfg); err != nil {
			return err
		}
		i.checks = append(i.checks, httptransport.WithHealthCheck("kafka", client.Ping))
	}
	return nil
}

func (i *infra) examples(ctx context.Context, cfg config.Config) (ports.ExampleRepository, error) {
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		pg := store.NewPostgres(i.db)
		if err := pg.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		return pg, nil
	case config.DriverRedis:
		return store.NewRedis(i.redis, store.WithKeyPrefix(cfg.Redis.KeyPrefix)), nil
	default:
		return store.NewInMemory(), nil
	}
}

// eventLog returns nil when the log is disabled. Postgres deployments keep it
// durable; every other driver keeps it in process.
func (i *infra) eventLog(ctx context.Context, cfg config.Config) (eventlog.Store, error) {
	if !cfg.EventLog.Enabled {
		return nil, nil
	}
	if i.db != nil {
		pg := eventlogpostgres.New(i.db)
		if err := pg.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		return pg, nil
	}
	return eventlogmemory.NewInMemoryStore(), nil
}

type namedSubscriber struct {
	name string
	sub  cqrs.Subscriber
}

func (i *infra) subscribe(ctx context.Context, cfg config.Config, log *slog.Logger, reg *prometheus.Registry, events eventlog.Store) error {
	subs := []namedSubscriber{
		{"log", subscribers.NewLogger(log)},
		{"metrics", subscribers.NewCounter(metrics.NewEvents(reg))},
	}
	if events != nil {
		subs = append(subs, namedSubscriber{"event-log", eventlog.NewSubscriber(events)})
	}
	if i.kafka != nil {
		publisher := subscribers.NewKafkaPublisher(i.kafka, cfg.Kafka.Topic)
		subs = append(subs, namedSubscriber{"kafka", subscribers.Guard(publisher, circuit.New("kafka"), log)})
	}
	if i.redis != nil && cfg.Redis.Channel != "" {
		publisher := subscribers.NewRedisPublisher(i.redis, cfg.Redis.Channel)
		subs = append(subs, namedSubscriber{"redis-pubsub", subscribers.Guard(publisher, circuit.New("redis-pubsub"), log)})
	}

	names := make([]string, 0, len(subs))
	for _, s := range subs {
		if err := i.bus.Subscribe(s.name, s.sub); err != nil {
			return fmt.Errorf("subscribe %s: %w", s.name, err)
		}
		names = append(names, s.name)
	}
	log.InfoContext(ctx, "event subscribers ready", "subscribers", names)
	return nil
}
