package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/dmitrymomot/spindle"
	"github.com/dmitrymomot/spindle/internal/controllers"
	"github.com/dmitrymomot/spindle/internal/repository"
	"github.com/dmitrymomot/spindle/pkg/config"
	"github.com/dmitrymomot/spindle/pkg/cookie"
	"github.com/dmitrymomot/spindle/pkg/httpserver"
	"github.com/dmitrymomot/spindle/pkg/logger"
	"github.com/dmitrymomot/spindle/pkg/pg"
	"github.com/dmitrymomot/spindle/pkg/redis"
	"github.com/dmitrymomot/spindle/pkg/requestid"
	"github.com/dmitrymomot/spindle/pkg/route"
	"github.com/dmitrymomot/spindle/pkg/session"
	"github.com/dmitrymomot/spindle/pkg/tenant"
)

func main() {
	var logCfg logger.Config
	config.MustLoad(&logCfg)

	log := logger.NewFromConfig(logCfg,
		logger.WithContextExtractors(requestid.LoggerExtractor(), tenant.LoggerExtractor()),
	)
	slog.SetDefault(log)

	if err := run(context.Background(), log); err != nil {
		log.Error("service stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, log *slog.Logger) error {
	var (
		appCfg     spindle.Config
		serverCfg  httpserver.Config
		cookieCfg  cookie.Config
		sessionCfg session.Config
		pgCfg      pg.Config
	)
	if err := errors.Join(
		config.Load(&appCfg),
		config.Load(&serverCfg),
		config.Load(&cookieCfg),
		config.Load(&sessionCfg),
		config.Load(&pgCfg),
	); err != nil {
		return err
	}
	if err := appCfg.Validate(); err != nil {
		return err
	}

	cookies, err := cookie.NewFromConfig(cookieCfg)
	if err != nil {
		return err
	}

	var opts []spindle.Option

	store, closeStore, check, err := sessionStore(ctx, appCfg)
	if err != nil {
		return err
	}
	defer closeStore()
	if check != nil {
		opts = append(opts, spindle.WithCheck("redis", check))
	}

	sessions, err := session.NewFromConfig(sessionCfg, store, cookies, session.WithLogger(log))
	if err != nil {
		return err
	}

	var (
		settings repository.Settings
		events   repository.Events
	)
	if pgCfg.Enabled() {
		db := pg.NewManager(map[string]pg.Config{pg.DefaultConnection: pgCfg}, pg.WithLogger(log))
		defer db.Close()

		pool, err := db.Pool(ctx, pg.DefaultConnection)
		if err != nil {
			return err
		}
		if err := pg.Migrate(ctx, pool, pgCfg, log); err != nil {
			return err
		}

		repo := repository.NewPostgres(db, pg.DefaultConnection)
		settings, events = repo, repo
		opts = append(opts, spindle.WithDB(db), spindle.WithCheck("postgres", db.Healthcheck()))
	} else {
		log.Warn("PG_CONN_URL is not set, settings and events are kept in memory")
		repo := repository.NewMemory()
		settings, events = repo, repo
	}

	resolver := route.NewResolver()
	controllers.Register(resolver)

	pipeline, err := spindle.LoadPipeline(appCfg.PipelinePath)
	if err != nil {
		return err
	}

	app, err := spindle.New(appCfg, pipeline, resolver, sessions, append(opts,
		spindle.WithLogger(log),
		spindle.WithService(controllers.KeySettingsSource, settings),
		spindle.WithService(controllers.KeyEventSource, events),
	)...)
	if err != nil {
		return err
	}

	return httpserver.NewFromConfig(serverCfg, httpserver.WithLogger(log)).Run(ctx, app)
}

// sessionStore opens the configured session backend.
func sessionStore(ctx context.Context, cfg spindle.Config) (session.Store, func(), httpserver.Check, error) {
	switch cfg.SessionStore {
	case spindle.SessionStoreRedis:
		var redisCfg redis.Config
		if err := config.Load(&redisCfg); err != nil {
			return nil, nil, nil, err
		}
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return nil, nil, nil, err
		}
		store := redis.NewStoreFromConfig(client, redisCfg)
		return store, func() { _ = client.Close() }, store.Healthcheck, nil
	case spindle.SessionStoreMemory, "":
		store := session.NewMemoryStore(session.WithCleanupInterval(cfg.SessionCleanupInterval))
		return store, func() { _ = store.Close() }, nil, nil
	default:
		return nil, nil, nil, fmt.Errorf("%w: %q", spindle.ErrUnknownSessionStore, cfg.SessionStore)
	}
}
