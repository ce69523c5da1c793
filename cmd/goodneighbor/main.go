// Command goodneighbor runs the similarity-graph exploration service:
// the REST API, the WebSocket frame stream, and the per-session layout
// simulation over a file- or catalog-sourced archive dataset.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/goodneighborlab/goodneighbor/internal/api"
	"github.com/goodneighborlab/goodneighbor/internal/catalog"
	"github.com/goodneighborlab/goodneighbor/internal/catalog/migrations"
	"github.com/goodneighborlab/goodneighbor/internal/config"
	"github.com/goodneighborlab/goodneighbor/internal/dataset"
	"github.com/goodneighborlab/goodneighbor/internal/dbpool"
	"github.com/goodneighborlab/goodneighbor/internal/service"
	"github.com/goodneighborlab/goodneighbor/internal/session"
	"github.com/goodneighborlab/goodneighbor/internal/ws"
)

const shutdownTimeout = 30 * time.Second

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	if err := run(log); err != nil {
		log.WithError(err).Fatal("server exited")
	}
}

func run(log *logrus.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	} else {
		log.WithField("level", cfg.LogLevel).Warn("unknown log level, using info")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Catalog database, only when the dataset is postgres-sourced.
	var (
		pool *dbpool.Pool
		cat  *catalog.Store
	)

	if cfg.DatasetSource == config.SourcePostgres {
		pool, err = dbpool.NewPool(ctx, cfg.DatabaseURL.Value())
		if err != nil {
			return err
		}
		defer pool.Close()

		if err := catalog.RunMigrations(ctx, pool, log, migrations.FS); err != nil {
			return err
		}

		cat = catalog.NewStore(pool, log)
	}

	store := dataset.NewStore(log)
	data := service.NewDatasetService(store, cat, log)

	if cfg.DatasetSource == config.SourcePostgres {
		err = data.LoadFromCatalog(ctx)
	} else {
		err = data.LoadFromFiles(cfg.DatasetItems, cfg.DatasetNeighbors)
	}

	if err != nil {
		// An empty dataset is survivable: the reload endpoint can fill
		// it once the source is available.
		log.WithError(err).Warn("initial dataset load failed, starting empty")
	}

	sessionStore, closeStore := newSessionStore(ctx, cfg, log)
	defer closeStore()

	sessions := session.NewManager(sessionStore, cfg.SessionTTL, log)
	interactions := service.NewInteractionService(sessions, data, log)
	graphs := service.NewGraphService(data, interactions, service.GraphDefaults{
		NodeBudget:          cfg.NodeBudget,
		ScoreThreshold:      cfg.ScoreThreshold,
		Weights:             cfg.Weights,
		CommunityIterations: cfg.CommunityIterations,
	}, log)

	hub := ws.NewHub(log)
	layout := service.NewLayoutService(hub, interactions, cfg.LayoutTickRate, log)

	router := api.NewRouter(ctx, &api.RouterDeps{
		Log:          log,
		Cfg:          cfg,
		Pool:         pool,
		Hub:          hub,
		Data:         data,
		Loader:       data,
		Interactions: interactions,
		Graph:        graphs,
		Layout:       layout,
		Pointer:      layout,
		Sessions:     sessions,
		Version:      config.Version,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		hub.Run(gctx)

		return nil
	})

	g.Go(func() error {
		log.WithFields(logrus.Fields{
			"addr":    srv.Addr,
			"source":  cfg.DatasetSource,
			"version": config.Version,
		}).Info("server listening")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")

		layout.StopAll()
		hub.Shutdown()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// newSessionStore returns the Redis-backed session store when REDIS_URL is
// configured and reachable, falling back to the in-process store otherwise.
func newSessionStore(ctx context.Context, cfg *config.Config, log *logrus.Logger) (session.Store, func()) {
	if cfg.RedisURL == "" {
		return session.NewMemoryStore(cfg.SessionTTL), func() {}
	}

	rs, err := session.NewRedisStore(ctx, cfg.RedisURL, cfg.SessionTTL)
	if err != nil {
		log.WithError(err).Warn("redis unavailable, using in-memory session store")

		return session.NewMemoryStore(cfg.SessionTTL), func() {}
	}

	log.Info("session store: redis")

	return rs, func() {
		if err := rs.Close(); err != nil {
			log.WithError(err).Warn("closing redis store")
		}
	}
}
