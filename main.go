package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	appaccount "github.com/Zhima-Mochi/plantbay/internal/application/account"
	"github.com/Zhima-Mochi/plantbay/internal/application/auth"
	appcatalog "github.com/Zhima-Mochi/plantbay/internal/application/catalog"
	apporder "github.com/Zhima-Mochi/plantbay/internal/application/order"
	"github.com/Zhima-Mochi/plantbay/internal/config"
	"github.com/Zhima-Mochi/plantbay/internal/domain/account"
	"github.com/Zhima-Mochi/plantbay/internal/domain/catalog"
	"github.com/Zhima-Mochi/plantbay/internal/domain/order"
	"github.com/Zhima-Mochi/plantbay/internal/infrastructure/memory"
	"github.com/Zhima-Mochi/plantbay/internal/infrastructure/mongostore"
	"github.com/Zhima-Mochi/plantbay/internal/infrastructure/observability/oteltrace"
	"github.com/Zhima-Mochi/plantbay/internal/infrastructure/observability/prometrics"
	"github.com/Zhima-Mochi/plantbay/internal/infrastructure/observability/provider"
	"github.com/Zhima-Mochi/plantbay/internal/infrastructure/observability/zaplogger"
	"github.com/Zhima-Mochi/plantbay/internal/observability"
	"github.com/Zhima-Mochi/plantbay/internal/pkg/logging"
	httppresentation "github.com/Zhima-Mochi/plantbay/internal/presentation/http"
)

const (
	shutdownTimeout = 10 * time.Second
	pingTimeout     = 5 * time.Second
)

func main() {
	app := &cli.App{
		Name:  "plantbay",
		Usage: "plant marketplace API server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to a YAML config file",
				EnvVars: []string{"PLANTBAY_CONFIG"},
			},
		},
		Action: func(c *cli.Context) error {
			cfg, err := config.Load(c.String("config"))
			if err != nil {
				return err
			}
			return serve(c.Context, cfg)
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type repositories struct {
	accounts account.Repository
	catalog  catalog.Repository
	orders   order.Repository
	close    func(context.Context) error
}

func serve(ctx context.Context, cfg config.Config) error {
	baseLogger, err := logging.NewLogger(logging.Options{
		Service: cfg.ServiceName,
		Env:     cfg.Env,
		LogFile: cfg.LogFile,
		Level:   cfg.LogLevel,
	})
	if err != nil {
		return err
	}
	defer func() { _ = baseLogger.Sync() }()
	zap.ReplaceGlobals(baseLogger)

	systemLogger := zaplogger.New(baseLogger, observability.F("component", "system"))

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	counters, histograms := prometrics.Standard(prometrics.New(reg, "", ""))
	oteltrace.InstallPropagator()
	tel := provider.New(oteltrace.New(cfg.ServiceName), zaplogger.New(baseLogger), counters, histograms)

	repos, err := openRepositories(ctx, cfg, tel, systemLogger)
	if err != nil {
		return err
	}

	sessions, err := auth.NewSessions(cfg.SessionSecret, cfg.SessionTTL)
	if err != nil {
		return err
	}
	accounts := appaccount.NewService(repos.accounts, tel)
	items := appcatalog.NewService(repos.catalog, tel)
	orders := apporder.NewService(repos.orders, items, tel)

	handler := httppresentation.NewHandler(
		httppresentation.Services{Accounts: accounts, Catalog: items, Orders: orders, Sessions: sessions},
		httppresentation.Options{
			SecureCookies: cfg.Production(),
			Metrics:       promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		},
		tel,
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           httppresentation.CORS(cfg.CORSOrigins)(handler.Router()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		systemLogger.Info("http_server_start",
			observability.F("addr", server.Addr),
			observability.F("store_driver", cfg.StoreDriver),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		err := server.Shutdown(shutdownCtx)
		if err != nil {
			systemLogger.Error("http_server_shutdown_error", observability.F("error", err))
		} else {
			systemLogger.Info("http_server_stopped")
		}
		if closeErr := repos.close(shutdownCtx); closeErr != nil {
			systemLogger.Error("store_close_error", observability.F("error", closeErr))
		}
		return err
	})

	if err := g.Wait(); err != nil {
		systemLogger.Error("http_server_error", observability.F("error", err))
		return err
	}
	return nil
}

// openRepositories selects the store driver. A failed mongo ping is logged and serving continues.
func openRepositories(ctx context.Context, cfg config.Config, tel observability.Observability, log observability.Logger) (*repositories, error) {
	if cfg.StoreDriver == config.DriverMemory {
		cat := memory.NewCatalogRepository()
		return &repositories{
			accounts: memory.NewAccountRepository(),
			catalog:  cat,
			orders:   memory.NewOrderRepository(cat),
			close:    func(context.Context) error { return nil },
		}, nil
	}

	st, err := mongostore.Connect(ctx, cfg.MongoURI, cfg.Database, tel.Metrics())
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := st.Ping(pingCtx); err != nil {
		log.Error("store_ping_failed", observability.F("error", err), observability.F("database", cfg.Database))
	} else {
		log.Info("store_connected", observability.F("database", cfg.Database))
		if err := st.EnsureIndexes(pingCtx); err != nil {
			log.Warn("store_index_failed", observability.F("error", err))
		}
	}

	return &repositories{
		accounts: st.Accounts(),
		catalog:  st.Catalog(),
		orders:   st.Orders(),
		close:    st.Disconnect,
	}, nil
}
