package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	authapp "github.com/dwikikusuma/shoping-assistant/internal/auth/app"
	authmem "github.com/dwikikusuma/shoping-assistant/internal/auth/infra/memory"

	cartapp "github.com/dwikikusuma/shoping-assistant/internal/cart/app"
	cartgrpc "github.com/dwikikusuma/shoping-assistant/internal/cart/grpc"

	catalogapp "github.com/dwikikusuma/shoping-assistant/internal/catalog/app"
	catalog "github.com/dwikikusuma/shoping-assistant/internal/catalog/domain"
	cgrpc "github.com/dwikikusuma/shoping-assistant/internal/catalog/grpc"
	cmem "github.com/dwikikusuma/shoping-assistant/internal/catalog/infra/memory"
	cpg "github.com/dwikikusuma/shoping-assistant/internal/catalog/infra/postgres"
	"github.com/dwikikusuma/shoping-assistant/internal/catalog/seed"

	chatapp "github.com/dwikikusuma/shoping-assistant/internal/chat/app"
	chatgrpc "github.com/dwikikusuma/shoping-assistant/internal/chat/grpc"

	checkoutapp "github.com/dwikikusuma/shoping-assistant/internal/checkout/app"
	checkoutgrpc "github.com/dwikikusuma/shoping-assistant/internal/checkout/grpc"
	checkoutadapter "github.com/dwikikusuma/shoping-assistant/internal/checkout/infra/adapter"

	"github.com/dwikikusuma/shoping-assistant/internal/events"
	gateway "github.com/dwikikusuma/shoping-assistant/internal/gateway/http"

	sessionapp "github.com/dwikikusuma/shoping-assistant/internal/session/app"
	sessionmem "github.com/dwikikusuma/shoping-assistant/internal/session/infra/memory"
	sessionredis "github.com/dwikikusuma/shoping-assistant/internal/session/infra/redis"

	"github.com/dwikikusuma/shoping-assistant/pkg/config"
	"github.com/dwikikusuma/shoping-assistant/pkg/logger"
	"github.com/dwikikusuma/shoping-assistant/pkg/postgres"
	"github.com/dwikikusuma/shoping-assistant/pkg/shutdown"
	"github.com/dwikikusuma/shoping-assistant/pkg/telemetry"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{Service: "assistant", Env: cfg.AppEnv, Level: cfg.LogLevel, AddSource: true})

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("assistant stopped", slog.Any("err", err))
		os.Exit(1)
	}
	log.Info("bye")
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	stopTracing, err := telemetry.Setup(ctx, telemetry.Options{
		Service:  "shopping-assistant",
		Exporter: cfg.OTelExporter,
		Endpoint: cfg.OTelEndpoint,
	})
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer flushCancel()
		if err := stopTracing(flushCtx); err != nil {
			log.Warn("trace flush failed", slog.Any("err", err))
		}
	}()

	var checks []func(context.Context) error

	// Catalog
	products, err := loadProducts(cfg.CatalogFile)
	if err != nil {
		return err
	}
	var catalogRepo catalogapp.ProductRepo
	if cfg.DatabaseURL != "" {
		db, err := postgres.Open(postgres.Config{URL: cfg.DatabaseURL, MaxOpenConns: 10})
		if err != nil {
			return err
		}
		defer db.Close()
		checks = append(checks, db.PingContext)

		repo, err := openCatalog(ctx, db, products)
		if err != nil {
			return err
		}
		catalogRepo = repo
		log.Info("catalog backed by postgres", slog.Int("products", len(products)))
	} else {
		catalogRepo = cmem.NewProductRepo(products)
		log.Info("catalog in memory", slog.Int("products", len(products)))
	}
	catalogSvc := catalogapp.NewService(catalogRepo)

	// Sessions
	var store sessionapp.Store
	if cfg.RedisURL != "" {
		client, err := sessionredis.Connect(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer client.Close()
		checks = append(checks, func(ctx context.Context) error { return client.Ping(ctx).Err() })
		store = sessionredis.NewSessionStore(client, cfg.SessionTTL)
		log.Info("sessions backed by redis", slog.Duration("ttl", cfg.SessionTTL))
	} else {
		store = sessionmem.NewSessionStore()
		log.Info("sessions in memory")
	}
	sessions := sessionapp.NewService(store)

	// Events
	var pub events.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		kp := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer kp.Close()
		pub = kp
		log.Info("events to kafka", slog.Any("brokers", cfg.KafkaBrokers), slog.String("topic", cfg.KafkaTopic))
	} else {
		pub = events.NewLogPublisher(log)
	}

	authSvc := authapp.NewService(authmem.NewUserRepo())
	chatSvc := chatapp.NewService(sessions, catalogSvc, pub, chatapp.WithThinkDelay(cfg.ThinkDelayMin, cfg.ThinkDelayMax))
	cartSvc := cartapp.NewService(sessions, catalogSvc, pub)

	// Checkout (adapters)
	cartReader := checkoutadapter.NewCartServiceReader(cartSvc)
	catalogReader := checkoutadapter.NewCatalogServiceReader(catalogSvc)
	checkoutSvc := checkoutapp.NewService(cartReader, catalogReader, 10)

	grpcServer := grpc.NewServer()
	cgrpc.Register(grpcServer, cgrpc.NewServer(catalogSvc))
	chatgrpc.Register(grpcServer, chatgrpc.NewServer(chatSvc))
	cartgrpc.Register(grpcServer, cartgrpc.NewServer(cartSvc))
	checkoutgrpc.Register(grpcServer, checkoutgrpc.NewServer(checkoutSvc))

	httpAddr := fmt.Sprintf(":%d", cfg.HTTPPort)
	httpServer := &http.Server{
		Addr: httpAddr,
		Handler: gateway.NewRouter(gateway.Deps{
			Auth:     authSvc,
			Catalog:  catalogSvc,
			Chat:     chatSvc,
			Cart:     cartSvc,
			Checkout: checkoutSvc,
			Ready:    ready(checks),
		}),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		// Replies wait out the thinking delay before they are written.
		WriteTimeout: 15*time.Second + cfg.ThinkDelayMax,
		IdleTimeout:  60 * time.Second,
	}

	grpcAddr := fmt.Sprintf(":%d", cfg.GRPCPort)
	lis, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", grpcAddr, err)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("grpc starting", slog.String("addr", grpcAddr))
		if err := grpcServer.Serve(lis); err != nil {
			return fmt.Errorf("grpc serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		log.Info("http server starting", slog.String("addr", httpAddr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown requested")

		stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer stopCancel()

		if err := httpServer.Shutdown(stopCtx); err != nil {
			log.Error("http shutdown error", slog.Any("err", err))
		}

		stopped := make(chan struct{})
		go func() {
			grpcServer.GracefulStop()
			close(stopped)
		}()

		select {
		case <-stopCtx.Done():
			log.Warn("graceful stop timeout, forcing stop")
			grpcServer.Stop()
		case <-stopped:
		}
		return nil
	})

	return g.Wait()
}

func loadProducts(path string) ([]catalog.Product, error) {
	if path == "" {
		return seed.Default()
	}
	return seed.Load(path)
}

func openCatalog(ctx context.Context, db *sql.DB, products []catalog.Product) (*cpg.ProductRepo, error) {
	repo := cpg.NewProductRepo(db)
	if err := repo.Migrate(ctx); err != nil {
		return nil, err
	}
	if err := repo.Seed(ctx, products); err != nil {
		return nil, err
	}
	return repo, nil
}

func ready(checks []func(context.Context) error) func(context.Context) error {
	return func(ctx context.Context) error {
		for _, check := range checks {
			if err := check(ctx); err != nil {
				return err
			}
		}
		return nil
	}
}
