package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lapak-storefront/config"
	"lapak-storefront/internal/cart"
	"lapak-storefront/internal/checkout"
	"lapak-storefront/internal/delivery/http/middleware"
	v1 "lapak-storefront/internal/delivery/http/v1"
	"lapak-storefront/internal/domain"
	"lapak-storefront/internal/infrastructure/cache"
	"lapak-storefront/internal/infrastructure/facebook"
	"lapak-storefront/internal/infrastructure/remote"
	"lapak-storefront/internal/repository/postgres"
	"lapak-storefront/internal/usecase"
	"lapak-storefront/pkg/logger"
	"lapak-storefront/pkg/storage"
	"lapak-storefront/pkg/utils"

	"github.com/NYTimes/gziphandler"
	"github.com/urfave/cli/v2"
	"golang.org/x/time/rate"
)

func main() {
	app := &cli.App{
		Name:  "storefront",
		Usage: "storefront gateway in front of the catalog/order service",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP gateway",
				Action: serve,
			},
			{
				Name:  "migrate",
				Usage: "apply slot storage migrations",
				Subcommands: []*cli.Command{
					{
						Name:   "up",
						Usage:  "apply all pending migrations",
						Action: migrateUp,
					},
					{
						Name:  "down",
						Usage: "roll back migrations",
						Flags: []cli.Flag{
							&cli.IntFlag{Name: "steps", Value: 1, Usage: "number of migrations to roll back"},
						},
						Action: migrateDown,
					},
				},
			},
		},
		DefaultCommand: "serve",
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func migrateUp(c *cli.Context) error {
	dsn, err := config.LoadDatabaseURL()
	if err != nil {
		return err
	}
	if err := postgres.MigrateUp(dsn); err != nil {
		return err
	}
	fmt.Println("migrations applied")
	return nil
}

func migrateDown(c *cli.Context) error {
	dsn, err := config.LoadDatabaseURL()
	if err != nil {
		return err
	}
	if err := postgres.MigrateDown(dsn, c.Int("steps")); err != nil {
		return err
	}
	fmt.Printf("rolled back %d migration(s)\n", c.Int("steps"))
	return nil
}

func serve(c *cli.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	logger.Init(cfg.Env, cfg.LogLevel)
	log := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Slot storage: carts, checkout drafts and sessions
	var slots domain.SlotStore
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		pool, err := postgres.NewPgxPool(ctx, postgres.PoolConfig{
			DSN:             cfg.DBUrl,
			MaxConns:        cfg.DBMaxConns,
			MinConns:        cfg.DBMinConns,
			MaxConnIdleTime: cfg.DBMaxConnIdleTime,
		})
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer pool.Close()
		store := postgres.NewSlotStore(pool)
		go store.RunJanitor(ctx, cfg.SlotPurgeInterval)
		slots = store
		log.Info().Msg("Slot storage: PostgreSQL")
	default:
		slots = cache.NewMemorySlots(cfg.SlotPurgeInterval)
		log.Warn().Msg("Slot storage: in-memory, carts and sessions are lost on restart")
	}

	// Catalog read cache. Default expiration 30m, cleanup every 60m
	memCache := cache.NewMemoryCache(30*time.Minute, 60*time.Minute)

	client, err := remote.New(remote.Config{BaseURL: cfg.RemoteBaseURL, Timeout: cfg.RemoteTimeout})
	if err != nil {
		return err
	}

	// --- Modules ---
	carts := cart.NewService(slots)
	bridge := checkout.NewBridge(slots, cfg.DraftTTL)
	sessionUC := usecase.NewSessionUsecase(slots, utils.NewTokenDecoder(cfg.RemoteJWTSecret), cfg.SessionTTL)
	authUC := usecase.NewAuthUsecase(client, sessionUC, carts)
	catalogUC := usecase.NewCatalogUsecase(client, memCache, cfg.CacheProductTTL, cfg.CacheTaxonomyTTL)
	cartUC := usecase.NewCartUsecase(carts, catalogUC, cfg.MaxCartQuantity)

	var tracker usecase.PurchaseTracker
	if capi := facebook.NewCAPIClient(cfg.FBPixelID, cfg.FBAccessToken, cfg.FBAPIVersion); capi != nil {
		tracker = capi
		log.Info().Msg("Facebook Conversions API enabled")
	}
	checkoutUC := usecase.NewCheckoutUsecase(bridge, carts, cartUC, catalogUC, client, client, tracker)
	orderUC := usecase.NewOrderUsecase(client, client)
	returnUC := usecase.NewReturnUsecase(client)

	handlers := v1.Handlers{
		Config:       v1.NewConfigHandler(memCache),
		Catalog:      v1.NewCatalogHandler(catalogUC),
		AdminCatalog: v1.NewAdminCatalogHandler(catalogUC),
		Auth:         v1.NewAuthHandler(authUC, cfg.CookieSecure),
		Cart:         v1.NewCartHandler(cartUC),
		Checkout:     v1.NewCheckoutHandler(checkoutUC),
		Order:        v1.NewOrderHandler(orderUC),
		AdminOrder:   v1.NewAdminOrderHandler(orderUC),
		Return:       v1.NewReturnHandler(returnUC, cfg.MaxUploadSizeMB),
		AdminReturn:  v1.NewAdminReturnHandler(returnUC),
		Staff:        v1.NewStaffHandler(usecase.NewStaffUsecase(client)),
	}

	// --- Storage Module (R2) ---
	if cfg.UploadsEnabled() {
		r2Storage, err := storage.NewR2Storage(ctx, storage.R2Config{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			AccessKeySecret: cfg.R2AccessKeySecret,
			BucketName:      cfg.R2BucketName,
			PublicURL:       cfg.R2PublicURL,
			UploadTimeout:   cfg.R2UploadTimeout,
		})
		if err != nil {
			return fmt.Errorf("init R2 storage: %w", err)
		}
		handlers.Upload = v1.NewUploadHandler(usecase.NewUploadUsecase(r2Storage), cfg.MaxUploadSizeMB)
	} else {
		log.Warn().Msg("R2 not configured, admin image uploads disabled")
	}

	mux := http.NewServeMux()
	handlers.Register(mux)

	rateLimiter := middleware.NewRateLimiter(
		rate.Limit(cfg.RateLimitRPS),
		cfg.RateLimitBurst,
		time.Minute,   // cleanup period
		3*time.Minute, // client TTL
	)

	// Sessions run inside the logger so the access log carries the shopper
	var handler http.Handler = middleware.NewSessions(sessionUC, cfg.CookieSecure).Middleware(mux)
	handler = middleware.NewCORSMiddleware(cfg.AllowedOrigin)(handler)
	handler = middleware.RequestLogger(handler)
	handler = rateLimiter.Middleware()(handler)
	handler = gziphandler.GzipHandler(handler)

	addr := fmt.Sprintf(":%s", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("remote", cfg.RemoteBaseURL).Msgf("Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("Server shutting down...")
	rateLimiter.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info().Msg("Server exited properly")
	return nil
}
