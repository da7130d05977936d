package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	appcart "github.com/urbanthreads/cartservice/internal/application/cart"
	appsession "github.com/urbanthreads/cartservice/internal/application/session"
	"github.com/urbanthreads/cartservice/internal/domain/cart"
	"github.com/urbanthreads/cartservice/internal/domain/session"
	"github.com/urbanthreads/cartservice/internal/domain/shared"
	"github.com/urbanthreads/cartservice/internal/infrastructure/analytics"
	"github.com/urbanthreads/cartservice/internal/infrastructure/checkout"
	"github.com/urbanthreads/cartservice/internal/infrastructure/config"
	"github.com/urbanthreads/cartservice/internal/infrastructure/event"
	"github.com/urbanthreads/cartservice/internal/infrastructure/logger"
	"github.com/urbanthreads/cartservice/internal/infrastructure/persistence"
	infrasession "github.com/urbanthreads/cartservice/internal/infrastructure/session"
	"github.com/urbanthreads/cartservice/internal/interfaces/http/handler"
	"github.com/urbanthreads/cartservice/internal/interfaces/http/middleware"
	"github.com/urbanthreads/cartservice/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting cart service",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database with zap-backed GORM logger
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to migrate schema", zap.Error(err))
	}
	log.Info("Database connected", zap.String("driver", cfg.Database.Driver))

	// Session store and checkout guard: Redis when enabled, in-memory otherwise
	var sessionStore session.Store
	var guard shared.CheckoutGuard
	if cfg.Redis.Enabled {
		redisStore, err := infrasession.NewRedisStore(&cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect session store to Redis", zap.Error(err))
		}
		defer redisStore.Close()
		sessionStore = redisStore

		redisGuard, err := checkout.NewRedisGuard(&cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect checkout guard to Redis", zap.Error(err))
		}
		guard = redisGuard
		log.Info("Redis connected", zap.String("addr", cfg.Redis.Addr()))
	} else {
		sessionStore = infrasession.NewInMemoryStore()
		guard = checkout.NewInMemoryGuard()
	}
	defer func() {
		if err := guard.Close(); err != nil {
			log.Error("Error closing checkout guard", zap.Error(err))
		}
	}()

	// Analytics: data layer sink behind the consent gate
	bus := event.NewInMemoryEventBus(log)
	dataLayer := analytics.NewDataLayer(log)
	bus.Subscribe(dataLayer)
	publisher := analytics.NewConsentGate(bus, sessionStore, log)

	// Repositories and application services
	cartRepo := persistence.NewGormCartRepository(db.DB, log)
	pricing, err := pricingFromConfig(cfg.Pricing)
	if err != nil {
		log.Fatal("Invalid pricing configuration", zap.Error(err))
	}

	cartService := appcart.NewService(cartRepo, publisher, log)
	checkoutService := appcart.NewCheckoutService(
		cartRepo, publisher, guard, pricing,
		shared.CheckoutGuardConfig{TTL: cfg.Checkout.GuardTTL},
		log,
	)
	sessionService := appsession.NewService(sessionStore, log)

	// HTTP engine and middleware
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.RequestID())
	engine.Use(middleware.VisitorSession())
	engine.Use(logger.GinMiddleware(log))

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	engine.Use(middleware.CORSWithConfig(corsCfg))

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxies", zap.Error(err))
		}
	}

	// Routes
	r := router.NewRouter(engine)
	r.Register(handler.NewCartHandler(cartService)).
		Register(handler.NewCheckoutHandler(checkoutService)).
		Register(handler.NewSessionHandler(sessionService)).
		Register(handler.NewAnalyticsHandler(dataLayer)).
		Register(handler.NewHealthHandler(db))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// pricingFromConfig parses the configured pricing rules into the
// domain's pricing configuration
func pricingFromConfig(cfg config.PricingConfig) (cart.PricingConfig, error) {
	discountRate, err := decimal.NewFromString(cfg.DiscountRate)
	if err != nil {
		return cart.PricingConfig{}, err
	}
	taxRate, err := decimal.NewFromString(cfg.TaxRate)
	if err != nil {
		return cart.PricingConfig{}, err
	}
	shippingFlat, err := decimal.NewFromString(cfg.ShippingFlat)
	if err != nil {
		return cart.PricingConfig{}, err
	}

	pricing := cart.PricingConfig{
		DiscountRate: discountRate,
		TaxRate:      taxRate,
		ShippingFlat: shippingFlat,
		CouponCode:   cfg.CouponCode,
	}
	if err := pricing.Validate(); err != nil {
		return cart.PricingConfig{}, err
	}
	return pricing, nil
}
