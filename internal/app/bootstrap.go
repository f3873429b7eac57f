package app

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Gunvolt24/shop_backend/config"
	"github.com/Gunvolt24/shop_backend/internal/cache"
	"github.com/Gunvolt24/shop_backend/internal/cache/redisstore"
	"github.com/Gunvolt24/shop_backend/internal/ports"
	"github.com/Gunvolt24/shop_backend/internal/repo/postgres"
	"github.com/Gunvolt24/shop_backend/internal/shiprocket"
	"github.com/Gunvolt24/shop_backend/internal/shipsync"
	rest "github.com/Gunvolt24/shop_backend/internal/transport/http"
	"github.com/Gunvolt24/shop_backend/internal/usecase"
	"github.com/Gunvolt24/shop_backend/pkg/logger"
	"github.com/Gunvolt24/shop_backend/pkg/metrics"
	"github.com/gin-gonic/gin"
)

// Runner — фоновый компонент приложения (диспетчер отгрузок, сверка статусов).
type Runner interface {
	Run(ctx context.Context) error
}

// App — собранное приложение и его внешние интерфейсы.
// Dispatcher и Syncer могут быть nil — интеграция с курьером опциональна.
type App struct {
	Logger          ports.Logger
	HTTPServer      *http.Server
	Dispatcher      Runner
	Syncer          Runner
	gracefulTimeout time.Duration
}

// Cleanup — функция освобождения ресурсов.
type Cleanup func()

// applyGinMode — устанавливает режим Gin по строке;
// неизвестное значение → debug и предупреждение в лог.
func applyGinMode(ctx context.Context, mode string, log ports.Logger) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	case "", "debug":
		gin.SetMode(gin.DebugMode)
	default:
		gin.SetMode(gin.DebugMode)
		log.Warnf(ctx, "unknown GIN_MODE=%q, fallback to debug", mode)
	}
}

// Bootstrap — собирает зависимости и возвращает приложение, функцию очистки и ошибку.
func Bootstrap(ctx context.Context, cfg *config.Config) (*App, Cleanup, error) {
	// Логгер (dev/prod режим задаётся конфигурацией).
	logg, cleanupLogger, err := logger.NewZapLogger(cfg.Logger.IsProd)
	if err != nil {
		return nil, func() {}, err
	}

	// Регистрация метрик (Prometheus).
	metrics.MustRegister()

	// Пул подключений Postgres.
	pool, err := postgres.NewPool(ctx, cfg.Postgres.DSN, cfg.Postgres.MaxConns)
	if err != nil {
		if cErr := cleanupLogger(); cErr != nil {
			logg.Warnf(ctx, "cleanup logger: %v", cErr)
		}
		return nil, func() {}, err
	}

	// Redis — общий кэш витрины и админки.
	store, err := redisstore.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		pool.Close()
		if cErr := cleanupLogger(); cErr != nil {
			logg.Warnf(ctx, "cleanup logger: %v", cErr)
		}
		return nil, func() {}, err
	}
	inv := cache.NewInvalidator(store, logg)

	// Репозитории.
	productRepo := postgres.NewProductRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	reviewRepo := postgres.NewReviewRepository(pool)
	postRepo := postgres.NewSocialPostRepository(pool)
	contactRepo := postgres.NewContactRepository(pool)

	// Клиент Shiprocket и фоновые задачи вокруг него.
	// Без учётных данных интеграция выключена: заказы копятся локально.
	var (
		shipClient *shiprocket.Client
		dispatcher *usecase.ShipmentDispatcher
		syncer     *shipsync.Syncer
	)
	if cfg.Shiprocket.Email != "" {
		shipClient = shiprocket.NewClient(shiprocket.Config{
			BaseURL:        cfg.Shiprocket.BaseURL,
			Email:          cfg.Shiprocket.Email,
			Password:       cfg.Shiprocket.Password,
			RequestTimeout: cfg.Shiprocket.RequestTimeout,
			TokenTTL:       cfg.Shiprocket.TokenTTL,
		}, logg)

		syncer = shipsync.NewSyncer(orderRepo, shipClient, logg, cfg.Sync.Interval)
		dispatcher = usecase.NewShipmentDispatcher(usecase.DispatcherConfig{
			PickupLocation: cfg.Shiprocket.PickupLocation,
			QueueSize:      cfg.Dispatch.QueueSize,
			MaxAttempts:    cfg.Dispatch.MaxAttempts,
			RetryInitial:   cfg.Dispatch.RetryInitial,
			RetryMax:       cfg.Dispatch.RetryMax,
		}, shipClient, orderRepo, logg, syncer.SyncOnce)
	} else {
		logg.Warnf(ctx, "shiprocket credentials not set, courier integration disabled")
	}

	// Прикладные сервисы.
	catalogService := usecase.NewCatalogService(productRepo, categoryRepo, store, inv, logg, cfg.Cache.CatalogTTL)
	var orderService *usecase.OrderService
	if dispatcher != nil {
		orderService = usecase.NewOrderService(orderRepo, store, inv, dispatcher, logg, cfg.Cache.OrdersTTL)
	} else {
		orderService = usecase.NewOrderService(orderRepo, store, inv, nil, logg, cfg.Cache.OrdersTTL)
	}
	reviewService := usecase.NewReviewService(reviewRepo, postRepo, store, inv, logg, cfg.Cache.ReviewsTTL, cfg.Cache.SocialPostsTTL)

	// Режим Gin.
	applyGinMode(ctx, cfg.HTTP.GinMode, logg)

	// Роутер и HTTP-сервер.
	httpHandler := rest.NewHandler(catalogService, orderService, reviewService, contactRepo, shipClient, logg)
	router := rest.NewRouter(httpHandler, cfg.Admin.Token)

	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}

	app := &App{
		Logger:          logg,
		HTTPServer:      httpSrv,
		gracefulTimeout: cfg.HTTP.GracefulTimeout,
	}
	if dispatcher != nil {
		app.Dispatcher = dispatcher
		app.Syncer = syncer
	}

	// Очистка ресурсов (в обратном порядке).
	cleanup := func() {
		if err := store.Close(); err != nil {
			logg.Warnf(ctx, "redis close error: %v", err)
		}
		pool.Close()
		if cErr := cleanupLogger(); cErr != nil {
			logg.Warnf(ctx, "cleanup logger: %v", cErr)
		}
	}

	return app, cleanup, nil
}

// Run — запускает HTTP-сервер и фоновые задачи; ждёт отмены контекста
// или фоновой ошибки и корректно останавливает сервер.
func (a *App) Run(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 3)

	if a.Dispatcher != nil {
		go func() {
			a.Logger.Infof(runCtx, "shipment dispatcher starting")
			if err := a.Dispatcher.Run(runCtx); err != nil {
				errCh <- err
			}
		}()
	}

	if a.Syncer != nil {
		go func() {
			a.Logger.Infof(runCtx, "status sync starting")
			if err := a.Syncer.Run(runCtx); err != nil {
				errCh <- err
			}
		}()
	}

	go func() {
		a.Logger.Infof(runCtx, "http server starting (addr=%s)", a.HTTPServer.Addr)
		if err := a.HTTPServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Ожидание сигнала остановки или фоновой ошибки.
	select {
	case <-ctx.Done():
		a.Logger.Infof(ctx, "shutdown requested, starting graceful shutdown")
	case err := <-errCh:
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			a.Logger.Infof(ctx, "background component stopped: %v", err)
		} else {
			a.Logger.Warnf(ctx, "background error: %v", err)
		}
	}

	cancel()

	gt := a.gracefulTimeout
	if gt <= 0 {
		gt = 5 * time.Second
	}

	// Корректная остановка HTTP-сервера.
	shutdownCtx, shCancel := context.WithTimeout(context.Background(), gt)
	defer shCancel()

	if err := a.HTTPServer.Shutdown(shutdownCtx); err != nil {
		a.Logger.Warnf(ctx, "http server shutdown failed: %v", err)
	} else {
		a.Logger.Infof(ctx, "http server stopped gracefully")
	}

	a.Logger.Infof(ctx, "service stopped")
	return nil
}
