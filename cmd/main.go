package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	cancelBookingHandler "github.com/m04kA/SMC-CoworkingService/internal/api/handlers/cancel_booking"
	createCheckoutHandler "github.com/m04kA/SMC-CoworkingService/internal/api/handlers/create_checkout"
	getAreaBookingsHandler "github.com/m04kA/SMC-CoworkingService/internal/api/handlers/get_area_bookings"
	getAvailabilityHandler "github.com/m04kA/SMC-CoworkingService/internal/api/handlers/get_availability"
	getBookingHandler "github.com/m04kA/SMC-CoworkingService/internal/api/handlers/get_booking"
	getPricingRuleHandler "github.com/m04kA/SMC-CoworkingService/internal/api/handlers/get_pricing_rule"
	getUserBookingsHandler "github.com/m04kA/SMC-CoworkingService/internal/api/handlers/get_user_bookings"
	quotePriceHandler "github.com/m04kA/SMC-CoworkingService/internal/api/handlers/quote_price"
	reviewBookingHandler "github.com/m04kA/SMC-CoworkingService/internal/api/handlers/review_booking"
	savePricingRuleHandler "github.com/m04kA/SMC-CoworkingService/internal/api/handlers/save_pricing_rule"
	validatePricingRuleHandler "github.com/m04kA/SMC-CoworkingService/internal/api/handlers/validate_pricing_rule"
	"github.com/m04kA/SMC-CoworkingService/internal/api/middleware"
	"github.com/m04kA/SMC-CoworkingService/internal/config"
	"github.com/m04kA/SMC-CoworkingService/internal/infra/cache/rulecache"
	bookingRepo "github.com/m04kA/SMC-CoworkingService/internal/infra/storage/booking"
	pricingRuleRepo "github.com/m04kA/SMC-CoworkingService/internal/infra/storage/pricingrule"
	spaceServiceClient "github.com/m04kA/SMC-CoworkingService/internal/integrations/spaceservice"
	"github.com/m04kA/SMC-CoworkingService/internal/pricing"
	bookingsService "github.com/m04kA/SMC-CoworkingService/internal/service/bookings"
	pricingRulesService "github.com/m04kA/SMC-CoworkingService/internal/service/pricingrules"
	createCheckoutUC "github.com/m04kA/SMC-CoworkingService/internal/usecase/create_checkout"
	getAvailabilityUC "github.com/m04kA/SMC-CoworkingService/internal/usecase/get_availability"
	quotePriceUC "github.com/m04kA/SMC-CoworkingService/internal/usecase/quote_price"
	reviewBookingUC "github.com/m04kA/SMC-CoworkingService/internal/usecase/review_booking"
	"github.com/m04kA/SMC-CoworkingService/pkg/logger"
	"github.com/m04kA/SMC-CoworkingService/pkg/metrics"
	"github.com/m04kA/SMC-CoworkingService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-CoworkingService...")
	log.Info("Configuration loaded from config.toml")

	// Метрики; при выключенных пишем в отдельный registry, который никто не отдает наружу
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	} else {
		metricsCollector = metrics.NewWithRegistry(prometheus.NewRegistry(), cfg.Metrics.ServiceName)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if err := metricsCollector.RegisterDBStats(db, cfg.Database.DBName); err != nil {
		log.Warn("Failed to register database metrics: %v", err)
	}

	// Кэш правил ценообразования: Redis, если задан адрес, иначе память процесса
	cacheConfig := rulecache.Config{
		TTL:       cfg.Cache.TTL(),
		KeyPrefix: cfg.Cache.KeyPrefix,
	}

	var ruleCache rulecache.Cache
	if cfg.Redis.Enabled() {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancelPing := context.WithTimeout(context.Background(), 3*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancelPing()
		if err != nil {
			log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
		}

		ruleCache = rulecache.NewRedisCache(redisClient, cacheConfig)
		log.Info("Pricing rule cache: redis (addr=%s, ttl=%s)", cfg.Redis.Addr, cacheConfig.TTL)
	} else {
		ruleCache = rulecache.NewInMemoryCache(cacheConfig)
		log.Info("Pricing rule cache: in-memory (ttl=%s)", cacheConfig.TTL)
	}

	// Интеграционный клиент SpaceService
	spaceClient := spaceServiceClient.NewClient(
		cfg.SpaceService.URL,
		time.Duration(cfg.SpaceService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (SpaceService=%s timeout=%ds)",
		cfg.SpaceService.URL, cfg.SpaceService.Timeout)

	// Репозитории и transaction manager
	bookingRepository := bookingRepo.NewRepository(db)
	ruleRepository := rulecache.NewCachedRepository(pricingRuleRepo.NewRepository(db), ruleCache, log)
	txMgr := txmanager.NewTransactionManager(db)

	// Движок ценообразования
	limits := cfg.Pricing.Limits()
	evaluator := pricing.NewEvaluator(limits)
	validator := pricing.NewValidator(limits)
	log.Info("Pricing limits: formula=%d, depth=%d, conditions=%d",
		limits.MaxFormulaLength, limits.MaxNestingDepth, limits.MaxConditions)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		spaceClient,
		txMgr,
		log,
	)
	pricingRuleSvc := pricingRulesService.NewService(
		ruleRepository,
		ruleRepository,
		validator,
		spaceClient,
		txMgr,
		log,
	)

	// Инициализируем use cases
	createCheckoutUseCase := createCheckoutUC.NewUseCase(
		bookingRepository,
		ruleRepository,
		spaceClient,
		evaluator,
		txMgr,
		metricsCollector,
		log,
	)
	quotePriceUseCase := quotePriceUC.NewUseCase(
		ruleRepository,
		evaluator,
		metricsCollector,
		log,
	)
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		bookingRepository,
		spaceClient,
		log,
	)
	reviewBookingUseCase := reviewBookingUC.NewUseCase(
		bookingRepository,
		spaceClient,
		txMgr,
		log,
	)

	// Инициализируем handlers
	createCheckout := createCheckoutHandler.NewHandler(createCheckoutUseCase, log)
	quotePrice := quotePriceHandler.NewHandler(quotePriceUseCase, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	reviewBooking := reviewBookingHandler.NewHandler(reviewBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getAreaBookings := getAreaBookingsHandler.NewHandler(bookingSvc, log)
	getPricingRule := getPricingRuleHandler.NewHandler(pricingRuleSvc, log)
	savePricingRule := savePricingRuleHandler.NewHandler(pricingRuleSvc, log)
	validatePricingRule := validatePricingRuleHandler.NewHandler(pricingRuleSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Предварительный расчет цены
	api.HandleFunc("/areas/{areaId}/quote", quotePrice.Handle).Methods(http.MethodPost)

	// Занятость зоны на интервал
	api.HandleFunc("/areas/{areaId}/availability", getAvailability.Handle).Methods(http.MethodGet)

	// Действующее правило ценообразования зоны
	api.HandleFunc("/areas/{areaId}/pricing-rule", getPricingRule.Handle).Methods(http.MethodGet)

	// Проверка правила без сохранения
	api.HandleFunc("/pricing-rules/validate", validatePricingRule.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Оформление бронирования
	protected.HandleFunc("/areas/{areaId}/checkout", createCheckout.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Бронирования текущего пользователя
	protected.HandleFunc("/users/me/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// --- Управление зоной (для хостов) ---
	// Подтверждение или отклонение бронирования
	protected.HandleFunc("/bookings/{bookingId}/review", reviewBooking.Handle).Methods(http.MethodPatch)

	// Бронирования зоны (status=pending - очередь на рассмотрение)
	protected.HandleFunc("/areas/{areaId}/bookings", getAreaBookings.Handle).Methods(http.MethodGet)

	// Сохранение правила ценообразования
	protected.HandleFunc("/areas/{areaId}/pricing-rule", savePricingRule.Handle).Methods(http.MethodPut)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
