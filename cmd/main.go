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
	"github.com/prometheus/client_golang/prometheus/promhttp"

	advanceBookingHandler "github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/api/handlers/advance_booking"
	cancelBookingHandler "github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/api/handlers/create_booking"
	createOfferingHandler "github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/api/handlers/create_offering"
	createServiceHandler "github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/api/handlers/create_service"
	createShopHandler "github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/api/handlers/create_shop"
	getBookingHandler "github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/api/handlers/get_booking"
	getPendingBookingsHandler "github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/api/handlers/get_pending_bookings"
	getSalesReportHandler "github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/api/handlers/get_sales_report"
	getSalesReportDocumentHandler "github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/api/handlers/get_sales_report_document"
	getShopBookingsHandler "github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/api/handlers/get_shop_bookings"
	getUserBookingsHandler "github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/api/handlers/get_user_bookings"
	listOfferingsHandler "github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/api/handlers/list_offerings"
	publishSalesReportDocumentHandler "github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/api/handlers/publish_sales_report_document"
	recordWeightHandler "github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/api/handlers/record_weight"
	updateOfferingHandler "github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/api/handlers/update_offering"
	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/api/middleware"
	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/config"
	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/infra/document/pdf"
	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/infra/document/s3"
	bookingRepo "github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/infra/storage/booking"
	catalogRepo "github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/infra/storage/catalog"
	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/infra/storage/migrations"
	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/integrations/directory"
	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/integrations/events"
	bookingsService "github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/service/bookings"
	catalogService "github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/service/catalog"
	createBookingUC "github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/usecase/create_booking"
	salesReportUC "github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/usecase/sales_report"
	"github.com/gianmallorca/LaundryDashAPI-2-sub000/pkg/dbmetrics"
	"github.com/gianmallorca/LaundryDashAPI-2-sub000/pkg/logger"
	"github.com/gianmallorca/LaundryDashAPI-2-sub000/pkg/metrics"
	"github.com/gianmallorca/LaundryDashAPI-2-sub000/pkg/txmanager"
)

const migrationTimeout = 60 * time.Second

func main() {
	configPath := "config.toml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		configPath = v
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
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

	log.Info("Starting LaundryDash booking service...")
	log.Info("Configuration loaded from %s", configPath)

	// Метрики (nil - выключены, все вызовы становятся no-op)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if cfg.Database.AutoMigrate {
		migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), migrationTimeout)
		applied, err := migrations.Migrate(migrateCtx, db)
		cancelMigrate()
		if err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		log.Info("Database migrations applied: %d", applied)
	}

	// Репозитории и менеджер транзакций работают через обертку с метриками
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	catalogRepository := catalogRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Каталог учетных записей (опционально)
	var resolver middleware.ActorResolver
	if cfg.Directory.URL != "" {
		resolver = directory.NewClient(cfg.Directory.URL, time.Duration(cfg.Directory.Timeout)*time.Second, log)
		log.Info("Directory client initialized (url=%s, timeout=%ds)", cfg.Directory.URL, cfg.Directory.Timeout)
	} else {
		log.Warn("Directory URL is not set, trusting X-User-Role header")
	}

	// События жизненного цикла бронирований
	var publisher interface {
		bookingsService.EventPublisher
		Close() error
	} = events.Nop{}
	if cfg.Events.Enabled {
		publisher = events.NewPublisher(cfg.Events.Brokers, cfg.Events.Topic)
		log.Info("Booking events enabled (brokers=%v, topic=%s)", cfg.Events.Brokers, cfg.Events.Topic)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Error("Failed to close event publisher: %v", err)
		}
	}()

	// Хранилище опубликованных отчетов (nil - публикация выключена)
	var sink salesReportUC.DocumentSink
	if cfg.Storage.Enabled {
		s3Sink, err := s3.New(s3.Config{
			Endpoint:  cfg.Storage.Endpoint,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			Bucket:    cfg.Storage.Bucket,
			Region:    cfg.Storage.Region,
			UseSSL:    cfg.Storage.UseSSL,
			Prefix:    cfg.Storage.Prefix,
			URLExpiry: time.Duration(cfg.Storage.URLExpiryMinutes) * time.Minute,
		})
		if err != nil {
			log.Fatal("Failed to initialize report storage: %v", err)
		}
		if err := s3Sink.EnsureBucket(context.Background()); err != nil {
			log.Fatal("Failed to prepare report bucket %s: %v", cfg.Storage.Bucket, err)
		}
		sink = s3Sink
		log.Info("Report storage enabled (endpoint=%s, bucket=%s)", cfg.Storage.Endpoint, cfg.Storage.Bucket)
	}

	reportLocation, err := cfg.Reports.Location()
	if err != nil {
		log.Fatal("Invalid reports timezone: %v", err)
	}

	// Сервисы и use cases
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		catalogRepository,
		publisher,
		metricsCollector,
		bookingsService.RealTimeProvider{},
		log,
	)
	catalogSvc := catalogService.NewService(catalogRepository, log)

	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		catalogRepository,
		txMgr,
		publisher,
		log,
	)
	salesReportUseCase := salesReportUC.NewUseCase(
		catalogRepository,
		bookingRepository,
		txMgr,
		pdf.NewRenderer(),
		sink,
		metricsCollector,
		salesReportUC.Options{
			DefaultLocation: reportLocation,
			DocumentTitle:   cfg.Reports.DocumentTitle,
			URLExpiry:       time.Duration(cfg.Storage.URLExpiryMinutes) * time.Minute,
		},
		log,
	)

	// Handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getPendingBookings := getPendingBookingsHandler.NewHandler(bookingSvc, log)
	advanceBooking := advanceBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	recordWeight := recordWeightHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getShopBookings := getShopBookingsHandler.NewHandler(bookingSvc, log)
	getSalesReport := getSalesReportHandler.NewHandler(salesReportUseCase, log)
	getSalesReportDocument := getSalesReportDocumentHandler.NewHandler(salesReportUseCase, log)
	publishSalesReportDocument := publishSalesReportDocumentHandler.NewHandler(salesReportUseCase, log)
	createShop := createShopHandler.NewHandler(catalogSvc, log)
	createService := createServiceHandler.NewHandler(catalogSvc, log)
	createOffering := createOfferingHandler.NewHandler(catalogSvc, log)
	listOfferings := listOfferingsHandler.NewHandler(catalogSvc, log)
	updateOffering := updateOfferingHandler.NewHandler(catalogSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	// Прейскурант прачечной
	api.HandleFunc("/shops/{shopId}/offerings", listOfferings.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(resolver, log))

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	// /bookings/pending регистрируется раньше /bookings/{bookingId}
	protected.HandleFunc("/bookings/pending", getPendingBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", cancelBooking.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/bookings/{bookingId}/advance", advanceBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/weight", recordWeight.Handle).Methods(http.MethodPut)

	// История бронирований клиента
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Прачечные ---
	protected.HandleFunc("/shops", createShop.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/shops/{shopId}/bookings", getShopBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/shops/{shopId}/offerings", createOffering.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/offerings/{offeringId}", updateOffering.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/services", createService.Handle).Methods(http.MethodPost)

	// --- Отчеты о продажах ---
	protected.HandleFunc("/shops/{shopId}/reports/sales", getSalesReport.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/shops/{shopId}/reports/sales/document", getSalesReportDocument.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/shops/{shopId}/reports/sales/document", publishSalesReportDocument.Handle).Methods(http.MethodPost)

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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	close(stopMetricsCh)

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
