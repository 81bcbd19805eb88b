package main

import (
	"context"
	"medilab-service/internal/app/config"
	"medilab-service/internal/app/delivery/http/controllers"
	"medilab-service/internal/app/delivery/http/middlewares"
	"medilab-service/internal/app/delivery/http/routers"
	"medilab-service/internal/app/drivers/database"
	"medilab-service/internal/app/drivers/logger"
	"medilab-service/internal/app/drivers/messaging"
	"medilab-service/internal/app/drivers/storage"
	"medilab-service/internal/app/services/core/catalog"
	"medilab-service/internal/app/services/core/laborders"
	"medilab-service/internal/app/services/core/labprescriptions"
	"medilab-service/internal/app/services/core/labresults"
	"medilab-service/internal/app/services/core/payments"
	"medilab-service/internal/app/services/core/session"
	"medilab-service/internal/app/services/shared/locker"
	"medilab-service/internal/app/services/shared/notification"
	paymentgateway "medilab-service/internal/app/services/shared/payment_gateway"
	redisrepo "medilab-service/internal/app/services/shared/redis"
	miniostorage "medilab-service/internal/app/services/shared/storage"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	bootstrapLog := logger.NewLogrusLogger(internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		bootstrapLog.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)

	postgresDB := database.NewPostgresDB(driverConfig)
	mongoClient := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitMQConnection := messaging.NewRabbitMQ(driverConfig)
	minioClient := storage.NewMinio(driverConfig)
	chiRouter := chi.NewRouter()

	bootstrap := config.Bootstrap{
		Router:         chiRouter,
		PostgresDB:     postgresDB,
		MongoClient:    mongoClient,
		Redis:          redisClient,
		Logger:         zapLogger,
		RabbitMQ:       rabbitMQConnection,
		InternalConfig: internalConfig,
		DriverConfig:   driverConfig,
	}

	// Shared services
	redisRepository := redisrepo.NewRedisRepository(redisClient)
	lockerService := locker.NewLockService(redisRepository, zapLogger)
	minioStorage := miniostorage.NewMinioStorage(minioClient)
	paymentGatewayService := paymentgateway.NewPaymobService(internalConfig, zapLogger)
	notificationService, err := notification.NewNotificationService(
		rabbitMQConnection,
		internalConfig.RabbitMQ.NotificationQueue,
		zapLogger,
	)
	if err != nil {
		bootstrapLog.Fatalf("Error setting up notification service: %v", err)
	}

	// Session
	sessionService := session.NewSessionService(internalConfig)

	// Catalog
	catalogRepository := catalog.NewCatalogPostgresRepository(postgresDB)
	catalogService := catalog.NewCatalogService(catalogRepository, redisRepository, zapLogger)

	// Lab prescriptions
	labPrescriptionRepository := labprescriptions.NewLabPrescriptionPostgresRepository(postgresDB)
	labPrescriptionUsecase := labprescriptions.NewLabPrescriptionUsecase(labPrescriptionRepository, catalogService, zapLogger)
	labPrescriptionController := controllers.NewLabPrescriptionController(zapLogger, labPrescriptionUsecase)

	// Lab orders
	labOrderRepository := laborders.NewLabOrderPostgresRepository(postgresDB)
	labOrderUsecase := laborders.NewLabOrderUsecase(
		labOrderRepository,
		labPrescriptionRepository,
		catalogService,
		notificationService,
		zapLogger,
	)
	labOrderController := controllers.NewLabOrderController(zapLogger, labOrderUsecase)

	// Lab results
	labResultRepository := labresults.NewLabResultPostgresRepository(postgresDB)
	labResultUsecase := labresults.NewLabResultUsecase(
		labResultRepository,
		labOrderRepository,
		minioStorage,
		internalConfig,
		zapLogger,
	)
	labResultController := controllers.NewLabResultController(zapLogger, labResultUsecase, internalConfig)

	// Payments
	paymentRepository := payments.NewPaymentPostgresRepository(postgresDB)
	paymentLedgerRepository := payments.NewPaymentLedgerMongoRepository(mongoClient, driverConfig.MongoDB.DbName)
	paymentUsecase := payments.NewPaymentUsecase(
		paymentRepository,
		paymentLedgerRepository,
		labOrderUsecase,
		catalogService,
		paymentGatewayService,
		notificationService,
		lockerService,
		internalConfig,
		zapLogger,
	)
	paymentController := controllers.NewPaymentController(zapLogger, paymentUsecase)

	// Middlewares and routes
	appMiddlewares := middlewares.NewMiddlewares(zapLogger, sessionService, internalConfig)
	routers.SetupRoutes(
		chiRouter,
		zapLogger,
		internalConfig,
		appMiddlewares,
		labOrderController,
		labPrescriptionController,
		labResultController,
		paymentController,
	)

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			bootstrapLog.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	bootstrapLog.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		bootstrapLog.Fatalf("Server forced to shutdown: %v", err)
	}

	if err := bootstrap.Shutdown(shutdownCtx); err != nil {
		bootstrapLog.Fatalf("Error closing application resources: %v", err)
	}

	bootstrapLog.Println("Server exiting")
}
