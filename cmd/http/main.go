package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dentalbot-service/internal/app/config"
	"dentalbot-service/internal/app/delivery/http/controllers"
	"dentalbot-service/internal/app/delivery/http/middlewares"
	"dentalbot-service/internal/app/delivery/http/routers"
	"dentalbot-service/internal/app/drivers/database"
	"dentalbot-service/internal/app/drivers/logger"
	"dentalbot-service/internal/app/drivers/messaging"
	"dentalbot-service/internal/app/services/core/appointments"
	"dentalbot-service/internal/app/services/core/availability"
	"dentalbot-service/internal/app/services/core/catalog"
	"dentalbot-service/internal/app/services/core/conversation"
	"dentalbot-service/internal/app/services/core/doctors"
	"dentalbot-service/internal/app/services/core/patients"
	"dentalbot-service/internal/app/services/core/session"
	"dentalbot-service/internal/app/services/shared/locker"
	"dentalbot-service/internal/app/services/shared/redis"
	"dentalbot-service/internal/app/services/shared/retryqueue"
	"dentalbot-service/internal/app/services/shared/whatsapp"
	"dentalbot-service/internal/app/services/shared/workflow"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewLogrusLogger(internalConfig)
	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	mongoClient := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitMQ := messaging.NewRabbitMQ(driverConfig)
	chiRouter := chi.NewRouter()

	bootstrap := &config.Bootstrap{
		Router:         chiRouter,
		MongoClient:    mongoClient,
		Redis:          redisClient,
		RabbitMQ:       rabbitMQ,
		Logger:         zapLogger,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}
	bootstrapingTheApp(bootstrap, log)

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeout),
	)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	if err := bootstrap.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}

	log.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap *config.Bootstrap, log *logrus.Logger) {
	// Shared services
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	lockerService := locker.NewLockService(redisRepository, bootstrap.Logger)
	whatsAppService := whatsapp.NewWhatsAppService(bootstrap.InternalConfig, bootstrap.Logger)
	workflowClient := workflow.NewWorkflowClient(bootstrap.InternalConfig, bootstrap.Logger)

	retryQueue, err := retryqueue.NewService(bootstrap.RabbitMQ, bootstrap.Logger, bootstrap.InternalConfig.App.RetryQueue, 10)
	if err != nil {
		log.Fatalf("Failed to initialize retry queue: %v", err)
	}
	retryWorker := retryqueue.NewWorker(
		retryQueue,
		workflowClient,
		bootstrap.Logger,
		30*time.Second,
		10,
		bootstrap.InternalConfig.App.RetryQueueMaxAttempts,
	)
	bootstrap.QueueWorkerStop = retryWorker.Start()

	// Repositories
	dbName := bootstrap.DriverConfig.MongoDB.DbName
	patientRepository := patients.NewPatientMongoRepository(bootstrap.MongoClient, dbName)
	doctorRepository := doctors.NewDoctorMongoRepository(bootstrap.MongoClient, dbName)
	serviceRepository := catalog.NewServiceMongoRepository(bootstrap.MongoClient, dbName)
	availabilityRepository := availability.NewAvailabilityMongoRepository(bootstrap.MongoClient, dbName)
	appointmentRepository := appointments.NewAppointmentMongoRepository(bootstrap.MongoClient, dbName)

	// Session
	sessionTimeout := time.Duration(bootstrap.InternalConfig.App.SessionTimeoutInMinutes) * time.Minute
	sessionService := session.NewSessionService(redisRepository, sessionTimeout, bootstrap.Logger)

	// Conversation
	conversationUsecase := conversation.NewConversationUsecase(
		sessionService,
		patientRepository,
		doctorRepository,
		serviceRepository,
		availabilityRepository,
		appointmentRepository,
		whatsAppService,
		workflowClient,
		retryQueue,
		lockerService,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)

	// Delivery
	appMiddlewares := middlewares.NewMiddlewares(bootstrap.Logger, bootstrap.InternalConfig)
	whatsAppController := controllers.NewWhatsAppController(bootstrap.Logger, conversationUsecase, whatsAppService)

	routers.SetupRoutes(bootstrap.Router, bootstrap.InternalConfig, appMiddlewares, whatsAppController)

	// Best-effort transport connect at boot; the init endpoint can retry.
	initCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := whatsAppService.Init(initCtx); err != nil {
		bootstrap.Logger.Warn("transport not connected at startup; use the init endpoint to reconnect")
	}
}
