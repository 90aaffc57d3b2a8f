package config

import (
	"dentalbot-service/internal/pkg/constvars"
	"dentalbot-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		MongoDB: MongoDB{
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			DbName:   utils.GetEnvString("MONGODB_DB_NAME", "dentalbot"),
			Username: utils.GetEnvString("MONGODB_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MONGODB_PASSWORD", "defaultPassword"),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                       utils.GetEnvString("APP_ENV", "development"),
			Port:                      utils.GetEnvString("APP_PORT", ":8080"),
			Version:                   utils.GetEnvString("APP_VERSION", "v1.0"),
			Address:                   utils.GetEnvString("APP_ADDRESS", "localhost"),
			Timezone:                  utils.GetEnvString("APP_TIMEZONE", "America/Bogota"),
			ShutdownTimeout:           utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT", 10),
			MaxRequests:               utils.GetEnvInt("APP_MAX_REQUESTS", 100),
			MaxTimeRequestsPerSeconds: utils.GetEnvInt("APP_MAX_TIME_REQUESTS_PER_SECONDS", 60),
			SessionTimeoutInMinutes:   utils.GetEnvInt("APP_SESSION_TIMEOUT_IN_MINUTES", 10),
			BookingHorizonInDays:      utils.GetEnvInt("APP_BOOKING_HORIZON_IN_DAYS", constvars.BookingHorizonDays),
			CancelLeadTimeInMinutes:   utils.GetEnvInt("APP_CANCEL_LEAD_TIME_IN_MINUTES", 60),
			RetryQueue:                utils.GetEnvString("APP_RABBITMQ_RETRY_QUEUE", "workflow_notification_retry"),
			RetryQueueMaxAttempts:     utils.GetEnvInt("APP_RETRY_QUEUE_MAX_ATTEMPTS", 5),
		},
		WhatsApp: WhatsApp{
			BaseUrl:                   utils.GetEnvString("WHATSAPP_BASE_URL", "http://localhost:8002"),
			APIKey:                    utils.GetEnvString("WHATSAPP_API_KEY", ""),
			RequestTimeoutInSeconds:   utils.GetEnvInt("WHATSAPP_REQUEST_TIMEOUT_IN_SECONDS", 10),
			OutboundMessagesPerSecond: utils.GetEnvInt("WHATSAPP_OUTBOUND_MESSAGES_PER_SECOND", 5),
		},
		Workflow: Workflow{
			BookingUrl:                   utils.GetEnvString("WORKFLOW_BOOKING_URL", ""),
			CancellationUrl:              utils.GetEnvString("WORKFLOW_CANCELLATION_URL", ""),
			BookingTimeoutInSeconds:      utils.GetEnvInt("WORKFLOW_BOOKING_TIMEOUT_IN_SECONDS", 15),
			CancellationTimeoutInSeconds: utils.GetEnvInt("WORKFLOW_CANCELLATION_TIMEOUT_IN_SECONDS", 10),
		},
	}
}
