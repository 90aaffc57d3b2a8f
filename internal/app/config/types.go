package config

type (
	DriverConfig struct {
		MongoDB  MongoDB
		Redis    Redis
		RabbitMQ RabbitMQ
		Logger   Logger
	}

	MongoDB struct {
		Port     string
		Host     string
		DbName   string
		Username string
		Password string
	}
	Redis struct {
		Host     string
		Port     string
		Password string
	}
	RabbitMQ struct {
		Port     string
		Host     string
		Username string
		Password string
	}
	Logger struct {
		Level               string
		OutputFileName      string
		OutputErrorFileName string
	}

	InternalConfig struct {
		App      App
		WhatsApp WhatsApp
		Workflow Workflow
	}

	App struct {
		Env                       string
		Port                      string
		Version                   string
		Address                   string
		Timezone                  string
		ShutdownTimeout           int
		MaxRequests               int
		MaxTimeRequestsPerSeconds int
		SessionTimeoutInMinutes   int
		BookingHorizonInDays      int
		CancelLeadTimeInMinutes   int
		RetryQueue                string
		RetryQueueMaxAttempts     int
	}

	WhatsApp struct {
		BaseUrl                   string
		APIKey                    string
		RequestTimeoutInSeconds   int
		OutboundMessagesPerSecond int
	}

	Workflow struct {
		BookingUrl                   string
		CancellationUrl              string
		BookingTimeoutInSeconds      int
		CancellationTimeoutInSeconds int
	}
)
