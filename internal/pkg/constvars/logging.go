package constvars

const (
	LoggingRequestIDKey      = "request_id"
	LoggingContactKey        = "contact"
	LoggingStateKey          = "state"
	LoggingNewStateKey       = "new_state"
	LoggingDoctorIDKey       = "doctor_id"
	LoggingPatientIDKey      = "patient_id"
	LoggingServiceIDKey      = "service_id"
	LoggingAppointmentIDKey  = "appointment_id"
	LoggingEventIDKey        = "event_id"
	LoggingQueueNameKey      = "queue_name"
	LoggingRedisKey          = "redis_key"
	LoggingLockValueKey      = "lock_value"
	LoggingLockExpirationKey = "lock_expiration"
	LoggingMethodKey         = "method"
	LoggingEndpointKey       = "endpoint"
	LoggingRemoteAddrKey     = "remote_addr"
	LoggingUserAgentKey      = "user_agent"
	LoggingQueryKey          = "query"
	LoggingStatusCodeKey     = "status_code"
	LoggingDurationKey       = "duration"
	LoggingSuccessKey        = "success"
	LoggingResponseCountKey  = "response_count"
	LoggingWorkflowURLKey    = "workflow_url"
	LoggingFailedCountKey    = "failed_count"
	LoggingMessageBodyKey    = "message_body"
	LoggingDestinationKey    = "destination"
	LoggingAvailableSlotsKey = "available_slots"
)
