package constvars

// Client-facing API messages (webhook/admin endpoints, not chat replies).
const (
	ErrClientSomethingWrongWithApplication = "Something went wrong with the application"
	ErrClientCannotProcessRequest          = "Cannot process request, please check your request"
	ErrClientServerLongRespond             = "Server takes too long to respond"
	ErrClientTransportDisconnected         = "WhatsApp transport is not connected"
	ErrClientUnrecognizedPayload           = "Unrecognized or incomplete message payload"
	ErrClientMissingSendFields             = "Fields 'to' and 'message' are required"
)

// Developer-facing messages, logged only.
const (
	ErrDevCannotParseJSON            = "Failed to parse JSON"
	ErrDevCannotMarshalJSON          = "Failed to marshal JSON"
	ErrDevCannotParseDate            = "Failed to parse date"
	ErrDevValidationFailed           = "Request validation failed"
	ErrDevServerDeadlineExceeded     = "Server deadline exceeded"
	ErrDevDBFailedToFindDocument     = "Database failed to find document"
	ErrDevDBFailedToInsertDocument   = "Database failed to insert document"
	ErrDevDBFailedToUpdateDocument   = "Database failed to update document"
	ErrDevDBFailedToIterateDocuments = "Database failed to iterate documents"
	ErrDevDBStringNotObjectID        = "String is not a valid ObjectID"
	ErrDevRedisSet                   = "Redis failed to set key"
	ErrDevRedisGet                   = "Redis failed to get key"
	ErrDevRedisDelete                = "Redis failed to delete key"
	ErrDevRedisUnlock                = "Redis failed to release lock"
	ErrDevTransportSend              = "Transport failed to send message"
	ErrDevTransportNotConnected      = "Transport is not connected"
	ErrDevWorkflowNotify             = "External workflow notification failed"
	ErrDevRabbitMQPublish            = "RabbitMQ failed to publish message"
	ErrDevUnknownConversationState   = "Unknown conversation state"

	ResponseUnknown = "unknown"
)
