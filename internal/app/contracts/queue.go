package contracts

import (
	"context"

	"dentalbot-service/internal/pkg/dto/requests"
)

const (
	NotificationKindBooking      = "booking"
	NotificationKindCancellation = "cancellation"
)

// NotificationQueue buffers workflow notifications that could not be
// delivered, for later redelivery by the queue worker.
type NotificationQueue interface {
	Enqueue(ctx context.Context, kind string, notification *requests.WorkflowNotification) error
}
