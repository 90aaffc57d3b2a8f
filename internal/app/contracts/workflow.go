package contracts

import (
	"context"

	"dentalbot-service/internal/pkg/dto/requests"
)

// WorkflowClient notifies the external calendar workflow of booking and
// cancellation events. Failures are never fatal to the local transaction.
type WorkflowClient interface {
	NotifyBooking(ctx context.Context, notification *requests.WorkflowNotification) (eventID string, err error)
	NotifyCancellation(ctx context.Context, notification *requests.WorkflowNotification) error
}
