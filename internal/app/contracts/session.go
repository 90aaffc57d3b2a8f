package contracts

import (
	"context"

	"dentalbot-service/internal/app/models"
)

// SessionService owns the per-contact conversation state. Save rearms the
// inactivity TTL, so every processed message keeps the session alive.
type SessionService interface {
	Get(ctx context.Context, contact string) (*models.ConversationSession, error)
	Save(ctx context.Context, session *models.ConversationSession) error
	Clear(ctx context.Context, contact string) error
}
