package contracts

import (
	"context"

	"dentalbot-service/internal/pkg/dto/requests"
)

type ConversationUsecase interface {
	ProcessMessage(ctx context.Context, message *requests.InboundMessage) error
}
