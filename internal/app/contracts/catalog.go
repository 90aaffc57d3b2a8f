package contracts

import (
	"context"

	"dentalbot-service/internal/app/models"
)

type ServiceRepository interface {
	FindAll(ctx context.Context) ([]models.Service, error)
}
