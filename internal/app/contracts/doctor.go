package contracts

import (
	"context"

	"dentalbot-service/internal/app/models"
)

type DoctorRepository interface {
	FindAll(ctx context.Context) ([]models.Doctor, error)
}
