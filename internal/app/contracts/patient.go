package contracts

import (
	"context"
	"time"

	"dentalbot-service/internal/app/models"
)

type PatientRepository interface {
	CreatePatient(ctx context.Context, patient *models.Patient) (patientID string, err error)
	FindByDNI(ctx context.Context, dni string) (*models.Patient, error)
	FindByPhone(ctx context.Context, phone string) (*models.Patient, error)
	// FindByDNIAndExpeditionDay matches the expedition date by calendar day,
	// not by exact timestamp.
	FindByDNIAndExpeditionDay(ctx context.Context, dni string, day time.Time) (*models.Patient, error)
}
