package contracts

import (
	"context"
	"time"

	"dentalbot-service/internal/app/models"
)

type AppointmentRepository interface {
	CreateAppointment(ctx context.Context, appointment *models.Appointment) (appointmentID string, err error)
	// FindConflicting returns a pendiente/confirmada appointment for the
	// doctor overlapping [start, end), or nil when the window is free.
	FindConflicting(ctx context.Context, doctorID string, start, end time.Time) (*models.Appointment, error)
	// FindCancelable returns the patient's pendiente/confirmada appointments
	// starting at or after notBefore, ascending by start.
	FindCancelable(ctx context.Context, patientID string, notBefore time.Time) ([]models.Appointment, error)
	FindCancelableByID(ctx context.Context, appointmentID, patientID string) (*models.Appointment, error)
	FindByPatient(ctx context.Context, patientID string) ([]models.Appointment, error)
	UpdateStatus(ctx context.Context, appointmentID, status string) error
}
