package contracts

import (
	"context"
	"time"

	"dentalbot-service/internal/app/models"
)

type AvailabilityRepository interface {
	// FindByDoctorAndRange returns the doctor's availability records with
	// dates in [from, to], ascending.
	FindByDoctorAndRange(ctx context.Context, doctorID string, from, to time.Time) ([]models.Availability, error)
	// FindByDoctorAndDay returns the record whose date falls on the given
	// calendar day, or nil when the doctor has none.
	FindByDoctorAndDay(ctx context.Context, doctorID string, day time.Time) (*models.Availability, error)
	ReplaceTimeSlots(ctx context.Context, availabilityID string, slots []models.TimeSlot) error
}
