package models

import "time"

// Appointment is soft-state only: cancellation sets Status to "cancelada",
// documents are never physically deleted.
type Appointment struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	PatientID string    `bson:"patientId" json:"patient_id"`
	DoctorID  string    `bson:"doctorId" json:"doctor_id"`
	ServiceID string    `bson:"serviceId" json:"service_id"`
	Start     time.Time `bson:"start" json:"start"`
	End       time.Time `bson:"end" json:"end"`
	Status    string    `bson:"status" json:"status"`
	Notes     string    `bson:"notes,omitempty" json:"notes,omitempty"`
	EventID   string    `bson:"eventId,omitempty" json:"event_id,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"created_at"`
}
