package models

import "time"

// DateOption is one entry of the date listing offered during booking.
type DateOption struct {
	Date           time.Time `json:"date"`
	AvailableSlots int       `json:"available_slots"`
}

// AppointmentSummary caches what the cancellation listing showed the user,
// so the selection step can resolve a 1-based index without refetching.
type AppointmentSummary struct {
	AppointmentID string    `json:"appointment_id"`
	DoctorName    string    `json:"doctor_name"`
	ServiceName   string    `json:"service_name"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	Status        string    `json:"status"`
}

// ConversationSession is the per-contact transient state, stored as a JSON
// document in Redis under a TTL that doubles as the inactivity timeout.
// Nothing outside the session service holds a reference to it beyond the
// contact key.
type ConversationSession struct {
	Contact string `json:"contact"`
	State   string `json:"state"`

	Patient *Patient `json:"patient,omitempty"`

	// Authentication/registration scratch values.
	AuthDNI           string     `json:"auth_dni,omitempty"`
	RegisterName      string     `json:"register_name,omitempty"`
	RegisterDNI       string     `json:"register_dni,omitempty"`
	RegisterEmail     string     `json:"register_email,omitempty"`
	RegisterBirthDate *time.Time `json:"register_birth_date,omitempty"`

	// Booking scratch values.
	AvailableDoctors   []Doctor     `json:"available_doctors,omitempty"`
	SelectedDoctor     *Doctor      `json:"selected_doctor,omitempty"`
	AvailableServices  []Service    `json:"available_services,omitempty"`
	SelectedService    *Service     `json:"selected_service,omitempty"`
	AvailableDates     []DateOption `json:"available_dates,omitempty"`
	SelectedDate       *DateOption  `json:"selected_date,omitempty"`
	AvailableTimeSlots []TimeSlot   `json:"available_time_slots,omitempty"`
	StartAt            *time.Time   `json:"start_at,omitempty"`
	EndAt              *time.Time   `json:"end_at,omitempty"`

	// Cancellation scratch values.
	CancelableAppointments []AppointmentSummary `json:"cancelable_appointments,omitempty"`
	SelectedAppointment    *AppointmentSummary  `json:"selected_appointment,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}

func NewConversationSession(contact string) *ConversationSession {
	return &ConversationSession{
		Contact:   contact,
		State:     "initial",
		UpdatedAt: time.Now(),
	}
}

// ClearBookingData drops every booking-scoped temporary, keeping the
// authenticated patient.
func (s *ConversationSession) ClearBookingData() {
	s.AvailableDoctors = nil
	s.SelectedDoctor = nil
	s.AvailableServices = nil
	s.SelectedService = nil
	s.AvailableDates = nil
	s.SelectedDate = nil
	s.AvailableTimeSlots = nil
	s.StartAt = nil
	s.EndAt = nil
}

func (s *ConversationSession) ClearCancelationData() {
	s.CancelableAppointments = nil
	s.SelectedAppointment = nil
}

func (s *ConversationSession) ClearRegistrationData() {
	s.AuthDNI = ""
	s.RegisterName = ""
	s.RegisterDNI = ""
	s.RegisterEmail = ""
	s.RegisterBirthDate = nil
}
