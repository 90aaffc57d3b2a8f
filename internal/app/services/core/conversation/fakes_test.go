package conversation

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"dentalbot-service/internal/app/config"
	"dentalbot-service/internal/app/models"
	"dentalbot-service/internal/pkg/dto/requests"

	"go.uber.org/zap"
)

// In-memory doubles for every collaborator so the flows can be driven
// end to end without external services.

type fakeSessionStore struct {
	mu       sync.Mutex
	sessions map[string]*models.ConversationSession
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]*models.ConversationSession)}
}

func (s *fakeSessionStore) Get(ctx context.Context, contact string) (*models.ConversationSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[contact]
	if !ok {
		return nil, nil
	}
	copied := *session
	return &copied, nil
}

func (s *fakeSessionStore) Save(ctx context.Context, session *models.ConversationSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *session
	s.sessions[session.Contact] = &copied
	return nil
}

func (s *fakeSessionStore) Clear(ctx context.Context, contact string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, contact)
	return nil
}

type fakePatientRepo struct {
	patients []*models.Patient
	nextID   int
}

func (r *fakePatientRepo) CreatePatient(ctx context.Context, patient *models.Patient) (string, error) {
	r.nextID++
	patient.ID = "patient-" + strconv.Itoa(r.nextID)
	r.patients = append(r.patients, patient)
	return patient.ID, nil
}

func (r *fakePatientRepo) FindByDNI(ctx context.Context, dni string) (*models.Patient, error) {
	for _, patient := range r.patients {
		if patient.DNI == dni {
			return patient, nil
		}
	}
	return nil, nil
}

func (r *fakePatientRepo) FindByPhone(ctx context.Context, phone string) (*models.Patient, error) {
	for _, patient := range r.patients {
		if patient.Phone == phone {
			return patient, nil
		}
	}
	return nil, nil
}

func (r *fakePatientRepo) FindByDNIAndExpeditionDay(ctx context.Context, dni string, day time.Time) (*models.Patient, error) {
	for _, patient := range r.patients {
		if patient.DNI != dni || patient.DNIExpeditionDate == nil {
			continue
		}
		expedition := *patient.DNIExpeditionDate
		if expedition.Year() == day.Year() && expedition.Month() == day.Month() && expedition.Day() == day.Day() {
			return patient, nil
		}
	}
	return nil, nil
}

type fakeDoctorRepo struct {
	doctors []models.Doctor
}

func (r *fakeDoctorRepo) FindAll(ctx context.Context) ([]models.Doctor, error) {
	return r.doctors, nil
}

type fakeServiceRepo struct {
	services []models.Service
}

func (r *fakeServiceRepo) FindAll(ctx context.Context) ([]models.Service, error) {
	return r.services, nil
}

type fakeAvailabilityRepo struct {
	records []*models.Availability
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func (r *fakeAvailabilityRepo) FindByDoctorAndRange(ctx context.Context, doctorID string, from, to time.Time) ([]models.Availability, error) {
	var result []models.Availability
	for _, record := range r.records {
		if record.DoctorID != doctorID {
			continue
		}
		if record.Date.Before(from.Truncate(24*time.Hour)) || record.Date.After(to) {
			continue
		}
		result = append(result, *record)
	}
	return result, nil
}

func (r *fakeAvailabilityRepo) FindByDoctorAndDay(ctx context.Context, doctorID string, day time.Time) (*models.Availability, error) {
	for _, record := range r.records {
		if record.DoctorID == doctorID && sameDay(record.Date, day) {
			copied := *record
			copied.TimeSlots = append([]models.TimeSlot(nil), record.TimeSlots...)
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeAvailabilityRepo) ReplaceTimeSlots(ctx context.Context, availabilityID string, slots []models.TimeSlot) error {
	for _, record := range r.records {
		if record.ID == availabilityID {
			record.TimeSlots = append([]models.TimeSlot(nil), slots...)
			return nil
		}
	}
	return fmt.Errorf("availability %s not found", availabilityID)
}

type fakeAppointmentRepo struct {
	appointments []*models.Appointment
	nextID       int
}

func isActive(status string) bool {
	return status == "pendiente" || status == "confirmada"
}

func (r *fakeAppointmentRepo) CreateAppointment(ctx context.Context, appointment *models.Appointment) (string, error) {
	r.nextID++
	appointment.ID = "appointment-" + strconv.Itoa(r.nextID)
	copied := *appointment
	r.appointments = append(r.appointments, &copied)
	return appointment.ID, nil
}

func (r *fakeAppointmentRepo) FindConflicting(ctx context.Context, doctorID string, start, end time.Time) (*models.Appointment, error) {
	for _, appointment := range r.appointments {
		if appointment.DoctorID != doctorID || !isActive(appointment.Status) {
			continue
		}
		if appointment.Start.Before(end) && appointment.End.After(start) {
			return appointment, nil
		}
	}
	return nil, nil
}

func (r *fakeAppointmentRepo) FindCancelable(ctx context.Context, patientID string, notBefore time.Time) ([]models.Appointment, error) {
	var result []models.Appointment
	for _, appointment := range r.appointments {
		if appointment.PatientID != patientID || !isActive(appointment.Status) {
			continue
		}
		if appointment.Start.Before(notBefore) {
			continue
		}
		result = append(result, *appointment)
	}
	return result, nil
}

func (r *fakeAppointmentRepo) FindCancelableByID(ctx context.Context, appointmentID, patientID string) (*models.Appointment, error) {
	for _, appointment := range r.appointments {
		if appointment.ID == appointmentID && appointment.PatientID == patientID && isActive(appointment.Status) {
			return appointment, nil
		}
	}
	return nil, nil
}

func (r *fakeAppointmentRepo) FindByPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	var result []models.Appointment
	for _, appointment := range r.appointments {
		if appointment.PatientID == patientID {
			result = append(result, *appointment)
		}
	}
	return result, nil
}

func (r *fakeAppointmentRepo) UpdateStatus(ctx context.Context, appointmentID, status string) error {
	for _, appointment := range r.appointments {
		if appointment.ID == appointmentID {
			appointment.Status = status
			return nil
		}
	}
	return fmt.Errorf("appointment %s not found", appointmentID)
}

type fakeTransport struct {
	mu   sync.Mutex
	sent []string
}

func (t *fakeTransport) Init(ctx context.Context) error { return nil }

func (t *fakeTransport) SendText(ctx context.Context, to, message string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sent = append(t.sent, message)
	return nil
}

func (t *fakeTransport) IsConnected() bool { return true }

func (t *fakeTransport) HostNumber() string { return "5730000000" }

func (t *fakeTransport) messages() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.sent...)
}

func (t *fakeTransport) lastMessage() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.sent) == 0 {
		return ""
	}
	return t.sent[len(t.sent)-1]
}

type fakeWorkflow struct {
	eventID  string
	fail     bool
	bookings int
	cancels  int
}

func (w *fakeWorkflow) NotifyBooking(ctx context.Context, notification *requests.WorkflowNotification) (string, error) {
	if w.fail {
		return "", fmt.Errorf("workflow unreachable")
	}
	w.bookings++
	return w.eventID, nil
}

func (w *fakeWorkflow) NotifyCancellation(ctx context.Context, notification *requests.WorkflowNotification) error {
	if w.fail {
		return fmt.Errorf("workflow unreachable")
	}
	w.cancels++
	return nil
}

type fakeQueue struct {
	enqueued []string
}

func (q *fakeQueue) Enqueue(ctx context.Context, kind string, notification *requests.WorkflowNotification) error {
	q.enqueued = append(q.enqueued, kind)
	return nil
}

type fakeLocker struct {
	busy bool
}

func (l *fakeLocker) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	if l.busy {
		return false, "", nil
	}
	return true, "token", nil
}

func (l *fakeLocker) Unlock(ctx context.Context, key, lockValue string) error { return nil }

type fixture struct {
	usecase     *conversationUsecase
	sessions    *fakeSessionStore
	patientRepo *fakePatientRepo
	doctorRepo  *fakeDoctorRepo
	serviceRepo *fakeServiceRepo
	availRepo   *fakeAvailabilityRepo
	apptRepo    *fakeAppointmentRepo
	transport   *fakeTransport
	workflow    *fakeWorkflow
	queue       *fakeQueue
	locker      *fakeLocker
	clockAt     time.Time
}

func newFixture() *fixture {
	f := &fixture{
		sessions:    newFakeSessionStore(),
		patientRepo: &fakePatientRepo{},
		doctorRepo:  &fakeDoctorRepo{},
		serviceRepo: &fakeServiceRepo{},
		availRepo:   &fakeAvailabilityRepo{},
		apptRepo:    &fakeAppointmentRepo{},
		transport:   &fakeTransport{},
		workflow:    &fakeWorkflow{eventID: "evt-1"},
		queue:       &fakeQueue{},
		locker:      &fakeLocker{},
	}
	internalConfig := &config.InternalConfig{
		App: config.App{
			BookingHorizonInDays:    30,
			CancelLeadTimeInMinutes: 60,
		},
	}
	uc := &conversationUsecase{
		SessionService:         f.sessions,
		PatientRepository:      f.patientRepo,
		DoctorRepository:       f.doctorRepo,
		ServiceRepository:      f.serviceRepo,
		AvailabilityRepository: f.availRepo,
		AppointmentRepository:  f.apptRepo,
		WhatsAppService:        f.transport,
		WorkflowClient:         f.workflow,
		NotificationQueue:      f.queue,
		LockerService:          f.locker,
		Log:                    zap.NewNop(),
		guard:                  NewDuplicateGuard(),
		bookingHorizonDays:     internalConfig.App.BookingHorizonInDays,
		cancelLeadTime:         time.Duration(internalConfig.App.CancelLeadTimeInMinutes) * time.Minute,
	}
	uc.flows = uc.buildFlowTable()

	// Advance the guard clock past the duplicate window on every sighting so
	// scripted dialogues can repeat the same numeric answer.
	f.clockAt = time.Now()
	uc.guard.now = func() time.Time {
		f.clockAt = f.clockAt.Add(10 * time.Second)
		return f.clockAt
	}

	f.usecase = uc
	return f
}

func (f *fixture) send(contact, body string) error {
	return f.usecase.ProcessMessage(context.Background(), &requests.InboundMessage{
		From: contact,
		Body: body,
		Type: "chat",
	})
}

func (f *fixture) sessionOf(contact string) *models.ConversationSession {
	session, _ := f.sessions.Get(context.Background(), contact)
	return session
}

func (f *fixture) lastMessage() string {
	return f.transport.lastMessage()
}

// seedClinic installs one registered patient, one doctor, one 30-minute
// service, and an open day a week out with slots 08:00-09:00.
func (f *fixture) seedClinic() (day time.Time) {
	expedition := time.Date(2015, 5, 10, 0, 0, 0, 0, time.UTC)
	f.patientRepo.patients = append(f.patientRepo.patients, &models.Patient{
		ID:                "patient-maria",
		Name:              "María Gómez",
		Phone:             "573001112233",
		DNI:               "123456789",
		DNIExpeditionDate: &expedition,
	})
	f.doctorRepo.doctors = []models.Doctor{
		{ID: "doctor-juan", Name: "Dr. Juan Pérez", Specialty: "Odontología general"},
	}
	f.serviceRepo.services = []models.Service{
		{ID: "service-clean", Name: "Limpieza dental", DurationMinutes: 30, Price: 50000},
	}

	day = time.Now().AddDate(0, 0, 7)
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	f.availRepo.records = append(f.availRepo.records, &models.Availability{
		ID:       "avail-1",
		DoctorID: "doctor-juan",
		Date:     day,
		TimeSlots: []models.TimeSlot{
			{Time: "08:00", Available: true},
			{Time: "08:15", Available: true},
			{Time: "08:30", Available: true},
			{Time: "08:45", Available: true},
		},
	})
	return day
}

// login drives the authentication flow to the main menu.
func (f *fixture) login(contact string) {
	_ = f.send(contact, "hola")
	_ = f.send(contact, "1")
	_ = f.send(contact, "123456789")
	_ = f.send(contact, "10/05/2015")
}
