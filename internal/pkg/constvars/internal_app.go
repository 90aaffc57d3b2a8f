package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
)

const (
	REQUEST_ID_PREFIX = "DNTL_SVC_"
)

// Conversation states. The dispatcher maps every state to a flow through an
// explicit table, never by string prefix.
const (
	StateInitial                     = "initial"
	StateMainMenu                    = "main_menu"
	StateDNIRequested                = "dni_requested"
	StateDNIExpeditionDate           = "dni_expiration_date"
	StateNotRegistered               = "not_registered"
	StateCheckDNIUnknown             = "check_dni_unknown"
	StateRegisterName                = "register_name"
	StateRegisterDNI                 = "register_dni"
	StateRegisterEmail               = "register_email"
	StateRegisterBirthDate           = "register_birth_date"
	StateRegisterExpeditionDate      = "register_expedition_date"
	StateAppointmentService          = "appointment_service"
	StateAppointmentDoctorSelection  = "appointment_doctor_selection"
	StateAppointmentServiceSelection = "appointment_service_selection"
	StateAppointmentDateSelection    = "appointment_date_selection"
	StateAppointmentTimeSelection    = "appointment_time_selection"
	StateAppointmentConfirmation     = "appointment_confirmation"
	StateCancelationList             = "cancelation_list"
	StateCancelationSelect           = "cancelation_select"
	StateCancelationConfirm          = "cancelation_confirm"
)

const (
	AppointmentStatusPendiente  = "pendiente"
	AppointmentStatusConfirmada = "confirmada"
	AppointmentStatusCancelada  = "cancelada"
	AppointmentStatusCompletada = "completada"
)

// Scheduling policy.
const (
	SlotGranularityMinutes = 15
	BookingHorizonDays     = 30
	AppointmentNotes       = "Cita agendada vía WhatsApp"
)

const (
	RedisKeyConversationSession = "conversation_session:"
	RedisKeyDoctorBookingLock   = "booking_lock:doctor:"
)

const (
	MessageTypeChat = "chat"
	MessageTypeText = "text"
)
