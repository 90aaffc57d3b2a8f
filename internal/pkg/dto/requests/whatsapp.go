package requests

// InboundMessage is the normalized form every supported webhook envelope is
// reduced to before it reaches the conversation dispatcher.
type InboundMessage struct {
	From       string `json:"from"`
	Body       string `json:"body"`
	Type       string `json:"type"`
	FromMe     bool   `json:"fromMe"`
	IsGroupMsg bool   `json:"isGroupMsg"`
}

type SendMessageRequest struct {
	To      string `json:"to"`
	Message string `json:"message"`
}

// RegisterPatientRequest carries the data gathered across the registration
// steps; validated as a whole right before the patient document is created.
type RegisterPatientRequest struct {
	Name           string `json:"name" validate:"required,min=2"`
	Phone          string `json:"phone" validate:"required"`
	DNI            string `json:"dni" validate:"required,dni"`
	Email          string `json:"email" validate:"omitempty,chat_email"`
	BirthDate      string `json:"birth_date"`
	ExpeditionDate string `json:"expedition_date"`
}
