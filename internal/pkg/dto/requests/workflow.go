package requests

// WorkflowNotification is the payload shape the external scheduling workflow
// expects for both booking and cancellation events.
type WorkflowNotification struct {
	Patient     WorkflowPatient     `json:"patient"`
	Doctor      WorkflowDoctor      `json:"doctor"`
	Service     WorkflowService     `json:"service"`
	Appointment WorkflowAppointment `json:"appointment"`
}

type WorkflowPatient struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

type WorkflowDoctor struct {
	Name string `json:"name"`
}

type WorkflowService struct {
	Name string `json:"name"`
}

type WorkflowAppointment struct {
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Notes     string `json:"notes"`
	Status    string `json:"status"`
}
