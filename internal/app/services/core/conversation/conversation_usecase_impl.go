package conversation

import (
	"context"
	"strings"
	"sync"
	"time"

	"dentalbot-service/internal/app/config"
	"dentalbot-service/internal/app/contracts"
	"dentalbot-service/internal/app/models"
	"dentalbot-service/internal/pkg/constvars"
	"dentalbot-service/internal/pkg/dto/replies"
	"dentalbot-service/internal/pkg/dto/requests"

	"go.uber.org/zap"
)

var (
	conversationUsecaseInstance contracts.ConversationUsecase
	onceConversationUsecase     sync.Once
)

var resetKeywords = map[string]bool{
	"hola":   true,
	"hi":     true,
	"menu":   true,
	"inicio": true,
	"salir":  true,
}

type flowHandler func(ctx context.Context, session *models.ConversationSession, input string) ([]replies.Reply, error)

type conversationUsecase struct {
	SessionService         contracts.SessionService
	PatientRepository      contracts.PatientRepository
	DoctorRepository       contracts.DoctorRepository
	ServiceRepository      contracts.ServiceRepository
	AvailabilityRepository contracts.AvailabilityRepository
	AppointmentRepository  contracts.AppointmentRepository
	WhatsAppService        contracts.WhatsAppService
	WorkflowClient         contracts.WorkflowClient
	NotificationQueue      contracts.NotificationQueue
	LockerService          contracts.LockerService
	Log                    *zap.Logger

	guard              *DuplicateGuard
	bookingHorizonDays int
	cancelLeadTime     time.Duration
	flows              map[string]flowHandler
}

func NewConversationUsecase(
	sessionService contracts.SessionService,
	patientRepository contracts.PatientRepository,
	doctorRepository contracts.DoctorRepository,
	serviceRepository contracts.ServiceRepository,
	availabilityRepository contracts.AvailabilityRepository,
	appointmentRepository contracts.AppointmentRepository,
	whatsAppService contracts.WhatsAppService,
	workflowClient contracts.WorkflowClient,
	notificationQueue contracts.NotificationQueue,
	lockerService contracts.LockerService,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.ConversationUsecase {
	onceConversationUsecase.Do(func() {
		instance := &conversationUsecase{
			SessionService:         sessionService,
			PatientRepository:      patientRepository,
			DoctorRepository:       doctorRepository,
			ServiceRepository:      serviceRepository,
			AvailabilityRepository: availabilityRepository,
			AppointmentRepository:  appointmentRepository,
			WhatsAppService:        whatsAppService,
			WorkflowClient:         workflowClient,
			NotificationQueue:      notificationQueue,
			LockerService:          lockerService,
			Log:                    logger,
			guard:                  NewDuplicateGuard(),
			bookingHorizonDays:     internalConfig.App.BookingHorizonInDays,
			cancelLeadTime:         time.Duration(internalConfig.App.CancelLeadTimeInMinutes) * time.Minute,
		}
		instance.flows = instance.buildFlowTable()
		conversationUsecaseInstance = instance
	})
	return conversationUsecaseInstance
}

// buildFlowTable maps every conversation state to its handler explicitly.
// Unknown states hit the recovery path in ProcessMessage instead of any
// prefix convention.
func (uc *conversationUsecase) buildFlowTable() map[string]flowHandler {
	return map[string]flowHandler{
		constvars.StateInitial:  uc.handleWelcomeChoice,
		constvars.StateMainMenu: uc.handleMainMenu,

		constvars.StateDNIRequested:      uc.handleDNIRequested,
		constvars.StateCheckDNIUnknown:   uc.handleDNIRequested,
		constvars.StateDNIExpeditionDate: uc.handleExpeditionLogin,
		constvars.StateNotRegistered:     uc.handleNotRegistered,

		constvars.StateRegisterName:           uc.handleRegisterName,
		constvars.StateRegisterDNI:            uc.handleRegisterDNI,
		constvars.StateRegisterEmail:          uc.handleRegisterEmail,
		constvars.StateRegisterBirthDate:      uc.handleRegisterBirthDate,
		constvars.StateRegisterExpeditionDate: uc.handleRegisterExpeditionDate,

		constvars.StateAppointmentService:          uc.startScheduling,
		constvars.StateAppointmentDoctorSelection:  uc.handleDoctorSelection,
		constvars.StateAppointmentServiceSelection: uc.handleServiceSelection,
		constvars.StateAppointmentDateSelection:    uc.handleDateSelection,
		constvars.StateAppointmentTimeSelection:    uc.handleTimeSelection,
		constvars.StateAppointmentConfirmation:     uc.handleConfirmation,

		constvars.StateCancelationList:    uc.startCancelation,
		constvars.StateCancelationSelect:  uc.handleCancelationSelect,
		constvars.StateCancelationConfirm: uc.handleCancelationConfirm,
	}
}

func (uc *conversationUsecase) ProcessMessage(ctx context.Context, message *requests.InboundMessage) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("conversationUsecase.ProcessMessage called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingContactKey, message.From),
	)

	// Echo suppression. Some envelope shapes carry no fromMe flag, so the
	// sender is also matched against the transport's own number.
	if message.FromMe || message.IsGroupMsg || uc.isSelfSender(message.From) {
		return nil
	}

	// The guard runs before everything else, including the reset keywords.
	if uc.guard.IsDuplicate(message.From, message.Body) {
		uc.Log.Info("conversationUsecase.ProcessMessage duplicate message dropped",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingContactKey, message.From),
		)
		return nil
	}

	if message.Type != constvars.MessageTypeChat && message.Type != constvars.MessageTypeText {
		return uc.send(ctx, message.From, replies.Text(constvars.ChatTextOnly))
	}

	// Routing decisions use the normalized form; handlers receive the
	// trimmed original so registration can keep the user's casing.
	trimmed := strings.TrimSpace(message.Body)
	input := strings.ToLower(trimmed)

	session, err := uc.SessionService.Get(ctx, message.From)
	if err != nil {
		uc.Log.Error("conversationUsecase.ProcessMessage error loading session",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		session = nil
	}

	// First contact or expired session: greet and wait for the choice.
	if session == nil {
		session = models.NewConversationSession(message.From)
		return uc.finish(ctx, session, []replies.Reply{welcomeReply()})
	}

	// Reset keywords override every state.
	if resetKeywords[input] {
		session = models.NewConversationSession(message.From)
		return uc.finish(ctx, session, []replies.Reply{welcomeReply()})
	}

	handler, known := uc.flows[session.State]
	if !known {
		uc.Log.Error("conversationUsecase.ProcessMessage unknown state",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingContactKey, message.From),
			zap.String(constvars.LoggingStateKey, session.State),
		)
		session = models.NewConversationSession(message.From)
		return uc.finish(ctx, session, []replies.Reply{replies.Text(constvars.ChatSessionReset)})
	}

	outgoing, err := handler(ctx, session, trimmed)
	if err != nil {
		uc.Log.Error("conversationUsecase.ProcessMessage flow handler error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingContactKey, message.From),
			zap.String(constvars.LoggingStateKey, session.State),
			zap.Error(err),
		)
		session = models.NewConversationSession(message.From)
		return uc.finish(ctx, session, []replies.Reply{replies.Text(constvars.ChatInternalError)})
	}

	uc.Log.Info("conversationUsecase.ProcessMessage succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingContactKey, message.From),
		zap.String(constvars.LoggingNewStateKey, session.State),
	)
	return uc.finish(ctx, session, outgoing)
}

// finish persists the session (rearming the inactivity TTL) and sends the
// replies. Send failures are logged and swallowed so a transport hiccup
// never corrupts conversation state.
func (uc *conversationUsecase) finish(ctx context.Context, session *models.ConversationSession, outgoing []replies.Reply) error {
	if err := uc.SessionService.Save(ctx, session); err != nil {
		uc.Log.Error("conversationUsecase.finish error saving session",
			zap.String(constvars.LoggingContactKey, session.Contact),
			zap.Error(err),
		)
		return err
	}

	for _, reply := range outgoing {
		if err := uc.send(ctx, session.Contact, reply); err != nil {
			uc.Log.Error("conversationUsecase.finish error sending reply",
				zap.String(constvars.LoggingContactKey, session.Contact),
				zap.Error(err),
			)
		}
	}
	return nil
}

func (uc *conversationUsecase) send(ctx context.Context, to string, reply replies.Reply) error {
	return uc.WhatsAppService.SendText(ctx, to, reply.RenderText())
}

func (uc *conversationUsecase) isSelfSender(from string) bool {
	host := uc.WhatsAppService.HostNumber()
	return host != "" && bareContact(from) == bareContact(host)
}

// bareContact strips the @c.us / @g.us suffix some gateways append.
func bareContact(id string) string {
	if i := strings.IndexByte(id, '@'); i >= 0 {
		return id[:i]
	}
	return id
}

// parseListChoice resolves a 1-based numeric reply against a list of n
// options. Returns -1 when the input is not a valid selection.
func parseListChoice(input string, n int) int {
	choice := 0
	for _, r := range input {
		if r < '0' || r > '9' {
			return -1
		}
		choice = choice*10 + int(r-'0')
		if choice > n {
			return -1
		}
	}
	if input == "" || choice < 1 || choice > n {
		return -1
	}
	return choice - 1
}

func isAffirmative(input string) bool {
	switch input {
	case "1", "si", "sí", "confirmar", "ok":
		return true
	}
	return false
}

func isNegative(input string) bool {
	switch input {
	case "2", "no", "cancelar":
		return true
	}
	return false
}
