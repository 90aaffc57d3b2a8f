package conversation

import (
	"context"
	"fmt"

	"dentalbot-service/internal/app/models"
	"dentalbot-service/internal/pkg/constvars"
	"dentalbot-service/internal/pkg/dto/replies"
	"dentalbot-service/internal/pkg/utils"
)

// handleDNIRequested serves both the "I am registered" path and the
// "not sure" path; the only difference is the wording already sent.
func (uc *conversationUsecase) handleDNIRequested(ctx context.Context, session *models.ConversationSession, input string) ([]replies.Reply, error) {
	if !utils.IsValidDNI(input) {
		return []replies.Reply{replies.Text(constvars.ChatInvalidDNI)}, nil
	}

	patient, err := uc.PatientRepository.FindByDNI(ctx, input)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		session.State = constvars.StateNotRegistered
		return []replies.Reply{replies.Text(constvars.ChatNotRegisteredOffer)}, nil
	}

	session.AuthDNI = input
	session.State = constvars.StateDNIExpeditionDate
	return []replies.Reply{replies.Text(constvars.ChatDNIRegisteredLogin)}, nil
}

// handleExpeditionLogin completes authentication: the expedition date acts
// as the shared secret tied to the DNI.
func (uc *conversationUsecase) handleExpeditionLogin(ctx context.Context, session *models.ConversationSession, input string) ([]replies.Reply, error) {
	day, err := utils.ParseChatDate(input)
	if err != nil {
		return []replies.Reply{replies.Text(constvars.ChatInvalidDate)}, nil
	}

	if session.AuthDNI == "" {
		session.State = constvars.StateInitial
		return []replies.Reply{replies.Text(constvars.ChatSessionDataLost), welcomeReply()}, nil
	}

	patient, err := uc.PatientRepository.FindByDNIAndExpeditionDay(ctx, session.AuthDNI, day)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return []replies.Reply{replies.Text(constvars.ChatExpeditionNoMatch)}, nil
	}

	session.Patient = patient
	session.ClearRegistrationData()
	session.State = constvars.StateMainMenu
	greeting := fmt.Sprintf("✅ ¡Hola %s! Has iniciado sesión correctamente.", patient.Name)
	return []replies.Reply{replies.Text(greeting), mainMenuReply()}, nil
}

func (uc *conversationUsecase) handleNotRegistered(ctx context.Context, session *models.ConversationSession, input string) ([]replies.Reply, error) {
	switch input {
	case "1":
		session.ClearRegistrationData()
		session.State = constvars.StateRegisterName
		return []replies.Reply{replies.Text(constvars.ChatAskName)}, nil
	case "2":
		session.State = constvars.StateInitial
		return []replies.Reply{welcomeReply()}, nil
	default:
		return []replies.Reply{replies.Text(constvars.ChatInvalidRegisterOffer)}, nil
	}
}
