package conversation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"dentalbot-service/internal/app/models"
	"dentalbot-service/internal/pkg/constvars"
	"dentalbot-service/internal/pkg/dto/replies"
	"dentalbot-service/internal/pkg/dto/requests"
	"dentalbot-service/internal/pkg/utils"
)

func (uc *conversationUsecase) handleRegisterName(ctx context.Context, session *models.ConversationSession, input string) ([]replies.Reply, error) {
	if len(strings.TrimSpace(input)) < 2 {
		return []replies.Reply{replies.Text(constvars.ChatInvalidName)}, nil
	}
	session.RegisterName = strings.TrimSpace(input)
	session.State = constvars.StateRegisterDNI
	return []replies.Reply{replies.Text(constvars.ChatAskRegisterDNI)}, nil
}

func (uc *conversationUsecase) handleRegisterDNI(ctx context.Context, session *models.ConversationSession, input string) ([]replies.Reply, error) {
	if !utils.IsValidDNI(input) {
		return []replies.Reply{replies.Text(constvars.ChatInvalidDNI)}, nil
	}

	existing, err := uc.PatientRepository.FindByDNI(ctx, input)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return []replies.Reply{replies.Text(constvars.ChatDNIAlreadyExists)}, nil
	}

	session.RegisterDNI = input
	session.State = constvars.StateRegisterEmail
	return []replies.Reply{replies.Text(constvars.ChatAskEmail)}, nil
}

func (uc *conversationUsecase) handleRegisterEmail(ctx context.Context, session *models.ConversationSession, input string) ([]replies.Reply, error) {
	if strings.EqualFold(input, "no") {
		session.RegisterEmail = ""
	} else {
		if !utils.IsValidEmail(input) {
			return []replies.Reply{replies.Text(constvars.ChatInvalidEmail)}, nil
		}
		session.RegisterEmail = input
	}
	session.State = constvars.StateRegisterBirthDate
	return []replies.Reply{replies.Text(constvars.ChatAskBirthDate)}, nil
}

func (uc *conversationUsecase) handleRegisterBirthDate(ctx context.Context, session *models.ConversationSession, input string) ([]replies.Reply, error) {
	day, err := utils.ParseChatDate(input)
	if err != nil {
		return []replies.Reply{replies.Text(constvars.ChatInvalidDate)}, nil
	}
	if day.After(time.Now()) {
		return []replies.Reply{replies.Text(constvars.ChatFutureBirthDate)}, nil
	}

	session.RegisterBirthDate = &day
	session.State = constvars.StateRegisterExpeditionDate
	return []replies.Reply{replies.Text(constvars.ChatAskRegExpedition)}, nil
}

func (uc *conversationUsecase) handleRegisterExpeditionDate(ctx context.Context, session *models.ConversationSession, input string) ([]replies.Reply, error) {
	day, err := utils.ParseChatDate(input)
	if err != nil {
		return []replies.Reply{replies.Text(constvars.ChatInvalidDate)}, nil
	}
	if day.After(time.Now()) {
		return []replies.Reply{replies.Text(constvars.ChatFutureExpedition)}, nil
	}
	if session.RegisterBirthDate != nil && day.Before(*session.RegisterBirthDate) {
		return []replies.Reply{replies.Text(constvars.ChatExpeditionBeforeBirth)}, nil
	}

	request := &requests.RegisterPatientRequest{
		Name:           session.RegisterName,
		Phone:          session.Contact,
		DNI:            session.RegisterDNI,
		Email:          session.RegisterEmail,
		BirthDate:      utils.FormatDateShort(*session.RegisterBirthDate),
		ExpeditionDate: utils.FormatDateShort(day),
	}
	if err := utils.ValidateStruct(request); err != nil {
		session.State = constvars.StateInitial
		session.ClearRegistrationData()
		return []replies.Reply{replies.Text(constvars.ChatSessionDataLost), welcomeReply()}, nil
	}

	existing, err := uc.PatientRepository.FindByPhone(ctx, session.Contact)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		session.State = constvars.StateInitial
		session.ClearRegistrationData()
		return []replies.Reply{replies.Text(constvars.ChatPhoneAlreadyExists), welcomeReply()}, nil
	}

	patient := &models.Patient{
		Name:              session.RegisterName,
		Phone:             session.Contact,
		Email:             session.RegisterEmail,
		DNI:               session.RegisterDNI,
		BirthDate:         session.RegisterBirthDate,
		DNIExpeditionDate: &day,
		CreatedAt:         time.Now(),
	}
	patientID, err := uc.PatientRepository.CreatePatient(ctx, patient)
	if err != nil {
		return nil, err
	}
	patient.ID = patientID

	session.Patient = patient
	session.ClearRegistrationData()
	session.State = constvars.StateMainMenu

	greeting := fmt.Sprintf("🎉 ¡Registro exitoso! Bienvenido/a %s.", patient.Name)
	return []replies.Reply{replies.Text(greeting), mainMenuReply()}, nil
}
