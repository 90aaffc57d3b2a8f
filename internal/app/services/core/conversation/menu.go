package conversation

import (
	"context"
	"fmt"
	"strings"

	"dentalbot-service/internal/app/models"
	"dentalbot-service/internal/pkg/constvars"
	"dentalbot-service/internal/pkg/dto/replies"
	"dentalbot-service/internal/pkg/utils"
)

func welcomeReply() replies.Reply {
	return replies.Buttons(constvars.ChatWelcomeBody,
		replies.Button{ID: "registered_yes", Title: "Sí, ya estoy registrado"},
		replies.Button{ID: "registered_no", Title: "No, quiero registrarme"},
		replies.Button{ID: "registered_unknown", Title: "No estoy seguro"},
	)
}

func mainMenuReply() replies.Reply {
	return replies.Buttons(constvars.ChatMainMenuBody,
		replies.Button{ID: "menu_schedule", Title: "📅 Agendar cita"},
		replies.Button{ID: "menu_cancel", Title: "❌ Cancelar cita"},
		replies.Button{ID: "menu_profile", Title: "👤 Mis datos"},
		replies.Button{ID: "menu_history", Title: "📋 Mis citas"},
		replies.Button{ID: "menu_restart", Title: "🔙 Volver al inicio"},
	)
}

// handleWelcomeChoice routes the registered/not-registered/unsure answer
// given at the welcome prompt.
func (uc *conversationUsecase) handleWelcomeChoice(ctx context.Context, session *models.ConversationSession, input string) ([]replies.Reply, error) {
	switch input {
	case "1":
		session.State = constvars.StateDNIRequested
		return []replies.Reply{replies.Text(constvars.ChatAskDNI)}, nil
	case "2":
		session.State = constvars.StateRegisterName
		return []replies.Reply{replies.Text(constvars.ChatAskName)}, nil
	case "3":
		session.State = constvars.StateCheckDNIUnknown
		return []replies.Reply{replies.Text(constvars.ChatAskDNIUnknown)}, nil
	default:
		return []replies.Reply{replies.Text(constvars.ChatInvalidWelcomeReply), welcomeReply()}, nil
	}
}

func (uc *conversationUsecase) handleMainMenu(ctx context.Context, session *models.ConversationSession, input string) ([]replies.Reply, error) {
	// The menu is only reachable authenticated; a session that lost its
	// patient goes back to the welcome prompt.
	if session.Patient == nil {
		session.State = constvars.StateInitial
		return []replies.Reply{replies.Text(constvars.ChatSessionDataLost), welcomeReply()}, nil
	}

	switch input {
	case "1":
		return uc.startScheduling(ctx, session, input)
	case "2":
		return uc.startCancelation(ctx, session, input)
	case "3":
		return []replies.Reply{uc.patientDataReply(session.Patient), mainMenuReply()}, nil
	case "4":
		return uc.historyReplies(ctx, session)
	case "5":
		*session = *models.NewConversationSession(session.Contact)
		return []replies.Reply{welcomeReply()}, nil
	default:
		return []replies.Reply{replies.Text(constvars.ChatInvalidMenuOption), mainMenuReply()}, nil
	}
}

func (uc *conversationUsecase) patientDataReply(patient *models.Patient) replies.Reply {
	var b strings.Builder
	b.WriteString("👤 Tus datos registrados:\n\n")
	fmt.Fprintf(&b, "Nombre: %s\n", patient.Name)
	fmt.Fprintf(&b, "Documento: %s\n", patient.DNI)
	fmt.Fprintf(&b, "Teléfono: %s\n", patient.Phone)
	if patient.Email != "" {
		fmt.Fprintf(&b, "Email: %s\n", patient.Email)
	}
	if patient.BirthDate != nil {
		fmt.Fprintf(&b, "Fecha de nacimiento: %s\n", utils.FormatDateShort(*patient.BirthDate))
	}
	return replies.Text(strings.TrimRight(b.String(), "\n"))
}

func (uc *conversationUsecase) historyReplies(ctx context.Context, session *models.ConversationSession) ([]replies.Reply, error) {
	appointments, err := uc.AppointmentRepository.FindByPatient(ctx, session.Patient.ID)
	if err != nil {
		return nil, err
	}
	if len(appointments) == 0 {
		return []replies.Reply{replies.Text(constvars.ChatNoHistory), mainMenuReply()}, nil
	}

	doctorNames, serviceNames, err := uc.referenceNames(ctx)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString("📋 Tus citas:\n")
	for _, appointment := range appointments {
		fmt.Fprintf(&b, "\n%s %s a las %s\n%s - %s (%s)\n",
			statusEmoji(appointment.Status),
			utils.FormatDateSpanish(appointment.Start),
			utils.FormatTimeHHMM(appointment.Start),
			serviceNames[appointment.ServiceID],
			doctorNames[appointment.DoctorID],
			appointment.Status,
		)
	}
	return []replies.Reply{replies.Text(strings.TrimRight(b.String(), "\n")), mainMenuReply()}, nil
}

// referenceNames loads the doctor and service catalogs into id→name maps
// for rendering listings.
func (uc *conversationUsecase) referenceNames(ctx context.Context) (map[string]string, map[string]string, error) {
	doctors, err := uc.DoctorRepository.FindAll(ctx)
	if err != nil {
		return nil, nil, err
	}
	services, err := uc.ServiceRepository.FindAll(ctx)
	if err != nil {
		return nil, nil, err
	}

	doctorNames := make(map[string]string, len(doctors))
	for _, doctor := range doctors {
		doctorNames[doctor.ID] = doctor.Name
	}
	serviceNames := make(map[string]string, len(services))
	for _, service := range services {
		serviceNames[service.ID] = service.Name
	}
	return doctorNames, serviceNames, nil
}

func statusEmoji(status string) string {
	switch status {
	case constvars.AppointmentStatusConfirmada:
		return "✅"
	case constvars.AppointmentStatusPendiente:
		return "🕐"
	case constvars.AppointmentStatusCancelada:
		return "❌"
	case constvars.AppointmentStatusCompletada:
		return "✔️"
	default:
		return "•"
	}
}
