package conversation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"dentalbot-service/internal/app/contracts"
	"dentalbot-service/internal/app/models"
	"dentalbot-service/internal/pkg/constvars"
	"dentalbot-service/internal/pkg/dto/replies"
	"dentalbot-service/internal/pkg/utils"

	"go.uber.org/zap"
)

// startCancelation lists the patient's cancellable appointments: live
// status and at least the lead time away from starting.
func (uc *conversationUsecase) startCancelation(ctx context.Context, session *models.ConversationSession, input string) ([]replies.Reply, error) {
	notBefore := time.Now().Add(uc.cancelLeadTime)
	appointments, err := uc.AppointmentRepository.FindCancelable(ctx, session.Patient.ID, notBefore)
	if err != nil {
		return nil, err
	}
	if len(appointments) == 0 {
		session.ClearCancelationData()
		session.State = constvars.StateMainMenu
		return []replies.Reply{replies.Text(constvars.ChatNoCancelable), mainMenuReply()}, nil
	}

	doctorNames, serviceNames, err := uc.referenceNames(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.AppointmentSummary, 0, len(appointments))
	for _, appointment := range appointments {
		summaries = append(summaries, models.AppointmentSummary{
			AppointmentID: appointment.ID,
			DoctorName:    doctorNames[appointment.DoctorID],
			ServiceName:   serviceNames[appointment.ServiceID],
			Start:         appointment.Start,
			End:           appointment.End,
			Status:        appointment.Status,
		})
	}

	session.CancelableAppointments = summaries
	session.State = constvars.StateCancelationSelect
	return []replies.Reply{cancelableListReply(summaries)}, nil
}

func (uc *conversationUsecase) handleCancelationSelect(ctx context.Context, session *models.ConversationSession, input string) ([]replies.Reply, error) {
	idx := parseListChoice(input, len(session.CancelableAppointments))
	if idx < 0 {
		return []replies.Reply{replies.Text(constvars.ChatInvalidListOption)}, nil
	}
	summary := session.CancelableAppointments[idx]
	session.SelectedAppointment = &summary
	session.State = constvars.StateCancelationConfirm

	body := fmt.Sprintf("¿Seguro que deseas cancelar esta cita?\n\n📅 %s\n🕐 %s - %s\n🦷 %s\n👨‍⚕️ %s",
		utils.FormatDateSpanish(summary.Start),
		utils.FormatTimeHHMM(summary.Start),
		utils.FormatTimeHHMM(summary.End),
		summary.ServiceName,
		summary.DoctorName,
	)
	return []replies.Reply{replies.Buttons(body,
		replies.Button{ID: "cancel_yes", Title: "Sí, cancelar cita"},
		replies.Button{ID: "cancel_no", Title: "No, mantener cita"},
	)}, nil
}

func (uc *conversationUsecase) handleCancelationConfirm(ctx context.Context, session *models.ConversationSession, input string) ([]replies.Reply, error) {
	normalized := strings.ToLower(input)
	switch {
	case isAffirmative(normalized):
		return uc.executeCancelation(ctx, session)
	case isNegative(normalized):
		session.ClearCancelationData()
		session.State = constvars.StateMainMenu
		return []replies.Reply{replies.Text(constvars.ChatCancelKept), mainMenuReply()}, nil
	default:
		return []replies.Reply{replies.Text(constvars.ChatInvalidCancelReply)}, nil
	}
}

// executeCancelation re-verifies ownership, status, and lead time before
// flipping the status. The external notification is best-effort: a failure
// is queued for redelivery and the local cancellation stands.
func (uc *conversationUsecase) executeCancelation(ctx context.Context, session *models.ConversationSession) ([]replies.Reply, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	if session.Patient == nil || session.SelectedAppointment == nil {
		session.ClearCancelationData()
		session.State = constvars.StateMainMenu
		return []replies.Reply{replies.Text(constvars.ChatSessionDataLost), mainMenuReply()}, nil
	}

	summary := session.SelectedAppointment
	appointment, err := uc.AppointmentRepository.FindCancelableByID(ctx, summary.AppointmentID, session.Patient.ID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		session.ClearCancelationData()
		session.State = constvars.StateMainMenu
		return []replies.Reply{replies.Text(constvars.ChatCancelNotFound), mainMenuReply()}, nil
	}
	if time.Until(appointment.Start) < uc.cancelLeadTime {
		session.ClearCancelationData()
		session.State = constvars.StateMainMenu
		return []replies.Reply{replies.Text(constvars.ChatCancelLeadTime), mainMenuReply()}, nil
	}

	doctor := &models.Doctor{Name: summary.DoctorName}
	service := &models.Service{Name: summary.ServiceName}
	notification := buildNotification(session.Patient, doctor, service, appointment.Start, appointment.End, constvars.AppointmentStatusCancelada)

	notifyErr := uc.WorkflowClient.NotifyCancellation(ctx, notification)
	if notifyErr != nil {
		uc.Log.Error("conversationUsecase.executeCancelation workflow notification failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
			zap.Error(notifyErr),
		)
		if queueErr := uc.NotificationQueue.Enqueue(ctx, contracts.NotificationKindCancellation, notification); queueErr != nil {
			uc.Log.Error("conversationUsecase.executeCancelation error enqueueing retry",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(queueErr),
			)
		}
	}

	// Local state is authoritative even when the external side failed.
	if err := uc.AppointmentRepository.UpdateStatus(ctx, appointment.ID, constvars.AppointmentStatusCancelada); err != nil {
		return nil, err
	}

	body := fmt.Sprintf("%s\n\n📅 %s\n🕐 %s - %s\n🦷 %s\n👨‍⚕️ %s",
		constvars.ChatCancelSuccess,
		utils.FormatDateSpanish(appointment.Start),
		utils.FormatTimeHHMM(appointment.Start),
		utils.FormatTimeHHMM(appointment.End),
		summary.ServiceName,
		summary.DoctorName,
	)
	if notifyErr != nil {
		body += "\n\n" + constvars.ChatWorkflowCaveat
	}

	session.ClearCancelationData()
	session.State = constvars.StateMainMenu

	uc.Log.Info("conversationUsecase.executeCancelation succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
	)
	return []replies.Reply{replies.Text(body), mainMenuReply()}, nil
}

func cancelableListReply(summaries []models.AppointmentSummary) replies.Reply {
	rows := make([]replies.Row, 0, len(summaries))
	for _, summary := range summaries {
		title := fmt.Sprintf("%s a las %s", utils.FormatDateShort(summary.Start), utils.FormatTimeHHMM(summary.Start))
		description := fmt.Sprintf("%s - %s", summary.ServiceName, summary.DoctorName)
		rows = append(rows, replies.Row{ID: summary.AppointmentID, Title: title, Description: description})
	}
	return replies.List(constvars.ChatChooseCancelable, replies.Section{Title: "Citas programadas", Rows: rows})
}
