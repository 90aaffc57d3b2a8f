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
	"dentalbot-service/internal/pkg/dto/requests"
	"dentalbot-service/internal/pkg/utils"

	"go.uber.org/zap"
)

const bookingLockTTL = 10 * time.Second

// startScheduling opens the booking flow with the doctor listing.
func (uc *conversationUsecase) startScheduling(ctx context.Context, session *models.ConversationSession, input string) ([]replies.Reply, error) {
	doctors, err := uc.DoctorRepository.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(doctors) == 0 {
		session.ClearBookingData()
		session.State = constvars.StateMainMenu
		return []replies.Reply{replies.Text(constvars.ChatNoDoctors), mainMenuReply()}, nil
	}

	session.AvailableDoctors = doctors
	session.State = constvars.StateAppointmentDoctorSelection
	return []replies.Reply{doctorListReply(doctors)}, nil
}

func (uc *conversationUsecase) handleDoctorSelection(ctx context.Context, session *models.ConversationSession, input string) ([]replies.Reply, error) {
	idx := parseListChoice(input, len(session.AvailableDoctors))
	if idx < 0 {
		return []replies.Reply{replies.Text(constvars.ChatInvalidListOption)}, nil
	}
	doctor := session.AvailableDoctors[idx]
	session.SelectedDoctor = &doctor

	services, err := uc.ServiceRepository.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(services) == 0 {
		session.ClearBookingData()
		session.State = constvars.StateMainMenu
		return []replies.Reply{replies.Text(constvars.ChatNoServices), mainMenuReply()}, nil
	}

	session.AvailableServices = services
	session.State = constvars.StateAppointmentServiceSelection
	return []replies.Reply{serviceListReply(services)}, nil
}

func (uc *conversationUsecase) handleServiceSelection(ctx context.Context, session *models.ConversationSession, input string) ([]replies.Reply, error) {
	idx := parseListChoice(input, len(session.AvailableServices))
	if idx < 0 {
		return []replies.Reply{replies.Text(constvars.ChatInvalidListOption)}, nil
	}
	service := session.AvailableServices[idx]
	session.SelectedService = &service

	from := time.Now()
	to := from.AddDate(0, 0, uc.bookingHorizonDays)
	availabilities, err := uc.AvailabilityRepository.FindByDoctorAndRange(ctx, session.SelectedDoctor.ID, from, to)
	if err != nil {
		return nil, err
	}

	var dates []models.DateOption
	for _, availability := range availabilities {
		if count := availability.AvailableSlotCount(); count > 0 {
			dates = append(dates, models.DateOption{Date: availability.Date, AvailableSlots: count})
		}
	}
	if len(dates) == 0 {
		// Not a hard failure: offer the doctor list again.
		doctorName := session.SelectedDoctor.Name
		session.SelectedDoctor = nil
		session.SelectedService = nil
		session.State = constvars.StateAppointmentDoctorSelection
		noDates := fmt.Sprintf("❌ %s no tiene fechas disponibles en los próximos %d días.\n\nElige otro doctor:", doctorName, uc.bookingHorizonDays)
		return []replies.Reply{replies.Text(noDates), doctorListReply(session.AvailableDoctors)}, nil
	}

	session.AvailableDates = dates
	session.State = constvars.StateAppointmentDateSelection
	return []replies.Reply{dateListReply(dates)}, nil
}

func (uc *conversationUsecase) handleDateSelection(ctx context.Context, session *models.ConversationSession, input string) ([]replies.Reply, error) {
	idx := parseListChoice(input, len(session.AvailableDates))
	if idx < 0 {
		return []replies.Reply{replies.Text(constvars.ChatInvalidListOption)}, nil
	}
	date := session.AvailableDates[idx]
	session.SelectedDate = &date

	offered, err := uc.offeredStartSlots(ctx, session.SelectedDoctor.ID, date.Date, session.SelectedService.DurationMinutes)
	if err != nil {
		return nil, err
	}
	if len(offered) == 0 {
		session.SelectedDate = nil
		return []replies.Reply{replies.Text(constvars.ChatNoTimeSlots), dateListReply(session.AvailableDates)}, nil
	}

	session.AvailableTimeSlots = offered
	session.State = constvars.StateAppointmentTimeSelection
	return []replies.Reply{timeListReply(offered, session.SelectedService.DurationMinutes)}, nil
}

func (uc *conversationUsecase) handleTimeSelection(ctx context.Context, session *models.ConversationSession, input string) ([]replies.Reply, error) {
	idx := parseListChoice(input, len(session.AvailableTimeSlots))
	if idx < 0 {
		return []replies.Reply{replies.Text(constvars.ChatInvalidListOption)}, nil
	}
	slot := session.AvailableTimeSlots[idx]

	start, err := utils.CombineDateTime(session.SelectedDate.Date, slot.Time)
	if err != nil {
		return nil, err
	}
	end := start.Add(time.Duration(session.SelectedService.DurationMinutes) * time.Minute)

	session.StartAt = &start
	session.EndAt = &end
	session.State = constvars.StateAppointmentConfirmation
	return []replies.Reply{confirmationReply(session)}, nil
}

func (uc *conversationUsecase) handleConfirmation(ctx context.Context, session *models.ConversationSession, input string) ([]replies.Reply, error) {
	normalized := strings.ToLower(input)
	switch {
	case isAffirmative(normalized):
		return uc.commitBooking(ctx, session)
	case isNegative(normalized):
		session.ClearBookingData()
		session.State = constvars.StateMainMenu
		return []replies.Reply{replies.Text(constvars.ChatBookingDeclined), mainMenuReply()}, nil
	default:
		return []replies.Reply{replies.Text(constvars.ChatInvalidConfirmReply)}, nil
	}
}

// commitBooking runs the booking transaction: workflow notification first
// (failure non-fatal), then appointment insert, then slot flip. A per-doctor
// lock narrows the offer-to-commit race; the conflict re-check under that
// lock is the actual guarantee.
func (uc *conversationUsecase) commitBooking(ctx context.Context, session *models.ConversationSession) ([]replies.Reply, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	if session.Patient == nil || session.SelectedDoctor == nil || session.SelectedService == nil ||
		session.SelectedDate == nil || session.StartAt == nil || session.EndAt == nil {
		session.ClearBookingData()
		session.State = constvars.StateAppointmentService
		return []replies.Reply{replies.Text(constvars.ChatSessionDataLost)}, nil
	}

	doctor := session.SelectedDoctor
	service := session.SelectedService
	start := *session.StartAt
	end := *session.EndAt

	lockKey := constvars.RedisKeyDoctorBookingLock + doctor.ID
	acquired, lockValue, err := uc.LockerService.TryLock(ctx, lockKey, bookingLockTTL)
	if err != nil {
		return nil, err
	}
	if !acquired {
		// Another booking for this doctor is mid-commit; same treatment
		// as a consumed slot.
		return uc.reofferSlots(ctx, session)
	}
	defer func() {
		if unlockErr := uc.LockerService.Unlock(ctx, lockKey, lockValue); unlockErr != nil {
			uc.Log.Error("conversationUsecase.commitBooking error releasing lock",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(unlockErr),
			)
		}
	}()

	// Re-validate against live state before persisting anything.
	conflict, err := uc.AppointmentRepository.FindConflicting(ctx, doctor.ID, start, end)
	if err != nil {
		return nil, err
	}
	availability, slotIndex, required, stillFree, err := uc.recheckAvailability(ctx, doctor.ID, session.SelectedDate.Date, *session.StartAt, service.DurationMinutes)
	if err != nil {
		return nil, err
	}
	if conflict != nil || !stillFree {
		return uc.reofferSlots(ctx, session)
	}

	notification := buildNotification(session.Patient, doctor, service, start, end, constvars.AppointmentStatusConfirmada)
	eventID, notifyErr := uc.WorkflowClient.NotifyBooking(ctx, notification)
	if notifyErr != nil {
		uc.Log.Error("conversationUsecase.commitBooking workflow notification failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(notifyErr),
		)
		if queueErr := uc.NotificationQueue.Enqueue(ctx, contracts.NotificationKindBooking, notification); queueErr != nil {
			uc.Log.Error("conversationUsecase.commitBooking error enqueueing retry",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(queueErr),
			)
		}
		eventID = ""
	}

	appointment := &models.Appointment{
		PatientID: session.Patient.ID,
		DoctorID:  doctor.ID,
		ServiceID: service.ID,
		Start:     start,
		End:       end,
		Status:    constvars.AppointmentStatusConfirmada,
		Notes:     constvars.AppointmentNotes,
		EventID:   eventID,
		CreatedAt: time.Now(),
	}
	appointmentID, err := uc.AppointmentRepository.CreateAppointment(ctx, appointment)
	if err != nil {
		return nil, err
	}

	// The appointment is the source of truth from here on; a failed slot
	// flip leaves the ledger stale but cannot double-book thanks to the
	// conflict check.
	for i := slotIndex; i < slotIndex+required; i++ {
		availability.TimeSlots[i].Available = false
	}
	if err := uc.AvailabilityRepository.ReplaceTimeSlots(ctx, availability.ID, availability.TimeSlots); err != nil {
		uc.Log.Error("conversationUsecase.commitBooking error flipping slots",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
			zap.Error(err),
		)
	}

	summary := bookingSummary(session, eventID, notifyErr != nil)
	session.ClearBookingData()
	session.State = constvars.StateMainMenu

	uc.Log.Info("conversationUsecase.commitBooking succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
		zap.String(constvars.LoggingEventIDKey, eventID),
	)
	return []replies.Reply{replies.Text(summary), mainMenuReply()}, nil
}

// reofferSlots handles the slot-taken race: recompute the offered slots for
// the selected date and return to time selection, or to date selection when
// the day sold out.
func (uc *conversationUsecase) reofferSlots(ctx context.Context, session *models.ConversationSession) ([]replies.Reply, error) {
	session.StartAt = nil
	session.EndAt = nil

	offered, err := uc.offeredStartSlots(ctx, session.SelectedDoctor.ID, session.SelectedDate.Date, session.SelectedService.DurationMinutes)
	if err != nil {
		return nil, err
	}
	if len(offered) == 0 {
		session.SelectedDate = nil
		session.AvailableTimeSlots = nil
		session.State = constvars.StateAppointmentDateSelection
		return []replies.Reply{replies.Text(constvars.ChatSlotNoLongerFree), replies.Text(constvars.ChatNoTimeSlots), dateListReply(session.AvailableDates)}, nil
	}

	session.AvailableTimeSlots = offered
	session.State = constvars.StateAppointmentTimeSelection
	return []replies.Reply{replies.Text(constvars.ChatSlotNoLongerFree), timeListReply(offered, session.SelectedService.DurationMinutes)}, nil
}

// offeredStartSlots applies the slot-fit rule: a start slot is offered iff
// the contiguous run of slots covering the service duration exists and is
// available, and no live appointment overlaps the would-be interval.
func (uc *conversationUsecase) offeredStartSlots(ctx context.Context, doctorID string, day time.Time, durationMinutes int) ([]models.TimeSlot, error) {
	availability, err := uc.AvailabilityRepository.FindByDoctorAndDay(ctx, doctorID, day)
	if err != nil {
		return nil, err
	}
	if availability == nil {
		return nil, nil
	}

	required := utils.RequiredSlots(durationMinutes)
	slots := availability.TimeSlots

	var offered []models.TimeSlot
	for i := 0; i+required <= len(slots); i++ {
		contiguous := true
		for j := i; j < i+required; j++ {
			if !slots[j].Available {
				contiguous = false
				break
			}
		}
		if !contiguous {
			continue
		}

		start, err := utils.CombineDateTime(day, slots[i].Time)
		if err != nil {
			continue
		}
		end := start.Add(time.Duration(durationMinutes) * time.Minute)
		conflict, err := uc.AppointmentRepository.FindConflicting(ctx, doctorID, start, end)
		if err != nil {
			return nil, err
		}
		if conflict != nil {
			continue
		}
		offered = append(offered, slots[i])
	}
	return offered, nil
}

// recheckAvailability reloads the day's ledger and verifies the chosen
// contiguous run is still fully available.
func (uc *conversationUsecase) recheckAvailability(ctx context.Context, doctorID string, day, start time.Time, durationMinutes int) (*models.Availability, int, int, bool, error) {
	availability, err := uc.AvailabilityRepository.FindByDoctorAndDay(ctx, doctorID, day)
	if err != nil {
		return nil, 0, 0, false, err
	}
	if availability == nil {
		return nil, 0, 0, false, nil
	}

	required := utils.RequiredSlots(durationMinutes)
	slotIndex := availability.SlotIndex(utils.FormatTimeHHMM(start))
	if slotIndex < 0 || slotIndex+required > len(availability.TimeSlots) {
		return availability, slotIndex, required, false, nil
	}
	for i := slotIndex; i < slotIndex+required; i++ {
		if !availability.TimeSlots[i].Available {
			return availability, slotIndex, required, false, nil
		}
	}
	return availability, slotIndex, required, true, nil
}

func buildNotification(patient *models.Patient, doctor *models.Doctor, service *models.Service, start, end time.Time, status string) *requests.WorkflowNotification {
	return &requests.WorkflowNotification{
		Patient: requests.WorkflowPatient{
			Name:  patient.Name,
			Phone: patient.Phone,
			Email: patient.Email,
		},
		Doctor:  requests.WorkflowDoctor{Name: doctor.Name},
		Service: requests.WorkflowService{Name: service.Name},
		Appointment: requests.WorkflowAppointment{
			Date:      utils.FormatDateISO(start),
			StartTime: utils.FormatTimeHHMM(start),
			EndTime:   utils.FormatTimeHHMM(end),
			Notes:     constvars.AppointmentNotes,
			Status:    status,
		},
	}
}

func doctorListReply(doctors []models.Doctor) replies.Reply {
	rows := make([]replies.Row, 0, len(doctors))
	for _, doctor := range doctors {
		rows = append(rows, replies.Row{ID: doctor.ID, Title: doctor.Name, Description: doctor.Specialty})
	}
	return replies.List(constvars.ChatChooseDoctor, replies.Section{Title: "Doctores disponibles", Rows: rows})
}

func serviceListReply(services []models.Service) replies.Reply {
	rows := make([]replies.Row, 0, len(services))
	for _, service := range services {
		description := fmt.Sprintf("%d min - $%v", service.DurationMinutes, service.Price)
		rows = append(rows, replies.Row{ID: service.ID, Title: service.Name, Description: description})
	}
	return replies.List(constvars.ChatChooseService, replies.Section{Title: "Servicios", Rows: rows})
}

func dateListReply(dates []models.DateOption) replies.Reply {
	rows := make([]replies.Row, 0, len(dates))
	for _, date := range dates {
		description := fmt.Sprintf("%d horarios disponibles", date.AvailableSlots)
		rows = append(rows, replies.Row{ID: utils.FormatDateISO(date.Date), Title: utils.FormatDateSpanish(date.Date), Description: description})
	}
	return replies.List(constvars.ChatChooseDate, replies.Section{Title: "Fechas disponibles", Rows: rows})
}

func timeListReply(slots []models.TimeSlot, durationMinutes int) replies.Reply {
	rows := make([]replies.Row, 0, len(slots))
	for _, slot := range slots {
		description := fmt.Sprintf("%s - %s", slot.Time, utils.CalculateEndTime(slot.Time, durationMinutes))
		rows = append(rows, replies.Row{ID: slot.Time, Title: slot.Time, Description: description})
	}
	return replies.List(constvars.ChatChooseTime, replies.Section{Title: "Horarios disponibles", Rows: rows})
}

func confirmationReply(session *models.ConversationSession) replies.Reply {
	body := fmt.Sprintf("%s\n\n📅 %s\n🕐 %s - %s\n🦷 %s\n👨‍⚕️ %s\n💰 $%v",
		constvars.ChatConfirmTitle,
		utils.FormatDateSpanish(*session.StartAt),
		utils.FormatTimeHHMM(*session.StartAt),
		utils.FormatTimeHHMM(*session.EndAt),
		session.SelectedService.Name,
		session.SelectedDoctor.Name,
		session.SelectedService.Price,
	)
	return replies.Buttons(body,
		replies.Button{ID: "confirm_yes", Title: "Confirmar"},
		replies.Button{ID: "confirm_no", Title: "Cancelar"},
	)
}

func bookingSummary(session *models.ConversationSession, eventID string, workflowFailed bool) string {
	var b strings.Builder
	b.WriteString(constvars.ChatBookingSuccess)
	fmt.Fprintf(&b, "\n\n📅 %s\n🕐 %s - %s\n🦷 %s\n👨‍⚕️ %s\n💰 $%v",
		utils.FormatDateSpanish(*session.StartAt),
		utils.FormatTimeHHMM(*session.StartAt),
		utils.FormatTimeHHMM(*session.EndAt),
		session.SelectedService.Name,
		session.SelectedDoctor.Name,
		session.SelectedService.Price,
	)
	if eventID != "" {
		fmt.Fprintf(&b, "\n🔖 ID de evento: %s", eventID)
	}
	if workflowFailed {
		b.WriteString("\n\n" + constvars.ChatWorkflowCaveat)
	}
	return b.String()
}
