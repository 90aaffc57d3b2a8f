package conversation

import (
	"context"
	"testing"
	"time"

	"dentalbot-service/internal/app/models"
	"dentalbot-service/internal/pkg/constvars"
	"dentalbot-service/internal/pkg/dto/requests"

	"github.com/stretchr/testify/assert"
)

const testContact = "573001112233"

func TestProcessMessageDispatch(t *testing.T) {
	t.Run("First contact greets and stays at the welcome prompt", func(t *testing.T) {
		f := newFixture()

		err := f.send(testContact, "buenas tardes")
		assert.NoError(t, err)

		session := f.sessionOf(testContact)
		assert.NotNil(t, session)
		assert.Equal(t, constvars.StateInitial, session.State)
		assert.Contains(t, f.lastMessage(), "Bienvenido")
	})

	t.Run("Reset keyword restarts from any state", func(t *testing.T) {
		f := newFixture()
		f.seedClinic()

		session := models.NewConversationSession(testContact)
		session.State = constvars.StateAppointmentTimeSelection
		session.SelectedDoctor = &models.Doctor{ID: "doctor-juan", Name: "Dr. Juan Pérez"}
		session.AvailableTimeSlots = []models.TimeSlot{{Time: "08:00", Available: true}}
		assert.NoError(t, f.sessions.Save(context.Background(), session))

		err := f.send(testContact, "menu")
		assert.NoError(t, err)

		reset := f.sessionOf(testContact)
		assert.Equal(t, constvars.StateInitial, reset.State)
		assert.Nil(t, reset.SelectedDoctor)
		assert.Nil(t, reset.AvailableTimeSlots)
		assert.Contains(t, f.lastMessage(), "Bienvenido")
	})

	t.Run("Unknown state recovers with a fresh session", func(t *testing.T) {
		f := newFixture()

		session := models.NewConversationSession(testContact)
		session.State = "estado_fantasma"
		assert.NoError(t, f.sessions.Save(context.Background(), session))

		err := f.send(testContact, "1")
		assert.NoError(t, err)

		recovered := f.sessionOf(testContact)
		assert.Equal(t, constvars.StateInitial, recovered.State)
		assert.Equal(t, constvars.ChatSessionReset, f.lastMessage())
	})

	t.Run("Own and group messages are dropped silently", func(t *testing.T) {
		f := newFixture()

		err := f.usecase.ProcessMessage(context.Background(), &requests.InboundMessage{
			From: testContact, Body: "hola", Type: "chat", FromMe: true,
		})
		assert.NoError(t, err)
		err = f.usecase.ProcessMessage(context.Background(), &requests.InboundMessage{
			From: "grupo@g.us", Body: "hola", Type: "chat", IsGroupMsg: true,
		})
		assert.NoError(t, err)

		assert.Empty(t, f.transport.messages())
		assert.Nil(t, f.sessionOf(testContact))
	})

	t.Run("Messages from the bot's own number are dropped without a fromMe flag", func(t *testing.T) {
		f := newFixture()
		host := f.transport.HostNumber()

		err := f.usecase.ProcessMessage(context.Background(), &requests.InboundMessage{
			From: host, Body: "hola", Type: "chat",
		})
		assert.NoError(t, err)
		err = f.usecase.ProcessMessage(context.Background(), &requests.InboundMessage{
			From: host + "@c.us", Body: "hola", Type: "chat",
		})
		assert.NoError(t, err)

		assert.Empty(t, f.transport.messages())
		assert.Nil(t, f.sessionOf(host))
	})

	t.Run("Duplicate message within the window is processed once", func(t *testing.T) {
		f := newFixture()

		frozen := time.Now()
		f.usecase.guard.now = func() time.Time { return frozen }

		assert.NoError(t, f.send(testContact, "hola"))
		assert.NoError(t, f.send(testContact, "hola"))

		assert.Len(t, f.transport.messages(), 1)
	})

	t.Run("Non-text message gets the text-only notice without touching the session", func(t *testing.T) {
		f := newFixture()

		err := f.usecase.ProcessMessage(context.Background(), &requests.InboundMessage{
			From: testContact, Body: "", Type: "image",
		})
		assert.NoError(t, err)

		assert.Equal(t, constvars.ChatTextOnly, f.lastMessage())
		assert.Nil(t, f.sessionOf(testContact))
	})
}

func TestAuthenticationFlow(t *testing.T) {
	t.Run("Registered patient logs in with DNI and expedition date", func(t *testing.T) {
		f := newFixture()
		f.seedClinic()

		f.login(testContact)

		session := f.sessionOf(testContact)
		assert.Equal(t, constvars.StateMainMenu, session.State)
		assert.NotNil(t, session.Patient)
		assert.Equal(t, "patient-maria", session.Patient.ID)
		assert.Empty(t, session.AuthDNI)
	})

	t.Run("Wrong expedition date keeps asking", func(t *testing.T) {
		f := newFixture()
		f.seedClinic()

		assert.NoError(t, f.send(testContact, "hola"))
		assert.NoError(t, f.send(testContact, "1"))
		assert.NoError(t, f.send(testContact, "123456789"))
		assert.NoError(t, f.send(testContact, "01/01/2000"))

		session := f.sessionOf(testContact)
		assert.Equal(t, constvars.StateDNIExpeditionDate, session.State)
		assert.Nil(t, session.Patient)
		assert.Equal(t, constvars.ChatExpeditionNoMatch, f.lastMessage())
	})

	t.Run("Unknown DNI offers registration", func(t *testing.T) {
		f := newFixture()
		f.seedClinic()

		assert.NoError(t, f.send(testContact, "hola"))
		assert.NoError(t, f.send(testContact, "1"))
		assert.NoError(t, f.send(testContact, "999999999"))

		session := f.sessionOf(testContact)
		assert.Equal(t, constvars.StateNotRegistered, session.State)
		assert.Equal(t, constvars.ChatNotRegisteredOffer, f.lastMessage())
	})

	t.Run("Malformed DNI is rejected in place", func(t *testing.T) {
		f := newFixture()

		assert.NoError(t, f.send(testContact, "hola"))
		assert.NoError(t, f.send(testContact, "1"))
		assert.NoError(t, f.send(testContact, "abc123"))

		session := f.sessionOf(testContact)
		assert.Equal(t, constvars.StateDNIRequested, session.State)
		assert.Equal(t, constvars.ChatInvalidDNI, f.lastMessage())
	})
}

func TestRegistrationFlow(t *testing.T) {
	t.Run("Full registration creates the patient and lands on the menu", func(t *testing.T) {
		f := newFixture()

		assert.NoError(t, f.send(testContact, "hola"))
		assert.NoError(t, f.send(testContact, "2"))
		assert.NoError(t, f.send(testContact, "Carlos Rodríguez"))
		assert.NoError(t, f.send(testContact, "987654321"))
		assert.NoError(t, f.send(testContact, "carlos@example.com"))
		assert.NoError(t, f.send(testContact, "15/05/1990"))
		assert.NoError(t, f.send(testContact, "20/06/2008"))

		session := f.sessionOf(testContact)
		assert.Equal(t, constvars.StateMainMenu, session.State)
		assert.NotNil(t, session.Patient)
		assert.Equal(t, "Carlos Rodríguez", session.Patient.Name)
		assert.Equal(t, "987654321", session.Patient.DNI)
		assert.Equal(t, testContact, session.Patient.Phone)

		stored, err := f.patientRepo.FindByDNI(context.Background(), "987654321")
		assert.NoError(t, err)
		assert.NotNil(t, stored)
	})

	t.Run("Registration keeps the name casing as typed", func(t *testing.T) {
		f := newFixture()

		assert.NoError(t, f.send(testContact, "hola"))
		assert.NoError(t, f.send(testContact, "2"))
		assert.NoError(t, f.send(testContact, "Ana María López"))

		session := f.sessionOf(testContact)
		assert.Equal(t, "Ana María López", session.RegisterName)
	})

	t.Run("Duplicate DNI blocks registration", func(t *testing.T) {
		f := newFixture()
		f.seedClinic()

		assert.NoError(t, f.send(testContact, "hola"))
		assert.NoError(t, f.send(testContact, "2"))
		assert.NoError(t, f.send(testContact, "Carlos Rodríguez"))
		assert.NoError(t, f.send(testContact, "123456789"))

		session := f.sessionOf(testContact)
		assert.Equal(t, constvars.StateRegisterDNI, session.State)
		assert.Equal(t, constvars.ChatDNIAlreadyExists, f.lastMessage())
	})

	t.Run("Future birth date is rejected", func(t *testing.T) {
		f := newFixture()

		assert.NoError(t, f.send(testContact, "hola"))
		assert.NoError(t, f.send(testContact, "2"))
		assert.NoError(t, f.send(testContact, "Carlos Rodríguez"))
		assert.NoError(t, f.send(testContact, "987654321"))
		assert.NoError(t, f.send(testContact, "no"))
		assert.NoError(t, f.send(testContact, "31/12/2999"))

		session := f.sessionOf(testContact)
		assert.Equal(t, constvars.StateRegisterBirthDate, session.State)
		assert.Equal(t, constvars.ChatFutureBirthDate, f.lastMessage())
	})
}

func TestMainMenu(t *testing.T) {
	t.Run("Menu without an authenticated patient falls back to welcome", func(t *testing.T) {
		f := newFixture()

		session := models.NewConversationSession(testContact)
		session.State = constvars.StateMainMenu
		assert.NoError(t, f.sessions.Save(context.Background(), session))

		assert.NoError(t, f.send(testContact, "1"))

		fallen := f.sessionOf(testContact)
		assert.Equal(t, constvars.StateInitial, fallen.State)
	})

	t.Run("Option 3 shows the patient data and stays on the menu", func(t *testing.T) {
		f := newFixture()
		f.seedClinic()
		f.login(testContact)

		assert.NoError(t, f.send(testContact, "3"))

		session := f.sessionOf(testContact)
		assert.Equal(t, constvars.StateMainMenu, session.State)
		messages := f.transport.messages()
		assert.Contains(t, messages[len(messages)-2], "María Gómez")
		assert.Contains(t, messages[len(messages)-2], "123456789")
	})

	t.Run("Option 4 with no history says so", func(t *testing.T) {
		f := newFixture()
		f.seedClinic()
		f.login(testContact)

		assert.NoError(t, f.send(testContact, "4"))

		messages := f.transport.messages()
		assert.Contains(t, messages[len(messages)-2], constvars.ChatNoHistory)
	})

	t.Run("Option 5 wipes the session back to welcome", func(t *testing.T) {
		f := newFixture()
		f.seedClinic()
		f.login(testContact)

		assert.NoError(t, f.send(testContact, "5"))

		session := f.sessionOf(testContact)
		assert.Equal(t, constvars.StateInitial, session.State)
		assert.Nil(t, session.Patient)
	})

	t.Run("Invalid option re-shows the menu", func(t *testing.T) {
		f := newFixture()
		f.seedClinic()
		f.login(testContact)

		assert.NoError(t, f.send(testContact, "9"))

		session := f.sessionOf(testContact)
		assert.Equal(t, constvars.StateMainMenu, session.State)
		messages := f.transport.messages()
		assert.Contains(t, messages[len(messages)-2], constvars.ChatInvalidMenuOption)
	})
}

func TestParseListChoice(t *testing.T) {
	t.Run("Accepts in-range numbers", func(t *testing.T) {
		assert.Equal(t, 0, parseListChoice("1", 3))
		assert.Equal(t, 2, parseListChoice("3", 3))
		assert.Equal(t, 9, parseListChoice("10", 12))
	})

	t.Run("Rejects everything else", func(t *testing.T) {
		assert.Equal(t, -1, parseListChoice("0", 3))
		assert.Equal(t, -1, parseListChoice("4", 3))
		assert.Equal(t, -1, parseListChoice("", 3))
		assert.Equal(t, -1, parseListChoice("uno", 3))
		assert.Equal(t, -1, parseListChoice("1.5", 3))
		assert.Equal(t, -1, parseListChoice("-1", 3))
	})
}

func TestAffirmativeNegative(t *testing.T) {
	assert.True(t, isAffirmative("1"))
	assert.True(t, isAffirmative("si"))
	assert.True(t, isAffirmative("sí"))
	assert.True(t, isAffirmative("confirmar"))
	assert.False(t, isAffirmative("nope"))

	assert.True(t, isNegative("2"))
	assert.True(t, isNegative("no"))
	assert.True(t, isNegative("cancelar"))
	assert.False(t, isNegative("si"))
}
