package controllers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"dentalbot-service/internal/pkg/dto/requests"
	"dentalbot-service/internal/pkg/dto/responses"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type stubUsecase struct {
	received []*requests.InboundMessage
	err      error
}

func (u *stubUsecase) ProcessMessage(ctx context.Context, message *requests.InboundMessage) error {
	u.received = append(u.received, message)
	return u.err
}

type stubTransport struct {
	connected bool
	sent      []string
	sendErr   error
	initErr   error
}

func (t *stubTransport) Init(ctx context.Context) error { return t.initErr }

func (t *stubTransport) SendText(ctx context.Context, to, message string) error {
	if t.sendErr != nil {
		return t.sendErr
	}
	t.sent = append(t.sent, message)
	return nil
}

func (t *stubTransport) IsConnected() bool { return t.connected }

func (t *stubTransport) HostNumber() string { return "5730000000" }

func newTestController(usecase *stubUsecase, transport *stubTransport) *WhatsAppController {
	return &WhatsAppController{
		Log:                 zap.NewNop(),
		ConversationUsecase: usecase,
		WhatsAppService:     transport,
	}
}

func decodeResponse(t *testing.T, recorder *httptest.ResponseRecorder) responses.ResponseDTO {
	var response responses.ResponseDTO
	assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	return response
}

func TestHandleWebhook(t *testing.T) {
	t.Run("Processes a direct text message", func(t *testing.T) {
		usecase := &stubUsecase{}
		ctrl := newTestController(usecase, &stubTransport{connected: true})

		body := `{"from":"573001112233@c.us","body":"hola","type":"chat"}`
		req := httptest.NewRequest(http.MethodPost, "/api/whatsapp/webhook", strings.NewReader(body))
		recorder := httptest.NewRecorder()

		ctrl.HandleWebhook(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Len(t, usecase.received, 1)
		assert.Equal(t, "573001112233@c.us", usecase.received[0].From)
		assert.Equal(t, "hola", usecase.received[0].Body)
	})

	t.Run("Rejects an unrecognized payload", func(t *testing.T) {
		usecase := &stubUsecase{}
		ctrl := newTestController(usecase, &stubTransport{connected: true})

		req := httptest.NewRequest(http.MethodPost, "/api/whatsapp/webhook", strings.NewReader(`{"foo":"bar"}`))
		recorder := httptest.NewRecorder()

		ctrl.HandleWebhook(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Empty(t, usecase.received)
	})

	t.Run("Filters own and group messages without dispatching", func(t *testing.T) {
		usecase := &stubUsecase{}
		ctrl := newTestController(usecase, &stubTransport{connected: true})

		for _, body := range []string{
			`{"from":"573001112233@c.us","body":"hola","fromMe":true}`,
			`{"from":"grupo@g.us","body":"hola","isGroupMsg":true}`,
		} {
			req := httptest.NewRequest(http.MethodPost, "/api/whatsapp/webhook", strings.NewReader(body))
			recorder := httptest.NewRecorder()

			ctrl.HandleWebhook(recorder, req)

			assert.Equal(t, http.StatusOK, recorder.Code)
			response := decodeResponse(t, recorder)
			assert.Equal(t, "message filtered", response.Message)
		}
		assert.Empty(t, usecase.received)
	})

	t.Run("Answers non-text messages with the text-only notice", func(t *testing.T) {
		usecase := &stubUsecase{}
		transport := &stubTransport{connected: true}
		ctrl := newTestController(usecase, transport)

		body := `{"from":"573001112233@c.us","body":"","type":"image"}`
		req := httptest.NewRequest(http.MethodPost, "/api/whatsapp/webhook", strings.NewReader(body))
		recorder := httptest.NewRecorder()

		ctrl.HandleWebhook(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Empty(t, usecase.received)
		assert.Len(t, transport.sent, 1)
		assert.Contains(t, transport.sent[0], "solo mensajes de texto")
	})

	t.Run("Maps dispatcher errors to an error response", func(t *testing.T) {
		usecase := &stubUsecase{err: fmt.Errorf("redis caído")}
		ctrl := newTestController(usecase, &stubTransport{connected: true})

		body := `{"from":"573001112233@c.us","body":"hola","type":"chat"}`
		req := httptest.NewRequest(http.MethodPost, "/api/whatsapp/webhook", strings.NewReader(body))
		recorder := httptest.NewRecorder()

		ctrl.HandleWebhook(recorder, req)

		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	})
}

func TestHandleSendMessage(t *testing.T) {
	t.Run("Sends when connected", func(t *testing.T) {
		transport := &stubTransport{connected: true}
		ctrl := newTestController(&stubUsecase{}, transport)

		body := `{"to":"573001112233","message":"Recordatorio de tu cita"}`
		req := httptest.NewRequest(http.MethodPost, "/api/whatsapp/send", strings.NewReader(body))
		recorder := httptest.NewRecorder()

		ctrl.HandleSendMessage(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, []string{"Recordatorio de tu cita"}, transport.sent)
	})

	t.Run("Rejects missing fields", func(t *testing.T) {
		ctrl := newTestController(&stubUsecase{}, &stubTransport{connected: true})

		for _, body := range []string{`{}`, `{"to":"573001112233"}`, `{"message":"hola"}`} {
			req := httptest.NewRequest(http.MethodPost, "/api/whatsapp/send", strings.NewReader(body))
			recorder := httptest.NewRecorder()

			ctrl.HandleSendMessage(recorder, req)

			assert.Equal(t, http.StatusBadRequest, recorder.Code, body)
		}
	})

	t.Run("Refuses while disconnected", func(t *testing.T) {
		ctrl := newTestController(&stubUsecase{}, &stubTransport{connected: false})

		body := `{"to":"573001112233","message":"hola"}`
		req := httptest.NewRequest(http.MethodPost, "/api/whatsapp/send", strings.NewReader(body))
		recorder := httptest.NewRecorder()

		ctrl.HandleSendMessage(recorder, req)

		assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	})
}

func TestHandleStatus(t *testing.T) {
	ctrl := newTestController(&stubUsecase{}, &stubTransport{connected: true})

	req := httptest.NewRequest(http.MethodGet, "/api/whatsapp/status", nil)
	recorder := httptest.NewRecorder()

	ctrl.HandleStatus(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	response := decodeResponse(t, recorder)
	data, err := json.Marshal(response.Data)
	assert.NoError(t, err)

	var status responses.TransportStatus
	assert.NoError(t, json.Unmarshal(data, &status))
	assert.True(t, status.Connected)
	assert.Equal(t, "5730000000", status.HostNumber)
}

func TestHandleInit(t *testing.T) {
	t.Run("Succeeds when the transport connects", func(t *testing.T) {
		ctrl := newTestController(&stubUsecase{}, &stubTransport{})

		req := httptest.NewRequest(http.MethodPost, "/api/whatsapp/init", nil)
		recorder := httptest.NewRecorder()

		ctrl.HandleInit(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("Propagates connection failures", func(t *testing.T) {
		ctrl := newTestController(&stubUsecase{}, &stubTransport{initErr: fmt.Errorf("gateway fuera de línea")})

		req := httptest.NewRequest(http.MethodPost, "/api/whatsapp/init", nil)
		recorder := httptest.NewRecorder()

		ctrl.HandleInit(recorder, req)

		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	})
}
