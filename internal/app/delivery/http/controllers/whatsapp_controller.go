package controllers

import (
	"fmt"
	"io"
	"net/http"
	"sync"

	"dentalbot-service/internal/app/contracts"
	"dentalbot-service/internal/pkg/constvars"
	"dentalbot-service/internal/pkg/dto/requests"
	"dentalbot-service/internal/pkg/dto/responses"
	"dentalbot-service/internal/pkg/exceptions"
	"dentalbot-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

var (
	whatsAppControllerInstance *WhatsAppController
	onceWhatsAppController     sync.Once
)

type WhatsAppController struct {
	Log                 *zap.Logger
	ConversationUsecase contracts.ConversationUsecase
	WhatsAppService     contracts.WhatsAppService
}

func NewWhatsAppController(logger *zap.Logger, conversationUsecase contracts.ConversationUsecase, whatsAppService contracts.WhatsAppService) *WhatsAppController {
	onceWhatsAppController.Do(func() {
		whatsAppControllerInstance = &WhatsAppController{
			Log:                 logger,
			ConversationUsecase: conversationUsecase,
			WhatsAppService:     whatsAppService,
		}
	})
	return whatsAppControllerInstance
}

// HandleWebhook accepts every supported inbound envelope shape, filters
// out echoes and group chatter, and hands the normalized message to the
// dispatcher.
func (ctrl *WhatsAppController) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	defer r.Body.Close()

	message, err := requests.NormalizeWebhookPayload(raw)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrUnrecognizedPayload(err))
		return
	}

	if message.FromMe || message.IsGroupMsg {
		utils.BuildSuccessResponse(w, constvars.StatusOK, "message filtered", nil)
		return
	}

	if message.Type != constvars.MessageTypeChat && message.Type != constvars.MessageTypeText {
		if sendErr := ctrl.WhatsAppService.SendText(r.Context(), message.From, constvars.ChatTextOnly); sendErr != nil {
			ctrl.Log.Error("whatsAppController.HandleWebhook error sending text-only notice",
				zap.String(constvars.LoggingContactKey, message.From),
				zap.Error(sendErr),
			)
		}
		utils.BuildSuccessResponse(w, constvars.StatusOK, "non-text message ignored", nil)
		return
	}

	if err := ctrl.ConversationUsecase.ProcessMessage(r.Context(), message); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, "message processed", nil)
}

// HandleSendMessage is the manual send endpoint used by clinic staff and
// smoke tests.
func (ctrl *WhatsAppController) HandleSendMessage(w http.ResponseWriter, r *http.Request) {
	var request requests.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	defer r.Body.Close()

	if request.To == "" || request.Message == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingSendFields(fmt.Errorf("both to and message are required")))
		return
	}

	if !ctrl.WhatsAppService.IsConnected() {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrTransportNotConnected(fmt.Errorf("transport is not connected")))
		return
	}

	if err := ctrl.WhatsAppService.SendText(r.Context(), request.To, request.Message); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, "message sent", nil)
}

func (ctrl *WhatsAppController) HandleStatus(w http.ResponseWriter, r *http.Request) {
	status := responses.TransportStatus{
		Connected:  ctrl.WhatsAppService.IsConnected(),
		HostNumber: ctrl.WhatsAppService.HostNumber(),
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, "transport status", status)
}

func (ctrl *WhatsAppController) HandleInit(w http.ResponseWriter, r *http.Request) {
	if err := ctrl.WhatsAppService.Init(r.Context()); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, "transport initialized", nil)
}
