package requests

import (
	"fmt"

	"dentalbot-service/internal/pkg/constvars"

	"github.com/goccy/go-json"
)

type directEnvelope struct {
	From       string `json:"from"`
	Body       string `json:"body"`
	Type       string `json:"type"`
	FromMe     bool   `json:"fromMe"`
	IsGroupMsg bool   `json:"isGroupMsg"`
}

type businessEnvelope struct {
	Entry []struct {
		Changes []struct {
			Value struct {
				Messages []struct {
					From string `json:"from"`
					Type string `json:"type"`
					Text struct {
						Body string `json:"body"`
					} `json:"text"`
				} `json:"messages"`
			} `json:"value"`
		} `json:"changes"`
	} `json:"entry"`
}

type simplifiedEnvelope struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

type eventEnvelope struct {
	Data *directEnvelope `json:"data"`
}

// NormalizeWebhookPayload reduces the supported inbound envelope shapes to a
// single InboundMessage. Shapes are tried most-specific first; a payload
// matching none of them is an error the caller maps to a 400.
func NormalizeWebhookPayload(raw []byte) (*InboundMessage, error) {
	var business businessEnvelope
	if err := json.Unmarshal(raw, &business); err == nil && len(business.Entry) > 0 {
		for _, entry := range business.Entry {
			for _, change := range entry.Changes {
				if len(change.Value.Messages) == 0 {
					continue
				}
				message := change.Value.Messages[0]
				if message.From == "" {
					continue
				}
				messageType := message.Type
				if messageType == "" {
					messageType = constvars.MessageTypeText
				}
				return &InboundMessage{
					From: message.From,
					Body: message.Text.Body,
					Type: messageType,
				}, nil
			}
		}
	}

	var event eventEnvelope
	if err := json.Unmarshal(raw, &event); err == nil && event.Data != nil && event.Data.From != "" {
		return normalizeDirect(event.Data), nil
	}

	// Non-text messages arrive with an empty body, so a direct envelope only
	// needs a sender plus either a body or a declared type.
	var direct directEnvelope
	if err := json.Unmarshal(raw, &direct); err == nil && direct.From != "" && (direct.Body != "" || direct.Type != "") {
		return normalizeDirect(&direct), nil
	}

	var simplified simplifiedEnvelope
	if err := json.Unmarshal(raw, &simplified); err == nil && simplified.Phone != "" && simplified.Message != "" {
		return &InboundMessage{
			From: simplified.Phone,
			Body: simplified.Message,
			Type: constvars.MessageTypeChat,
		}, nil
	}

	return nil, fmt.Errorf("payload matches no supported webhook shape")
}

func normalizeDirect(envelope *directEnvelope) *InboundMessage {
	messageType := envelope.Type
	if messageType == "" {
		messageType = constvars.MessageTypeChat
	}
	return &InboundMessage{
		From:       envelope.From,
		Body:       envelope.Body,
		Type:       messageType,
		FromMe:     envelope.FromMe,
		IsGroupMsg: envelope.IsGroupMsg,
	}
}
