package workflow

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"dentalbot-service/internal/app/config"
	"dentalbot-service/internal/app/contracts"
	"dentalbot-service/internal/pkg/constvars"
	"dentalbot-service/internal/pkg/dto/requests"
	"dentalbot-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

var (
	workflowClientInstance contracts.WorkflowClient
	onceWorkflowClient     sync.Once
)

type workflowClient struct {
	bookingClient      *http.Client
	cancellationClient *http.Client
	bookingUrl         string
	cancellationUrl    string
	Log                *zap.Logger
}

func NewWorkflowClient(internalConfig *config.InternalConfig, logger *zap.Logger) contracts.WorkflowClient {
	onceWorkflowClient.Do(func() {
		instance := &workflowClient{
			bookingClient: &http.Client{
				Timeout: time.Duration(internalConfig.Workflow.BookingTimeoutInSeconds) * time.Second,
			},
			cancellationClient: &http.Client{
				Timeout: time.Duration(internalConfig.Workflow.CancellationTimeoutInSeconds) * time.Second,
			},
			bookingUrl:      internalConfig.Workflow.BookingUrl,
			cancellationUrl: internalConfig.Workflow.CancellationUrl,
			Log:             logger,
		}
		workflowClientInstance = instance
	})
	return workflowClientInstance
}

func (c *workflowClient) NotifyBooking(ctx context.Context, notification *requests.WorkflowNotification) (string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("workflowClient.NotifyBooking called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingWorkflowURLKey, c.bookingUrl),
	)

	raw, err := c.post(ctx, c.bookingClient, c.bookingUrl, notification)
	if err != nil {
		c.Log.Error("workflowClient.NotifyBooking error posting notification",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return "", exceptions.ErrWorkflowNotify(err)
	}

	eventID := extractEventID(raw)
	c.Log.Info("workflowClient.NotifyBooking succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEventIDKey, eventID),
	)
	return eventID, nil
}

func (c *workflowClient) NotifyCancellation(ctx context.Context, notification *requests.WorkflowNotification) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("workflowClient.NotifyCancellation called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingWorkflowURLKey, c.cancellationUrl),
	)

	if _, err := c.post(ctx, c.cancellationClient, c.cancellationUrl, notification); err != nil {
		c.Log.Error("workflowClient.NotifyCancellation error posting notification",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrWorkflowNotify(err)
	}

	c.Log.Info("workflowClient.NotifyCancellation succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return nil
}

func (c *workflowClient) post(ctx context.Context, client *http.Client, url string, notification *requests.WorkflowNotification) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("workflow url is not configured")
	}

	body, err := json.Marshal(notification)
	if err != nil {
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("workflow returned status %d: %s", resp.StatusCode, string(raw))
	}
	return raw, nil
}

// extractEventID digs the calendar event identifier out of the workflow
// response. Responses come in several shapes depending on the workflow
// version: an object with eventId, an array whose first element has eventId,
// an object with id, or an object keyed "Event ID". Returns "" when none
// match; the booking proceeds without a linked event in that case.
func extractEventID(raw []byte) string {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err == nil {
		for _, key := range []string{"eventId", "id", "Event ID"} {
			if v, ok := obj[key]; ok {
				if s := rawToString(v); s != "" {
					return s
				}
			}
		}
		return ""
	}

	var arr []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &arr); err == nil && len(arr) > 0 {
		if v, ok := arr[0]["eventId"]; ok {
			return rawToString(v)
		}
	}
	return ""
}

func rawToString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}
