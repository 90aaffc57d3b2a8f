package whatsapp

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"dentalbot-service/internal/app/config"
	"dentalbot-service/internal/app/contracts"
	"dentalbot-service/internal/pkg/constvars"
	"dentalbot-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var (
	whatsAppServiceInstance contracts.WhatsAppService
	onceWhatsAppService     sync.Once
)

type whatsAppService struct {
	httpClient *http.Client
	baseUrl    string
	apiKey     string
	limiter    *rate.Limiter
	Log        *zap.Logger

	mu         sync.RWMutex
	connected  bool
	hostNumber string
}

func NewWhatsAppService(internalConfig *config.InternalConfig, logger *zap.Logger) contracts.WhatsAppService {
	onceWhatsAppService.Do(func() {
		perSecond := internalConfig.WhatsApp.OutboundMessagesPerSecond
		if perSecond <= 0 {
			perSecond = 1
		}
		instance := &whatsAppService{
			httpClient: &http.Client{
				Timeout: time.Duration(internalConfig.WhatsApp.RequestTimeoutInSeconds) * time.Second,
			},
			baseUrl: strings.TrimRight(internalConfig.WhatsApp.BaseUrl, "/"),
			apiKey:  internalConfig.WhatsApp.APIKey,
			limiter: rate.NewLimiter(rate.Limit(perSecond), perSecond),
			Log:     logger,
		}
		whatsAppServiceInstance = instance
	})
	return whatsAppServiceInstance
}

type sendTextArgs struct {
	To      string `json:"to"`
	Content string `json:"content"`
}

type apiRequest struct {
	Args sendTextArgs `json:"args"`
}

type apiResponse struct {
	Response json.RawMessage `json:"response"`
}

func (s *whatsAppService) Init(ctx context.Context) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Info("whatsAppService.Init called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	raw, err := s.post(ctx, "/getHostNumber", []byte(`{"args":{}}`))
	if err != nil {
		s.setConnected(false, "")
		s.Log.Error("whatsAppService.Init error calling getHostNumber",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}

	var parsed apiResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		s.setConnected(false, "")
		return exceptions.ErrCannotParseJSON(err)
	}

	var hostNumber string
	if err := json.Unmarshal(parsed.Response, &hostNumber); err != nil {
		// Some transport versions return the number unquoted.
		hostNumber = strings.Trim(string(parsed.Response), `"`)
	}
	s.setConnected(true, hostNumber)

	s.Log.Info("whatsAppService.Init succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return nil
}

func (s *whatsAppService) SendText(ctx context.Context, to, message string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Info("whatsAppService.SendText called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDestinationKey, to),
	)

	if !s.IsConnected() {
		// One reconnect attempt before giving up.
		if err := s.Init(ctx); err != nil {
			return exceptions.ErrTransportNotConnected(err)
		}
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return exceptions.ErrTransportSend(err)
	}

	body, err := json.Marshal(apiRequest{Args: sendTextArgs{To: ensureChatID(to), Content: message}})
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	if _, err := s.post(ctx, "/sendText", body); err != nil {
		s.setConnected(false, "")
		s.Log.Error("whatsAppService.SendText error posting message",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDestinationKey, to),
			zap.Error(err),
		)
		return exceptions.ErrTransportSend(err)
	}

	s.Log.Info("whatsAppService.SendText succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDestinationKey, to),
	)
	return nil
}

func (s *whatsAppService) IsConnected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.connected
}

func (s *whatsAppService) HostNumber() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hostNumber
}

func (s *whatsAppService) setConnected(connected bool, hostNumber string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connected = connected
	if connected {
		s.hostNumber = hostNumber
	}
}

func (s *whatsAppService) post(ctx context.Context, path string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseUrl+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	if s.apiKey != "" {
		req.Header.Set("api_key", s.apiKey)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("transport returned status %d: %s", resp.StatusCode, string(raw))
	}
	return raw, nil
}

func ensureChatID(to string) string {
	if strings.Contains(to, "@") {
		return to
	}
	return to + "@c.us"
}
