package session

import (
	"context"
	"sync"
	"time"

	"dentalbot-service/internal/app/contracts"
	"dentalbot-service/internal/app/models"
	"dentalbot-service/internal/pkg/constvars"
	"dentalbot-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

var (
	sessionServiceInstance contracts.SessionService
	onceSessionService     sync.Once
)

type sessionService struct {
	RedisRepository contracts.RedisRepository
	SessionTimeout  time.Duration
	Log             *zap.Logger
}

func NewSessionService(redisRepository contracts.RedisRepository, sessionTimeout time.Duration, logger *zap.Logger) contracts.SessionService {
	onceSessionService.Do(func() {
		instance := &sessionService{
			RedisRepository: redisRepository,
			SessionTimeout:  sessionTimeout,
			Log:             logger,
		}
		sessionServiceInstance = instance
	})
	return sessionServiceInstance
}

// Get returns the stored session for the contact, or nil when none exists
// or the TTL already expired.
func (svc *sessionService) Get(ctx context.Context, contact string) (*models.ConversationSession, error) {
	sessionData, err := svc.RedisRepository.Get(ctx, constvars.RedisKeyConversationSession+contact)
	if err != nil {
		return nil, err
	}
	if sessionData == "" {
		return nil, nil
	}

	session := new(models.ConversationSession)
	if err := json.Unmarshal([]byte(sessionData), session); err != nil {
		return nil, exceptions.ErrCannotParseJSON(err)
	}
	return session, nil
}

// Save stores the session and rearms the inactivity TTL.
func (svc *sessionService) Save(ctx context.Context, session *models.ConversationSession) error {
	session.UpdatedAt = time.Now()
	return svc.RedisRepository.Set(ctx, constvars.RedisKeyConversationSession+session.Contact, session, svc.SessionTimeout)
}

func (svc *sessionService) Clear(ctx context.Context, contact string) error {
	return svc.RedisRepository.Delete(ctx, constvars.RedisKeyConversationSession+contact)
}
