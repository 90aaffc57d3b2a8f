package retryqueue

import (
	"context"
	"fmt"
	"sync"

	"dentalbot-service/internal/pkg/constvars"
	"dentalbot-service/internal/pkg/dto/requests"
	"dentalbot-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// NotificationMessage is the payload stored in RabbitMQ for a workflow
// notification that failed its first delivery.
type NotificationMessage struct {
	ID          string          `json:"id"`
	Kind        string          `json:"kind"`
	Body        json.RawMessage `json:"body"`
	FailedCount int             `json:"failed_count"`
}

// Service manages the durable retry queue and its dead-letter companion.
type Service struct {
	ch        *amqp.Channel
	log       *zap.Logger
	queueName string
	dlqName   string
	confirms  chan amqp.Confirmation
	mu        sync.Mutex
}

// NewService declares both queues (durable), enables publisher confirms, and
// sets QoS.
func NewService(conn *amqp.Connection, log *zap.Logger, queueName string, prefetch int) (*Service, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	dlqName := queueName + "_dlq"
	for _, name := range []string{queueName, dlqName} {
		_, err = ch.QueueDeclare(
			name,
			true,  // durable
			false, // autoDelete
			false, // exclusive
			false, // noWait
			nil,
		)
		if err != nil {
			return nil, err
		}
	}

	if prefetch <= 0 {
		prefetch = 1
	}
	if err := ch.Qos(prefetch, 0, false); err != nil {
		return nil, err
	}

	if err := ch.Confirm(false); err != nil {
		return nil, err
	}

	svc := &Service{
		ch:        ch,
		log:       log,
		queueName: queueName,
		dlqName:   dlqName,
		confirms:  ch.NotifyPublish(make(chan amqp.Confirmation, 1)),
	}
	return svc, nil
}

// Enqueue implements contracts.NotificationQueue. It wraps the notification
// in a NotificationMessage and publishes it to the retry queue.
func (s *Service) Enqueue(ctx context.Context, kind string, notification *requests.WorkflowNotification) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.log.Info("retryQueue.Enqueue called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQueueNameKey, s.queueName),
	)

	body, err := json.Marshal(notification)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	message := NotificationMessage{
		ID:   uuid.NewString(),
		Kind: kind,
		Body: body,
	}
	return s.publish(ctx, s.queueName, message)
}

// Reenqueue publishes the (possibly modified) message back to the tail of
// the retry queue.
func (s *Service) Reenqueue(ctx context.Context, message NotificationMessage) error {
	return s.publish(ctx, s.queueName, message)
}

// EnqueueToDeadQueue parks a message that exhausted its attempts.
func (s *Service) EnqueueToDeadQueue(ctx context.Context, message NotificationMessage) error {
	return s.publish(ctx, s.dlqName, message)
}

// QueuedItem is a fetched delivery and its decoded payload.
type QueuedItem struct {
	DeliveryTag uint64
	Message     NotificationMessage
}

// FetchN retrieves up to n messages using basic.get without auto-ack.
// Messages that fail to decode are acked and moved to the DLQ so they cannot
// poison the loop.
func (s *Service) FetchN(ctx context.Context, n int) ([]QueuedItem, error) {
	if n <= 0 {
		n = 1
	}
	items := make([]QueuedItem, 0, n)

	for i := 0; i < n; i++ {
		d, ok, err := s.ch.Get(s.queueName, false)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		var payload NotificationMessage
		if err := json.Unmarshal(d.Body, &payload); err != nil {
			_ = d.Ack(false)
			_ = s.publishRaw(ctx, s.dlqName, d.Body)
			continue
		}
		items = append(items, QueuedItem{DeliveryTag: d.DeliveryTag, Message: payload})
	}

	return items, nil
}

// Ack acknowledges a message by delivery tag.
func (s *Service) Ack(deliveryTag uint64) error {
	return s.ch.Ack(deliveryTag, false)
}

func (s *Service) publish(ctx context.Context, queue string, message NotificationMessage) error {
	body, err := json.Marshal(message)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}
	return s.publishRaw(ctx, queue, body)
}

func (s *Service) publishRaw(ctx context.Context, queue string, body []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg := amqp.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp.Persistent,
	}
	if err := s.ch.PublishWithContext(ctx, "", queue, false, false, msg); err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err)
	}

	select {
	case confirmed := <-s.confirms:
		if !confirmed.Ack {
			return exceptions.ErrRabbitMQPublishMessage(fmt.Errorf("message not confirmed"))
		}
	case <-ctx.Done():
		return exceptions.ErrRabbitMQPublishMessage(ctx.Err())
	}
	return nil
}
