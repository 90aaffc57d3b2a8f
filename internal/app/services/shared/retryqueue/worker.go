package retryqueue

import (
	"context"
	"time"

	"dentalbot-service/internal/app/contracts"
	"dentalbot-service/internal/pkg/constvars"
	"dentalbot-service/internal/pkg/dto/requests"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// Worker drains the retry queue on an interval, replaying each notification
// against the workflow. A message that keeps failing is retried up to
// maxAttempts times before it is parked in the DLQ.
type Worker struct {
	queue       *Service
	workflow    contracts.WorkflowClient
	log         *zap.Logger
	interval    time.Duration
	batchSize   int
	maxAttempts int
}

func NewWorker(queue *Service, workflow contracts.WorkflowClient, log *zap.Logger, interval time.Duration, batchSize, maxAttempts int) *Worker {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	if batchSize <= 0 {
		batchSize = 10
	}
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	return &Worker{
		queue:       queue,
		workflow:    workflow,
		log:         log,
		interval:    interval,
		batchSize:   batchSize,
		maxAttempts: maxAttempts,
	}
}

// Start launches the worker goroutine and returns a stop function that
// blocks until the current tick finishes.
func (w *Worker) Start() (stop func()) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		defer close(done)
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				w.tick(ctx)
			}
		}
	}()

	return func() {
		cancel()
		<-done
	}
}

func (w *Worker) tick(ctx context.Context) {
	items, err := w.queue.FetchN(ctx, w.batchSize)
	if err != nil {
		w.log.Error("retryQueue.Worker error fetching messages", zap.Error(err))
		return
	}

	for _, item := range items {
		w.process(ctx, item)
	}
}

func (w *Worker) process(ctx context.Context, item QueuedItem) {
	var notification requests.WorkflowNotification
	if err := json.Unmarshal(item.Message.Body, &notification); err != nil {
		w.log.Error("retryQueue.Worker error decoding notification body",
			zap.String(constvars.LoggingQueueNameKey, w.queue.queueName),
			zap.Error(err),
		)
		_ = w.queue.Ack(item.DeliveryTag)
		_ = w.queue.EnqueueToDeadQueue(ctx, item.Message)
		return
	}

	var deliveryErr error
	switch item.Message.Kind {
	case contracts.NotificationKindCancellation:
		deliveryErr = w.workflow.NotifyCancellation(ctx, &notification)
	default:
		_, deliveryErr = w.workflow.NotifyBooking(ctx, &notification)
	}

	if deliveryErr == nil {
		if err := w.queue.Ack(item.DeliveryTag); err != nil {
			w.log.Error("retryQueue.Worker error acking message", zap.Error(err))
		}
		return
	}

	item.Message.FailedCount++
	w.log.Error("retryQueue.Worker delivery failed",
		zap.Int(constvars.LoggingFailedCountKey, item.Message.FailedCount),
		zap.Error(deliveryErr),
	)

	if item.Message.FailedCount >= w.maxAttempts {
		_ = w.queue.EnqueueToDeadQueue(ctx, item.Message)
	} else {
		_ = w.queue.Reenqueue(ctx, item.Message)
	}
	if err := w.queue.Ack(item.DeliveryTag); err != nil {
		w.log.Error("retryQueue.Worker error acking message", zap.Error(err))
	}
}
