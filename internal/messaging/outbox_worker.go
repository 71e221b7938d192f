package messaging

import (
	"sync"
	"time"

	"complaint-service/internal/repository"

	"github.com/avast/retry-go"
	"go.uber.org/zap"
)

const (
	workerInterval     = 1 * time.Second
	batchSize          = 50
	cleanupInterval    = 1 * time.Hour
	publishedRetention = 24 * time.Hour

	publishAttempts = 3
	publishDelay    = 200 * time.Millisecond
	publishMaxDelay = 2 * time.Second
)

// OutboxWorker drains pending complaint events from the outbox table and
// publishes them to RabbitMQ.
type OutboxWorker struct {
	outboxRepo *repository.OutboxRepository
	rmq        *RabbitMQ
	logger     *zap.Logger
	done       chan struct{}
	wg         sync.WaitGroup
}

func NewOutboxWorker(outboxRepo *repository.OutboxRepository, rmq *RabbitMQ, logger *zap.Logger) *OutboxWorker {
	return &OutboxWorker{
		outboxRepo: outboxRepo,
		rmq:        rmq,
		logger:     logger,
		done:       make(chan struct{}),
	}
}

func (w *OutboxWorker) Start() {
	w.wg.Add(2)
	go w.processLoop()
	go w.cleanupLoop()
	w.logger.Info("outbox worker started")
}

func (w *OutboxWorker) Stop() {
	close(w.done)
	w.wg.Wait()
	w.logger.Info("outbox worker stopped")
}

func (w *OutboxWorker) processLoop() {
	defer w.wg.Done()

	ticker := time.NewTicker(workerInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.done:
			return
		case <-ticker.C:
			w.processPending()
		}
	}
}

func (w *OutboxWorker) processPending() {
	messages, err := w.outboxRepo.GetPending(batchSize)
	if err != nil {
		w.logger.Error("outbox get pending", zap.Error(err))
		return
	}

	for _, msg := range messages {
		if err := w.publishWithRetry(msg); err != nil {
			w.logger.Warn("outbox publish", zap.String("message_id", msg.ID.String()), zap.Error(err))
			if markErr := w.outboxRepo.MarkFailed(msg.ID, err.Error()); markErr != nil {
				w.logger.Error("outbox mark failed", zap.String("message_id", msg.ID.String()), zap.Error(markErr))
			}
			continue
		}

		if err := w.outboxRepo.MarkPublished(msg.ID); err != nil {
			w.logger.Error("outbox mark published", zap.String("message_id", msg.ID.String()), zap.Error(err))
		}
	}
}

// publishWithRetry retries transient broker failures with backoff before the
// message is handed back to the outbox retry accounting.
func (w *OutboxWorker) publishWithRetry(msg repository.OutboxMessage) error {
	return retry.Do(
		func() error {
			return w.rmq.Publish(msg.ID.String(), msg.RoutingKey, msg.Payload)
		},
		retry.Attempts(publishAttempts),
		retry.Delay(publishDelay),
		retry.MaxDelay(publishMaxDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.OnRetry(func(n uint, err error) {
			w.logger.Debug("outbox publish retry", zap.Uint("attempt", n+1), zap.Error(err))
		}),
	)
}

func (w *OutboxWorker) cleanupLoop() {
	defer w.wg.Done()

	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.done:
			return
		case <-ticker.C:
			deleted, err := w.outboxRepo.DeletePublished(publishedRetention)
			if err != nil {
				w.logger.Error("outbox cleanup", zap.Error(err))
			} else if deleted > 0 {
				w.logger.Info("outbox cleaned", zap.Int64("deleted", deleted))
			}
		}
	}
}

func (w *OutboxWorker) Stats() (map[string]int, error) {
	return w.outboxRepo.Stats()
}
