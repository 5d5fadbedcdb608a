package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"microblog/internal/cache"
	"microblog/internal/platform/rabbitmq"
)

// StatsWorker consumes message lifecycle events and keeps the
// per-author message counters in Redis current. It runs outside the
// request path; losing it only stales the counters, never the data.
type StatsWorker struct {
	conn      *amqp.Connection
	stats     *cache.TimelineCache
	queueName string
	log       *zap.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewStatsWorker(conn *amqp.Connection, stats *cache.TimelineCache, queueName string, log *zap.Logger) *StatsWorker {
	return &StatsWorker{
		conn:      conn,
		stats:     stats,
		queueName: queueName,
		log:       log,
	}
}

func (w *StatsWorker) Start(ctx context.Context) error {
	if w.cancel != nil {
		return nil
	}

	workerCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	ch, err := w.conn.Channel()
	if err != nil {
		cancel()
		return fmt.Errorf("open worker channel failed: %w", err)
	}

	_, err = ch.QueueDeclare(
		w.queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("declare worker queue failed: %w", err)
	}

	deliveries, err := ch.Consume(
		w.queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("consume queue failed: %w", err)
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer ch.Close()

		for {
			select {
			case <-workerCtx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}

				var event rabbitmq.MessageEvent
				if err := json.Unmarshal(d.Body, &event); err != nil {
					w.log.Warn("worker decode event failed", zap.Error(err))
					_ = d.Nack(false, false)
					continue
				}

				if err := w.apply(workerCtx, event); err != nil {
					w.log.Warn("worker apply event failed",
						zap.String("action", event.Action),
						zap.Uint("message_id", event.Message.ID),
						zap.Error(err))
					_ = d.Nack(false, false)
					continue
				}

				_ = d.Ack(false)
			}
		}
	}()

	return nil
}

func (w *StatsWorker) apply(ctx context.Context, event rabbitmq.MessageEvent) error {
	switch event.Action {
	case rabbitmq.ActionCreated:
		return w.stats.IncrAuthorCount(ctx, event.Message.PostedBy)
	case rabbitmq.ActionDeleted:
		return w.stats.DecrAuthorCount(ctx, event.Message.PostedBy)
	default:
		// updates do not move the counter
		return nil
	}
}

func (w *StatsWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}
