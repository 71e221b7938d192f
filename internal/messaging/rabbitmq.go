package messaging

import (
	"context"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	ExchangeName = "wastewatch.notifications"
	QueueName    = "complaint.events"

	RoutingKeyComplaintFiled    = "complaint.filed"
	RoutingKeyComplaintResolved = "complaint.resolved"

	reconnectDelay = 5 * time.Second
	publishTimeout = 5 * time.Second
)

// ComplaintFiledMessage is published when a new complaint is created.
type ComplaintFiledMessage struct {
	ComplaintID string `json:"complaint_id"`
	WasteType   string `json:"waste_type"`
	FiledBy     string `json:"filed_by"`
	PickupTime  string `json:"pickup_time"`
	Timestamp   int64  `json:"timestamp"`
}

// ComplaintResolvedMessage is published when an admin marks a complaint resolved.
type ComplaintResolvedMessage struct {
	ComplaintID string `json:"complaint_id"`
	WasteType   string `json:"waste_type"`
	FiledBy     string `json:"filed_by"`
	Timestamp   int64  `json:"timestamp"`
}

// RabbitMQ is the producer side of the notification pipeline. A separate
// consumer service drains the complaint.events queue.
type RabbitMQ struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	url     string
	logger  *zap.Logger
	mu      sync.RWMutex
	done    chan struct{}
}

func NewRabbitMQ(host, port, user, password string, logger *zap.Logger) (*RabbitMQ, error) {
	url := fmt.Sprintf("amqp://%s:%s@%s:%s/", user, password, host, port)

	rmq := &RabbitMQ{
		url:    url,
		logger: logger,
		done:   make(chan struct{}),
	}

	if err := rmq.connect(); err != nil {
		return nil, err
	}

	go rmq.handleReconnect()

	return rmq, nil
}

func (r *RabbitMQ) connect() error {
	var err error

	r.conn, err = amqp.Dial(r.url)
	if err != nil {
		return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	r.channel, err = r.conn.Channel()
	if err != nil {
		r.conn.Close()
		return fmt.Errorf("failed to open channel: %w", err)
	}

	err = r.channel.ExchangeDeclare(
		ExchangeName,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}

	// The queue is declared and bound here so events survive until the
	// notification consumer comes up.
	_, err = r.channel.QueueDeclare(
		QueueName,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	for _, key := range []string{RoutingKeyComplaintFiled, RoutingKeyComplaintResolved} {
		err = r.channel.QueueBind(
			QueueName,
			key,
			ExchangeName,
			false,
			nil,
		)
		if err != nil {
			return fmt.Errorf("failed to bind queue with key %s: %w", key, err)
		}
	}

	r.logger.Info("RabbitMQ connected", zap.String("exchange", ExchangeName), zap.String("queue", QueueName))
	return nil
}

func (r *RabbitMQ) handleReconnect() {
	for {
		select {
		case <-r.done:
			return
		case err := <-r.conn.NotifyClose(make(chan *amqp.Error)):
			if err != nil {
				r.logger.Warn("RabbitMQ connection lost, reconnecting", zap.Error(err))
			}

			r.mu.Lock()
			for {
				if err := r.connect(); err != nil {
					r.logger.Warn("RabbitMQ reconnect failed", zap.Error(err), zap.Duration("retry_in", reconnectDelay))
					time.Sleep(reconnectDelay)
					continue
				}
				break
			}
			r.mu.Unlock()
		}
	}
}

// Publish sends a raw JSON payload to the exchange. The message id makes the
// delivery idempotent for consumers.
func (r *RabbitMQ) Publish(messageID, routingKey string, body []byte) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.channel == nil {
		return fmt.Errorf("channel not available")
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	err := r.channel.PublishWithContext(
		ctx,
		ExchangeName,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    messageID,
			Body:         body,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("publish: %w", err)
	}

	return nil
}

func (r *RabbitMQ) Close() {
	close(r.done)

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.channel != nil {
		r.channel.Close()
	}
	if r.conn != nil {
		r.conn.Close()
	}

	r.logger.Info("RabbitMQ connection closed")
}
