package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/streadway/amqp"
)

// Reconciler is the service hook the consumer drives when another component
// announces that a record was corrected elsewhere.
type Reconciler interface {
	Reconcile(ctx context.Context, userID, lessonID string) error
}

// CorrectedEvent is the payload of a progress.corrected notification.
type CorrectedEvent struct {
	UserID   string `json:"user_id"`
	LessonID string `json:"lesson_id"`
}

// EventConsumer listens for progress.corrected notifications on the topic
// exchange and triggers a reconciliation re-check for the named record.
type EventConsumer struct {
	conn       *amqp.Connection
	channel    *amqp.Channel
	queueName  string
	reconciler Reconciler
	shutdown   chan struct{}
}

func NewEventConsumer(amqpURL, exchange string, reconciler Reconciler) (*EventConsumer, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	err = ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	queue, err := ch.QueueDeclare("progress-service.corrections", true, false, false, false, nil)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	if err := ch.QueueBind(queue.Name, "progress.corrected", exchange, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to bind queue: %w", err)
	}

	return &EventConsumer{
		conn:       conn,
		channel:    ch,
		queueName:  queue.Name,
		reconciler: reconciler,
		shutdown:   make(chan struct{}),
	}, nil
}

// Start consumes correction notifications until Close is called. Malformed
// messages are acked and dropped; a reconciliation failure is logged and the
// message requeued once.
func (c *EventConsumer) Start() error {
	deliveries, err := c.channel.Consume(c.queueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	go func() {
		for {
			select {
			case <-c.shutdown:
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}
				c.handle(d)
			}
		}
	}()

	log.Println("Listening for progress.corrected notifications")
	return nil
}

func (c *EventConsumer) handle(d amqp.Delivery) {
	var envelope struct {
		Type    string         `json:"type"`
		Payload CorrectedEvent `json:"payload"`
	}
	if err := json.Unmarshal(d.Body, &envelope); err != nil {
		log.Printf("Dropping malformed correction event: %v", err)
		_ = d.Ack(false)
		return
	}
	if envelope.Payload.UserID == "" || envelope.Payload.LessonID == "" {
		log.Printf("Dropping correction event without user/lesson: %s", d.Body)
		_ = d.Ack(false)
		return
	}

	if err := c.reconciler.Reconcile(context.Background(), envelope.Payload.UserID, envelope.Payload.LessonID); err != nil {
		log.Printf("Reconciliation failed for user %s lesson %s: %v",
			envelope.Payload.UserID, envelope.Payload.LessonID, err)
		_ = d.Nack(false, !d.Redelivered)
		return
	}
	_ = d.Ack(false)
}

func (c *EventConsumer) Close() {
	close(c.shutdown)
	if c.channel != nil {
		_ = c.channel.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
}
