package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// LogSender writes messages to the log instead of delivering them
type LogSender struct {
	log *zap.SugaredLogger
}

func NewLogSender(log *zap.SugaredLogger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(_ context.Context, msg Message) error {
	s.log.Infow("notification",
		"kind", msg.Kind,
		"to", msg.To,
		"subject", msg.Subject,
		"order_id", msg.OrderID,
		"body", msg.Body,
	)
	return nil
}

type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// AMQPSender publishes messages as JSON to a topic exchange, keyed by message kind.
// A mail worker on the other side does the actual delivery.
type AMQPSender struct {
	url      string
	exchange string
	log      *zap.SugaredLogger

	mu      sync.Mutex
	conn    *amqp.Connection
	channel publisher
}

// DialAMQP connects and declares the exchange
func DialAMQP(url, exchange string, log *zap.SugaredLogger) (*AMQPSender, error) {
	s := &AMQPSender{url: url, exchange: exchange, log: log}
	if err := s.connect(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *AMQPSender) connect() error {
	conn, err := amqp.Dial(s.url)
	if err != nil {
		return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to open channel: %w", err)
	}
	err = ch.ExchangeDeclare(
		s.exchange, // name
		"topic",    // type
		true,       // durable
		false,      // auto-deleted
		false,      // internal
		false,      // no-wait
		nil,        // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return fmt.Errorf("failed to declare exchange %s: %w", s.exchange, err)
	}
	s.conn, s.channel = conn, ch
	return nil
}

// Send publishes one message, reconnecting once if the connection dropped
func (s *AMQPSender) Send(ctx context.Context, msg Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn != nil && s.conn.IsClosed() {
		s.log.Warnw("rabbitmq connection closed, reconnecting", "exchange", s.exchange)
		if err := s.connect(); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	err = s.channel.PublishWithContext(
		ctx,
		s.exchange, // exchange
		msg.Kind,   // routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
			Timestamp:    msg.CreatedAt,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}
	s.log.Debugw("notification published", "exchange", s.exchange, "routing_key", msg.Kind, "size", len(body))
	return nil
}

func (s *AMQPSender) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}
