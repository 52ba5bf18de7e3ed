package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/wealthpath/expenses/internal/model"
)

const publishTimeout = 5 * time.Second

// publishChannel is the subset of *amqp.Channel the publisher uses.
type publishChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher sends budget alerts as persistent JSON messages to a direct exchange.
type Publisher struct {
	conn       *amqp.Connection
	channel    publishChannel
	exchange   string
	routingKey string
	retry      RetryConfig
	logger     *slog.Logger
}

// NewPublisher dials url and declares a durable direct exchange plus a queue named
// after routingKey bound to it.
func NewPublisher(url, exchange, routingKey string, logger *slog.Logger) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := declareTopology(ch, exchange, routingKey); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("setup exchange and queue: %w", err)
	}

	p := newPublisher(ch, exchange, routingKey, logger)
	p.conn = conn
	return p, nil
}

func newPublisher(ch publishChannel, exchange, routingKey string, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{
		channel:    ch,
		exchange:   exchange,
		routingKey: routingKey,
		retry:      DefaultRetryConfig(),
		logger:     logger,
	}
}

func declareTopology(ch *amqp.Channel, exchange, routingKey string) error {
	err := ch.ExchangeDeclare(
		exchange,
		"direct",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	_, err = ch.QueueDeclare(
		routingKey,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	if err := ch.QueueBind(routingKey, routingKey, exchange, false, nil); err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}
	return nil
}

// Notify publishes alert. Each attempt is bounded by a five second timeout and
// transient broker errors are retried with backoff.
func (p *Publisher) Notify(ctx context.Context, alert model.BudgetAlert) error {
	body, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("marshal alert: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    alert.Timestamp,
		Body:         body,
	}

	err = withRetry(ctx, p.retry, p.logger, func() error {
		pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
		defer cancel()
		return p.channel.PublishWithContext(pubCtx,
			p.exchange,
			p.routingKey,
			false, // mandatory
			false, // immediate
			msg,
		)
	})
	if err != nil {
		return fmt.Errorf("publish alert: %w", err)
	}

	p.logger.InfoContext(ctx, "Published budget alert",
		slog.String("month", alert.Month.String()),
		slog.String("category_id", alert.CategoryID),
		slog.String("status", string(alert.Status)),
		slog.String("exchange", p.exchange),
	)
	return nil
}

func (p *Publisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
