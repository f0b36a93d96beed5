package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/oriain86/Trading-Platform-Application/internal/config"
	"github.com/oriain86/Trading-Platform-Application/internal/models"
)

// Event routing keys on the topic exchange.
const (
	routingOrderExecuted       = "orders.executed"
	routingOrderCancelled      = "orders.cancelled"
	routingWithdrawalRequested = "withdrawals.requested"
	routingWithdrawalSettled   = "withdrawals.settled"
)

// OrderEvent is the wire form of an order lifecycle event.
type OrderEvent struct {
	EventID   string    `json:"event_id"`
	OrderID   uint      `json:"order_id"`
	UserID    uint      `json:"user_id"`
	OrderType string    `json:"order_type"`
	CoinID    string    `json:"coin_id"`
	Quantity  float64   `json:"quantity"`
	Price     string    `json:"price"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// WithdrawalEvent is the wire form of a withdrawal lifecycle event.
type WithdrawalEvent struct {
	EventID      string    `json:"event_id"`
	WithdrawalID uint      `json:"withdrawal_id"`
	UserID       uint      `json:"user_id"`
	Amount       int64     `json:"amount"`
	Status       string    `json:"status"`
	Timestamp    time.Time `json:"timestamp"`
}

// Publisher pushes domain events onto a durable topic exchange.
type Publisher struct {
	connection *amqp.Connection
	channel    *amqp.Channel
	exchange   string
}

func connectWithRetry(url string, maxRetries int) (*amqp.Connection, error) {
	for i := 0; i < maxRetries; i++ {
		conn, err := amqp.Dial(url)
		if err == nil {
			return conn, nil
		}
		if i < maxRetries-1 {
			wait := time.Duration(1<<uint(i)) * time.Second
			logrus.WithError(err).Warnf("failed to connect to RabbitMQ (attempt %d/%d), retrying in %v", i+1, maxRetries, wait)
			time.Sleep(wait)
		}
	}
	return nil, fmt.Errorf("failed to connect to RabbitMQ after %d retries", maxRetries)
}

func NewPublisher(cfg config.RabbitMQConfig) (*Publisher, error) {
	conn, err := connectWithRetry(cfg.URL, 7)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(
		cfg.Exchange,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	logrus.WithField("exchange", cfg.Exchange).Info("event publisher initialized")

	return &Publisher{
		connection: conn,
		channel:    ch,
		exchange:   cfg.Exchange,
	}, nil
}

func (p *Publisher) PublishOrderExecuted(ctx context.Context, order *models.Order) error {
	return p.publish(ctx, routingOrderExecuted, orderEvent(order))
}

func (p *Publisher) PublishOrderCancelled(ctx context.Context, order *models.Order) error {
	return p.publish(ctx, routingOrderCancelled, orderEvent(order))
}

func (p *Publisher) PublishWithdrawalRequested(ctx context.Context, withdrawal *models.Withdrawal) error {
	return p.publish(ctx, routingWithdrawalRequested, withdrawalEvent(withdrawal))
}

func (p *Publisher) PublishWithdrawalSettled(ctx context.Context, withdrawal *models.Withdrawal) error {
	return p.publish(ctx, routingWithdrawalSettled, withdrawalEvent(withdrawal))
}

func (p *Publisher) publish(ctx context.Context, routingKey string, event interface{}) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = p.channel.PublishWithContext(ctx,
		p.exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", routingKey, err)
	}
	return nil
}

func (p *Publisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.connection != nil {
		return p.connection.Close()
	}
	return nil
}

func orderEvent(order *models.Order) *OrderEvent {
	return &OrderEvent{
		EventID:   uuid.NewString(),
		OrderID:   order.ID,
		UserID:    order.UserID,
		OrderType: string(order.OrderType),
		CoinID:    order.OrderItem.CoinID,
		Quantity:  order.OrderItem.Quantity,
		Price:     order.Price.String(),
		Status:    string(order.Status),
		Timestamp: time.Now(),
	}
}

func withdrawalEvent(withdrawal *models.Withdrawal) *WithdrawalEvent {
	return &WithdrawalEvent{
		EventID:      uuid.NewString(),
		WithdrawalID: withdrawal.ID,
		UserID:       withdrawal.UserID,
		Amount:       withdrawal.Amount,
		Status:       string(withdrawal.Status),
		Timestamp:    time.Now(),
	}
}
