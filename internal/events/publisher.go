package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"grocery/internal/model"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	exchangeName = "grocery.events"
	exchangeType = "topic"

	EventTypeBookingCreated = "booking.created"
)

// Publisher публикует доменные события в RabbitMQ.
// Публикация - best-effort: заказ считается оформленным по факту коммита
// транзакции в БД, ошибка публикации запрос не проваливает.
type Publisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	log     *zap.Logger
}

// Event - сериализуемое доменное событие.
type Event struct {
	EventID   string                 `json:"event_id"`
	EventType string                 `json:"event_type"`
	Timestamp string                 `json:"timestamp"`
	RequestID string                 `json:"request_id,omitempty"`
	Payload   map[string]interface{} `json:"payload"`
}

// NewPublisher подключается к RabbitMQ и объявляет exchange.
func NewPublisher(url string, log *zap.Logger) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("не удалось подключиться к RabbitMQ: %w", err)
	}
	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("не удалось открыть канал: %w", err)
	}
	if err := channel.ExchangeDeclare(
		exchangeName,
		exchangeType,
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("не удалось объявить exchange: %w", err)
	}
	log.Info("подключение к RabbitMQ установлено", zap.String("exchange", exchangeName))
	return &Publisher{conn: conn, channel: channel, log: log}, nil
}

// PublishBookingCreated публикует событие об оформленном заказе.
func (p *Publisher) PublishBookingCreated(ctx context.Context, requestID string, userID int, lines []model.BookingLine) error {
	items := make([]map[string]interface{}, len(lines))
	for i, line := range lines {
		items[i] = map[string]interface{}{"item_id": line.ItemID, "quantity": line.Quantity}
	}
	event := Event{
		EventID:   uuid.New().String(),
		EventType: EventTypeBookingCreated,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		RequestID: requestID,
		Payload: map[string]interface{}{
			"user_id": userID,
			"items":   items,
		},
	}
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("не удалось сериализовать событие: %w", err)
	}
	err = p.channel.PublishWithContext(
		ctx,
		exchangeName,
		EventTypeBookingCreated,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			MessageId:    event.EventID,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("не удалось опубликовать событие: %w", err)
	}
	p.log.Info("событие опубликовано",
		zap.String("event_id", event.EventID),
		zap.String("event_type", event.EventType),
	)
	return nil
}

// IsHealthy проверяет состояние подключения.
func (p *Publisher) IsHealthy() bool {
	return p.conn != nil && !p.conn.IsClosed()
}

// Close закрывает канал и подключение.
func (p *Publisher) Close() error {
	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			p.log.Error("не удалось закрыть канал", zap.Error(err))
		}
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			return err
		}
	}
	return nil
}
