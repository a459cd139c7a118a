package producer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/RoyceAzure/lab/pos/internal/model"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

type OrderEventType string

const (
	OrderEventCreated   OrderEventType = "order.created"
	OrderEventCompleted OrderEventType = "order.completed"
	OrderEventCancelled OrderEventType = "order.cancelled"
)

// OrderEvent 發佈到kafka的訂單事件內容
type OrderEvent struct {
	OrderID     string    `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	UserID      string    `json:"user_id,omitempty"`
	Status      string    `json:"status"`
	TotalCents  int64     `json:"total_cents"`
	OccurredAt  time.Time `json:"occurred_at"`
}

type IOrderEventProducer interface {
	OrderCreated(ctx context.Context, order *model.OrderModel) error
	OrderCompleted(ctx context.Context, order *model.OrderModel) error
	OrderCancelled(ctx context.Context, order *model.OrderModel) error
	Close() error
}

// OrderEventProducer 訂單事件發佈，失敗只記log不影響主流程
type OrderEventProducer struct {
	writer *kafka.Writer
	logger *zerolog.Logger
}

func NewOrderEventProducer(brokers []string, topic string, logger *zerolog.Logger) *OrderEventProducer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{}, // 同一訂單的事件落在同一partition，保序
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 10 * time.Millisecond,
	}
	return &OrderEventProducer{writer: writer, logger: logger}
}

func (p *OrderEventProducer) OrderCreated(ctx context.Context, order *model.OrderModel) error {
	return p.publish(ctx, OrderEventCreated, order)
}

func (p *OrderEventProducer) OrderCompleted(ctx context.Context, order *model.OrderModel) error {
	return p.publish(ctx, OrderEventCompleted, order)
}

func (p *OrderEventProducer) OrderCancelled(ctx context.Context, order *model.OrderModel) error {
	return p.publish(ctx, OrderEventCancelled, order)
}

func (p *OrderEventProducer) publish(ctx context.Context, eventType OrderEventType, order *model.OrderModel) error {
	event := OrderEvent{
		OrderID:     order.ID.String(),
		OrderNumber: order.OrderNumber,
		Status:      string(order.Status),
		TotalCents:  order.TotalCents,
		OccurredAt:  time.Now().UTC(),
	}
	if order.UserID != nil {
		event.UserID = order.UserID.String()
	}

	value, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(order.ID.String()),
		Value: value,
		Headers: []kafka.Header{
			{
				Key:   "event_type",
				Value: []byte(eventType),
			},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error().
			Str("order_id", order.ID.String()).
			Str("event_type", string(eventType)).
			Err(err).
			Msg("failed to publish order event")
		return err
	}
	return nil
}

func (p *OrderEventProducer) Close() error {
	return p.writer.Close()
}

var _ IOrderEventProducer = (*OrderEventProducer)(nil)
