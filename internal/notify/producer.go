// Package notify publishes newly observed trades to Kafka. The downstream
// notification service consumes these events and texts subscribers.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"

	"github.com/withlaguna/stonks-page/internal/models"
)

// Producer publishes trade events to Kafka
type Producer struct {
	writer *kafka.Writer
	topic  string
}

// NewProducer creates a new Kafka producer
func NewProducer(brokers []string, topic string) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
	}

	return &Producer{
		writer: writer,
		topic:  topic,
	}
}

// PublishTradeDetected publishes a TRADE_DETECTED event for one trade.
func (p *Producer) PublishTradeDetected(ctx context.Context, ownerID string, trade models.Trade) error {
	event := models.TradeEvent{
		EventType: models.EventTradeDetected,
		OwnerID:   ownerID,
		Data: models.TradeEventData{
			Ticker:   trade.Ticker,
			Side:     trade.TradeType,
			Quantity: decimal.NewFromFloat(trade.Quantity),
			Price:    decimal.NewFromFloat(trade.Price),
		},
		Timestamp: time.Now(),
	}
	if trade.TradeDate != nil {
		event.Data.TradeDate = *trade.TradeDate
	}
	return p.publish(ctx, trade.Ticker, event)
}

func (p *Producer) publish(ctx context.Context, key string, event models.TradeEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: data,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write message to kafka: %w", err)
	}

	return nil
}

// Close closes the Kafka producer
func (p *Producer) Close() error {
	return p.writer.Close()
}
