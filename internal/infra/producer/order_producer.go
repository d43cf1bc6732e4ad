package producer

import (
	"context"
	"encoding/json"
	"log"
	"sync/atomic"
	"time"

	"github.com/PouyaFakhri/FitLand-BackEnd/internal/model"
	"github.com/segmentio/kafka-go"
)

type OrderEvent string

var (
	OrderEventCreated OrderEvent = "order_created"
	OrderEventPaid    OrderEvent = "order_paid"
	OrderEventShipped OrderEvent = "order_shipped"
)

type IOrderProducer interface {
	ProduceOrderCreated(ctx context.Context, order *model.Order) error
	ProduceOrderPaid(ctx context.Context, order *model.Order) error
	ProduceOrderShipped(ctx context.Context, order *model.Order) error
	Close() error
}

// OrderProducer 發送訂單事件到kafka
// topic: 由建構時設置 以order id作為partition key保證單一訂單事件順序
type OrderProducer struct {
	writer *kafka.Writer
	closed atomic.Bool
}

func NewOrderProducer(brokers []string, topic string) *OrderProducer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchSize:    100,
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		Async:        false,
		MaxAttempts:  3,

		// 錯誤處理
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...interface{}) {
			log.Printf("kafka producer error: "+msg, args...)
		}),

		// 壓縮設置
		Compression: kafka.Snappy,
	}

	return &OrderProducer{writer: writer}
}

func (p *OrderProducer) ProduceOrderCreated(ctx context.Context, order *model.Order) error {
	return p.produce(ctx, OrderEventCreated, order)
}

func (p *OrderProducer) ProduceOrderPaid(ctx context.Context, order *model.Order) error {
	return p.produce(ctx, OrderEventPaid, order)
}

func (p *OrderProducer) ProduceOrderShipped(ctx context.Context, order *model.Order) error {
	return p.produce(ctx, OrderEventShipped, order)
}

func (p *OrderProducer) produce(ctx context.Context, event OrderEvent, order *model.Order) error {
	if p.closed.Load() {
		return nil
	}

	msg, err := p.convertToMessage(event, order)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, msg)
}

func (p *OrderProducer) convertToMessage(event OrderEvent, order *model.Order) (kafka.Message, error) {
	orderValue, err := json.Marshal(order)
	if err != nil {
		return kafka.Message{}, err
	}

	return kafka.Message{
		Key:   []byte(order.ID),
		Value: orderValue,
		Headers: []kafka.Header{
			{
				Key:   "event_type",
				Value: []byte(event),
			},
		},
	}, nil
}

func (p *OrderProducer) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}
	return p.writer.Close()
}
