package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/domain"
)

const writeTimeout = 5 * time.Second

// messageWriter часть kafka.Writer, нужная издателю
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher публикует события бронирований в топик Kafka. Ключ сообщения - ID бронирования,
// поэтому события одного бронирования попадают в одну партицию по порядку.
type Publisher struct {
	writer messageWriter
	topic  string
}

// NewPublisher создает издателя с одним writer на процесс
func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			WriteTimeout: writeTimeout,
		},
		topic: topic,
	}
}

// Publish сериализует событие в JSON и пишет его в топик
func (p *Publisher) Publish(ctx context.Context, event domain.BookingEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("events.Publish: marshal %s event: %w", event.Type, err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.BookingID.String()),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(event.Type)},
		},
		Time: event.OccurredAt,
	})
	if err != nil {
		return fmt.Errorf("events.Publish: write to %s: %w", p.topic, err)
	}
	return nil
}

// Close сбрасывает буферы и закрывает соединения
func (p *Publisher) Close() error {
	return p.writer.Close()
}

// Nop издатель для окружений без шины событий
type Nop struct{}

func (Nop) Publish(context.Context, domain.BookingEvent) error { return nil }

func (Nop) Close() error { return nil }
