package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/domain"
)

// ErrPublish возвращается, если событие не удалось отправить
var ErrPublish = errors.New("events: failed to publish event")

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher публикует события изменения записей в Kafka
// Ключ сообщения - ID записи, поэтому события одной записи попадают в одну партицию
type KafkaPublisher struct {
	writer messageWriter
}

// NewKafkaPublisher создает publisher с синхронной записью
func NewKafkaPublisher(brokers []string, topic string, writeTimeout time.Duration) *KafkaPublisher {
	return newKafkaPublisher(&kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		WriteTimeout: writeTimeout,
	})
}

func newKafkaPublisher(writer messageWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: writer}
}

// Publish отправляет событие
func (p *KafkaPublisher) Publish(ctx context.Context, event domain.AppointmentEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: marshal: %v", ErrPublish, err)
	}

	msg := kafka.Message{
		Key:   []byte(event.AppointmentID),
		Value: payload,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(event.EventID)},
			{Key: "event_type", Value: []byte(event.Type)},
			{Key: "salon_id", Value: []byte(event.SalonID)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrPublish, event.Type, err)
	}
	return nil
}

// Close закрывает writer, дожидаясь отправки буфера
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// LogPublisher пишет события в лог (если Kafka выключена)
type LogPublisher struct {
	logger Logger
}

func NewLogPublisher(logger Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(_ context.Context, event domain.AppointmentEvent) error {
	p.logger.Info("Event %s: appointment=%s salon=%s resource=%s %s-%s status=%s",
		event.Type, event.AppointmentID, event.SalonID, event.ResourceID,
		event.Start.Format(time.RFC3339), event.End.Format(time.RFC3339), event.Status)
	return nil
}

func (p *LogPublisher) Close() error {
	return nil
}
