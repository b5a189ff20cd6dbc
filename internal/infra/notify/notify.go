package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/domain"
)

// ErrPublish возвращается, если уведомление не удалось отправить
var ErrPublish = errors.New("notify: failed to publish notice")

// Message уведомление для календаря салона
type Message struct {
	SalonID       string        `json:"salonId"`
	AppointmentID string        `json:"appointmentId,omitempty"`
	Operation     string        `json:"operation"`
	Notice        domain.Notice `json:"notice"`
	SentAt        time.Time     `json:"sentAt"`
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

// redisPublisher подмножество *redis.Client, нужное нотификатору
type redisPublisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// RedisNotifier публикует уведомления в канал салона: {prefix}:{salonId}:notices
type RedisNotifier struct {
	client redisPublisher
	prefix string
}

// NewRedisNotifier создает нотификатор поверх redis клиента
func NewRedisNotifier(client redisPublisher, prefix string) *RedisNotifier {
	if prefix == "" {
		prefix = "salon"
	}
	return &RedisNotifier{client: client, prefix: prefix}
}

// Channel возвращает имя канала уведомлений салона
func (n *RedisNotifier) Channel(salonID string) string {
	return fmt.Sprintf("%s:%s:notices", n.prefix, salonID)
}

// Notify публикует уведомление
func (n *RedisNotifier) Notify(ctx context.Context, msg Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("%w: marshal: %v", ErrPublish, err)
	}

	if err := n.client.Publish(ctx, n.Channel(msg.SalonID), payload).Err(); err != nil {
		return fmt.Errorf("%w: channel %s: %v", ErrPublish, n.Channel(msg.SalonID), err)
	}
	return nil
}

// LogNotifier пишет уведомления в лог (если Redis выключен)
type LogNotifier struct {
	logger Logger
}

func NewLogNotifier(logger Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(_ context.Context, msg Message) error {
	n.logger.Info("Notice [%s] salon=%s appointment=%s: %s - %s (%s)",
		msg.Operation, msg.SalonID, msg.AppointmentID, msg.Notice.Title, msg.Notice.Description, msg.Notice.Variant)
	return nil
}
