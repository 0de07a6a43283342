package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/safety_map_system/internal/metrics"
	"github.com/sirupsen/logrus"
)

// RedisAlertPublisher - реализация AlertPublisher поверх Redis pub/sub.
// Каждая гео-ячейка - отдельный канал, чтобы несколько инстансов сервиса
// рассылали оповещения своим подписчикам согласованно.
type RedisAlertPublisher struct {
	redisClient *redis.Client
	prefix      string
}

// NewRedisAlertPublisher создает новый RedisAlertPublisher
func NewRedisAlertPublisher(client *redis.Client, prefix string) *RedisAlertPublisher {
	return &RedisAlertPublisher{
		redisClient: client,
		prefix:      prefix,
	}
}

// Publish публикует оповещение в канал ячейки
func (p *RedisAlertPublisher) Publish(ctx context.Context, cellKey string, alert Alert) error {
	payload, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("failed to marshal alert: %w", err)
	}

	channel := fmt.Sprintf("%s:%s", p.prefix, cellKey)
	if err := p.redisClient.Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish alert to Redis: %w", err)
	}
	metrics.AlertsPublishedTotal.Inc()
	return nil
}

// AlertWorker подписывается на каналы оповещений и доставляет события
// в локальный Hub. Ошибки доставки логируются и не останавливают воркер.
type AlertWorker struct {
	redisClient *redis.Client
	hub         *Hub
	logger      *logrus.Logger
	prefix      string
}

// NewAlertWorker создает новый AlertWorker
func NewAlertWorker(redisClient *redis.Client, hub *Hub, logger *logrus.Logger, prefix string) *AlertWorker {
	return &AlertWorker{
		redisClient: redisClient,
		hub:         hub,
		logger:      logger,
		prefix:      prefix,
	}
}

// Start запускает горутину доставки оповещений из Redis в Hub
func (w *AlertWorker) Start(ctx context.Context) {
	w.logger.Info("Starting alert worker...")
	pubsub := w.redisClient.PSubscribe(ctx, w.prefix+":*")

	go func() {
		defer pubsub.Close()
		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				w.logger.Info("Stopping alert worker.")
				return
			case msg, ok := <-ch:
				if !ok {
					w.logger.Warn("Alert pubsub channel closed")
					return
				}

				// Ключ ячейки - суффикс имени канала
				cellKey := strings.TrimPrefix(msg.Channel, w.prefix+":")

				var alert Alert
				if err := json.Unmarshal([]byte(msg.Payload), &alert); err != nil {
					w.logger.WithError(err).Error("Failed to unmarshal alert from Redis")
					continue
				}

				w.hub.Broadcast(cellKey, alert)
			}
		}
	}()
}
