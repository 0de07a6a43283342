package realtime

import (
	"bytes"
	"testing"
	"time"

	"github.com/shenikar/safety_map_system/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub(sendBuffer int) *Hub {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах
	return NewHub(logger, sendBuffer)
}

func testAlert() Alert {
	return Alert{
		Type:      models.TypeTheft,
		Severity:  models.SeverityHigh,
		Timestamp: time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC),
		Distance:  "nearby",
	}
}

func TestHub_BroadcastDeliversToCellSubscribers(t *testing.T) {
	// Подготовка: оба подписчика в одной ячейке (координаты чуть различаются)
	hub := newTestHub(4)
	first := hub.Join("conn-1", 41.0082, 28.9784)
	second := hub.Join("conn-2", 41.0099, 28.9790)

	// Действие
	hub.Broadcast("loc_4100_2897", testAlert())

	// Проверки
	select {
	case alert := <-first:
		assert.Equal(t, models.TypeTheft, alert.Type)
	default:
		t.Fatal("first subscriber did not receive alert")
	}
	select {
	case alert := <-second:
		assert.Equal(t, "nearby", alert.Distance)
	default:
		t.Fatal("second subscriber did not receive alert")
	}
}

func TestHub_NeighborCellDoesNotReceive(t *testing.T) {
	// Подготовка: подписчик в соседней ячейке
	hub := newTestHub(4)
	neighbor := hub.Join("conn-1", 41.0200, 28.9784)

	// Действие
	hub.Broadcast("loc_4100_2897", testAlert())

	// Проверки: событие не пересекает границу ячейки
	select {
	case <-neighbor:
		t.Fatal("neighbor cell must not receive alert")
	default:
	}
}

func TestHub_RejoinMovesSubscriber(t *testing.T) {
	// Подготовка
	hub := newTestHub(4)
	old := hub.Join("conn-1", 41.0082, 28.9784)
	require.Equal(t, 1, hub.SubscriberCount("loc_4100_2897"))

	// Действие: повторный Join переносит соединение в новую ячейку
	fresh := hub.Join("conn-1", 55.7558, 37.6173)

	// Проверки
	assert.Equal(t, 0, hub.SubscriberCount("loc_4100_2897"))
	assert.Equal(t, 1, hub.SubscriberCount("loc_5575_3761"))

	// Старый канал закрыт
	_, ok := <-old
	assert.False(t, ok)

	hub.Broadcast("loc_5575_3761", testAlert())
	select {
	case alert := <-fresh:
		assert.Equal(t, models.SeverityHigh, alert.Severity)
	default:
		t.Fatal("subscriber did not receive alert in new cell")
	}
}

func TestHub_LeaveClosesChannel(t *testing.T) {
	// Подготовка
	hub := newTestHub(4)
	ch := hub.Join("conn-1", 41.0082, 28.9784)

	// Действие
	hub.Leave("conn-1")

	// Проверки
	_, ok := <-ch
	assert.False(t, ok)
	assert.Equal(t, 0, hub.SubscriberCount("loc_4100_2897"))

	// Повторный Leave безопасен
	hub.Leave("conn-1")
}

func TestHub_SlowSubscriberDropsAlert(t *testing.T) {
	// Подготовка: буфер на одно событие
	hub := newTestHub(1)
	ch := hub.Join("conn-1", 41.0082, 28.9784)

	// Действие: второе событие не помещается и отбрасывается
	hub.Broadcast("loc_4100_2897", testAlert())
	hub.Broadcast("loc_4100_2897", testAlert())

	// Проверки: доставлено ровно одно
	<-ch
	select {
	case <-ch:
		t.Fatal("second alert should have been dropped")
	default:
	}
}

func TestHub_BroadcastToEmptyCell(t *testing.T) {
	// Действие: рассылка в пустую ячейку не паникует
	hub := newTestHub(4)
	hub.Broadcast("loc_0_0", testAlert())
}

func TestNewAlert_OmitsLocationDetails(t *testing.T) {
	// Подготовка
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	incident := &models.Incident{
		Type:        models.TypeHarassment,
		Severity:    models.SeverityMedium,
		Description: "Подробности, которые не должны уходить в рассылку",
		Latitude:    41.0082,
		Longitude:   28.9784,
	}

	// Действие
	alert := NewAlert(incident, now)

	// Проверки: только тип, серьезность, время и огрубленная дистанция
	assert.Equal(t, Alert{
		Type:      models.TypeHarassment,
		Severity:  models.SeverityMedium,
		Timestamp: now,
		Distance:  "nearby",
	}, alert)
}

func TestHub_BroadcastPreservesOrder(t *testing.T) {
	// Подготовка
	hub := newTestHub(4)
	ch := hub.Join("conn-1", 41.0082, 28.9784)

	first := testAlert()
	first.Type = models.TypeTheft
	second := testAlert()
	second.Type = models.TypeAccident

	// Действие
	hub.Broadcast("loc_4100_2897", first)
	hub.Broadcast("loc_4100_2897", second)

	// Проверки: порядок доставки совпадает с порядком рассылки
	assert.Equal(t, models.TypeTheft, (<-ch).Type)
	assert.Equal(t, models.TypeAccident, (<-ch).Type)
}
