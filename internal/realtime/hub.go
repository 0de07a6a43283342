package realtime

import (
	"sync"

	"github.com/shenikar/safety_map_system/internal/geocell"
	"github.com/shenikar/safety_map_system/internal/metrics"
	"github.com/sirupsen/logrus"
)

// Hub хранит группы подписчиков по ключам гео-ячеек и рассылает
// оповещения ровно в одну ячейку - ту, где произошел инцидент.
// Подписчики соседних ячеек событие не получают.
type Hub struct {
	mu         sync.RWMutex
	cells      map[string]map[string]*subscriber // ключ ячейки -> connID -> подписчик
	conns      map[string]string                 // connID -> ключ ячейки
	logger     *logrus.Logger
	sendBuffer int
}

type subscriber struct {
	connID string
	send   chan Alert
}

func NewHub(logger *logrus.Logger, sendBuffer int) *Hub {
	if sendBuffer < 1 {
		sendBuffer = 1
	}
	return &Hub{
		cells:      make(map[string]map[string]*subscriber),
		conns:      make(map[string]string),
		logger:     logger,
		sendBuffer: sendBuffer,
	}
}

// Join подписывает соединение на ячейку, содержащую координаты.
// Повторный Join того же соединения переносит его в новую ячейку.
// Возвращает канал, в который будут приходить оповещения.
func (h *Hub) Join(connID string, lat, lng float64) <-chan Alert {
	cellKey := geocell.CellKey(lat, lng)

	h.mu.Lock()
	defer h.mu.Unlock()

	h.detachLocked(connID)

	sub := &subscriber{
		connID: connID,
		send:   make(chan Alert, h.sendBuffer),
	}
	if h.cells[cellKey] == nil {
		h.cells[cellKey] = make(map[string]*subscriber)
	}
	h.cells[cellKey][connID] = sub
	h.conns[connID] = cellKey
	metrics.SubscribersGauge.Inc()

	h.logger.WithFields(logrus.Fields{
		"conn_id": connID,
		"cell":    cellKey,
	}).Debug("Subscriber joined cell")
	return sub.send
}

// Leave отписывает соединение и закрывает его канал
func (h *Hub) Leave(connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.detachLocked(connID)
}

// detachLocked снимает подписку без взятия мьютекса. Вызывать под h.mu.
func (h *Hub) detachLocked(connID string) {
	cellKey, ok := h.conns[connID]
	if !ok {
		return
	}
	if sub, ok := h.cells[cellKey][connID]; ok {
		close(sub.send)
		delete(h.cells[cellKey], connID)
		metrics.SubscribersGauge.Dec()
	}
	if len(h.cells[cellKey]) == 0 {
		delete(h.cells, cellKey)
	}
	delete(h.conns, connID)
}

// Broadcast доставляет оповещение всем текущим подписчикам ячейки.
// Отправка неблокирующая: медленный подписчик теряет событие,
// а не тормозит остальных.
func (h *Hub) Broadcast(cellKey string, alert Alert) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, sub := range h.cells[cellKey] {
		select {
		case sub.send <- alert:
		default:
			metrics.AlertsDroppedTotal.Inc()
			h.logger.WithFields(logrus.Fields{
				"conn_id": sub.connID,
				"cell":    cellKey,
			}).Warn("Dropping alert for slow subscriber")
		}
	}
}

// SubscriberCount возвращает число подписчиков ячейки
func (h *Hub) SubscriberCount(cellKey string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.cells[cellKey])
}
