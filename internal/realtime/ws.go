package realtime

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// clientMessage - входящее сообщение от клиента
type clientMessage struct {
	Event     string  `json:"event"` // join-location | leave-location
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}

// serverMessage - исходящее сообщение клиенту
type serverMessage struct {
	Event string `json:"event"`
	Data  Alert  `json:"data"`
}

// WSHandler обслуживает websocket-подписки на оповещения по гео-ячейкам
type WSHandler struct {
	hub          *Hub
	logger       *logrus.Logger
	upgrader     websocket.Upgrader
	writeTimeout time.Duration
}

// NewWSHandler создает новый WSHandler
func NewWSHandler(hub *Hub, logger *logrus.Logger, writeTimeout time.Duration) *WSHandler {
	return &WSHandler{
		hub:          hub,
		logger:       logger,
		writeTimeout: writeTimeout,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Проверка origin - забота обратного прокси
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Handle апгрейдит соединение и связывает его с Hub
func (h *WSHandler) Handle(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.WithError(err).Warn("Failed to upgrade websocket connection")
		return
	}

	connID := uuid.NewString()
	log := h.logger.WithField("conn_id", connID)
	log.Debug("Websocket client connected")

	// Горутина чтения: join/leave по сообщениям клиента.
	// Канал подписки меняется при каждом join, поэтому пишущая горутина
	// получает его через subCh.
	subCh := make(chan (<-chan Alert), 1)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for {
			var msg clientMessage
			if err := conn.ReadJSON(&msg); err != nil {
				return
			}
			switch msg.Event {
			case "join-location":
				alerts := h.hub.Join(connID, msg.Latitude, msg.Longitude)
				// Вытесняем невычитанную подписку: при нескольких join
				// подряд актуален только последний канал
				select {
				case <-subCh:
				default:
				}
				subCh <- alerts
			case "leave-location":
				h.hub.Leave(connID)
			}
		}
	}()

	defer func() {
		h.hub.Leave(connID)
		conn.Close()
		log.Debug("Websocket client disconnected")
	}()

	var alerts <-chan Alert
	for {
		select {
		case <-done:
			return
		case alerts = <-subCh:
		case alert, ok := <-alerts:
			if !ok {
				// Канал закрыт при переподписке или Leave - ждем новый
				alerts = nil
				continue
			}
			conn.SetWriteDeadline(time.Now().Add(h.writeTimeout))
			if err := conn.WriteJSON(serverMessage{Event: "incident-alert", Data: alert}); err != nil {
				log.WithError(err).Warn("Failed to write alert to websocket")
				return
			}
		}
	}
}
