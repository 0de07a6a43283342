package realtime

import (
	"context"
	"time"

	"github.com/shenikar/safety_map_system/internal/models"
)

// Alert - анонимизированное событие о новом инциденте.
// Не содержит координат, идентификаторов и описания.
type Alert struct {
	Type      models.IncidentType `json:"type"`
	Severity  models.Severity     `json:"severity"`
	Timestamp time.Time           `json:"timestamp"`
	Distance  string              `json:"distance"`
}

// NewAlert собирает событие оповещения для инцидента
func NewAlert(incident *models.Incident, now time.Time) Alert {
	return Alert{
		Type:      incident.Type,
		Severity:  incident.Severity,
		Timestamp: now,
		Distance:  "nearby",
	}
}

// AlertPublisher - интерфейс для публикации оповещений в шину рассылки
type AlertPublisher interface {
	Publish(ctx context.Context, cellKey string, alert Alert) error
}
