package models

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// IncidentType - закрытый набор типов инцидентов
type IncidentType string

const (
	TypeTheft      IncidentType = "theft"
	TypeSuspicious IncidentType = "suspicious"
	TypeAccident   IncidentType = "accident"
	TypeHarassment IncidentType = "harassment"
	TypeOther      IncidentType = "other"
)

// Severity - уровень серьезности инцидента
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// HeatWeight возвращает вес точки для тепловой карты
func (s Severity) HeatWeight() int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	default:
		return 1
	}
}

// IncidentStatus - статус жизненного цикла инцидента.
// Инциденты никогда не удаляются физически, только меняют статус.
type IncidentStatus string

const (
	StatusPending  IncidentStatus = "pending"
	StatusVerified IncidentStatus = "verified"
	StatusResolved IncidentStatus = "resolved"
	StatusRejected IncidentStatus = "rejected"
)

// VoteChoice - вариант голоса за достоверность инцидента
type VoteChoice string

const (
	VoteUp   VoteChoice = "up"
	VoteDown VoteChoice = "down"
)

type Incident struct {
	ID          uuid.UUID      `json:"id"`
	Type        IncidentType   `json:"type"`
	Description string         `json:"description"`
	Latitude    float64        `json:"latitude"`
	Longitude   float64        `json:"longitude"`
	Severity    Severity       `json:"severity"`
	Anonymous   bool           `json:"anonymous"`
	ReporterRef string         `json:"-"` // Непрозрачный идентификатор, наружу не отдается
	Status      IncidentStatus `json:"status"`
	Upvotes     int            `json:"upvotes"`
	Downvotes   int            `json:"downvotes"`
	VerifiedBy  string         `json:"-"`
	VerifiedAt  *time.Time     `json:"verified_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// PublicIncident - публичная проекция инцидента.
// Координаты всегда округлены до 3 знаков (~111м), ReporterRef не выводится.
type PublicIncident struct {
	ID          uuid.UUID      `json:"id"`
	Type        IncidentType   `json:"type"`
	Description string         `json:"description"`
	Latitude    float64        `json:"latitude"`
	Longitude   float64        `json:"longitude"`
	Severity    Severity       `json:"severity"`
	Status      IncidentStatus `json:"status"`
	Upvotes     int            `json:"upvotes"`
	Downvotes   int            `json:"downvotes"`
	CreatedAt   time.Time      `json:"created_at"`
}

// RoundCoord округляет координату до 3 знаков после запятой (~111м точности)
func RoundCoord(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// ToPublic возвращает анонимизированную проекцию инцидента.
// Для анонимных репортов описание маскируется.
func (i *Incident) ToPublic() *PublicIncident {
	description := i.Description
	if i.Anonymous {
		description = "Anonymous report"
	}
	return &PublicIncident{
		ID:          i.ID,
		Type:        i.Type,
		Description: description,
		Latitude:    RoundCoord(i.Latitude),
		Longitude:   RoundCoord(i.Longitude),
		Severity:    i.Severity,
		Status:      i.Status,
		Upvotes:     i.Upvotes,
		Downvotes:   i.Downvotes,
		CreatedAt:   i.CreatedAt,
	}
}

// HeatPoint - взвешенная точка тепловой карты с уже округленными координатами
type HeatPoint struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
	Weight    int     `json:"weight"`
}

// HeatSample - сырая строка агрегации для тепловой карты.
// Содержит неокругленные координаты и не должна покидать слой сервиса.
type HeatSample struct {
	Latitude  float64
	Longitude float64
	Severity  Severity
	Type      IncidentType
	CreatedAt time.Time
}
