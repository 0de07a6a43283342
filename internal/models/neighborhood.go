package models

import (
	"time"

	"github.com/google/uuid"
)

// TimeOfDay - часть суток для распределения инцидентов по времени
type TimeOfDay string

const (
	TimeMorning   TimeOfDay = "morning"   // 06-12
	TimeAfternoon TimeOfDay = "afternoon" // 12-18
	TimeEvening   TimeOfDay = "evening"   // 18-24
	TimeNight     TimeOfDay = "night"     // 00-06
)

// TimeOfDayFor возвращает часть суток для часа [0,24)
func TimeOfDayFor(hour int) TimeOfDay {
	switch {
	case hour >= 6 && hour < 12:
		return TimeMorning
	case hour >= 12 && hour < 18:
		return TimeAfternoon
	case hour >= 18 && hour < 24:
		return TimeEvening
	default:
		return TimeNight
	}
}

// Point - географическая точка
type Point struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}

// Polygon - замкнутый контур границы района (внешнее кольцо GeoJSON)
type Polygon []Point

// ScoreTrend - направление изменения скора безопасности
type ScoreTrend string

const (
	TrendPositive ScoreTrend = "positive"
	TrendNeutral  ScoreTrend = "neutral"
	TrendNegative ScoreTrend = "negative"
)

// ScoreHistoryEntry - запись истории скора, append-only с вытеснением FIFO
type ScoreHistoryEntry struct {
	Score         float64   `json:"score"`
	Date          time.Time `json:"date"`
	IncidentCount int       `json:"incident_count"`
}

// ScoreHistoryLimit - максимальная длина истории скора
const ScoreHistoryLimit = 90

// SafetyScore - производный скор безопасности района.
// Current всегда в диапазоне [0,10].
type SafetyScore struct {
	Current float64             `json:"current"`
	Trend   ScoreTrend          `json:"trend"`
	Change  float64             `json:"change"`
	History []ScoreHistoryEntry `json:"history"`
}

// Statistics - скользящая статистика инцидентов района
type Statistics struct {
	Last30Days int                  `json:"last_30_days"`
	Last7Days  int                  `json:"last_7_days"`
	ByType     map[IncidentType]int `json:"by_type"`
	ByTime     map[TimeOfDay]int    `json:"by_time"`
}

// Neighborhood - район города. Границы и центр задаются при создании
// и дальше не меняются; статистика и скор принадлежат движку пересчета.
type Neighborhood struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	City        string      `json:"city"`
	District    string      `json:"district"`
	Boundary    Polygon     `json:"boundary"`
	Center      Point       `json:"center"`
	Population  int         `json:"population"`
	AreaKm2     float64     `json:"area_km2"`
	Statistics  Statistics  `json:"statistics"`
	SafetyScore SafetyScore `json:"safety_score"`
	LastUpdated time.Time   `json:"last_updated"`
	CreatedAt   time.Time   `json:"created_at"`
}
