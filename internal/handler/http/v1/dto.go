package v1

import (
	"time"

	"github.com/google/uuid"
)

// LocationDTO - координаты точки
// @Description Координаты точки
type LocationDTO struct {
	Latitude  float64 `json:"lat" validate:"required,latitude"`
	Longitude float64 `json:"lng" validate:"required,longitude"`
}

// SubmitReportRequest DTO для отправки репорта об инциденте
// @Description DTO для отправки репорта об инциденте
type SubmitReportRequest struct {
	Type        string      `json:"type" validate:"required,oneof=theft suspicious accident harassment other"`
	Description string      `json:"description" validate:"required,min=10,max=500"`
	Location    LocationDTO `json:"location" validate:"required"`
	Severity    string      `json:"severity" validate:"omitempty,oneof=low medium high"`
	Anonymous   *bool       `json:"anonymous"`
	ReporterRef string      `json:"reporter_ref,omitempty"`
}

// VoteRequest DTO для голосования за инцидент
// @Description DTO для голосования за инцидент
type VoteRequest struct {
	VoterID string `json:"voter_id" validate:"required"`
	Vote    string `json:"vote" validate:"required,oneof=up down"`
}

// VerifyRequest DTO для подтверждения инцидента модератором
// @Description DTO для подтверждения инцидента модератором
type VerifyRequest struct {
	ModeratorRef string `json:"moderator_ref" validate:"required"`
}

// IncidentResponse DTO для ответа с публичной проекцией инцидента
// @Description DTO для ответа с публичной проекцией инцидента
type IncidentResponse struct {
	ID          uuid.UUID `json:"id"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Severity    string    `json:"severity"`
	Status      string    `json:"status"`
	Upvotes     int       `json:"upvotes"`
	Downvotes   int       `json:"downvotes"`
	CreatedAt   time.Time `json:"created_at"`
}

// NearbyResponse DTO для ответа со списком инцидентов рядом
// @Description DTO для ответа со списком инцидентов рядом
type NearbyResponse struct {
	Count     int                 `json:"count"`
	Incidents []*IncidentResponse `json:"incidents"`
}

// HeatPointResponse DTO для точки тепловой карты
// @Description DTO для точки тепловой карты
type HeatPointResponse struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
	Weight    int     `json:"weight"`
}

// HeatmapResponse DTO для ответа с тепловой картой
// @Description DTO для ответа с тепловой картой
type HeatmapResponse struct {
	Count int                 `json:"count"`
	Data  []HeatPointResponse `json:"data"`
}

// VoteResponse DTO для ответа с итогами голосования
// @Description DTO для ответа с итогами голосования
type VoteResponse struct {
	Message   string `json:"message"`
	Upvotes   int    `json:"upvotes"`
	Downvotes int    `json:"downvotes"`
}

// SafetyScoreResponse DTO для скора безопасности района
// @Description DTO для скора безопасности района
type SafetyScoreResponse struct {
	Current float64 `json:"current"`
	Trend   string  `json:"trend"`
	Change  float64 `json:"change"`
}

// NeighborhoodResponse DTO для ответа с информацией о районе
// @Description DTO для ответа с информацией о районе
type NeighborhoodResponse struct {
	ID          uuid.UUID           `json:"id"`
	Name        string              `json:"name"`
	City        string              `json:"city"`
	District    string              `json:"district"`
	Center      LocationDTO         `json:"center"`
	Population  int                 `json:"population"`
	AreaKm2     float64             `json:"area_km2"`
	SafetyScore SafetyScoreResponse `json:"safety_score"`
	Last30Days  int                 `json:"last_30_days"`
	Last7Days   int                 `json:"last_7_days"`
}

// UpdateScoresResponse DTO для ответа на пересчет скоров
// @Description DTO для ответа на пересчет скоров
type UpdateScoresResponse struct {
	Message string `json:"message"`
	Updated int    `json:"updated"`
}

// StatsOverviewResponse DTO для сводной статистики
// @Description DTO для сводной статистики
type StatsOverviewResponse struct {
	PeriodDays         int            `json:"period_days"`
	TotalIncidents     int            `json:"total_incidents"`
	IncidentsByType    map[string]int `json:"incidents_by_type"`
	HourlyDistribution [24]int        `json:"hourly_distribution"`
	AverageSafetyScore float64        `json:"average_safety_score"`
}
