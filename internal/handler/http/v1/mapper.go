package v1

import (
	"github.com/shenikar/safety_map_system/internal/models"
	"github.com/shenikar/safety_map_system/internal/service"
)

// DTOToIncidentModel преобразует запрос репорта в доменную модель.
// Репорты анонимны по умолчанию, как и на клиенте.
func DTOToIncidentModel(dto SubmitReportRequest) *models.Incident {
	anonymous := true
	if dto.Anonymous != nil {
		anonymous = *dto.Anonymous
	}
	incident := &models.Incident{
		Type:        models.IncidentType(dto.Type),
		Description: dto.Description,
		Latitude:    dto.Location.Latitude,
		Longitude:   dto.Location.Longitude,
		Severity:    models.Severity(dto.Severity),
		Anonymous:   anonymous,
	}
	if !anonymous {
		incident.ReporterRef = dto.ReporterRef
	}
	return incident
}

// PublicToIncidentResponse преобразует публичную проекцию в DTO для ответа
func PublicToIncidentResponse(p *models.PublicIncident) *IncidentResponse {
	return &IncidentResponse{
		ID:          p.ID,
		Type:        string(p.Type),
		Description: p.Description,
		Latitude:    p.Latitude,
		Longitude:   p.Longitude,
		Severity:    string(p.Severity),
		Status:      string(p.Status),
		Upvotes:     p.Upvotes,
		Downvotes:   p.Downvotes,
		CreatedAt:   p.CreatedAt,
	}
}

// PublicsToIncidentResponses преобразует слайс проекций в слайс DTO
func PublicsToIncidentResponses(publics []*models.PublicIncident) []*IncidentResponse {
	responses := make([]*IncidentResponse, len(publics))
	for i, p := range publics {
		responses[i] = PublicToIncidentResponse(p)
	}
	return responses
}

// HeatPointsToResponse преобразует точки тепловой карты в DTO
func HeatPointsToResponse(points []models.HeatPoint) []HeatPointResponse {
	responses := make([]HeatPointResponse, len(points))
	for i, p := range points {
		responses[i] = HeatPointResponse{
			Latitude:  p.Latitude,
			Longitude: p.Longitude,
			Weight:    p.Weight,
		}
	}
	return responses
}

// ModelToNeighborhoodResponse преобразует доменную модель района в DTO.
// Граница района наружу не отдается целиком - только центр и сводка.
func ModelToNeighborhoodResponse(n *models.Neighborhood) *NeighborhoodResponse {
	return &NeighborhoodResponse{
		ID:       n.ID,
		Name:     n.Name,
		City:     n.City,
		District: n.District,
		Center: LocationDTO{
			Latitude:  n.Center.Latitude,
			Longitude: n.Center.Longitude,
		},
		Population: n.Population,
		AreaKm2:    n.AreaKm2,
		SafetyScore: SafetyScoreResponse{
			Current: n.SafetyScore.Current,
			Trend:   string(n.SafetyScore.Trend),
			Change:  n.SafetyScore.Change,
		},
		Last30Days: n.Statistics.Last30Days,
		Last7Days:  n.Statistics.Last7Days,
	}
}

// ModelsToNeighborhoodResponses преобразует слайс моделей в слайс DTO
func ModelsToNeighborhoodResponses(neighborhoods []*models.Neighborhood) []*NeighborhoodResponse {
	responses := make([]*NeighborhoodResponse, len(neighborhoods))
	for i, n := range neighborhoods {
		responses[i] = ModelToNeighborhoodResponse(n)
	}
	return responses
}

// StatsToResponse преобразует сводную статистику в DTO
func StatsToResponse(stats *service.StatsOverview) *StatsOverviewResponse {
	byType := make(map[string]int, len(stats.IncidentsByType))
	for t, count := range stats.IncidentsByType {
		byType[string(t)] = count
	}
	return &StatsOverviewResponse{
		PeriodDays:         stats.PeriodDays,
		TotalIncidents:     stats.TotalIncidents,
		IncidentsByType:    byType,
		HourlyDistribution: stats.HourlyDistribution,
		AverageSafetyScore: stats.AverageSafetyScore,
	}
}
