package service

import (
	"time"

	"github.com/shenikar/safety_map_system/internal/models"
)

// BuildHeatmap строит приватизированный набор точек тепловой карты.
// Фильтрует по окну windowDays, взвешивает по серьезности и округляет
// координаты до 3 знаков - неокругленные координаты за эту границу
// не выходят.
func BuildHeatmap(samples []models.HeatSample, windowDays int, now time.Time) []models.HeatPoint {
	cutoff := now.AddDate(0, 0, -windowDays)

	points := make([]models.HeatPoint, 0, len(samples))
	for _, s := range samples {
		if s.CreatedAt.Before(cutoff) {
			continue
		}
		points = append(points, models.HeatPoint{
			Latitude:  models.RoundCoord(s.Latitude),
			Longitude: models.RoundCoord(s.Longitude),
			Weight:    s.Severity.HeatWeight(),
		})
	}
	return points
}
