// Package geocell отображает непрерывные координаты в дискретные ячейки
// для группировки подписок и рассылки оповещений. Ячейка ~1.1км x 0.85км
// на средних широтах. Формула ключа должна бит-в-бит совпадать с клиентской.
package geocell

import (
	"fmt"
	"math"
)

const (
	// earthRadiusMeters - средний радиус Земли
	earthRadiusMeters = 6371000.0

	// metersPerDegreeLat - метров в одном градусе широты
	metersPerDegreeLat = 111320.0

	// cellFactor - ячейка равна 0.01 градуса
	cellFactor = 100.0
)

// CellKey возвращает детерминированный ключ ячейки для координат.
// Формат: loc_<floor(lat*100)>_<floor(lng*100)>.
func CellKey(lat, lng float64) string {
	return fmt.Sprintf("loc_%d_%d", int(math.Floor(lat*cellFactor)), int(math.Floor(lng*cellFactor)))
}

// CellsOverlapping возвращает ключи всех ячеек, покрывающих окружность
// заданного радиуса. Рассылка оповещений сознательно использует только
// точную ячейку (CellKey), поэтому подписчики у границы ячейки могут не
// получить событие из соседней - известный компромисс точности.
func CellsOverlapping(lat, lng, radiusMeters float64) []string {
	if radiusMeters <= 0 {
		return []string{CellKey(lat, lng)}
	}

	dLat := radiusMeters / metersPerDegreeLat
	// Метров в градусе долготы становится меньше с ростом широты
	metersPerDegreeLng := metersPerDegreeLat * math.Cos(lat*math.Pi/180)
	dLng := dLat
	if metersPerDegreeLng > 1 {
		dLng = radiusMeters / metersPerDegreeLng
	}

	minLat := int(math.Floor((lat - dLat) * cellFactor))
	maxLat := int(math.Floor((lat + dLat) * cellFactor))
	minLng := int(math.Floor((lng - dLng) * cellFactor))
	maxLng := int(math.Floor((lng + dLng) * cellFactor))

	keys := make([]string, 0, (maxLat-minLat+1)*(maxLng-minLng+1))
	for la := minLat; la <= maxLat; la++ {
		for ln := minLng; ln <= maxLng; ln++ {
			keys = append(keys, fmt.Sprintf("loc_%d_%d", la, ln))
		}
	}
	return keys
}

// Haversine возвращает сферическое расстояние между двумя точками в метрах
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLng := (lng2 - lng1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMeters * c
}
