package geocell

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCellKey_KnownValues(t *testing.T) {
	assert.Equal(t, "loc_4100_2897", CellKey(41.0082, 28.9784))
	assert.Equal(t, "loc_0_0", CellKey(0, 0))
	assert.Equal(t, "loc_5575_3761", CellKey(55.7558, 37.6173))
	// floor, а не усечение: для отрицательных координат уходим вниз
	assert.Equal(t, "loc_-3387_15120", CellKey(-33.8688, 151.2093))
}

func TestCellKey_Deterministic(t *testing.T) {
	first := CellKey(41.0082, 28.9784)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, CellKey(41.0082, 28.9784))
	}
}

func TestCellKey_BoundaryBelongsToUpperCell(t *testing.T) {
	// Точка ровно на границе ячейки относится к ячейке выше
	assert.Equal(t, "loc_4101_2897", CellKey(41.01, 28.9784))
}

func TestCellsOverlapping_SmallRadiusSingleCell(t *testing.T) {
	// Центр ячейки, радиус заведомо меньше половины ячейки
	cells := CellsOverlapping(41.005, 28.975, 100)
	assert.Equal(t, []string{"loc_4100_2897"}, cells)
}

func TestCellsOverlapping_WideRadiusCoversNeighbours(t *testing.T) {
	cells := CellsOverlapping(41.005, 28.975, 2000)
	assert.Greater(t, len(cells), 1)
	assert.Contains(t, cells, CellKey(41.005, 28.975))
	// Соседняя ячейка по широте тоже попадает
	assert.Contains(t, cells, CellKey(41.015, 28.975))
}

func TestCellsOverlapping_ZeroRadius(t *testing.T) {
	assert.Equal(t, []string{CellKey(41.005, 28.975)}, CellsOverlapping(41.005, 28.975, 0))
}

func TestHaversine(t *testing.T) {
	// 0.01 градуса долготы на широте 41 - около 840 метров
	d := Haversine(41.0082, 28.9784, 41.0082, 28.9884)
	assert.InDelta(t, 840, d, 5)

	assert.Zero(t, Haversine(41.0082, 28.9784, 41.0082, 28.9784))

	// Симметричность
	assert.InDelta(t,
		Haversine(41.0, 28.0, 42.0, 29.0),
		Haversine(42.0, 29.0, 41.0, 28.0),
		0.0001)
}
