package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/safety_map_system/internal/models"
	"github.com/shenikar/safety_map_system/internal/service"
)

type NeighborhoodRepository struct {
	db *pgxpool.Pool
}

func NewNeighborhoodRepository(db *pgxpool.Pool) service.NeighborhoodRepository {
	return &NeighborhoodRepository{db: db}
}

const neighborhoodColumns = `
	id,
	name,
	city,
	district,
	ST_AsGeoJSON(boundary::geometry),
	ST_Y(center::geometry),
	ST_X(center::geometry),
	population,
	area_km2,
	statistics,
	safety_score,
	last_updated,
	created_at`

func scanNeighborhood(row pgx.Row) (*models.Neighborhood, error) {
	n := &models.Neighborhood{}
	var boundaryGeo string
	var statsRaw, scoreRaw []byte
	err := row.Scan(
		&n.ID,
		&n.Name,
		&n.City,
		&n.District,
		&boundaryGeo,
		&n.Center.Latitude,
		&n.Center.Longitude,
		&n.Population,
		&n.AreaKm2,
		&statsRaw,
		&scoreRaw,
		&n.LastUpdated,
		&n.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if n.Boundary, err = polygonFromGeoJSON(boundaryGeo); err != nil {
		return nil, fmt.Errorf("failed to decode boundary: %w", err)
	}
	if err := json.Unmarshal(statsRaw, &n.Statistics); err != nil {
		return nil, fmt.Errorf("failed to unmarshal statistics: %w", err)
	}
	if err := json.Unmarshal(scoreRaw, &n.SafetyScore); err != nil {
		return nil, fmt.Errorf("failed to unmarshal safety score: %w", err)
	}
	return n, nil
}

// GetByID возвращает район по его UUID
func (r *NeighborhoodRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Neighborhood, error) {
	query := `SELECT ` + neighborhoodColumns + ` FROM neighborhoods WHERE id = $1;`
	n, err := scanNeighborhood(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: neighborhood %s", models.ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: failed to get neighborhood by id: %v", models.ErrStoreUnavailable, err)
	}
	return n, nil
}

// List возвращает районы, отсортированные по текущему скору безопасности
func (r *NeighborhoodRepository) List(ctx context.Context, city string, limit int) ([]*models.Neighborhood, error) {
	query := `
		SELECT ` + neighborhoodColumns + `
		FROM neighborhoods
		WHERE ($1 = '' OR city = $1)
		ORDER BY (safety_score->>'current')::float DESC
		LIMIT $2;
	`
	rows, err := r.db.Query(ctx, query, city, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list neighborhoods: %v", models.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	neighborhoods := make([]*models.Neighborhood, 0)
	for rows.Next() {
		n, err := scanNeighborhood(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan neighborhood row: %w", err)
		}
		neighborhoods = append(neighborhoods, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration in List: %w", err)
	}
	return neighborhoods, nil
}

// FindByLocation возвращает район, в границы которого попадает точка
func (r *NeighborhoodRepository) FindByLocation(ctx context.Context, lat, lng float64) (*models.Neighborhood, error) {
	query := `
		SELECT ` + neighborhoodColumns + `
		FROM neighborhoods
		WHERE ST_Covers(boundary, ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography)
		LIMIT 1;
	`
	n, err := scanNeighborhood(r.db.QueryRow(ctx, query, lng, lat))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: no neighborhood at (%f, %f)", models.ErrNotFound, lat, lng)
		}
		return nil, fmt.Errorf("%w: failed to find neighborhood by location: %v", models.ErrStoreUnavailable, err)
	}
	return n, nil
}

// ListIDs возвращает идентификаторы всех районов для батчевого пересчета
func (r *NeighborhoodRepository) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, `SELECT id FROM neighborhoods ORDER BY id;`)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list neighborhood ids: %v", models.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan neighborhood id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration in ListIDs: %w", err)
	}
	return ids, nil
}

// UpdateScore сохраняет статистику и скор района после пересчета.
// Границы и центр не трогаются - они неизменяемы после создания.
func (r *NeighborhoodRepository) UpdateScore(ctx context.Context, n *models.Neighborhood) error {
	statsRaw, err := json.Marshal(n.Statistics)
	if err != nil {
		return fmt.Errorf("failed to marshal statistics: %w", err)
	}
	scoreRaw, err := json.Marshal(n.SafetyScore)
	if err != nil {
		return fmt.Errorf("failed to marshal safety score: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx,
		`UPDATE neighborhoods SET statistics = $2, safety_score = $3, last_updated = $4 WHERE id = $1;`,
		n.ID, statsRaw, scoreRaw, n.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("%w: failed to update neighborhood score: %v", models.ErrStoreUnavailable, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: neighborhood %s not found for score update", models.ErrNotFound, n.ID)
	}
	return nil
}

// AverageSafetyScore возвращает средний скор по всем районам
func (r *NeighborhoodRepository) AverageSafetyScore(ctx context.Context) (float64, error) {
	var avg float64
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(AVG((safety_score->>'current')::float), 0) FROM neighborhoods;`,
	).Scan(&avg)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to get average safety score: %v", models.ErrStoreUnavailable, err)
	}
	return avg, nil
}

// polygonFromGeoJSON декодирует внешнее кольцо GeoJSON Polygon
func polygonFromGeoJSON(raw string) (models.Polygon, error) {
	var geo struct {
		Type        string         `json:"type"`
		Coordinates [][][2]float64 `json:"coordinates"`
	}
	if err := json.Unmarshal([]byte(raw), &geo); err != nil {
		return nil, err
	}
	if len(geo.Coordinates) == 0 {
		return nil, fmt.Errorf("polygon has no rings")
	}
	ring := geo.Coordinates[0]
	polygon := make(models.Polygon, 0, len(ring))
	for _, c := range ring {
		polygon = append(polygon, models.Point{Latitude: c[1], Longitude: c[0]})
	}
	return polygon, nil
}
