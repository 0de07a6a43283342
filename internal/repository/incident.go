package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/safety_map_system/internal/models"
	"github.com/shenikar/safety_map_system/internal/service"
)

const (
	minDescriptionLen = 10
	maxDescriptionLen = 500
	nearbyLimit       = 100
)

type IncidentRepository struct {
	db          *pgxpool.Pool
	redisClient *redis.Client
}

func NewIncidentRepository(db *pgxpool.Pool, redisClient *redis.Client) service.IncidentRepository {
	return &IncidentRepository{
		db:          db,
		redisClient: redisClient,
	}
}

// incidentColumns - общий список колонок для выборок инцидента
const incidentColumns = `
	id,
	type,
	description,
	ST_Y(location::geometry) as latitude,
	ST_X(location::geometry) as longitude,
	severity,
	anonymous,
	COALESCE(reporter_ref, ''),
	status,
	upvotes,
	downvotes,
	COALESCE(verified_by, ''),
	verified_at,
	created_at,
	updated_at`

func scanIncident(row pgx.Row) (*models.Incident, error) {
	incident := &models.Incident{}
	err := row.Scan(
		&incident.ID,
		&incident.Type,
		&incident.Description,
		&incident.Latitude,
		&incident.Longitude,
		&incident.Severity,
		&incident.Anonymous,
		&incident.ReporterRef,
		&incident.Status,
		&incident.Upvotes,
		&incident.Downvotes,
		&incident.VerifiedBy,
		&incident.VerifiedAt,
		&incident.CreatedAt,
		&incident.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return incident, nil
}

// Insert создает новую запись об инциденте в бд.
// Координаты вне диапазона и описание вне [10,500] отклоняются до записи.
func (r *IncidentRepository) Insert(ctx context.Context, incident *models.Incident) error {
	if incident.Latitude < -90 || incident.Latitude > 90 ||
		incident.Longitude < -180 || incident.Longitude > 180 {
		return fmt.Errorf("%w: coordinates out of range", models.ErrValidation)
	}
	// Длина описания считается в символах, не в байтах
	if n := utf8.RuneCountInString(incident.Description); n < minDescriptionLen || n > maxDescriptionLen {
		return fmt.Errorf("%w: description length must be between %d and %d",
			models.ErrValidation, minDescriptionLen, maxDescriptionLen)
	}

	query := `
		INSERT INTO incidents (type, description, location, severity, anonymous, reporter_ref, status)
		VALUES ($1, $2, ST_SetSRID(ST_MakePoint($3, $4), 4326), $5, $6, NULLIF($7, ''), $8)
		RETURNING id, created_at, updated_at;
	`
	err := r.db.QueryRow(ctx, query,
		incident.Type,
		incident.Description,
		incident.Longitude,
		incident.Latitude,
		incident.Severity,
		incident.Anonymous,
		incident.ReporterRef,
		incident.Status,
	).Scan(&incident.ID, &incident.CreatedAt, &incident.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%w: failed to create incident: %v", models.ErrStoreUnavailable, err)
	}
	return nil
}

// GetByID возвращает инцидент по его UUID
func (r *IncidentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Incident, error) {
	query := `SELECT ` + incidentColumns + ` FROM incidents WHERE id = $1;`
	incident, err := scanIncident(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: incident %s", models.ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: failed to get incident by id: %v", models.ErrStoreUnavailable, err)
	}
	return incident, nil
}

// FindNearby возвращает до 100 инцидентов в радиусе от точки, отсортированных
// по геодезическому расстоянию. Учитываются только pending и verified.
func (r *IncidentRepository) FindNearby(ctx context.Context, lat, lng, radiusMeters float64, maxAgeDays int) ([]*models.Incident, error) {
	query := `
		SELECT ` + incidentColumns + `
		FROM incidents
		WHERE
			status IN ('pending', 'verified')
			AND created_at >= NOW() - ($3 * INTERVAL '1 day')
			AND ST_DWithin(
				location,
				ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography,
				$4
			)
		ORDER BY location <-> ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography
		LIMIT $5;
	`
	rows, err := r.db.Query(ctx, query, lng, lat, maxAgeDays, radiusMeters, nearbyLimit)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to find nearby incidents: %v", models.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	incidents := make([]*models.Incident, 0)
	for rows.Next() {
		incident, err := scanIncident(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan incident row in FindNearby: %w", err)
		}
		incidents = append(incidents, incident)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration in FindNearby: %w", err)
	}
	return incidents, nil
}

// FindWithinPolygon возвращает инциденты внутри границы района с даты since.
// Используется пересчетом скоров безопасности.
func (r *IncidentRepository) FindWithinPolygon(ctx context.Context, boundary models.Polygon, since time.Time) ([]*models.Incident, error) {
	geo, err := polygonGeoJSON(boundary)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrValidation, err)
	}

	query := `
		SELECT ` + incidentColumns + `
		FROM incidents
		WHERE
			status IN ('pending', 'verified')
			AND created_at >= $2
			AND ST_Covers(
				ST_SetSRID(ST_GeomFromGeoJSON($1), 4326)::geography,
				location
			);
	`
	rows, err := r.db.Query(ctx, query, geo, since)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to find incidents within polygon: %v", models.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	incidents := make([]*models.Incident, 0)
	for rows.Next() {
		incident, err := scanIncident(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan incident row in FindWithinPolygon: %w", err)
		}
		incidents = append(incidents, incident)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration in FindWithinPolygon: %w", err)
	}
	return incidents, nil
}

// AggregateHeatmap возвращает сырые точки для тепловой карты с даты since
func (r *IncidentRepository) AggregateHeatmap(ctx context.Context, since time.Time) ([]models.HeatSample, error) {
	query := `
		SELECT
			ST_Y(location::geometry) as latitude,
			ST_X(location::geometry) as longitude,
			severity,
			type,
			created_at
		FROM incidents
		WHERE status IN ('pending', 'verified') AND created_at >= $1;
	`
	rows, err := r.db.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to aggregate heatmap: %v", models.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	samples := make([]models.HeatSample, 0)
	for rows.Next() {
		var s models.HeatSample
		if err := rows.Scan(&s.Latitude, &s.Longitude, &s.Severity, &s.Type, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan heatmap row: %w", err)
		}
		samples = append(samples, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration in AggregateHeatmap: %w", err)
	}
	return samples, nil
}

// Vote атомарно применяет голос пользователя к инциденту.
// Чтение-проверка-запись сериализуется блокировкой строки инцидента.
func (r *IncidentRepository) Vote(ctx context.Context, incidentID uuid.UUID, voterID string, choice models.VoteChoice) (int, int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: failed to begin vote tx: %v", models.ErrStoreUnavailable, err)
	}
	defer tx.Rollback(ctx)

	var upvotes, downvotes int
	err = tx.QueryRow(ctx,
		`SELECT upvotes, downvotes FROM incidents WHERE id = $1 FOR UPDATE;`,
		incidentID,
	).Scan(&upvotes, &downvotes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, 0, fmt.Errorf("%w: incident %s", models.ErrNotFound, incidentID)
		}
		return 0, 0, fmt.Errorf("%w: failed to lock incident for vote: %v", models.ErrStoreUnavailable, err)
	}

	var existingVote *models.VoteChoice
	var existing models.VoteChoice
	err = tx.QueryRow(ctx,
		`SELECT vote FROM incident_votes WHERE incident_id = $1 AND voter_id = $2;`,
		incidentID, voterID,
	).Scan(&existing)
	switch {
	case err == nil:
		existingVote = &existing
	case errors.Is(err, pgx.ErrNoRows):
	default:
		return 0, 0, fmt.Errorf("%w: failed to read existing vote: %v", models.ErrStoreUnavailable, err)
	}

	upvotes, downvotes, err = applyVote(upvotes, downvotes, existingVote, choice)
	if err != nil {
		return 0, 0, fmt.Errorf("voter %s: %w", voterID, err)
	}

	if existingVote != nil {
		if _, err := tx.Exec(ctx,
			`UPDATE incident_votes SET vote = $3, created_at = NOW() WHERE incident_id = $1 AND voter_id = $2;`,
			incidentID, voterID, choice,
		); err != nil {
			return 0, 0, mapVoteError(err)
		}
	} else {
		if _, err := tx.Exec(ctx,
			`INSERT INTO incident_votes (incident_id, voter_id, vote) VALUES ($1, $2, $3);`,
			incidentID, voterID, choice,
		); err != nil {
			return 0, 0, mapVoteError(err)
		}
	}

	if _, err := tx.Exec(ctx,
		`UPDATE incidents SET upvotes = $2, downvotes = $3, updated_at = NOW() WHERE id = $1;`,
		incidentID, upvotes, downvotes,
	); err != nil {
		return 0, 0, mapVoteError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, 0, mapVoteError(err)
	}
	return upvotes, downvotes, nil
}

// applyVote вычисляет переход счетчиков при голосе пользователя.
// existing == nil означает первый голос: инкремент ровно одного счетчика.
// Смена голоса переносит ровно одну единицу между счетчиками,
// повторный голос с тем же выбором отклоняется.
func applyVote(upvotes, downvotes int, existing *models.VoteChoice, choice models.VoteChoice) (int, int, error) {
	if existing != nil {
		if *existing == choice {
			return 0, 0, fmt.Errorf("%w: already voted %s", models.ErrDuplicateVote, choice)
		}
		if choice == models.VoteUp {
			return upvotes + 1, downvotes - 1, nil
		}
		return upvotes - 1, downvotes + 1, nil
	}
	if choice == models.VoteUp {
		return upvotes + 1, downvotes, nil
	}
	return upvotes, downvotes + 1, nil
}

// mapVoteError транслирует ошибки postgres в таксономию ядра.
// Нарушение уникальности и сбой сериализации - повод для ретрая на уровне сервиса.
func mapVoteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation, pgerrcode.SerializationFailure, pgerrcode.DeadlockDetected:
			return fmt.Errorf("%w: %v", models.ErrConflict, err)
		}
	}
	return fmt.Errorf("%w: vote failed: %v", models.ErrStoreUnavailable, err)
}

// SetStatus переводит инцидент в новый статус (verify/resolve/reject).
// Физического удаления нет - только смена статуса.
func (r *IncidentRepository) SetStatus(ctx context.Context, id uuid.UUID, status models.IncidentStatus, verifiedBy string) (*models.Incident, error) {
	query := `
		UPDATE incidents SET
			status = $2,
			verified_by = NULLIF($3, ''),
			verified_at = CASE WHEN $2 = 'verified' THEN NOW() ELSE verified_at END,
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + incidentColumns + `;`
	incident, err := scanIncident(r.db.QueryRow(ctx, query, id, status, verifiedBy))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: incident %s", models.ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: failed to set incident status: %v", models.ErrStoreUnavailable, err)
	}
	return incident, nil
}

// CountSince возвращает число учитываемых инцидентов с даты since
func (r *IncidentRepository) CountSince(ctx context.Context, since time.Time) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM incidents WHERE status IN ('pending', 'verified') AND created_at >= $1;`,
		since,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to count incidents: %v", models.ErrStoreUnavailable, err)
	}
	return count, nil
}

// CountByTypeSince возвращает распределение инцидентов по типам с даты since
func (r *IncidentRepository) CountByTypeSince(ctx context.Context, since time.Time) (map[models.IncidentType]int, error) {
	rows, err := r.db.Query(ctx,
		`SELECT type, COUNT(*) FROM incidents
		 WHERE status IN ('pending', 'verified') AND created_at >= $1
		 GROUP BY type;`,
		since,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to count incidents by type: %v", models.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	byType := make(map[models.IncidentType]int)
	for rows.Next() {
		var t models.IncidentType
		var count int
		if err := rows.Scan(&t, &count); err != nil {
			return nil, fmt.Errorf("failed to scan type count row: %w", err)
		}
		byType[t] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration in CountByTypeSince: %w", err)
	}
	return byType, nil
}

// HourlyDistribution возвращает распределение инцидентов по часам суток
func (r *IncidentRepository) HourlyDistribution(ctx context.Context, since time.Time) ([24]int, error) {
	var dist [24]int
	rows, err := r.db.Query(ctx,
		`SELECT EXTRACT(HOUR FROM created_at)::int AS hour, COUNT(*)
		 FROM incidents
		 WHERE status IN ('pending', 'verified') AND created_at >= $1
		 GROUP BY hour;`,
		since,
	)
	if err != nil {
		return dist, fmt.Errorf("%w: failed to get hourly distribution: %v", models.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	for rows.Next() {
		var hour, count int
		if err := rows.Scan(&hour, &count); err != nil {
			return dist, fmt.Errorf("failed to scan hourly row: %w", err)
		}
		if hour >= 0 && hour < 24 {
			dist[hour] = count
		}
	}
	if err := rows.Err(); err != nil {
		return dist, fmt.Errorf("error list iteration in HourlyDistribution: %w", err)
	}
	return dist, nil
}

// GetIncidentFromCache пытается получить инцидент из Redis
func (r *IncidentRepository) GetIncidentFromCache(ctx context.Context, id uuid.UUID) (*models.Incident, error) {
	key := fmt.Sprintf("incident:%s", id.String())
	val, err := r.redisClient.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get incident from cache: %w", err)
	}

	incident := &models.Incident{}
	if err := json.Unmarshal(val, incident); err != nil {
		return nil, fmt.Errorf("failed to unmarshal incident from cache: %w", err)
	}
	return incident, nil
}

// SetIncidentCache сохраняет инцидент в Redis.
// ReporterRef не попадает в кэш (json:"-").
func (r *IncidentRepository) SetIncidentCache(ctx context.Context, incident *models.Incident) error {
	key := fmt.Sprintf("incident:%s", incident.ID.String())
	val, err := json.Marshal(incident)
	if err != nil {
		return fmt.Errorf("failed to marshal incident for cache: %w", err)
	}
	// Устанавливаем срок жизни кэша, например, 5 минут
	if err := r.redisClient.Set(ctx, key, val, 5*time.Minute).Err(); err != nil {
		return fmt.Errorf("failed to set incident in cache: %w", err)
	}
	return nil
}

// InvalidateIncidentCache удаляет инцидент из Redis кэша
func (r *IncidentRepository) InvalidateIncidentCache(ctx context.Context, id uuid.UUID) error {
	key := fmt.Sprintf("incident:%s", id.String())
	if err := r.redisClient.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to invalidate incident cache: %w", err)
	}
	return nil
}

// polygonGeoJSON кодирует границу района в GeoJSON Polygon для PostGIS
func polygonGeoJSON(boundary models.Polygon) (string, error) {
	if len(boundary) < 3 {
		return "", fmt.Errorf("polygon must have at least 3 points")
	}
	ring := make([][2]float64, 0, len(boundary)+1)
	for _, p := range boundary {
		ring = append(ring, [2]float64{p.Longitude, p.Latitude})
	}
	// Замыкаем контур, если не замкнут
	if ring[0] != ring[len(ring)-1] {
		ring = append(ring, ring[0])
	}
	geo := struct {
		Type        string         `json:"type"`
		Coordinates [][][2]float64 `json:"coordinates"`
	}{
		Type:        "Polygon",
		Coordinates: [][][2]float64{ring},
	}
	out, err := json.Marshal(geo)
	if err != nil {
		return "", fmt.Errorf("failed to marshal polygon: %w", err)
	}
	return string(out), nil
}
