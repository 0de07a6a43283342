package service

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/shenikar/safety_map_system/internal/config"
	"github.com/shenikar/safety_map_system/internal/geocell"
	"github.com/shenikar/safety_map_system/internal/metrics"
	"github.com/shenikar/safety_map_system/internal/models"
	"github.com/shenikar/safety_map_system/internal/realtime"
	"github.com/sirupsen/logrus"
)

// IncidentRepository определяет контракт для работы с хранилищем инцидентов
type IncidentRepository interface {
	Insert(ctx context.Context, incident *models.Incident) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Incident, error)
	FindNearby(ctx context.Context, lat, lng, radiusMeters float64, maxAgeDays int) ([]*models.Incident, error)
	FindWithinPolygon(ctx context.Context, boundary models.Polygon, since time.Time) ([]*models.Incident, error)
	AggregateHeatmap(ctx context.Context, since time.Time) ([]models.HeatSample, error)
	Vote(ctx context.Context, incidentID uuid.UUID, voterID string, choice models.VoteChoice) (int, int, error)
	SetStatus(ctx context.Context, id uuid.UUID, status models.IncidentStatus, verifiedBy string) (*models.Incident, error)
	CountSince(ctx context.Context, since time.Time) (int, error)
	CountByTypeSince(ctx context.Context, since time.Time) (map[models.IncidentType]int, error)
	HourlyDistribution(ctx context.Context, since time.Time) ([24]int, error)
	GetIncidentFromCache(ctx context.Context, id uuid.UUID) (*models.Incident, error)
	SetIncidentCache(ctx context.Context, incident *models.Incident) error
	InvalidateIncidentCache(ctx context.Context, id uuid.UUID) error
}

// NeighborhoodRepository определяет контракт для работы с хранилищем районов
type NeighborhoodRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Neighborhood, error)
	List(ctx context.Context, city string, limit int) ([]*models.Neighborhood, error)
	FindByLocation(ctx context.Context, lat, lng float64) (*models.Neighborhood, error)
	ListIDs(ctx context.Context) ([]uuid.UUID, error)
	UpdateScore(ctx context.Context, n *models.Neighborhood) error
	AverageSafetyScore(ctx context.Context) (float64, error)
}

// VoteResult - итоговые счетчики после применения голоса
type VoteResult struct {
	Upvotes   int `json:"upvotes"`
	Downvotes int `json:"downvotes"`
}

// StatsOverview - сводная статистика по инцидентам и скорам
type StatsOverview struct {
	PeriodDays         int                        `json:"period_days"`
	TotalIncidents     int                        `json:"total_incidents"`
	IncidentsByType    map[models.IncidentType]int `json:"incidents_by_type"`
	HourlyDistribution [24]int                    `json:"hourly_distribution"`
	AverageSafetyScore float64                    `json:"average_safety_score"`
}

// IncidentService определяет контракт бизнес-логики работы с репортами
type IncidentService interface {
	SubmitReport(ctx context.Context, incident *models.Incident) (*models.PublicIncident, error)
	GetIncident(ctx context.Context, id uuid.UUID) (*models.PublicIncident, error)
	VoteIncident(ctx context.Context, id uuid.UUID, voterID string, choice models.VoteChoice) (*VoteResult, error)
	FindNearby(ctx context.Context, lat, lng, radiusMeters float64, maxAgeDays int) ([]*models.PublicIncident, error)
	Heatmap(ctx context.Context, windowDays int) ([]models.HeatPoint, error)
	VerifyIncident(ctx context.Context, id uuid.UUID, moderatorRef string) (*models.PublicIncident, error)
	StatsOverview(ctx context.Context, days int) (*StatsOverview, error)
}

type incidentService struct {
	repo          IncidentRepository
	neighborhoods NeighborhoodRepository
	alerts        realtime.AlertPublisher
	logger        *logrus.Logger
	cfg           *config.Config
	clock         clockwork.Clock
}

func NewIncidentService(
	repo IncidentRepository,
	neighborhoods NeighborhoodRepository,
	alerts realtime.AlertPublisher,
	logger *logrus.Logger,
	cfg *config.Config,
	clock clockwork.Clock,
) IncidentService {
	return &incidentService{
		repo:          repo,
		neighborhoods: neighborhoods,
		alerts:        alerts,
		logger:        logger,
		cfg:           cfg,
		clock:         clock,
	}
}

var validTypes = map[models.IncidentType]bool{
	models.TypeTheft:      true,
	models.TypeSuspicious: true,
	models.TypeAccident:   true,
	models.TypeHarassment: true,
	models.TypeOther:      true,
}

var validSeverities = map[models.Severity]bool{
	models.SeverityLow:    true,
	models.SeverityMedium: true,
	models.SeverityHigh:   true,
}

// validateReport проверяет репорт на границе приема.
// Дальше этой точки непроверенные значения не проходят.
func validateReport(incident *models.Incident) error {
	if !validTypes[incident.Type] {
		return fmt.Errorf("%w: unknown incident type %q", models.ErrValidation, incident.Type)
	}
	if incident.Severity == "" {
		incident.Severity = models.SeverityMedium
	}
	if !validSeverities[incident.Severity] {
		return fmt.Errorf("%w: unknown severity %q", models.ErrValidation, incident.Severity)
	}
	if incident.Latitude < -90 || incident.Latitude > 90 {
		return fmt.Errorf("%w: latitude out of range", models.ErrValidation)
	}
	if incident.Longitude < -180 || incident.Longitude > 180 {
		return fmt.Errorf("%w: longitude out of range", models.ErrValidation)
	}
	// Длина описания считается в символах, не в байтах
	if n := utf8.RuneCountInString(incident.Description); n < 10 || n > 500 {
		return fmt.Errorf("%w: description length must be between 10 and 500", models.ErrValidation)
	}
	return nil
}

// SubmitReport проводит репорт по конвейеру:
// received -> validated -> anonymized -> stored -> fanout-notified.
// Сбой валидации прерывает без записи; сбой рассылки после записи
// логируется и не откатывает сохраненный инцидент.
func (s *incidentService) SubmitReport(ctx context.Context, incident *models.Incident) (*models.PublicIncident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "incident",
		"method":  "SubmitReport",
		"type":    incident.Type,
	})
	log.Info("Attempting to submit a new report")

	if err := validateReport(incident); err != nil {
		metrics.ReportsRejectedTotal.Inc()
		log.WithError(err).Warn("Report validation failed")
		return nil, err
	}

	// Анонимизация: для анонимных репортов ссылка на репортера не сохраняется
	if incident.Anonymous {
		incident.ReporterRef = ""
	}
	incident.Status = models.StatusPending

	if err := s.repo.Insert(ctx, incident); err != nil {
		log.WithError(err).Error("Failed to store incident in repository")
		return nil, fmt.Errorf("service: could not store report: %w", err)
	}
	metrics.ReportsSubmittedTotal.WithLabelValues(string(incident.Type)).Inc()

	// Рассылка - best-effort в отдельной горутине: запись уже финальна,
	// ответ клиенту не ждет шину, ошибка публикации не возвращается.
	// Контекст отвязан от запроса, чтобы отдача ответа не обрывала публикацию.
	cellKey := geocell.CellKey(incident.Latitude, incident.Longitude)
	alert := realtime.NewAlert(incident, s.clock.Now())
	pubCtx := context.WithoutCancel(ctx)
	go func() {
		if err := s.alerts.Publish(pubCtx, cellKey, alert); err != nil {
			log.WithError(err).WithField("cell", cellKey).Warn("Failed to publish incident alert")
		}
	}()

	log.WithField("incident_id", incident.ID).Info("Report submitted successfully")
	return incident.ToPublic(), nil
}

// GetIncident возвращает публичную проекцию инцидента по ID
func (s *incidentService) GetIncident(ctx context.Context, id uuid.UUID) (*models.PublicIncident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "GetIncident",
		"incident_id": id,
	})

	// Сначала пробуем кеш
	cached, err := s.repo.GetIncidentFromCache(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Failed to read incident cache")
	}
	if cached != nil {
		return cached.ToPublic(), nil
	}

	incident, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Failed to get incident from repository")
		return nil, fmt.Errorf("service: could not get incident: %w", err)
	}

	if err := s.repo.SetIncidentCache(ctx, incident); err != nil {
		log.WithError(err).Warn("Failed to cache incident")
	}
	return incident.ToPublic(), nil
}

// VoteIncident применяет голос с ограниченным числом ретраев при конфликте
// конкурентной записи. Повторный голос с тем же выбором - ошибка идемпотентности.
func (s *incidentService) VoteIncident(ctx context.Context, id uuid.UUID, voterID string, choice models.VoteChoice) (*VoteResult, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "VoteIncident",
		"incident_id": id,
	})

	if choice != models.VoteUp && choice != models.VoteDown {
		return nil, fmt.Errorf("%w: unknown vote choice %q", models.ErrValidation, choice)
	}
	if voterID == "" {
		return nil, fmt.Errorf("%w: voter id is required", models.ErrValidation)
	}

	var lastErr error
	for attempt := 0; attempt < s.cfg.VoteMaxRetries; attempt++ {
		up, down, err := s.repo.Vote(ctx, id, voterID, choice)
		if err == nil {
			metrics.VotesTotal.WithLabelValues(string(choice)).Inc()
			if err := s.repo.InvalidateIncidentCache(ctx, id); err != nil {
				log.WithError(err).Warn("Failed to invalidate incident cache after vote")
			}
			log.WithFields(logrus.Fields{"upvotes": up, "downvotes": down}).Info("Vote applied")
			return &VoteResult{Upvotes: up, Downvotes: down}, nil
		}
		if !errors.Is(err, models.ErrConflict) {
			log.WithError(err).Warn("Vote rejected")
			return nil, fmt.Errorf("service: could not apply vote: %w", err)
		}
		metrics.VoteConflictRetriesTotal.Inc()
		lastErr = err
		log.WithError(err).WithField("attempt", attempt+1).Warn("Vote conflict, retrying")
	}

	log.WithError(lastErr).Error("Vote failed after retries")
	return nil, fmt.Errorf("service: vote conflict after %d attempts: %w", s.cfg.VoteMaxRetries, lastErr)
}

// FindNearby возвращает до 100 анонимизированных инцидентов рядом с точкой
func (s *incidentService) FindNearby(ctx context.Context, lat, lng, radiusMeters float64, maxAgeDays int) ([]*models.PublicIncident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "incident",
		"method":  "FindNearby",
	})

	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return nil, fmt.Errorf("%w: coordinates out of range", models.ErrValidation)
	}
	if radiusMeters <= 0 {
		radiusMeters = s.cfg.NearbyDefaultRadius
	}
	if maxAgeDays <= 0 {
		maxAgeDays = s.cfg.NearbyMaxAgeDays
	}

	incidents, err := s.repo.FindNearby(ctx, lat, lng, radiusMeters, maxAgeDays)
	if err != nil {
		log.WithError(err).Error("Failed to find nearby incidents")
		return nil, fmt.Errorf("service: could not find nearby incidents: %w", err)
	}

	publics := make([]*models.PublicIncident, len(incidents))
	for i, incident := range incidents {
		publics[i] = incident.ToPublic()
	}
	log.WithField("count", len(publics)).Info("Nearby incidents fetched")
	return publics, nil
}

// Heatmap возвращает взвешенные точки тепловой карты за окно в днях
func (s *incidentService) Heatmap(ctx context.Context, windowDays int) ([]models.HeatPoint, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "incident",
		"method":  "Heatmap",
	})

	if windowDays <= 0 {
		windowDays = s.cfg.HeatmapDefaultDays
	}

	now := s.clock.Now()
	samples, err := s.repo.AggregateHeatmap(ctx, now.AddDate(0, 0, -windowDays))
	if err != nil {
		log.WithError(err).Error("Failed to aggregate heatmap")
		return nil, fmt.Errorf("service: could not build heatmap: %w", err)
	}

	return BuildHeatmap(samples, windowDays, now), nil
}

// VerifyIncident переводит инцидент в статус verified
func (s *incidentService) VerifyIncident(ctx context.Context, id uuid.UUID, moderatorRef string) (*models.PublicIncident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "VerifyIncident",
		"incident_id": id,
	})

	incident, err := s.repo.SetStatus(ctx, id, models.StatusVerified, moderatorRef)
	if err != nil {
		log.WithError(err).Warn("Failed to verify incident")
		return nil, fmt.Errorf("service: could not verify incident: %w", err)
	}

	if err := s.repo.InvalidateIncidentCache(ctx, id); err != nil {
		log.WithError(err).Warn("Failed to invalidate incident cache after verify")
	}
	log.Info("Incident verified")
	return incident.ToPublic(), nil
}

// StatsOverview собирает сводную статистику за период
func (s *incidentService) StatsOverview(ctx context.Context, days int) (*StatsOverview, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "incident",
		"method":  "StatsOverview",
	})

	if days <= 0 {
		days = s.cfg.HeatmapDefaultDays
	}
	since := s.clock.Now().AddDate(0, 0, -days)

	total, err := s.repo.CountSince(ctx, since)
	if err != nil {
		log.WithError(err).Error("Failed to count incidents")
		return nil, fmt.Errorf("service: could not build stats: %w", err)
	}
	byType, err := s.repo.CountByTypeSince(ctx, since)
	if err != nil {
		log.WithError(err).Error("Failed to count incidents by type")
		return nil, fmt.Errorf("service: could not build stats: %w", err)
	}
	hourly, err := s.repo.HourlyDistribution(ctx, since)
	if err != nil {
		log.WithError(err).Error("Failed to get hourly distribution")
		return nil, fmt.Errorf("service: could not build stats: %w", err)
	}
	avgScore, err := s.neighborhoods.AverageSafetyScore(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to get average safety score")
		return nil, fmt.Errorf("service: could not build stats: %w", err)
	}

	return &StatsOverview{
		PeriodDays:         days,
		TotalIncidents:     total,
		IncidentsByType:    byType,
		HourlyDistribution: hourly,
		AverageSafetyScore: avgScore,
	}, nil
}
