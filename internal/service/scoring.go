package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/shenikar/safety_map_system/internal/config"
	"github.com/shenikar/safety_map_system/internal/metrics"
	"github.com/shenikar/safety_map_system/internal/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	scoringWindowDays = 30
	baseScore         = 10.0
	densityPenaltyCap = 5.0
	harassmentWeight  = 0.3
	theftWeight       = 0.2
	trendThreshold    = 0.2
)

// NeighborhoodService определяет контракт бизнес-логики районов и пересчета скоров
type NeighborhoodService interface {
	ListNeighborhoods(ctx context.Context, city string, limit int) ([]*models.Neighborhood, error)
	FindByLocation(ctx context.Context, lat, lng float64) (*models.Neighborhood, error)
	RecomputeAllScores(ctx context.Context) (int, error)
}

type scoringService struct {
	incidents     IncidentRepository
	neighborhoods NeighborhoodRepository
	logger        *logrus.Logger
	cfg           *config.Config
	clock         clockwork.Clock
}

func NewScoringService(
	incidents IncidentRepository,
	neighborhoods NeighborhoodRepository,
	logger *logrus.Logger,
	cfg *config.Config,
	clock clockwork.Clock,
) NeighborhoodService {
	return &scoringService{
		incidents:     incidents,
		neighborhoods: neighborhoods,
		logger:        logger,
		cfg:           cfg,
		clock:         clock,
	}
}

// Recompute пересчитывает статистику и скор безопасности района по
// инцидентам 30-дневного окна. Чистая функция над аргументами: никакого
// скрытого состояния, "сейчас" передается явно.
func Recompute(n *models.Neighborhood, incidents []*models.Incident, now time.Time) {
	weekAgo := now.AddDate(0, 0, -7)

	byType := map[models.IncidentType]int{
		models.TypeTheft:      0,
		models.TypeSuspicious: 0,
		models.TypeAccident:   0,
		models.TypeHarassment: 0,
		models.TypeOther:      0,
	}
	byTime := map[models.TimeOfDay]int{
		models.TimeMorning:   0,
		models.TimeAfternoon: 0,
		models.TimeEvening:   0,
		models.TimeNight:     0,
	}
	last7 := 0
	for _, incident := range incidents {
		byType[incident.Type]++
		byTime[models.TimeOfDayFor(incident.CreatedAt.Hour())]++
		if !incident.CreatedAt.Before(weekAgo) {
			last7++
		}
	}

	n.Statistics.Last30Days = len(incidents)
	n.Statistics.Last7Days = last7
	n.Statistics.ByType = byType
	n.Statistics.ByTime = byTime

	score := baseScore

	// Нормализованное давление инцидентов: плотность на км2 на тысячу жителей.
	// Для районов без заполненных площади/населения - грубый фолбэк.
	var pressure float64
	if n.AreaKm2 > 0 && n.Population > 0 {
		pressure = (float64(n.Statistics.Last30Days) / n.AreaKm2) / (float64(n.Population) / 1000)
	} else {
		pressure = float64(n.Statistics.Last30Days) / 10
	}
	score -= math.Min(pressure*0.5, densityPenaltyCap)

	// Взвешенный штраф за тяжелые типы, без ограничения до финального клампа
	score -= float64(byType[models.TypeHarassment]) * harassmentWeight
	score -= float64(byType[models.TypeTheft]) * theftWeight

	score = math.Max(0, math.Min(10, score))
	newScore := math.Round(score*10) / 10

	// Тренд сравнивается со второй с конца записью истории: последняя
	// запись - скор прошлого цикла, который сейчас будет вытеснен новым
	history := n.SafetyScore.History
	if len(history) >= 2 {
		previous := history[len(history)-2].Score
		change := newScore - previous
		switch {
		case change > trendThreshold:
			n.SafetyScore.Trend = models.TrendPositive
		case change < -trendThreshold:
			n.SafetyScore.Trend = models.TrendNegative
		default:
			n.SafetyScore.Trend = models.TrendNeutral
		}
		n.SafetyScore.Change = math.Round(change*100) / 100
	}

	n.SafetyScore.Current = newScore
	n.SafetyScore.History = append(n.SafetyScore.History, models.ScoreHistoryEntry{
		Score:         newScore,
		Date:          now,
		IncidentCount: n.Statistics.Last30Days,
	})
	// FIFO-вытеснение: история не длиннее 90 записей
	if len(n.SafetyScore.History) > models.ScoreHistoryLimit {
		n.SafetyScore.History = n.SafetyScore.History[len(n.SafetyScore.History)-models.ScoreHistoryLimit:]
	}

	n.LastUpdated = now
}

// ListNeighborhoods возвращает районы, отсортированные по скору безопасности
func (s *scoringService) ListNeighborhoods(ctx context.Context, city string, limit int) ([]*models.Neighborhood, error) {
	if limit < 1 || limit > 100 {
		limit = 50
	}

	log := s.logger.WithFields(logrus.Fields{
		"service": "scoring",
		"method":  "ListNeighborhoods",
		"city":    city,
	})

	neighborhoods, err := s.neighborhoods.List(ctx, city, limit)
	if err != nil {
		log.WithError(err).Error("Failed to list neighborhoods")
		return nil, fmt.Errorf("service: could not list neighborhoods: %w", err)
	}
	return neighborhoods, nil
}

// FindByLocation возвращает район, содержащий точку
func (s *scoringService) FindByLocation(ctx context.Context, lat, lng float64) (*models.Neighborhood, error) {
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return nil, fmt.Errorf("%w: coordinates out of range", models.ErrValidation)
	}

	neighborhood, err := s.neighborhoods.FindByLocation(ctx, lat, lng)
	if err != nil {
		return nil, fmt.Errorf("service: could not find neighborhood: %w", err)
	}
	return neighborhood, nil
}

// RecomputeAllScores пересчитывает скоры всех районов. Районы обрабатываются
// параллельно с ограничением, каждый сериализован по своему id. Сбой одного
// района не прерывает батч: ошибки собираются и возвращаются вместе с числом
// успешно обновленных районов.
func (s *scoringService) RecomputeAllScores(ctx context.Context) (int, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "scoring",
		"method":  "RecomputeAllScores",
	})
	log.Info("Starting safety score recompute")

	started := s.clock.Now()
	// Одно "сейчас" на весь батч: прерванный и перезапущенный пересчет
	// дает идентичный результат на том же наборе инцидентов
	now := started
	since := now.AddDate(0, 0, -scoringWindowDays)

	ids, err := s.neighborhoods.ListIDs(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to list neighborhoods for recompute")
		return 0, fmt.Errorf("service: could not start recompute: %w", err)
	}

	var (
		mu       sync.Mutex
		updated  int
		failures []error
	)

	g, gctx := errgroup.WithContext(ctx)
	// Лимит 0 у errgroup запрещает любые горутины - минимум один воркер
	parallel := s.cfg.ScoreRecomputeParallel
	if parallel < 1 {
		parallel = 1
	}
	g.SetLimit(parallel)

	for _, id := range ids {
		g.Go(func() error {
			if err := s.recomputeOne(gctx, id, since, now); err != nil {
				metrics.ScoreRecomputeFailuresTotal.Inc()
				log.WithError(err).WithField("neighborhood_id", id).Error("Failed to recompute neighborhood score")
				mu.Lock()
				failures = append(failures, fmt.Errorf("neighborhood %s: %w", id, err))
				mu.Unlock()
				// Сбой одного района не прерывает батч
				return nil
			}
			mu.Lock()
			updated++
			mu.Unlock()
			return nil
		})
	}
	// Горутины сами не возвращают ошибок, Wait нужен для синхронизации
	_ = g.Wait()

	metrics.ScoreRecomputeDurationMs.Observe(float64(s.clock.Since(started).Milliseconds()))
	log.WithFields(logrus.Fields{
		"updated":  updated,
		"failed":   len(failures),
		"duration": s.clock.Since(started).String(),
	}).Info("Safety score recompute finished")

	return updated, errors.Join(failures...)
}

func (s *scoringService) recomputeOne(ctx context.Context, id uuid.UUID, since, now time.Time) error {
	neighborhood, err := s.neighborhoods.GetByID(ctx, id)
	if err != nil {
		return err
	}

	incidents, err := s.incidents.FindWithinPolygon(ctx, neighborhood.Boundary, since)
	if err != nil {
		return err
	}

	Recompute(neighborhood, incidents, now)

	return s.neighborhoods.UpdateScore(ctx, neighborhood)
}
