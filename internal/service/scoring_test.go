package service

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/shenikar/safety_map_system/internal/config"
	"github.com/shenikar/safety_map_system/internal/models"
	"github.com/shenikar/safety_map_system/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// newTestScoringService — вспомогательная функция для создания инстанса сервиса с моками.
func newTestScoringService(t *testing.T) (NeighborhoodService, *mocks.MockIncidentRepository, *mocks.MockNeighborhoodRepository, *clockwork.FakeClock) {
	ctrl := gomock.NewController(t)
	incidentsMock := mocks.NewMockIncidentRepository(ctrl)
	neighborhoodsMock := mocks.NewMockNeighborhoodRepository(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{
		ScoreRecomputeParallel: 2,
	}

	clock := clockwork.NewFakeClockAt(time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC))

	service := NewScoringService(incidentsMock, neighborhoodsMock, logger, cfg, clock)
	return service, incidentsMock, neighborhoodsMock, clock
}

func incidentAt(incidentType models.IncidentType, createdAt time.Time) *models.Incident {
	return &models.Incident{
		ID:        uuid.New(),
		Type:      incidentType,
		CreatedAt: createdAt,
	}
}

func TestRecompute_ScoreFormula(t *testing.T) {
	// Подготовка: район с реальными площадью и населением
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	n := &models.Neighborhood{
		Population: 245000,
		AreaKm2:    8.76,
	}

	recent := now.AddDate(0, 0, -2)
	old := now.AddDate(0, 0, -20)
	incidents := []*models.Incident{
		incidentAt(models.TypeTheft, recent),
		incidentAt(models.TypeTheft, old),
		incidentAt(models.TypeTheft, old),
		incidentAt(models.TypeHarassment, recent),
		incidentAt(models.TypeOther, old),
		incidentAt(models.TypeOther, old),
		incidentAt(models.TypeOther, old),
		incidentAt(models.TypeOther, old),
		incidentAt(models.TypeAccident, old),
		incidentAt(models.TypeAccident, old),
		incidentAt(models.TypeSuspicious, old),
		incidentAt(models.TypeSuspicious, old),
	}

	// Действие
	Recompute(n, incidents, now)

	// Проверки: база 10, штраф за плотность ~0.003, домогательства 0.3, кражи 0.6
	assert.Equal(t, 9.1, n.SafetyScore.Current)
	assert.Equal(t, 12, n.Statistics.Last30Days)
	assert.Equal(t, 2, n.Statistics.Last7Days)
	assert.Equal(t, 3, n.Statistics.ByType[models.TypeTheft])
	assert.Equal(t, 1, n.Statistics.ByType[models.TypeHarassment])
	assert.Equal(t, 4, n.Statistics.ByType[models.TypeOther])
	require.Len(t, n.SafetyScore.History, 1)
	assert.Equal(t, 9.1, n.SafetyScore.History[0].Score)
	assert.Equal(t, 12, n.SafetyScore.History[0].IncidentCount)
	assert.Equal(t, now, n.LastUpdated)
}

func TestRecompute_FallbackPressureWithoutDemographics(t *testing.T) {
	// Подготовка: район без площади и населения
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	n := &models.Neighborhood{}

	incidents := make([]*models.Incident, 0, 10)
	for i := 0; i < 10; i++ {
		incidents = append(incidents, incidentAt(models.TypeOther, now.AddDate(0, 0, -15)))
	}

	// Действие: фолбэк - давление last30/10, штраф 10/10*0.5 = 0.5
	Recompute(n, incidents, now)

	// Проверки
	assert.Equal(t, 9.5, n.SafetyScore.Current)
}

func TestRecompute_ScoreClampedAtZero(t *testing.T) {
	// Подготовка: шквал тяжелых инцидентов
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	n := &models.Neighborhood{}

	incidents := make([]*models.Incident, 0, 60)
	for i := 0; i < 60; i++ {
		incidents = append(incidents, incidentAt(models.TypeHarassment, now.AddDate(0, 0, -3)))
	}

	// Действие
	Recompute(n, incidents, now)

	// Проверки: 10 - 5 (кап плотности) - 18 (домогательства) клампится в 0
	assert.Equal(t, 0.0, n.SafetyScore.Current)
}

func TestRecompute_TrendComparesSecondToLastEntry(t *testing.T) {
	// Подготовка: последняя запись истории - скор прошлого цикла,
	// тренд сравнивается с предпоследней
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	n := &models.Neighborhood{
		SafetyScore: models.SafetyScore{
			History: []models.ScoreHistoryEntry{
				{Score: 9.0, Date: now.AddDate(0, 0, -2)},
				{Score: 5.0, Date: now.AddDate(0, 0, -1)},
			},
		},
	}

	// Действие: без инцидентов новый скор 10.0, сравнение с 9.0
	Recompute(n, nil, now)

	// Проверки
	assert.Equal(t, 10.0, n.SafetyScore.Current)
	assert.Equal(t, models.TrendPositive, n.SafetyScore.Trend)
	assert.Equal(t, 1.0, n.SafetyScore.Change)
	require.Len(t, n.SafetyScore.History, 3)
}

func TestRecompute_TrendNegative(t *testing.T) {
	// Подготовка
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	n := &models.Neighborhood{
		SafetyScore: models.SafetyScore{
			History: []models.ScoreHistoryEntry{
				{Score: 10.0},
				{Score: 10.0},
			},
		},
	}
	incidents := []*models.Incident{
		incidentAt(models.TypeTheft, now.AddDate(0, 0, -5)),
		incidentAt(models.TypeTheft, now.AddDate(0, 0, -5)),
		incidentAt(models.TypeTheft, now.AddDate(0, 0, -5)),
		incidentAt(models.TypeTheft, now.AddDate(0, 0, -5)),
		incidentAt(models.TypeTheft, now.AddDate(0, 0, -5)),
	}

	// Действие: 10 - 0.25 (давление 5/10*0.5) - 1.0 (кражи) = 8.75 -> 8.8
	Recompute(n, incidents, now)

	// Проверки
	assert.Equal(t, 8.8, n.SafetyScore.Current)
	assert.Equal(t, models.TrendNegative, n.SafetyScore.Trend)
	assert.Equal(t, -1.2, n.SafetyScore.Change)
}

func TestRecompute_TrendNeutralWithinThreshold(t *testing.T) {
	// Подготовка
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	n := &models.Neighborhood{
		SafetyScore: models.SafetyScore{
			Trend: models.TrendNegative,
			History: []models.ScoreHistoryEntry{
				{Score: 9.9},
				{Score: 9.5},
			},
		},
	}

	// Действие: новый скор 10.0, изменение +0.1 - в пределах порога 0.2
	Recompute(n, nil, now)

	// Проверки
	assert.Equal(t, models.TrendNeutral, n.SafetyScore.Trend)
	assert.Equal(t, 0.1, n.SafetyScore.Change)
}

func TestRecompute_TrendUntouchedOnShortHistory(t *testing.T) {
	// Подготовка: одной записи недостаточно для сравнения
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	n := &models.Neighborhood{
		SafetyScore: models.SafetyScore{
			Trend:   models.TrendNeutral,
			History: []models.ScoreHistoryEntry{{Score: 3.0}},
		},
	}

	// Действие
	Recompute(n, nil, now)

	// Проверки: тренд и изменение не пересчитывались
	assert.Equal(t, models.TrendNeutral, n.SafetyScore.Trend)
	assert.Equal(t, 0.0, n.SafetyScore.Change)
	require.Len(t, n.SafetyScore.History, 2)
}

func TestRecompute_HistoryEvictsFIFO(t *testing.T) {
	// Подготовка: история уже на пределе
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	history := make([]models.ScoreHistoryEntry, models.ScoreHistoryLimit)
	for i := range history {
		history[i] = models.ScoreHistoryEntry{
			Score: 5.0,
			Date:  now.AddDate(0, 0, i-models.ScoreHistoryLimit),
		}
	}
	oldest := history[0]
	second := history[1]
	n := &models.Neighborhood{
		SafetyScore: models.SafetyScore{History: history},
	}

	// Действие
	Recompute(n, nil, now)

	// Проверки: самая старая запись вытеснена, длина не растет
	require.Len(t, n.SafetyScore.History, models.ScoreHistoryLimit)
	assert.NotEqual(t, oldest, n.SafetyScore.History[0])
	assert.Equal(t, second, n.SafetyScore.History[0])
	assert.Equal(t, now, n.SafetyScore.History[models.ScoreHistoryLimit-1].Date)
}

func TestRecompute_ByTimeBuckets(t *testing.T) {
	// Подготовка: инциденты в разные части суток
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	day := now.AddDate(0, 0, -3)
	incidents := []*models.Incident{
		incidentAt(models.TypeOther, time.Date(day.Year(), day.Month(), day.Day(), 7, 0, 0, 0, time.UTC)),
		incidentAt(models.TypeOther, time.Date(day.Year(), day.Month(), day.Day(), 13, 0, 0, 0, time.UTC)),
		incidentAt(models.TypeOther, time.Date(day.Year(), day.Month(), day.Day(), 19, 0, 0, 0, time.UTC)),
		incidentAt(models.TypeOther, time.Date(day.Year(), day.Month(), day.Day(), 2, 0, 0, 0, time.UTC)),
		incidentAt(models.TypeOther, time.Date(day.Year(), day.Month(), day.Day(), 23, 0, 0, 0, time.UTC)),
	}
	n := &models.Neighborhood{}

	// Действие
	Recompute(n, incidents, now)

	// Проверки
	assert.Equal(t, 1, n.Statistics.ByTime[models.TimeMorning])
	assert.Equal(t, 1, n.Statistics.ByTime[models.TimeAfternoon])
	assert.Equal(t, 2, n.Statistics.ByTime[models.TimeEvening])
	assert.Equal(t, 1, n.Statistics.ByTime[models.TimeNight])
}

func TestRecomputeAllScores_PartialFailureContinues(t *testing.T) {
	// Подготовка
	service, incidentsMock, neighborhoodsMock, clock := newTestScoringService(t)
	ctx := context.Background()
	okID := uuid.New()
	badID := uuid.New()
	since := clock.Now().AddDate(0, 0, -30)

	// Ожидания: один район обновляется, второй падает на чтении
	neighborhoodsMock.EXPECT().ListIDs(ctx).Return([]uuid.UUID{okID, badID}, nil).Times(1)

	neighborhoodsMock.EXPECT().
		GetByID(gomock.Any(), okID).
		Return(&models.Neighborhood{ID: okID}, nil).
		Times(1)
	incidentsMock.EXPECT().
		FindWithinPolygon(gomock.Any(), gomock.Any(), since).
		Return([]*models.Incident{}, nil).
		Times(1)
	neighborhoodsMock.EXPECT().
		UpdateScore(gomock.Any(), gomock.Any()).
		Return(nil).
		Times(1)

	neighborhoodsMock.EXPECT().
		GetByID(gomock.Any(), badID).
		Return(nil, fmt.Errorf("%w: connection reset", models.ErrStoreUnavailable)).
		Times(1)

	// Действие
	updated, err := service.RecomputeAllScores(ctx)

	// Проверки: сбой одного района не прерывает батч
	assert.Equal(t, 1, updated)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrStoreUnavailable)
}

func TestRecomputeAllScores_ListFailure(t *testing.T) {
	// Подготовка
	service, _, neighborhoodsMock, _ := newTestScoringService(t)
	ctx := context.Background()

	// Ожидания
	neighborhoodsMock.EXPECT().
		ListIDs(ctx).
		Return(nil, fmt.Errorf("%w: connection refused", models.ErrStoreUnavailable)).
		Times(1)

	// Действие
	updated, err := service.RecomputeAllScores(ctx)

	// Проверки
	assert.Zero(t, updated)
	require.Error(t, err)
}

func TestListNeighborhoods_LimitNormalized(t *testing.T) {
	// Подготовка
	service, _, neighborhoodsMock, _ := newTestScoringService(t)
	ctx := context.Background()

	// Ожидания: лимит вне диапазона заменяется значением по умолчанию
	neighborhoodsMock.EXPECT().
		List(ctx, "Istanbul", 50).
		Return([]*models.Neighborhood{}, nil).
		Times(1)

	// Действие
	neighborhoods, err := service.ListNeighborhoods(ctx, "Istanbul", 500)

	// Проверки
	require.NoError(t, err)
	assert.Empty(t, neighborhoods)
}

func TestFindByLocation_CoordinatesOutOfRange(t *testing.T) {
	// Подготовка
	service, _, _, _ := newTestScoringService(t)
	ctx := context.Background()

	// Действие
	neighborhood, err := service.FindByLocation(ctx, -95, 10)

	// Проверки
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrValidation)
	assert.Nil(t, neighborhood)
}

func TestRecomputeAllScores_ZeroParallelismStillRuns(t *testing.T) {
	// Подготовка: параллелизм 0 из окружения не должен блокировать батч
	ctrl := gomock.NewController(t)
	incidentsMock := mocks.NewMockIncidentRepository(ctrl)
	neighborhoodsMock := mocks.NewMockNeighborhoodRepository(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	cfg := &config.Config{ScoreRecomputeParallel: 0}
	clock := clockwork.NewFakeClockAt(time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC))
	service := NewScoringService(incidentsMock, neighborhoodsMock, logger, cfg, clock)

	ctx := context.Background()
	id := uuid.New()
	since := clock.Now().AddDate(0, 0, -30)

	// Ожидания
	neighborhoodsMock.EXPECT().ListIDs(ctx).Return([]uuid.UUID{id}, nil).Times(1)
	neighborhoodsMock.EXPECT().
		GetByID(gomock.Any(), id).
		Return(&models.Neighborhood{ID: id}, nil).
		Times(1)
	incidentsMock.EXPECT().
		FindWithinPolygon(gomock.Any(), gomock.Any(), since).
		Return([]*models.Incident{}, nil).
		Times(1)
	neighborhoodsMock.EXPECT().UpdateScore(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	// Действие
	updated, err := service.RecomputeAllScores(ctx)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, 1, updated)
}
