package v1

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shenikar/safety_map_system/internal/config"
	"github.com/shenikar/safety_map_system/internal/models"
	"github.com/shenikar/safety_map_system/internal/service"
	"github.com/shenikar/safety_map_system/internal/handler/http/v1/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// newTestHandler создает новый экземпляр Handler с мокированными сервисами
func newTestHandler(t *testing.T) (*Handler, *mocks.MockIncidentService, *mocks.MockNeighborhoodService, *gin.Engine) {
	ctrl := gomock.NewController(t)
	mockIncidents := mocks.NewMockIncidentService(ctrl)
	mockNeighborhoods := mocks.NewMockNeighborhoodService(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{
		APIKeys: []string{"test-api-key"},
	}

	handler := NewHandler(mockIncidents, mockNeighborhoods, logger, cfg)

	// Настройка Gin роутера для тестов
	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	return handler, mockIncidents, mockNeighborhoods, router
}

// makeRequest - вспомогательная функция для выполнения HTTP-запросов
func makeRequest(router *gin.Engine, method, url string, body io.Reader, headers ...map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, h := range headers {
		for key, value := range h {
			req.Header.Set(key, value)
		}
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func samplePublic(id uuid.UUID) *models.PublicIncident {
	return &models.PublicIncident{
		ID:          id,
		Type:        models.TypeTheft,
		Description: "Anonymous report",
		Latitude:    41.008,
		Longitude:   28.978,
		Severity:    models.SeverityHigh,
		Status:      models.StatusPending,
		CreatedAt:   time.Now(),
	}
}

func TestSubmitReport_Success(t *testing.T) {
	_, mockIncidents, _, router := newTestHandler(t)
	incidentID := uuid.New()
	reqBody := SubmitReportRequest{
		Type:        "theft",
		Description: "Украли велосипед у входа в парк",
		Location:    LocationDTO{Latitude: 41.0082, Longitude: 28.9784},
		Severity:    "high",
	}

	mockIncidents.EXPECT().
		SubmitReport(gomock.Any(), gomock.Any()).
		Return(samplePublic(incidentID), nil).
		Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/incidents", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp IncidentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, incidentID, resp.ID)
	assert.Equal(t, "theft", resp.Type)
	assert.Equal(t, 41.008, resp.Latitude)
}

func TestSubmitReport_InvalidType(t *testing.T) {
	_, _, _, router := newTestHandler(t)
	reqBody := SubmitReportRequest{
		Type:        "vandalism",
		Description: "Достаточно длинное описание",
		Location:    LocationDTO{Latitude: 41.0082, Longitude: 28.9784},
	}

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/incidents", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmitReport_DescriptionTooShort(t *testing.T) {
	_, _, _, router := newTestHandler(t)
	reqBody := SubmitReportRequest{
		Type:        "theft",
		Description: "коротко",
		Location:    LocationDTO{Latitude: 41.0082, Longitude: 28.9784},
	}

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/incidents", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmitReport_InvalidJSON(t *testing.T) {
	_, _, _, router := newTestHandler(t)

	w := makeRequest(router, "POST", "/api/v1/incidents", bytes.NewBufferString("{not json"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetIncident_Success(t *testing.T) {
	_, mockIncidents, _, router := newTestHandler(t)
	incidentID := uuid.New()

	mockIncidents.EXPECT().
		GetIncident(gomock.Any(), incidentID).
		Return(samplePublic(incidentID), nil).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/incidents/"+incidentID.String(), nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp IncidentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, incidentID, resp.ID)
}

func TestGetIncident_NotFound(t *testing.T) {
	_, mockIncidents, _, router := newTestHandler(t)
	incidentID := uuid.New()

	mockIncidents.EXPECT().
		GetIncident(gomock.Any(), incidentID).
		Return(nil, fmt.Errorf("service: %w", models.ErrNotFound)).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/incidents/"+incidentID.String(), nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetIncident_InvalidID(t *testing.T) {
	_, _, _, router := newTestHandler(t)

	w := makeRequest(router, "GET", "/api/v1/incidents/not-a-uuid", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVoteIncident_Success(t *testing.T) {
	_, mockIncidents, _, router := newTestHandler(t)
	incidentID := uuid.New()
	reqBody := VoteRequest{VoterID: "voter-1", Vote: "up"}

	mockIncidents.EXPECT().
		VoteIncident(gomock.Any(), incidentID, "voter-1", models.VoteUp).
		Return(&service.VoteResult{Upvotes: 5, Downvotes: 1}, nil).
		Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/incidents/"+incidentID.String()+"/vote", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusOK, w.Code)

	var resp VoteResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 5, resp.Upvotes)
	assert.Equal(t, 1, resp.Downvotes)
}

func TestVoteIncident_Duplicate(t *testing.T) {
	_, mockIncidents, _, router := newTestHandler(t)
	incidentID := uuid.New()
	reqBody := VoteRequest{VoterID: "voter-1", Vote: "up"}

	mockIncidents.EXPECT().
		VoteIncident(gomock.Any(), incidentID, "voter-1", models.VoteUp).
		Return(nil, fmt.Errorf("service: %w", models.ErrDuplicateVote)).
		Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/incidents/"+incidentID.String()+"/vote", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVoteIncident_Conflict(t *testing.T) {
	_, mockIncidents, _, router := newTestHandler(t)
	incidentID := uuid.New()
	reqBody := VoteRequest{VoterID: "voter-1", Vote: "down"}

	mockIncidents.EXPECT().
		VoteIncident(gomock.Any(), incidentID, "voter-1", models.VoteDown).
		Return(nil, fmt.Errorf("service: %w", models.ErrConflict)).
		Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/incidents/"+incidentID.String()+"/vote", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestVoteIncident_InvalidChoice(t *testing.T) {
	_, _, _, router := newTestHandler(t)
	incidentID := uuid.New()
	reqBody := VoteRequest{VoterID: "voter-1", Vote: "maybe"}

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/incidents/"+incidentID.String()+"/vote", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNearbyIncidents_Success(t *testing.T) {
	_, mockIncidents, _, router := newTestHandler(t)
	incidentID := uuid.New()

	mockIncidents.EXPECT().
		FindNearby(gomock.Any(), 41.0082, 28.9784, 1000.0, 7).
		Return([]*models.PublicIncident{samplePublic(incidentID)}, nil).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/incidents/nearby?lat=41.0082&lng=28.9784&radius=1000&days=7", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp NearbyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
	require.Len(t, resp.Incidents, 1)
	assert.Equal(t, incidentID, resp.Incidents[0].ID)
}

func TestNearbyIncidents_MissingCoordinates(t *testing.T) {
	_, _, _, router := newTestHandler(t)

	w := makeRequest(router, "GET", "/api/v1/incidents/nearby?radius=1000", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHeatmap_Success(t *testing.T) {
	_, mockIncidents, _, router := newTestHandler(t)

	mockIncidents.EXPECT().
		Heatmap(gomock.Any(), 14).
		Return([]models.HeatPoint{{Latitude: 41.008, Longitude: 28.978, Weight: 3}}, nil).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/incidents/heatmap?days=14", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp HeatmapResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, 3, resp.Data[0].Weight)
}

func TestVerifyIncident_Success(t *testing.T) {
	_, mockIncidents, _, router := newTestHandler(t)
	incidentID := uuid.New()
	verified := samplePublic(incidentID)
	verified.Status = models.StatusVerified
	reqBody := VerifyRequest{ModeratorRef: "moderator-7"}

	mockIncidents.EXPECT().
		VerifyIncident(gomock.Any(), incidentID, "moderator-7").
		Return(verified, nil).
		Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "PATCH", "/api/v1/incidents/"+incidentID.String()+"/verify", bytes.NewBuffer(bodyBytes), map[string]string{"X-API-Key": "test-api-key"})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp IncidentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "verified", resp.Status)
}

func TestVerifyIncident_Unauthorized(t *testing.T) {
	_, _, _, router := newTestHandler(t)
	incidentID := uuid.New()
	reqBody := VerifyRequest{ModeratorRef: "moderator-7"}

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "PATCH", "/api/v1/incidents/"+incidentID.String()+"/verify", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestVerifyIncident_InvalidAPIKey(t *testing.T) {
	_, _, _, router := newTestHandler(t)
	incidentID := uuid.New()
	reqBody := VerifyRequest{ModeratorRef: "moderator-7"}

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "PATCH", "/api/v1/incidents/"+incidentID.String()+"/verify", bytes.NewBuffer(bodyBytes), map[string]string{"X-API-Key": "wrong-key"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListNeighborhoods_Success(t *testing.T) {
	_, _, mockNeighborhoods, router := newTestHandler(t)
	neighborhoodID := uuid.New()

	mockNeighborhoods.EXPECT().
		ListNeighborhoods(gomock.Any(), "Istanbul", 10).
		Return([]*models.Neighborhood{
			{
				ID:   neighborhoodID,
				Name: "Kadikoy",
				City: "Istanbul",
				SafetyScore: models.SafetyScore{
					Current: 8.7,
					Trend:   models.TrendPositive,
					Change:  0.3,
				},
			},
		}, nil).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/neighborhoods?city=Istanbul&limit=10", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp []*NeighborhoodResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "Kadikoy", resp[0].Name)
	assert.Equal(t, 8.7, resp[0].SafetyScore.Current)
	assert.Equal(t, "positive", resp[0].SafetyScore.Trend)
}

func TestNeighborhoodByLocation_Success(t *testing.T) {
	_, _, mockNeighborhoods, router := newTestHandler(t)

	mockNeighborhoods.EXPECT().
		FindByLocation(gomock.Any(), 41.0082, 28.9784).
		Return(&models.Neighborhood{ID: uuid.New(), Name: "Fatih"}, nil).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/neighborhoods/by-location?lat=41.0082&lng=28.9784", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp NeighborhoodResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Fatih", resp.Name)
}

func TestNeighborhoodByLocation_NotFound(t *testing.T) {
	_, _, mockNeighborhoods, router := newTestHandler(t)

	mockNeighborhoods.EXPECT().
		FindByLocation(gomock.Any(), 0.0, 0.0).
		Return(nil, fmt.Errorf("service: %w", models.ErrNotFound)).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/neighborhoods/by-location?lat=0&lng=0", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateScores_Success(t *testing.T) {
	_, _, mockNeighborhoods, router := newTestHandler(t)

	mockNeighborhoods.EXPECT().
		RecomputeAllScores(gomock.Any()).
		Return(12, nil).
		Times(1)

	w := makeRequest(router, "POST", "/api/v1/neighborhoods/update-scores", nil, map[string]string{"X-API-Key": "test-api-key"})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp UpdateScoresResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 12, resp.Updated)
}

func TestUpdateScores_Unauthorized(t *testing.T) {
	_, _, _, router := newTestHandler(t)

	w := makeRequest(router, "POST", "/api/v1/neighborhoods/update-scores", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestStatsOverview_Handler(t *testing.T) {
	_, mockIncidents, _, router := newTestHandler(t)

	mockIncidents.EXPECT().
		StatsOverview(gomock.Any(), 30).
		Return(&service.StatsOverview{
			PeriodDays:         30,
			TotalIncidents:     42,
			IncidentsByType:    map[models.IncidentType]int{models.TypeTheft: 30},
			AverageSafetyScore: 7.4,
		}, nil).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/stats/overview?days=30", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp StatsOverviewResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 42, resp.TotalIncidents)
	assert.Equal(t, 30, resp.IncidentsByType["theft"])
	assert.Equal(t, 7.4, resp.AverageSafetyScore)
}

func TestHealthCheck(t *testing.T) {
	_, _, _, router := newTestHandler(t)

	w := makeRequest(router, "GET", "/api/v1/system/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
