package v1

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shenikar/safety_map_system/internal/config"
	"github.com/shenikar/safety_map_system/internal/models"
	"github.com/shenikar/safety_map_system/internal/service"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	incidentService     service.IncidentService
	neighborhoodService service.NeighborhoodService
	logger              *logrus.Logger
	validate            *validator.Validate
	cfg                 *config.Config
}

func NewHandler(
	incidentService service.IncidentService,
	neighborhoodService service.NeighborhoodService,
	logger *logrus.Logger,
	cfg *config.Config,
) *Handler {
	return &Handler{
		incidentService:     incidentService,
		neighborhoodService: neighborhoodService,
		logger:              logger,
		validate:            validator.New(),
		cfg:                 cfg,
	}
}

// respondError транслирует таксономию ошибок ядра в HTTP-статусы
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, models.ErrDuplicateVote):
		c.JSON(http.StatusBadRequest, gin.H{"error": "already voted"})
	case errors.Is(err, models.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "conflict, try again"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// @Summary Submit an incident report
// @Description Submit a new safety incident report. Anonymous by default.
// @Tags Incidents
// @Accept json
// @Produce json
// @Param report body SubmitReportRequest true "Incident report"
// @Success 201 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents [post]
func (h *Handler) submitReport(c *gin.Context) {
	var input SubmitReportRequest
	log := h.logger.WithField("method", "submitReport")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	public, err := h.incidentService.SubmitReport(c.Request.Context(), DTOToIncidentModel(input))
	if err != nil {
		log.WithError(err).Warn("Failed to submit report")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, PublicToIncidentResponse(public))
}

// @Summary Get incidents near a location
// @Description Get up to 100 anonymized incidents around a point, ordered by distance.
// @Tags Incidents
// @Accept json
// @Produce json
// @Param lat query number true "Latitude"
// @Param lng query number true "Longitude"
// @Param radius query number false "Radius in meters" default(5000)
// @Param days query int false "Max age in days" default(30)
// @Success 200 {object} NearbyResponse
// @Failure 400 {object} map[string]string "Missing or invalid coordinates"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/nearby [get]
func (h *Handler) nearbyIncidents(c *gin.Context) {
	log := h.logger.WithField("method", "nearbyIncidents")

	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.Query("lng"), 64)
	if latErr != nil || lngErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lng query params are required"})
		return
	}
	radius, _ := strconv.ParseFloat(c.DefaultQuery("radius", "0"), 64)
	days, _ := strconv.Atoi(c.DefaultQuery("days", "0"))

	incidents, err := h.incidentService.FindNearby(c.Request.Context(), lat, lng, radius, days)
	if err != nil {
		log.WithError(err).Error("Failed to find nearby incidents")
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, NearbyResponse{
		Count:     len(incidents),
		Incidents: PublicsToIncidentResponses(incidents),
	})
}

// @Summary Get heatmap data
// @Description Get privacy-rounded weighted points for the requested window.
// @Tags Incidents
// @Accept json
// @Produce json
// @Param days query int false "Window in days" default(30)
// @Success 200 {object} HeatmapResponse
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/heatmap [get]
func (h *Handler) heatmap(c *gin.Context) {
	log := h.logger.WithField("method", "heatmap")
	days, _ := strconv.Atoi(c.DefaultQuery("days", "0"))

	points, err := h.incidentService.Heatmap(c.Request.Context(), days)
	if err != nil {
		log.WithError(err).Error("Failed to build heatmap")
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, HeatmapResponse{
		Count: len(points),
		Data:  HeatPointsToResponse(points),
	})
}

// @Summary Get incident by ID
// @Description Get the public projection of a single incident.
// @Tags Incidents
// @Accept json
// @Produce json
// @Param id path string true "Incident ID"
// @Success 200 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid incident ID"
// @Failure 404 {object} map[string]string "Incident not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/{id} [get]
func (h *Handler) getIncident(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid incident ID"})
		return
	}
	log := h.logger.WithField("method", "getIncident").WithField("id", id)

	public, err := h.incidentService.GetIncident(c.Request.Context(), id)
	if err != nil {
		log.WithError(err).Warn("Failed to get incident from service")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, PublicToIncidentResponse(public))
}

// @Summary Vote on an incident
// @Description Upvote or downvote an incident. One vote per voter; changing a vote moves one unit between counters.
// @Tags Incidents
// @Accept json
// @Produce json
// @Param id path string true "Incident ID"
// @Param vote body VoteRequest true "Vote request"
// @Success 200 {object} VoteResponse
// @Failure 400 {object} map[string]string "Invalid request or duplicate vote"
// @Failure 404 {object} map[string]string "Incident not found"
// @Failure 409 {object} map[string]string "Concurrent write conflict"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/{id}/vote [post]
func (h *Handler) voteIncident(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid incident ID"})
		return
	}
	log := h.logger.WithField("method", "voteIncident").WithField("id", id)

	var input VoteRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.incidentService.VoteIncident(c.Request.Context(), id, input.VoterID, models.VoteChoice(input.Vote))
	if err != nil {
		log.WithError(err).Warn("Failed to apply vote")
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, VoteResponse{
		Message:   "vote recorded",
		Upvotes:   result.Upvotes,
		Downvotes: result.Downvotes,
	})
}

// @Summary Verify an incident
// @Description Transition an incident to verified status. Requires API key.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Incident ID"
// @Param verify body VerifyRequest true "Verify request"
// @Success 200 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid incident ID or request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Incident not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/{id}/verify [patch]
func (h *Handler) verifyIncident(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid incident ID"})
		return
	}
	log := h.logger.WithField("method", "verifyIncident").WithField("id", id)

	var input VerifyRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	public, err := h.incidentService.VerifyIncident(c.Request.Context(), id, input.ModeratorRef)
	if err != nil {
		log.WithError(err).Warn("Failed to verify incident")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, PublicToIncidentResponse(public))
}

// @Summary Get neighborhoods ranked by safety score
// @Description Get neighborhoods sorted by current safety score, optionally filtered by city.
// @Tags Neighborhoods
// @Accept json
// @Produce json
// @Param city query string false "City filter"
// @Param limit query int false "Max results" default(50)
// @Success 200 {array} NeighborhoodResponse
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /neighborhoods [get]
func (h *Handler) listNeighborhoods(c *gin.Context) {
	log := h.logger.WithField("method", "listNeighborhoods")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	neighborhoods, err := h.neighborhoodService.ListNeighborhoods(c.Request.Context(), c.Query("city"), limit)
	if err != nil {
		log.WithError(err).Error("Failed to list neighborhoods")
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ModelsToNeighborhoodResponses(neighborhoods))
}

// @Summary Get neighborhood by location
// @Description Get the neighborhood whose boundary contains the point.
// @Tags Neighborhoods
// @Accept json
// @Produce json
// @Param lat query number true "Latitude"
// @Param lng query number true "Longitude"
// @Success 200 {object} NeighborhoodResponse
// @Failure 400 {object} map[string]string "Missing or invalid coordinates"
// @Failure 404 {object} map[string]string "No neighborhood at this location"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /neighborhoods/by-location [get]
func (h *Handler) neighborhoodByLocation(c *gin.Context) {
	log := h.logger.WithField("method", "neighborhoodByLocation")

	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.Query("lng"), 64)
	if latErr != nil || lngErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lng query params are required"})
		return
	}

	neighborhood, err := h.neighborhoodService.FindByLocation(c.Request.Context(), lat, lng)
	if err != nil {
		log.WithError(err).Warn("Failed to find neighborhood by location")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ModelToNeighborhoodResponse(neighborhood))
}

// @Summary Recompute all safety scores
// @Description Recompute statistics and safety scores for every neighborhood. Requires API key.
// @Tags Neighborhoods
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} UpdateScoresResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /neighborhoods/update-scores [post]
func (h *Handler) updateScores(c *gin.Context) {
	log := h.logger.WithField("method", "updateScores")

	updated, err := h.neighborhoodService.RecomputeAllScores(c.Request.Context())
	if err != nil {
		// Частичный успех - не ошибка запроса: часть районов обновлена,
		// сбои уже запротоколированы сервисом
		log.WithError(err).Warn("Score recompute finished with failures")
	}

	c.JSON(http.StatusOK, UpdateScoresResponse{
		Message: "safety scores updated",
		Updated: updated,
	})
}

// @Summary Get overview statistics
// @Description Get incident totals, type and hourly distribution and average safety score for the period.
// @Tags Stats
// @Accept json
// @Produce json
// @Param days query int false "Period in days" default(30)
// @Success 200 {object} StatsOverviewResponse
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /stats/overview [get]
func (h *Handler) statsOverview(c *gin.Context) {
	log := h.logger.WithField("method", "statsOverview")
	days, _ := strconv.Atoi(c.DefaultQuery("days", "0"))

	stats, err := h.incidentService.StatsOverview(c.Request.Context(), days)
	if err != nil {
		log.WithError(err).Error("Failed to get stats overview")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, StatsToResponse(stats))
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
