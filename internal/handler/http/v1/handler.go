package v1

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shenikar/dispatch_console/internal/config"
	"github.com/shenikar/dispatch_console/internal/models"
	"github.com/shenikar/dispatch_console/internal/service"
	"github.com/sirupsen/logrus"
)

const sseHeartbeat = 15 * time.Second

type Handler struct {
	consoleService service.ConsoleService
	logger         *logrus.Logger
	validate       *validator.Validate
	cfg            *config.Config
}

func NewHandler(consoleService service.ConsoleService, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		consoleService: consoleService,
		logger:         logger,
		validate:       validator.New(),
		cfg:            cfg,
	}
}

// errorStatus сопоставляет вид ошибки с HTTP-статусом
func errorStatus(err error) int {
	switch {
	case errors.Is(err, models.ErrViewNotFound), errors.Is(err, models.ErrIncidentNotFound):
		return http.StatusNotFound
	case models.IsKind(err, models.KindValidation):
		return http.StatusBadRequest
	case models.IsKind(err, models.KindGeolocation):
		return http.StatusUnprocessableEntity
	case models.IsKind(err, models.KindServer), models.IsKind(err, models.KindDecode):
		return http.StatusBadGateway
	case models.IsKind(err, models.KindNetwork):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func (h *Handler) respondError(c *gin.Context, log *logrus.Entry, err error) {
	status := errorStatus(err)
	msg := "internal server error"
	switch {
	case errors.Is(err, models.ErrViewNotFound):
		msg = models.ErrViewNotFound.Error()
	case errors.Is(err, models.ErrIncidentNotFound):
		msg = models.ErrIncidentNotFound.Error()
	case status != http.StatusInternalServerError:
		msg = models.UserMessage(err)
	}

	if status >= http.StatusInternalServerError {
		log.WithError(err).Error("Request failed")
	} else {
		log.WithError(err).Warn("Request rejected")
	}
	c.JSON(status, gin.H{"error": msg})
}

// @Summary Mount a view
// @Description Create a console view for a role and start polling incidents for it.
// @Tags Views
// @Accept json
// @Produce json
// @Param view body MountViewRequest true "View role"
// @Success 201 {object} ViewResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /views [post]
func (h *Handler) mountView(c *gin.Context) {
	var input MountViewRequest
	log := h.logger.WithField("method", "mountView")

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

	state, err := h.consoleService.MountView(c.Request.Context(), models.Role(input.Role))
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, ModelToViewResponse(state))
}

// @Summary Get view state
// @Description Get the current incidents, selection and map viewport of a mounted view.
// @Tags Views
// @Produce json
// @Param id path string true "View ID"
// @Success 200 {object} ViewResponse
// @Failure 404 {object} map[string]string "View not found"
// @Router /views/{id} [get]
func (h *Handler) getView(c *gin.Context) {
	log := h.logger.WithField("method", "getView").WithField("view_id", c.Param("id"))

	state, err := h.consoleService.GetView(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToViewResponse(state))
}

// @Summary Unmount a view
// @Description Stop polling for a view and discard its state.
// @Tags Views
// @Param id path string true "View ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "View not found"
// @Router /views/{id} [delete]
func (h *Handler) unmountView(c *gin.Context) {
	log := h.logger.WithField("method", "unmountView").WithField("view_id", c.Param("id"))

	if err := h.consoleService.UnmountView(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Refresh a view
// @Description Fetch the incident list now instead of waiting for the next poll.
// @Tags Views
// @Produce json
// @Param id path string true "View ID"
// @Success 200 {object} ViewResponse
// @Failure 404 {object} map[string]string "View not found"
// @Failure 502 {object} map[string]string "Incident API error"
// @Failure 503 {object} map[string]string "Incident API unreachable"
// @Router /views/{id}/refresh [post]
func (h *Handler) refreshView(c *gin.Context) {
	log := h.logger.WithField("method", "refreshView").WithField("view_id", c.Param("id"))

	state, err := h.consoleService.RefreshView(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToViewResponse(state))
}

// @Summary Select an incident
// @Description Select an incident from the view's current list.
// @Tags Views
// @Accept json
// @Produce json
// @Param id path string true "View ID"
// @Param selection body SelectIncidentRequest true "Incident to select"
// @Success 200 {object} ViewResponse
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 404 {object} map[string]string "View or incident not found"
// @Router /views/{id}/select [post]
func (h *Handler) selectIncident(c *gin.Context) {
	var input SelectIncidentRequest
	log := h.logger.WithField("method", "selectIncident").WithField("view_id", c.Param("id"))

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

	state, err := h.consoleService.SelectIncident(c.Request.Context(), c.Param("id"), input.IncidentID)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToViewResponse(state))
}

// @Summary Recenter the map on the device
// @Description Fly the view's map to the device position reported by the browser.
// @Tags Views
// @Accept json
// @Produce json
// @Param id path string true "View ID"
// @Param position body RecenterRequest true "Device position or geolocation error"
// @Success 200 {object} FlyResponse
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 404 {object} map[string]string "View not found"
// @Failure 422 {object} map[string]string "Device location unavailable"
// @Router /views/{id}/recenter [post]
func (h *Handler) recenter(c *gin.Context) {
	var input RecenterRequest
	log := h.logger.WithField("method", "recenter").WithField("view_id", c.Param("id"))

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

	if input.GeolocationError == "" && (input.Latitude == nil || input.Longitude == nil) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "latitude and longitude are required"})
		return
	}

	fly, err := h.consoleService.Recenter(c.Request.Context(), c.Param("id"), DTOToDeviceFix(input))
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToFlyResponse(fly))
}

// @Summary Stream map transitions
// @Description Server-sent events stream of "fly" events for a view.
// @Tags Views
// @Produce text/event-stream
// @Param id path string true "View ID"
// @Success 200 {object} FlyResponse
// @Failure 404 {object} map[string]string "View not found"
// @Router /views/{id}/events [get]
func (h *Handler) streamEvents(c *gin.Context) {
	log := h.logger.WithField("method", "streamEvents").WithField("view_id", c.Param("id"))
	ctx := c.Request.Context()

	flights, cancel, err := h.consoleService.SubscribeFlights(ctx, c.Param("id"))
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	defer cancel()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Status(http.StatusOK)
	c.Writer.Flush()

	heartbeat := time.NewTicker(sseHeartbeat)
	defer heartbeat.Stop()

	log.Debug("Event stream opened")
	for {
		select {
		case fly, ok := <-flights:
			if !ok {
				log.Debug("View unmounted, closing event stream")
				return
			}
			c.SSEvent("fly", ModelToFlyResponse(&fly))
			c.Writer.Flush()
		case <-heartbeat.C:
			c.SSEvent("ping", gin.H{"time": time.Now().UTC()})
			c.Writer.Flush()
		case <-ctx.Done():
			log.Debug("Client disconnected from event stream")
			return
		}
	}
}

// @Summary Submit a report
// @Description Submit a public incident report. A location must be selected on the map.
// @Tags Reports
// @Accept json
// @Produce json
// @Param report body ReportRequest true "Incident report"
// @Success 201 {object} ReportResponse
// @Failure 400 {object} map[string]string "Invalid request body or missing location"
// @Failure 502 {object} map[string]string "Incident API error"
// @Failure 503 {object} map[string]string "Incident API unreachable"
// @Router /reports [post]
func (h *Handler) submitReport(c *gin.Context) {
	var input ReportRequest
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

	result, err := h.consoleService.SubmitReport(c.Request.Context(), DTOToReportModel(input))
	if err != nil {
		h.respondError(c, log, err)
		return
	}

	instructions := result.ImmediateInstructions
	if instructions == nil {
		instructions = []string{}
	}
	c.JSON(http.StatusCreated, ReportResponse{ImmediateInstructions: instructions})
}

// @Summary Update worker status
// @Description Update the status of a worker group assigned to an incident. Requires API key.
// @Tags Incidents
// @Accept json
// @Security ApiKeyAuth
// @Param id path string true "Incident ID"
// @Param status body WorkerStatusRequest true "Worker status"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 502 {object} map[string]string "Incident API error"
// @Failure 503 {object} map[string]string "Incident API unreachable"
// @Router /incidents/{id}/workers [patch]
func (h *Handler) updateWorkerStatus(c *gin.Context) {
	var input WorkerStatusRequest
	log := h.logger.WithField("method", "updateWorkerStatus").WithField("incident_id", c.Param("id"))

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

	err := h.consoleService.UpdateWorkerStatus(c.Request.Context(), c.Param("id"), input.WorkerType, models.WorkerStatus(input.Status))
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Assign workers
// @Description Mark an incident as assigned. Requires API key.
// @Tags Incidents
// @Security ApiKeyAuth
// @Param id path string true "Incident ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 502 {object} map[string]string "Incident API error"
// @Failure 503 {object} map[string]string "Incident API unreachable"
// @Router /incidents/{id}/assign [post]
func (h *Handler) assignWorkers(c *gin.Context) {
	log := h.logger.WithField("method", "assignWorkers").WithField("incident_id", c.Param("id"))

	if err := h.consoleService.AssignWorkers(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Reverse geocode
// @Description Resolve coordinates to a human-readable address.
// @Tags Geocode
// @Produce json
// @Param lat query number true "Latitude"
// @Param lon query number true "Longitude"
// @Success 200 {object} ReverseGeocodeResponse
// @Failure 400 {object} map[string]string "Invalid coordinates"
// @Router /geocode/reverse [get]
func (h *Handler) reverseGeocode(c *gin.Context) {
	var input ReverseGeocodeQuery
	log := h.logger.WithField("method", "reverseGeocode")

	if err := c.ShouldBindQuery(&input); err != nil {
		log.WithError(err).Warn("Failed to bind query")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid coordinates"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	name := h.consoleService.ResolveAddress(c.Request.Context(), models.Location{Latitude: *input.Lat, Longitude: *input.Lon})
	c.JSON(http.StatusOK, ReverseGeocodeResponse{DisplayName: name})
}

// @Summary List recent console actions
// @Description Get the latest operator actions from the journal. Requires API key.
// @Tags Admin
// @Produce json
// @Security ApiKeyAuth
// @Param limit query int false "Number of records" default(20)
// @Success 200 {array} ActionResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /journal [get]
func (h *Handler) listJournal(c *gin.Context) {
	log := h.logger.WithField("method", "listJournal")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	records, err := h.consoleService.RecentActions(c.Request.Context(), limit)
	if err != nil {
		h.respondError(c, log, err)
		return
	}

	c.JSON(http.StatusOK, ModelsToActionResponses(records))
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
