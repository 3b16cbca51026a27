package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/riders-app/pinchazo-backend/internal/config"
	"github.com/riders-app/pinchazo-backend/internal/models"
	"github.com/riders-app/pinchazo-backend/internal/service"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	alertService        service.AlertService
	notificationService service.NotificationService
	logger              *logrus.Logger
	validate            *validator.Validate
	cfg                 *config.Config
}

func NewHandler(alertService service.AlertService, notificationService service.NotificationService, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		alertService:        alertService,
		notificationService: notificationService,
		logger:              logger,
		validate:            validator.New(),
		cfg:                 cfg,
	}
}

// @Summary Submit a flat tire alert
// @Description Submit a new pinchazo alert. Any open alert of the same rider is cancelled first. Requires API key.
// @Tags Alerts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param alert body CreateAlertRequest true "Alert submission request"
// @Success 201 {object} AlertResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Requester not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /alerts/pinchazo [post]
func (h *Handler) createAlert(c *gin.Context) {
	var input CreateAlertRequest
	log := h.logger.WithField("method", "createAlert")

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

	alert, err := h.alertService.Submit(c.Request.Context(), actorFromContext(c), input.Location.Latitude, input.Location.Longitude, input.Notes)
	if err != nil {
		h.respondServiceError(c, log, err, "Failed to submit alert")
		return
	}

	resp := ModelToAlertResponse(alert)
	resp.Message = "Alerta enviada. Buscando gomeros cercanos..."
	c.JSON(http.StatusCreated, resp)
}

// @Summary Accept an alert
// @Description Claim a pending alert for the calling gomero. Exactly one gomero wins a contested alert. Requires API key.
// @Tags Alerts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Alert ID"
// @Success 200 {object} AlertResponse
// @Failure 400 {object} map[string]string "Invalid alert ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Caller is not a gomero"
// @Failure 404 {object} map[string]string "Alert is no longer available"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /alerts/pinchazo/{id}/accept [post]
func (h *Handler) acceptAlert(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid alert ID"})
		return
	}
	log := h.logger.WithField("method", "acceptAlert").WithField("id", id)

	alert, err := h.alertService.Accept(c.Request.Context(), actorFromContext(c), id)
	if err != nil {
		h.respondServiceError(c, log, err, "Failed to accept alert")
		return
	}
	c.JSON(http.StatusOK, ModelToAlertResponse(alert))
}

// @Summary Reject an accepted alert
// @Description Release an accepted alert back to the pending pool. Requires API key.
// @Tags Alerts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Alert ID"
// @Success 200 {object} AlertResponse
// @Failure 400 {object} map[string]string "Invalid alert ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Alert is not held by the caller"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /alerts/pinchazo/{id}/reject [post]
func (h *Handler) rejectAlert(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid alert ID"})
		return
	}
	log := h.logger.WithField("method", "rejectAlert").WithField("id", id)

	alert, err := h.alertService.Reject(c.Request.Context(), actorFromContext(c), id)
	if err != nil {
		h.respondServiceError(c, log, err, "Failed to reject alert")
		return
	}
	c.JSON(http.StatusOK, ModelToAlertResponse(alert))
}

// @Summary Mark the gomero as on the way
// @Description Advance an accepted alert to on_way. Only the assigned gomero may advance it. Requires API key.
// @Tags Alerts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Alert ID"
// @Success 200 {object} AlertResponse
// @Failure 400 {object} map[string]string "Invalid alert ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Alert assigned to another gomero"
// @Failure 404 {object} map[string]string "Alert not found"
// @Failure 409 {object} map[string]string "Alert is not in the expected state"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /alerts/pinchazo/{id}/on_way [post]
func (h *Handler) markOnWay(c *gin.Context) {
	h.advanceAlert(c, models.StatusOnWay, "markOnWay")
}

// @Summary Mark the gomero as arrived
// @Description Advance an on_way alert to arrived. Only the assigned gomero may advance it. Requires API key.
// @Tags Alerts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Alert ID"
// @Success 200 {object} AlertResponse
// @Failure 400 {object} map[string]string "Invalid alert ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Alert assigned to another gomero"
// @Failure 404 {object} map[string]string "Alert not found"
// @Failure 409 {object} map[string]string "Alert is not in the expected state"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /alerts/pinchazo/{id}/arrived [post]
func (h *Handler) markArrived(c *gin.Context) {
	h.advanceAlert(c, models.StatusArrived, "markArrived")
}

// @Summary Mark the service as completed
// @Description Advance an arrived alert to completed. Only the assigned gomero may advance it. Requires API key.
// @Tags Alerts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Alert ID"
// @Success 200 {object} AlertResponse
// @Failure 400 {object} map[string]string "Invalid alert ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Alert assigned to another gomero"
// @Failure 404 {object} map[string]string "Alert not found"
// @Failure 409 {object} map[string]string "Alert is not in the expected state"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /alerts/pinchazo/{id}/completed [post]
func (h *Handler) markCompleted(c *gin.Context) {
	h.advanceAlert(c, models.StatusCompleted, "markCompleted")
}

func (h *Handler) advanceAlert(c *gin.Context, next models.AlertStatus, method string) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid alert ID"})
		return
	}
	log := h.logger.WithField("method", method).WithField("id", id)

	alert, err := h.alertService.Advance(c.Request.Context(), actorFromContext(c), id, next)
	if err != nil {
		h.respondServiceError(c, log, err, "Failed to advance alert")
		return
	}
	c.JSON(http.StatusOK, ModelToAlertResponse(alert))
}

// @Summary Cancel an alert
// @Description Cancel an open alert. The requester or the assigned gomero may cancel; anyone else is rejected. Requires API key.
// @Tags Alerts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Alert ID"
// @Param cancel body CancelAlertRequest false "Cancellation reason"
// @Success 200 {object} AlertResponse
// @Failure 400 {object} map[string]string "Invalid alert ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Caller may not cancel this alert"
// @Failure 404 {object} map[string]string "Alert not found"
// @Failure 409 {object} map[string]string "Alert already closed"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /alerts/pinchazo/{id}/cancel [post]
func (h *Handler) cancelAlert(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid alert ID"})
		return
	}
	log := h.logger.WithField("method", "cancelAlert").WithField("id", id)

	// The body is optional, an empty reason is fine.
	var input CancelAlertRequest
	if c.Request.ContentLength > 0 {
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
	}

	alert, err := h.alertService.Cancel(c.Request.Context(), actorFromContext(c), id, input.Reason)
	if err != nil {
		h.respondServiceError(c, log, err, "Failed to cancel alert")
		return
	}
	c.JSON(http.StatusOK, ModelToAlertResponse(alert))
}

// @Summary List alerts visible to the calling gomero
// @Description Get the pending pool plus the caller's own active assignments, newest first. Requires API key.
// @Tags Alerts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} AlertResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Caller is not a gomero"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /alerts/pinchazo/active [get]
func (h *Handler) listActiveAlerts(c *gin.Context) {
	log := h.logger.WithField("method", "listActiveAlerts")

	alerts, err := h.alertService.ActiveForGomero(c.Request.Context(), actorFromContext(c))
	if err != nil {
		h.respondServiceError(c, log, err, "Failed to list active alerts")
		return
	}
	c.JSON(http.StatusOK, ModelsToAlertResponses(alerts))
}

// @Summary List the caller's alert history
// @Description Get every alert the calling rider has submitted, newest first. Requires API key.
// @Tags Alerts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} AlertResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /alerts/pinchazo/history [get]
func (h *Handler) listAlertHistory(c *gin.Context) {
	log := h.logger.WithField("method", "listAlertHistory")

	alerts, err := h.alertService.HistoryForRequester(c.Request.Context(), actorFromContext(c))
	if err != nil {
		h.respondServiceError(c, log, err, "Failed to list alert history")
		return
	}
	c.JSON(http.StatusOK, ModelsToAlertResponses(alerts))
}

// @Summary Get alert by ID
// @Description Get a single alert with the assigned gomero's contact info. Requires API key.
// @Tags Alerts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Alert ID"
// @Success 200 {object} AlertResponse
// @Failure 400 {object} map[string]string "Invalid alert ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Alert not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /alerts/pinchazo/{id} [get]
func (h *Handler) getAlert(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid alert ID"})
		return
	}
	log := h.logger.WithField("method", "getAlert").WithField("id", id)

	alert, err := h.alertService.GetAlert(c.Request.Context(), id)
	if err != nil {
		h.respondServiceError(c, log, err, "Failed to get alert")
		return
	}
	c.JSON(http.StatusOK, ModelToAlertResponse(alert))
}

// @Summary Register a push token
// @Description Register an Expo push token for the calling user. Re-registering moves the token to the caller. Requires API key.
// @Tags Notifications
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param token body RegisterTokenRequest true "Token registration request"
// @Success 200 {object} map[string]string "Status OK"
// @Failure 400 {object} map[string]string "Invalid request body or token format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /notifications/register [post]
func (h *Handler) registerToken(c *gin.Context) {
	var input RegisterTokenRequest
	log := h.logger.WithField("method", "registerToken")

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

	if err := h.notificationService.RegisterToken(c.Request.Context(), actorFromContext(c), input.Token); err != nil {
		h.respondServiceError(c, log, err, "Failed to register push token")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "registered"})
}

// @Summary Unregister a push token
// @Description Remove an Expo push token for the calling user. Requires API key.
// @Tags Notifications
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param token body UnregisterTokenRequest true "Token removal request"
// @Success 200 {object} map[string]string "Status OK"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /notifications/unregister [post]
func (h *Handler) unregisterToken(c *gin.Context) {
	var input UnregisterTokenRequest
	log := h.logger.WithField("method", "unregisterToken")

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

	if err := h.notificationService.UnregisterToken(c.Request.Context(), actorFromContext(c), input.Token); err != nil {
		h.respondServiceError(c, log, err, "Failed to unregister push token")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "unregistered"})
}

// @Summary Send a test notification
// @Description Broadcast a diagnostic push to every registered device except the caller's. Requires API key.
// @Tags Notifications
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param test body TestNotificationRequest false "Optional title and body"
// @Success 202 {object} map[string]string "Accepted for delivery"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /notifications/test [post]
func (h *Handler) sendTestNotification(c *gin.Context) {
	log := h.logger.WithField("method", "sendTestNotification")

	var input TestNotificationRequest
	if c.Request.ContentLength > 0 {
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
	}

	if err := h.notificationService.SendTest(c.Request.Context(), actorFromContext(c), input.Title, input.Body, nil); err != nil {
		h.respondServiceError(c, log, err, "Failed to enqueue test notification")
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "queued"})
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

// respondServiceError maps domain errors to HTTP status codes.
func (h *Handler) respondServiceError(c *gin.Context, log *logrus.Entry, err error, message string) {
	switch {
	case errors.Is(err, service.ErrValidation):
		log.WithError(err).Warn(message)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrForbidden):
		log.WithError(err).Warn(message)
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		log.WithError(err).Warn(message)
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrConflict):
		log.WithError(err).Warn(message)
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.WithError(err).Error(message)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
