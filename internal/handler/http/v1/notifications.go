package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// @Summary Get notifications
// @Description Latest notifications of the current user, newest first.
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max items" default(50)
// @Success 200 {array} models.Notification
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /notifications [get]
func (h *Handler) listNotifications(c *gin.Context) {
	log, actor, ok := h.requestLog(c, "listNotifications")
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	items, err := h.notificationService.List(c.Request.Context(), actor.ID, limit)
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// @Summary Mark notification read
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Success 200 {object} models.Notification
// @Failure 400 {object} map[string]string "Invalid notification ID"
// @Failure 404 {object} map[string]string "Notification not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /notifications/{id}/read [patch]
func (h *Handler) markNotificationRead(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification ID"})
		return
	}
	log, actor, ok := h.requestLog(c, "markNotificationRead")
	if !ok {
		return
	}

	n, err := h.notificationService.MarkRead(c.Request.Context(), actor.ID, id)
	if err != nil {
		respondError(c, log.WithField("notification_id", id), err)
		return
	}
	c.JSON(http.StatusOK, n)
}

// @Summary Mark notifications read
// @Description Marks the listed notifications read, or all of them when ids is empty.
// @Tags Notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body MarkReadRequest false "Notification IDs"
// @Success 200 {object} map[string]int64 "Number of updated notifications"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /notifications/read [patch]
func (h *Handler) markNotificationsRead(c *gin.Context) {
	log, actor, ok := h.requestLog(c, "markNotificationsRead")
	if !ok {
		return
	}

	var input MarkReadRequest
	if c.Request.ContentLength != 0 && !h.bindJSON(c, log, &input) {
		return
	}

	updated, err := h.notificationService.MarkAllRead(c.Request.Context(), actor.ID, input.IDs)
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": updated})
}
