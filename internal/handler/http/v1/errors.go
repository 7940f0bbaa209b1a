package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/rescue_chain/internal/service"
	"github.com/sirupsen/logrus"
)

var errorStatuses = []struct {
	kind   error
	status int
}{
	{service.ErrValidation, http.StatusBadRequest},
	{service.ErrInsufficientFunds, http.StatusBadRequest},
	{service.ErrNotFound, http.StatusNotFound},
	{service.ErrForbidden, http.StatusForbidden},
	{service.ErrStateConflict, http.StatusConflict},
	{service.ErrPayoutFailed, http.StatusBadGateway},
}

// statusFor сопоставляет ошибку сервиса коду ответа
func statusFor(err error) int {
	for _, e := range errorStatuses {
		if errors.Is(err, e.kind) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

// respondError пишет ответ с ошибкой; детали инфраструктурных сбоев наружу не отдаются
func respondError(c *gin.Context, log *logrus.Entry, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.WithError(err).Error("Request failed")
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}

	log.WithError(err).Warn("Request rejected")
	body := gin.H{"error": err.Error()}
	if service.IsRetryable(err) {
		body["retryable"] = true
	}
	c.JSON(status, body)
}
