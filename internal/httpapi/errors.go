package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Leganyst/trainer-booking/internal/calendar"
)

type errorResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
}

// statusFor: 400 — ввод и рабочие часы, 403, 404, 409 — блокировка и конфликты.
func statusFor(reason calendar.Reason) int {
	switch reason {
	case calendar.ReasonValidation, calendar.ReasonOutOfHours:
		return http.StatusBadRequest
	case calendar.ReasonForbidden:
		return http.StatusForbidden
	case calendar.ReasonNotFound:
		return http.StatusNotFound
	case calendar.ReasonLocked, calendar.ReasonTrainerConflict, calendar.ReasonClientConflict, calendar.ReasonConflict:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func (h *Handler) writeError(c *gin.Context, err error) {
	var e *calendar.Error
	if errors.As(err, &e) {
		c.JSON(statusFor(e.Reason), errorResponse{Error: e.Message, Reason: string(e.Reason)})
		return
	}

	h.log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
	c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, errorResponse{Error: msg, Reason: string(calendar.ReasonValidation)})
}
