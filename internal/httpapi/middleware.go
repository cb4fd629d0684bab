package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Leganyst/trainer-booking/internal/auth"
	"github.com/Leganyst/trainer-booking/internal/calendar"
)

const callerKey = "caller"

// RequestLogger — метод, путь, статус и длительность каждого запроса.
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()
		c.Next()

		status := c.Writer.Status()
		ev := log.Info()
		if status >= http.StatusInternalServerError {
			ev = log.Error()
		}
		ev.Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(started)).
			Msg("http request")
	}
}

// AuthMiddleware проверяет bearer-токен и кладёт вызывающего в контекст gin.
func AuthMiddleware(v *auth.Verifier, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, err := v.Authenticate(c.Request.Context(), c.GetHeader("Authorization"))
		if err != nil {
			if errors.Is(err, auth.ErrMissingToken) || errors.Is(err, auth.ErrInvalidToken) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Error: err.Error()})
				return
			}
			log.Error().Err(err).Msg("authenticate caller")
			c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
			return
		}

		c.Set(callerKey, caller)
		c.Request = c.Request.WithContext(auth.WithCaller(c.Request.Context(), caller))
		c.Next()
	}
}

func callerOf(c *gin.Context) calendar.Caller {
	v, _ := c.Get(callerKey)
	caller, _ := v.(calendar.Caller)
	return caller
}
