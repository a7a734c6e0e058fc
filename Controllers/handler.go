package Controllers

import (
	"errors"
	"net/http"

	"IranElaj/Config"
	"IranElaj/Services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler holds what the gin handlers need; routes are bound to its methods.
type Handler struct {
	cfg      *Config.Config
	auth     *Services.AuthService
	requests *Services.RequestService
	logger   *zap.Logger
}

func NewHandler(cfg *Config.Config, auth *Services.AuthService, requests *Services.RequestService, logger *zap.Logger) *Handler {
	return &Handler{cfg: cfg, auth: auth, requests: requests, logger: logger}
}

// respondError writes the status and client-safe message for err. Internal
// causes are logged, never sent.
func (h *Handler) respondError(c *gin.Context, err error) {
	kind := Services.KindOf(err)
	status := statusFor(kind)

	message := "internal server error"
	var serviceErr *Services.Error
	if kind != Services.KindInternal && errors.As(err, &serviceErr) {
		message = serviceErr.Message
	}
	if kind == Services.KindAuthentication {
		message = "invalid credentials"
	}

	if status >= http.StatusInternalServerError {
		h.logger.Error("Request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

func statusFor(kind Services.Kind) int {
	switch kind {
	case Services.KindValidation, Services.KindConflict:
		return http.StatusBadRequest
	case Services.KindNotFound:
		return http.StatusNotFound
	case Services.KindAuthentication:
		return http.StatusUnauthorized
	case Services.KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
