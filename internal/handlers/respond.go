package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/social_dashboard/internal/apperrors"
	"github.com/SscSPs/social_dashboard/internal/dto"
	"github.com/SscSPs/social_dashboard/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Message string   `json:"message"`
	Fields  []string `json:"fields,omitempty"`
}

// respondError maps err to a status code and a message safe to show the user.
// Server side failures never leak their cause; fallback is used instead.
func respondError(c *gin.Context, err error, fallback string) {
	status := apperrors.HTTPStatus(err)
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	body := ErrorResponse{Message: fallback}
	if status < http.StatusInternalServerError || errors.Is(err, apperrors.ErrUpstream) || errors.Is(err, apperrors.ErrUnavailable) {
		body.Message = apperrors.UserMessage(err, fallback)
	}
	var valErr *apperrors.ValidationError
	if errors.As(err, &valErr) {
		body.Message = valErr.Message
		body.Fields = valErr.Fields
	}

	if status >= http.StatusInternalServerError {
		logger.Error(fallback, slog.String("error", err.Error()), slog.Int("status", status))
	} else {
		logger.Debug("Request rejected", slog.String("error", err.Error()), slog.Int("status", status))
	}
	c.AbortWithStatusJSON(status, body)
}

// respondBindError answers 400 for a request body or query that failed binding.
func respondBindError(c *gin.Context, err error) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Debug("Invalid request", slog.String("error", err.Error()))
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request: " + err.Error()})
}

// requireUserID returns the authenticated caller or answers 401.
func requireUserID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.MessageResponse{Message: "Authentication required"})
		return "", false
	}
	return userID, true
}
