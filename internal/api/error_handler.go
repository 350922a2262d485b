package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/lybfish/ironbull/internal/core/domain"
)

// errorResponse is the canonical error envelope for all gateway errors.
type errorResponse struct {
	Error  string `json:"error"`
	Status int    `json:"upstream_status,omitempty"`
	Body   string `json:"upstream_body,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps the console error taxonomy to deterministic HTTP status codes.
//   - Carries upstream failures through with their original status and body.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		_ = c.JSON(resolveError(err, log, c))
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	// Upstream failures pass through with status and body intact.
	var ue *domain.UpstreamError
	if errors.As(err, &ue) {
		return ue.Status, errorResponse{Error: "upstream error", Status: ue.Status, Body: ue.Body}
	}

	switch {
	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrNoSession):
		return http.StatusUnauthorized, errorResponse{Error: "session expired, log in again"}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorResponse{Error: "invalid credentials"}
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, errorResponse{Error: "access forbidden"}
	case errors.Is(err, domain.ErrTimeout):
		return http.StatusGatewayTimeout, errorResponse{Error: "upstream timed out"}
	case errors.Is(err, domain.ErrRouteNotFound):
		return http.StatusNotFound, errorResponse{Error: "unknown console route"}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
}
