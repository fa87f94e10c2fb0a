package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/usermgmt/user-service/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Answers unmatched routes (and wrong methods) with 404 "Route not found".
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 401 from middleware, router misses).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		// The router reports unmatched paths as 404 and known paths with the
		// wrong method as 405; the contract treats both as unmatched.
		if he.Code == http.StatusNotFound || he.Code == http.StatusMethodNotAllowed {
			return http.StatusNotFound, "Route not found"
		}
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, domain.ErrUserNotFound.Error()
	case errors.Is(err, domain.ErrEmailExists):
		return http.StatusBadRequest, domain.ErrEmailExists.Error()
	}

	var lre *domain.LimitReachedError
	if errors.As(err, &lre) {
		return http.StatusBadRequest, lre.Error()
	}
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, ve.Error()
	}

	// Unexpected error (including recovered panics): log the real cause,
	// return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "Something went wrong!"
}
