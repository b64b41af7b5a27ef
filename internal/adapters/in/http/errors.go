package http

import (
	"errors"
	"net/http"

	"procurement/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// statusFor maps a domain or application error to its HTTP status.
func statusFor(err error) int {
	switch {
	case errs.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrConcurrentModification),
		errors.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, errs.ErrAlreadyTerminal),
		errors.Is(err, errs.ErrOrderNotOpen):
		return http.StatusConflict
	case errors.Is(err, errs.ErrIncompleteAllocation),
		errors.Is(err, errs.ErrInvalidOverride),
		errors.Is(err, errs.ErrLineItemMismatch):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// errorHandler renders errors returned by handlers and middleware as Error bodies.
// Internal errors are logged and never echoed back to the client.
func errorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var body Error
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			body = Error{Code: httpErr.Code, Message: http.StatusText(httpErr.Code)}
			if msg, ok := httpErr.Message.(string); ok {
				body.Message = msg
			}
		} else {
			body = Error{Code: statusFor(err), Message: err.Error()}
		}

		if body.Code >= http.StatusInternalServerError {
			logger.Error("request failed",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
			)
			body.Message = http.StatusText(body.Code)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(body.Code)
		} else {
			writeErr = c.JSON(body.Code, body)
		}
		if writeErr != nil {
			logger.Warn("write error response", zap.Error(writeErr))
		}
	}
}
