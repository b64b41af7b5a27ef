package http

import (
	"errors"
	"net/http"
	"time"

	"procurement/internal/pkg/metrics"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// requestValidator checks path, query, header and body of every documented operation
// against the OpenAPI document. Paths the document does not describe (health, metrics,
// swagger) pass through untouched.
func requestValidator(doc *openapi3.T) (echo.MiddlewareFunc, error) {
	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, err
	}

	options := &openapi3filter.Options{
		MultiError:         true,
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			route, pathParams, err := router.FindRoute(req)
			if errors.Is(err, routers.ErrPathNotFound) {
				return next(c)
			}
			if err != nil {
				return echo.NewHTTPError(http.StatusMethodNotAllowed, err.Error())
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			if err := openapi3filter.ValidateRequest(req.Context(), input); err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, validationMessage(err))
			}
			return next(c)
		}
	}, nil
}

func validationMessage(err error) string {
	var multi openapi3.MultiError
	if errors.As(err, &multi) && len(multi) > 0 {
		return validationMessage(multi[0])
	}
	var reqErr *openapi3filter.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Error()
	}
	return err.Error()
}

// requestLogger logs one line per request and feeds the latency histogram.
func requestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			started := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			status := c.Response().Status
			route := c.Path()
			metrics.ObserveRequest(c.Request().Method, route, status, started)

			fields := []zap.Field{
				zap.String("method", c.Request().Method),
				zap.String("route", route),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", status),
				zap.Duration("latency", time.Since(started)),
			}
			switch {
			case status >= http.StatusInternalServerError:
				logger.Error("http request", append(fields, zap.Error(err))...)
			case status >= http.StatusBadRequest:
				logger.Info("http request", fields...)
			default:
				logger.Debug("http request", fields...)
			}
			return nil
		}
	}
}
