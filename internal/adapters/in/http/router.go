// Package http exposes the procurement use cases over a JSON API described by the embedded
// openapi.yaml. Requests are validated against that document before they reach a handler.
package http

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
)

// BaseURL prefixes every documented operation.
const BaseURL = "/api/v1"

// NewRouter builds the echo instance serving the API, /health, /metrics and the
// Swagger UI at /swagger/index.html.
func NewRouter(ctx context.Context, server ServerInterface, logger *zap.Logger, echoLogLevel log.Lvl) (*echo.Echo, error) {
	doc, err := LoadSpec(ctx)
	if err != nil {
		return nil, err
	}
	validator, err := requestValidator(doc)
	if err != nil {
		return nil, err
	}
	if err := registerSwagger(doc); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(echoLogLevel)
	e.HTTPErrorHandler = errorHandler(logger)

	e.Use(requestLogger(logger.Named("http")))
	e.Use(middleware.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.EchoWrapHandler(echoSwagger.InstanceName("swagger")))

	api := e.Group(BaseURL, validator)
	RegisterHandlers(api, server, "")

	return e, nil
}
