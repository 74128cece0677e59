package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/donaldgifford/card-market/api/openapi"
	"github.com/donaldgifford/card-market/internal/api/middleware"
	"github.com/donaldgifford/card-market/pkg/logger"
)

// NewRouter builds the echo instance serving the marketplace API, its OpenAPI
// document, a health check and Prometheus metrics.
func NewRouter(m *Marketplace, tokens *Tokens, log *slog.Logger) *echo.Echo {
	log = logger.Component(log, "mockapi")

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(log))
	e.Use(middleware.RequestLog(log))
	e.Use(middleware.Metrics())

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, StatusResponse{Status: "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := humaecho.New(e, NewAPIConfig())
	requireUser := RequireUser(api, tokens)
	RegisterAuthRoutes(api, NewAuthHandler(m, tokens, log), requireUser)
	RegisterCardRoutes(api, NewCardHandler(m, log), requireUser)
	RegisterTradeRoutes(api, NewTradeHandler(m, log), requireUser)

	openapi.RegisterRoutes(e, api)
	return e
}

// NewAPIConfig returns the Huma configuration of the marketplace API. The
// document is served by the openapi package, so Huma's own spec, docs and
// schema routes are disabled.
func NewAPIConfig() huma.Config {
	cfg := huma.DefaultConfig("Card Marketplace API (mock)", "1.0.0")
	cfg.Info.Description = "In-memory fake of the card marketplace API."
	cfg.OpenAPIPath = ""
	cfg.DocsPath = ""
	cfg.SchemasPath = ""
	cfg.CreateHooks = nil
	cfg.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		BearerScheme: {Type: "http", Scheme: "bearer", BearerFormat: "JWT"},
	}
	return cfg
}
