// Package openapi serves the OpenAPI description generated from the
// registered API operations and a Swagger UI page for it.
package openapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/labstack/echo/v4"
	"gopkg.in/yaml.v3"
)

const swaggerUIHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>Card Marketplace API</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    SwaggerUIBundle({
      url: "/swagger/openapi.json",
      dom_id: "#swagger-ui",
      presets: [SwaggerUIBundle.presets.apis, SwaggerUIBundle.SwaggerUIStandalonePreset],
      layout: "BaseLayout",
    });
  </script>
</body>
</html>`

// JSON renders the OpenAPI document of api.
func JSON(api huma.API) ([]byte, error) {
	data, err := json.Marshal(api.OpenAPI())
	if err != nil {
		return nil, fmt.Errorf("marshaling openapi document: %w", err)
	}
	return data, nil
}

// YAML renders the OpenAPI document of api as YAML.
func YAML(api huma.API) ([]byte, error) {
	data, err := JSON(api)
	if err != nil {
		return nil, err
	}
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("converting openapi document: %w", err)
	}
	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("converting openapi document: %w", err)
	}
	return out, nil
}

// RegisterRoutes adds Swagger UI and spec endpoints for api to the Echo
// instance. The document is rendered per request and includes operations
// registered after this call.
func RegisterRoutes(e *echo.Echo, api huma.API) {
	e.GET("/swagger/openapi.json", serveSpec(api, JSON, echo.MIMEApplicationJSON))
	e.GET("/swagger/openapi.yaml", serveSpec(api, YAML, "application/yaml"))
	e.GET("/swagger/index.html", serveUI)
	e.GET("/swagger", redirectToUI)
	e.GET("/swagger/", redirectToUI)
}

func serveSpec(api huma.API, render func(huma.API) ([]byte, error), contentType string) echo.HandlerFunc {
	return func(c echo.Context) error {
		data, err := render(api)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": err.Error()})
		}
		return c.Blob(http.StatusOK, contentType, data)
	}
}

func serveUI(c echo.Context) error {
	return c.HTML(http.StatusOK, swaggerUIHTML)
}

func redirectToUI(c echo.Context) error {
	return c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
}
