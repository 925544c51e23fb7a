package openapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medcoding/medcoding/internal/domain/coding"
)

// Generator builds the OpenAPI 3.0 document for the coding API.
type Generator struct {
	title   string
	version string
	baseURL string
}

// NewGenerator creates a new OpenAPI spec generator.
func NewGenerator(title, version, baseURL string) *Generator {
	return &Generator{title: title, version: version, baseURL: baseURL}
}

// GenerateSpec produces the OpenAPI 3.0 spec as a map.
func (g *Generator) GenerateSpec() map[string]interface{} {
	spec := map[string]interface{}{
		"openapi": "3.0.3",
		"info": map[string]interface{}{
			"title":       g.title,
			"version":     g.version,
			"description": "Keyword-based medical coding analysis (CPT, ICD-10, HCPCS)",
		},
		"paths": g.buildPaths(),
		"components": map[string]interface{}{
			"schemas": buildComponentSchemas(),
		},
	}
	if g.baseURL != "" {
		spec["servers"] = []map[string]string{{"url": g.baseURL}}
	}
	return spec
}

func (g *Generator) buildPaths() map[string]interface{} {
	return map[string]interface{}{
		"/": map[string]interface{}{
			"get": map[string]interface{}{
				"summary":     "Service status",
				"operationId": "root",
				"tags":        []string{"status"},
				"responses": map[string]interface{}{
					"200": buildResponseWithSchema("Service is running", "#/components/schemas/RootResponse"),
				},
			},
		},
		"/health": map[string]interface{}{
			"get": map[string]interface{}{
				"summary":     "Health check",
				"operationId": "health",
				"tags":        []string{"status"},
				"responses": map[string]interface{}{
					"200": buildResponseWithSchema("Service is healthy", "#/components/schemas/HealthResponse"),
				},
			},
		},
		"/info": map[string]interface{}{
			"get": map[string]interface{}{
				"summary":     "API information",
				"operationId": "info",
				"tags":        []string{"status"},
				"responses": map[string]interface{}{
					"200": buildResponseWithSchema("API information", "#/components/schemas/InfoResponse"),
				},
			},
		},
		"/analyze": map[string]interface{}{
			"post": map[string]interface{}{
				"summary":     "Analyze a patient description",
				"operationId": "analyze",
				"tags":        []string{"coding"},
				"requestBody": map[string]interface{}{
					"required": true,
					"content": map[string]interface{}{
						"application/json": map[string]interface{}{
							"schema": map[string]string{"$ref": "#/components/schemas/AnalysisRequest"},
						},
					},
				},
				"responses": map[string]interface{}{
					"200": buildResponseWithSchema("Analysis result", "#/components/schemas/AnalysisResponse"),
					"400": buildResponseWithSchema("Invalid description", "#/components/schemas/Error"),
					"413": buildResponseWithSchema("Request body too large", "#/components/schemas/Error"),
					"429": buildResponseWithSchema("Rate limit exceeded", "#/components/schemas/Error"),
					"500": buildResponseWithSchema("Internal server error", "#/components/schemas/Error"),
				},
			},
		},
	}
}

func buildResponseWithSchema(description, schemaRef string) map[string]interface{} {
	return map[string]interface{}{
		"description": description,
		"content": map[string]interface{}{
			"application/json": map[string]interface{}{
				"schema": map[string]string{"$ref": schemaRef},
			},
		},
	}
}

func stringProp() map[string]interface{} {
	return map[string]interface{}{"type": "string"}
}

func arrayOf(ref string) map[string]interface{} {
	return map[string]interface{}{
		"type":  "array",
		"items": map[string]string{"$ref": ref},
	}
}

func objectSchema(required []string, props map[string]interface{}) map[string]interface{} {
	s := map[string]interface{}{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

func buildComponentSchemas() map[string]interface{} {
	confidence := map[string]interface{}{"type": "number", "format": "double", "minimum": 0, "maximum": 1}

	return map[string]interface{}{
		"AnalysisRequest": objectSchema([]string{"description"}, map[string]interface{}{
			"description": map[string]interface{}{
				"type":        "string",
				"minLength":   coding.MinDescriptionLength,
				"maxLength":   coding.MaxDescriptionLength,
				"description": "Free-text patient description; length is checked after trimming whitespace",
			},
			"max_cpt_codes":   map[string]interface{}{"type": "integer", "default": coding.DefaultMaxCPTCodes},
			"max_icd_codes":   map[string]interface{}{"type": "integer", "default": coding.DefaultMaxICDCodes},
			"max_hcpcs_codes": map[string]interface{}{"type": "integer", "default": coding.DefaultMaxHCPCSCodes},
		}),
		"CodeEntry": objectSchema([]string{"code", "description", "confidence"}, map[string]interface{}{
			"code":        stringProp(),
			"description": stringProp(),
			"confidence":  confidence,
		}),
		"AnalysisResult": objectSchema(
			[]string{"summary", "cpt_codes", "icd10_codes", "hcpcs_codes", "confidence", "recommendations"},
			map[string]interface{}{
				"summary":     stringProp(),
				"cpt_codes":   arrayOf("#/components/schemas/CodeEntry"),
				"icd10_codes": arrayOf("#/components/schemas/CodeEntry"),
				"hcpcs_codes": arrayOf("#/components/schemas/CodeEntry"),
				"confidence":  confidence,
				"recommendations": map[string]interface{}{
					"type":  "array",
					"items": stringProp(),
				},
			}),
		"AnalysisResponse": objectSchema([]string{"report_id", "status", "analysis"}, map[string]interface{}{
			"report_id": map[string]interface{}{"type": "string", "pattern": "^" + coding.ReportIDPrefix + "[0-9a-f]{8}$"},
			"status":    map[string]interface{}{"type": "string", "enum": []string{coding.StatusSuccess}},
			"analysis":  map[string]string{"$ref": "#/components/schemas/AnalysisResult"},
		}),
		"Error": objectSchema([]string{"detail", "status_code"}, map[string]interface{}{
			"detail":      stringProp(),
			"status_code": map[string]interface{}{"type": "integer"},
		}),
		"RootResponse": objectSchema(nil, map[string]interface{}{
			"message":   stringProp(),
			"status":    stringProp(),
			"version":   stringProp(),
			"timestamp": map[string]interface{}{"type": "string", "format": "date-time"},
		}),
		"HealthResponse": objectSchema(nil, map[string]interface{}{
			"status":    stringProp(),
			"service":   stringProp(),
			"timestamp": map[string]interface{}{"type": "string", "format": "date-time"},
			"version":   stringProp(),
		}),
		"InfoResponse": objectSchema(nil, map[string]interface{}{
			"name":        stringProp(),
			"version":     stringProp(),
			"description": stringProp(),
			"endpoints": map[string]interface{}{
				"type":                 "object",
				"additionalProperties": stringProp(),
			},
		}),
	}
}

// docsCSP loosens the global CSP for the Swagger UI page only.
const docsCSP = "default-src 'none'; script-src 'unsafe-inline' https://unpkg.com; " +
	"style-src 'unsafe-inline' https://unpkg.com; img-src data: https:; connect-src 'self'"

const swaggerUIHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>Medical Coding API - Swagger UI</title>
  <link rel="stylesheet" type="text/css" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" >
  <style>
    html { box-sizing: border-box; overflow-y: scroll; }
    *, *:before, *:after { box-sizing: inherit; }
    body { margin: 0; background: #fafafa; }
  </style>
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    SwaggerUIBundle({
      url: "/openapi.json",
      dom_id: '#swagger-ui',
      deepLinking: true,
      presets: [
        SwaggerUIBundle.presets.apis,
        SwaggerUIBundle.SwaggerUIStandalonePreset
      ],
      layout: "BaseLayout"
    })
  </script>
</body>
</html>`

// RegisterRoutes registers /openapi.json and /docs.
func (g *Generator) RegisterRoutes(e *echo.Echo) {
	spec := g.GenerateSpec()
	e.GET("/openapi.json", func(c echo.Context) error {
		return c.JSON(http.StatusOK, spec)
	})
	e.GET("/docs", func(c echo.Context) error {
		c.Response().Header().Set("Content-Security-Policy", docsCSP)
		return c.HTML(http.StatusOK, swaggerUIHTML)
	})
}
