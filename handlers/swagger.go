package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the portfolio API.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg gin.IRouter) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>portfolio-api Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "portfolio-api", "version": "v1.0.0" },
  "components": {
    "securitySchemes": {
      "adminHeader": { "type": "apiKey", "in": "header", "name": "x-admin-key" },
      "adminQuery": { "type": "apiKey", "in": "query", "name": "adminKey" }
    },
    "schemas": {
      "Project": {"type":"object","properties":{"id":{"type":"string"},"title":{"type":"string"},"description":{"type":"string"},"url":{"type":"string"},"tags":{"type":"array","items":{"type":"string"}}}},
      "Contact": {"type":"object","properties":{"id":{"type":"string"},"name":{"type":"string"},"email":{"type":"string"},"message":{"type":"string"},"createdAt":{"type":"string","format":"date-time"}}},
      "Error": {"type":"object","properties":{"error":{"type":"string"}}}
    }
  },
  "paths": {
    "/api/projects": {
      "get": { "summary": "List projects", "responses": { "200": { "description": "all projects in insertion order" } } },
      "post": {
        "summary": "Create a project",
        "security": [{"adminHeader": []}, {"adminQuery": []}],
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","required":["title"],"properties":{"title":{"type":"string"},"description":{"type":"string"},"url":{"type":"string"},"tags":{"type":"array","items":{"type":"string"}}}}}}},
        "responses": { "201": { "description": "created project" }, "400": { "description": "Title required" }, "403": { "description": "invalid admin key" } }
      }
    },
    "/api/projects/{id}": {
      "get": { "summary": "Get a project", "responses": { "200": { "description": "project" }, "404": { "description": "Not found" } } },
      "put": {
        "summary": "Partially update a project; absent fields are kept",
        "security": [{"adminHeader": []}, {"adminQuery": []}],
        "requestBody": { "content": { "application/json": { "schema": {"$ref":"#/components/schemas/Project"}}}},
        "responses": { "200": { "description": "merged project" }, "400": { "description": "invalid body" }, "403": { "description": "invalid admin key" }, "404": { "description": "Not found" } }
      },
      "delete": {
        "summary": "Delete a project (idempotent)",
        "security": [{"adminHeader": []}, {"adminQuery": []}],
        "responses": { "200": { "description": "{\"success\":true}" }, "403": { "description": "invalid admin key" } }
      }
    },
    "/api/contact": {
      "post": {
        "summary": "Submit a contact message",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","required":["message"],"properties":{"name":{"type":"string"},"email":{"type":"string"},"message":{"type":"string"}}}}}},
        "responses": { "201": { "description": "{\"success\":true,\"entry\":Contact}" }, "400": { "description": "missing message or contact field" }, "429": { "description": "rate limited" } }
      }
    },
    "/api/contacts": {
      "get": {
        "summary": "List contact submissions",
        "security": [{"adminHeader": []}, {"adminQuery": []}],
        "responses": { "200": { "description": "all contacts in insertion order" }, "403": { "description": "invalid admin key" } }
      }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } },
    "/metrics": { "get": { "summary": "Prometheus metrics", "responses": { "200": { "description": "exposition format" } } } }
  }
}`
