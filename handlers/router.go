package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/technova/portfolio-api/internal/admin"
	contacthandler "github.com/technova/portfolio-api/internal/contact/handler"
	contactservice "github.com/technova/portfolio-api/internal/contact/service"
	projecthandler "github.com/technova/portfolio-api/internal/project/handler"
	projectservice "github.com/technova/portfolio-api/internal/project/service"
	"github.com/technova/portfolio-api/internal/store"
	"github.com/technova/portfolio-api/pkg/middleware"
)

var startTime = time.Now()

// RouterDeps is everything the HTTP layer needs. Notifier, Redis and
// ContactGuards are optional.
type RouterDeps struct {
	Store    *store.Store
	Gate     *admin.Gate
	Notifier contactservice.Notifier
	// Redis is reported on /ready when set (rate limiter backend).
	Redis *redis.Client
	// ContactGuards run in front of POST /api/contact, e.g. a rate limiter.
	ContactGuards []gin.HandlerFunc
}

// NewRouter builds the gin engine with every route of the API mounted.
func NewRouter(d RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.CORS(), gin.Logger(), gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})
	r.GET("/ready", readyHandler(d))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	RegisterSwagger(r)

	requireAdmin := middleware.RequireAdmin(d.Gate)
	projecthandler.RegisterProjectRoutes(r, projectservice.New(d.Store), requireAdmin)
	contacthandler.RegisterContactRoutes(r, contactservice.New(d.Store, d.Notifier), requireAdmin, d.ContactGuards...)

	// unknown API paths answer in JSON; everything else keeps gin's plain 404
	r.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") || c.Request.URL.Path == "/api" {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		}
	})
	return r
}

// readyHandler returns 200 only when the document store can be read and,
// when configured, Redis answers.
func readyHandler(d RouterDeps) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		ready := true
		deps := map[string]bool{}

		deps["store"] = d.Store.Ping(ctx) == nil
		if !deps["store"] {
			ready = false
		}
		if d.Redis != nil {
			deps["redis"] = d.Redis.Ping(ctx).Err() == nil
			if !deps["redis"] {
				ready = false
			}
		}

		body := gin.H{"deps": deps, "backend": d.Store.Backend(), "admin": d.Gate.Policy().String(), "uptime": fmt.Sprintf("%s", time.Since(startTime))}
		if !ready {
			body["status"] = "not_ready"
			c.JSON(http.StatusServiceUnavailable, body)
			return
		}
		body["status"] = "ready"
		c.JSON(http.StatusOK, body)
	}
}
