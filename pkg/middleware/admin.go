package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/technova/portfolio-api/internal/apperr"
	"github.com/technova/portfolio-api/pkg/metrics"
)

// AdminHeader and AdminQueryParam carry the admin secret on a request.
const (
	AdminHeader     = "x-admin-key"
	AdminQueryParam = "adminKey"
)

// Authorizer is the minimal interface the middleware depends on
type Authorizer interface {
	Authorize(provided string) error
}

// AdminKey extracts the admin credential: header first, then query string.
func AdminKey(c *gin.Context) string {
	if k := c.GetHeader(AdminHeader); k != "" {
		return k
	}
	return c.Query(AdminQueryParam)
}

// RequireAdmin returns a Gin middleware that rejects requests the
// authorizer does not accept with 403.
func RequireAdmin(gate Authorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := gate.Authorize(AdminKey(c)); err != nil {
			metrics.AdminDenied.Inc()
			apperr.Respond(c, err)
			return
		}
		c.Next()
	}
}
