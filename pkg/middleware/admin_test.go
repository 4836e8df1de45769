package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/technova/portfolio-api/internal/admin"
)

func adminRouter(secret string) *gin.Engine {
	g := gin.New()
	g.GET("/", RequireAdmin(admin.NewGate(secret)), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return g
}

func TestRequireAdmin_MissingKey(t *testing.T) {
	g := adminRouter("S")
	rw := httptest.NewRecorder()
	g.ServeHTTP(rw, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusForbidden, rw.Code)
	var got map[string]string
	require.NoError(t, json.Unmarshal(rw.Body.Bytes(), &got))
	require.Equal(t, "Forbidden: invalid admin key", got["error"])
}

func TestRequireAdmin_WrongHeader(t *testing.T) {
	g := adminRouter("S")
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Admin-Key", "nope")
	rw := httptest.NewRecorder()
	g.ServeHTTP(rw, req)

	require.Equal(t, http.StatusForbidden, rw.Code)
}

func TestRequireAdmin_HeaderAndQuery(t *testing.T) {
	g := adminRouter("S")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("x-admin-key", "S")
	rw := httptest.NewRecorder()
	g.ServeHTTP(rw, req)
	require.Equal(t, http.StatusOK, rw.Code)

	rw = httptest.NewRecorder()
	g.ServeHTTP(rw, httptest.NewRequest(http.MethodGet, "/?adminKey=S", nil))
	require.Equal(t, http.StatusOK, rw.Code)
}

func TestRequireAdmin_OpenPolicy(t *testing.T) {
	g := adminRouter("")
	rw := httptest.NewRecorder()
	g.ServeHTTP(rw, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rw.Code)
}
