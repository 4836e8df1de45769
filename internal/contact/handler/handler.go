package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/technova/portfolio-api/internal/apperr"
	"github.com/technova/portfolio-api/internal/contact"
	"github.com/technova/portfolio-api/internal/contact/service"
)

// RegisterContactRoutes mounts the contact API. Submissions are public and
// pass through the optional submitGuards (rate limiting); listing requires
// admin.
func RegisterContactRoutes(r gin.IRouter, svc service.Service, requireAdmin gin.HandlerFunc, submitGuards ...gin.HandlerFunc) {
	h := &contactHandler{svc: svc}
	r.POST("/api/contact", append(submitGuards, h.create)...)
	r.GET("/api/contacts", requireAdmin, h.list)
}

type contactHandler struct {
	svc service.Service
}

func (h *contactHandler) create(c *gin.Context) {
	var in contact.Input
	// JSON and urlencoded form posts are both accepted
	if err := c.ShouldBind(&in); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	entry, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "entry": entry})
}

func (h *contactHandler) list(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
