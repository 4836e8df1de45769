package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/technova/portfolio-api/internal/apperr"
	"github.com/technova/portfolio-api/internal/project"
	"github.com/technova/portfolio-api/internal/project/service"
)

// RegisterProjectRoutes mounts the project API. Reads are public; writes
// go through requireAdmin.
func RegisterProjectRoutes(r gin.IRouter, svc service.Service, requireAdmin gin.HandlerFunc) {
	h := &projectHandler{svc: svc}
	r.GET("/api/projects", h.list)
	r.GET("/api/projects/:id", h.get)
	r.POST("/api/projects", requireAdmin, h.create)
	r.PUT("/api/projects/:id", requireAdmin, h.update)
	r.DELETE("/api/projects/:id", requireAdmin, h.delete)
}

type projectHandler struct {
	svc service.Service
}

func (h *projectHandler) list(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *projectHandler) get(c *gin.Context) {
	p, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *projectHandler) create(c *gin.Context) {
	var in project.Input
	// an empty body is treated as an empty object
	if err := c.ShouldBind(&in); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *projectHandler) update(c *gin.Context) {
	var patch project.Patch
	if err := c.ShouldBindJSON(&patch); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := h.svc.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *projectHandler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
