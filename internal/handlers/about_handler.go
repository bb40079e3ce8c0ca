package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/portfolio/backend/internal/services"
)

type AboutHandler struct {
	aboutService *services.AboutService
	store        services.ObjectStore
}

func NewAboutHandler(aboutService *services.AboutService, store services.ObjectStore) *AboutHandler {
	return &AboutHandler{
		aboutService: aboutService,
		store:        store,
	}
}

// List handles GET /about
func (h *AboutHandler) List(c *gin.Context) {
	abouts, err := h.aboutService.List()
	if err != nil {
		writeServiceError(c, err)
		return
	}

	views := make([]gin.H, 0, len(abouts))
	for i := range abouts {
		views = append(views, aboutView(h.store, &abouts[i]))
	}
	c.JSON(http.StatusOK, views)
}

// Get handles GET /about/:id
func (h *AboutHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}

	about, err := h.aboutService.Get(id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, aboutView(h.store, about))
}

// Create handles POST /about
func (h *AboutHandler) Create(c *gin.Context) {
	var in services.AboutInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	about, err := h.aboutService.Create(c.Request.Context(), in)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, aboutView(h.store, about))
}

// Update handles PUT /about/:id
func (h *AboutHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}

	var in services.AboutInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	about, err := h.aboutService.Update(c.Request.Context(), id, in)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, aboutView(h.store, about))
}

// Delete handles DELETE /about/:id
func (h *AboutHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}

	if err := h.aboutService.Delete(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// parseID reads the numeric :id path parameter, writing a 400 on failure.
func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, err
	}
	return uint(id), nil
}
