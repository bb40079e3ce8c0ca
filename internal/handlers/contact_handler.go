package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/portfolio/backend/internal/services"
)

type ContactHandler struct {
	contactService *services.ContactService
}

func NewContactHandler(contactService *services.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// List handles GET /contact
func (h *ContactHandler) List(c *gin.Context) {
	contacts, err := h.contactService.List()
	if err != nil {
		writeServiceError(c, err)
		return
	}

	views := make([]gin.H, 0, len(contacts))
	for i := range contacts {
		views = append(views, contactView(&contacts[i]))
	}
	c.JSON(http.StatusOK, views)
}

// Get handles GET /contact/:id
func (h *ContactHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}

	contact, err := h.contactService.Get(id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, contactView(contact))
}

// Create handles POST /contact
func (h *ContactHandler) Create(c *gin.Context) {
	var in services.ContactInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	contact, err := h.contactService.Create(in)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, contactView(contact))
}

// Update handles PUT /contact/:id
func (h *ContactHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}

	var in services.ContactInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	contact, err := h.contactService.Update(id, in)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, contactView(contact))
}

// Delete handles DELETE /contact/:id
func (h *ContactHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}

	if err := h.contactService.Delete(id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
