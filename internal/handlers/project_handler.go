package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/portfolio/backend/internal/services"
)

type ProjectHandler struct {
	projectService *services.ProjectService
	store          services.ObjectStore
	maxUploadBytes int64
}

func NewProjectHandler(projectService *services.ProjectService, store services.ObjectStore, maxUploadBytes int64) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		store:          store,
		maxUploadBytes: maxUploadBytes,
	}
}

// List handles GET /projects
// Query params: lang (display language), hidden=false (exclude hidden)
func (h *ProjectHandler) List(c *gin.Context) {
	includeHidden := c.Query("hidden") != "false"
	projects, err := h.projectService.List(includeHidden)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	lang := c.Query("lang")
	views := make([]gin.H, 0, len(projects))
	for i := range projects {
		views = append(views, projectView(h.store, &projects[i], lang))
	}
	c.JSON(http.StatusOK, views)
}

// Get handles GET /projects/:id
func (h *ProjectHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}

	project, err := h.projectService.Get(id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, projectView(h.store, project, c.Query("lang")))
}

// Create handles POST /projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var in services.ProjectInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	project, err := h.projectService.Create(c.Request.Context(), in)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, projectView(h.store, project, c.Query("lang")))
}

// Update handles PUT /projects/:id
func (h *ProjectHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}

	var in services.ProjectInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	project, err := h.projectService.Update(c.Request.Context(), id, in)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, projectView(h.store, project, c.Query("lang")))
}

// Delete handles DELETE /projects/:id
func (h *ProjectHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}

	if err := h.projectService.Delete(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Reorder handles POST /projects/reorder
// Body: {"order": [id, id, ...]}; the id set must cover exactly the
// existing projects.
func (h *ProjectHandler) Reorder(c *gin.Context) {
	var req struct {
		Order *[]uint `json:"order"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Order == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Field 'order' must be a list of IDs"})
		return
	}

	if err := h.projectService.Reorder(*req.Order); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "Order updated."})
}

// UploadImage handles POST /projects/:id/upload_image (legacy multipart path)
// Form: image (file, required), existingImages (repeated keys to delete)
func (h *ProjectHandler) UploadImage(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": services.ErrMissingUploadFile.Error()})
		return
	}
	defer file.Close()

	if header.Size > h.maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image exceeds the maximum allowed size"})
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, h.maxUploadBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read file"})
		return
	}

	existing := c.PostFormArray("existingImages")
	contentType := header.Header.Get("Content-Type")

	key, err := h.projectService.HandleImageUpload(c.Request.Context(), id, header.Filename, data, contentType, existing)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"new_image": key})
}
