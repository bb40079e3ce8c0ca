package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/portfolio/backend/internal/services"
	"gorm.io/gorm"
)

// writeServiceError maps service errors onto HTTP responses: validation
// failures are client errors, missing rows are not found, the rest is
// internal.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, services.ErrMissingImagePayload),
		errors.Is(err, services.ErrInvalidLegacyImage),
		errors.Is(err, services.ErrReorderMismatch),
		errors.Is(err, services.ErrMissingUploadFile),
		errors.Is(err, services.ErrInvalidSourceLang):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
