package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/portfolio/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func adminOnlyRouter(user *models.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/admin",
		func(c *gin.Context) {
			if user != nil {
				c.Set("user", user)
			}
		},
		AdminOnly(),
		func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"ok": true})
		},
	)
	return router
}

func TestAdminOnlyRequiresAuthentication(t *testing.T) {
	router := adminOnlyRouter(nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminOnlyRejectsNonAdmins(t *testing.T) {
	router := adminOnlyRouter(&models.User{Username: "viewer", IsActive: true})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin", nil))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminOnlyAllowsAdmins(t *testing.T) {
	router := adminOnlyRouter(&models.User{Username: "admin", IsAdmin: true, IsActive: true})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}
