package handlers

import (
	"net/http"

	"github.com/filipedeo/fretboard-api/internal/catalog"
	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	catalog *catalog.Catalog
}

func NewHealthHandler(cat *catalog.Catalog) *HealthHandler {
	return &HealthHandler{catalog: cat}
}

// HealthCheck returns the health status of the API
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"catalog": gin.H{
			"modes":        len(h.catalog.Modes()),
			"voicings":     len(h.catalog.Shapes()),
			"progressions": len(h.catalog.Progressions()),
		},
	})
}
