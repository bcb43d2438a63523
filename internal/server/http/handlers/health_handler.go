package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports whether the service can reach its store.
type HealthHandler struct {
	facade HealthFacade
}

func NewHealthHandler(facade HealthFacade) *HealthHandler {
	return &HealthHandler{facade: facade}
}

// Check handles GET /healthz.
func (h *HealthHandler) Check(c *gin.Context) {
	if err := h.facade.HealthCheck(c.Request.Context()); err != nil {
		internalError(c, http.StatusServiceUnavailable, gin.H{"status": "unavailable"}, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
