package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// getHealth godoc
// @Summary Liveness probe
// @Description Returns OK while the process is serving requests.
// @Tags root
// @Produce plain
// @Success 200 {string} string "OK"
// @Router /health [get]
func getHealth(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

// registerHealthRoutes registers the unauthenticated probe routes
func registerHealthRoutes(r gin.IRoutes) {
	r.GET("/health", getHealth)
	r.HEAD("/health", getHealth)
}
