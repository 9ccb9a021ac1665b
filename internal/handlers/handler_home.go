package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// home godoc
// @Summary Service banner
// @Description Identifies the service
// @Tags home
// @Produce  plain
// @Success 200 {string} string "Service banner"
// @Router / [get]
func home(c *gin.Context) {
	c.String(http.StatusOK, "ledger-engine")
}
