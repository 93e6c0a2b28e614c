package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"imageserver/internal/models"
)

func Health() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "status": "ok"})
	}
}

func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Not Found"})
}
