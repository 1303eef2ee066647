package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Success writes {success: true, data: ...}
func Success(c *gin.Context, data gin.H) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}

// SuccessFields writes fields next to success: true at the top level.
func SuccessFields(c *gin.Context, fields gin.H) {
	body := make(gin.H, len(fields)+1)
	for k, v := range fields {
		body[k] = v
	}
	body["success"] = true
	c.JSON(http.StatusOK, body)
}

func Error(c *gin.Context, code int, msg string) {
	c.JSON(code, gin.H{
		"success": false,
		"message": msg,
	})
}
