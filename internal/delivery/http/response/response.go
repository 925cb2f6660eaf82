package response

import (
	"github.com/gin-gonic/gin"
)

// Response standardizes the API JSON response. The contact flow puts its
// user-facing string in Data; boundary rejections put details in Error.
type Response struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     interface{} `json:"error,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

// Success sends a success response
func Success(c *gin.Context, code int, data interface{}) {
	reqID, _ := c.Get("RequestID")
	idStr, _ := reqID.(string) // Safe type assertion

	c.JSON(code, Response{
		Success:   true,
		Data:      data,
		RequestID: idStr,
	})
}

// Error sends an error response
func Error(c *gin.Context, code int, message string, details interface{}) {
	reqID, _ := c.Get("RequestID")
	idStr, _ := reqID.(string)

	body := gin.H{"message": message}
	if details != nil {
		body["fields"] = details
	}

	c.JSON(code, Response{
		Success:   false,
		Error:     body,
		RequestID: idStr,
	})
}
