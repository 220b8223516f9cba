package response

import "github.com/gin-gonic/gin"

// Error writes the directory API's failure shape: a bare {"message": ...}.
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}

// Message writes an informational {"message": ...} with a success status.
func Message(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}
