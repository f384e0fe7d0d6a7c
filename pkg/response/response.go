package response

import (
	"net/http"

	"anoa.com/collegejournal/pkg/apperror"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Error writes the standardized error body for the flat taxonomy.
// Internal faults are logged with their cause but surface a generic message.
func Error(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	if code == http.StatusInternalServerError {
		zap.L().Error("internal error", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(code, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(code, gin.H{"error": err.Error()})
}

// Success is the body for delete-style endpoints.
func Success(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true})
}
