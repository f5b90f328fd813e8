package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/foodgram/backend/internal/service"
)

// respondError writes the JSON error body for a service failure. Anything
// outside the service taxonomy is a 500 and gets logged; it is never
// silently swallowed.
func respondError(c *gin.Context, err error) {
	switch service.KindOf(err) {
	case service.KindValidation:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case service.KindConflict:
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case service.KindNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case service.KindForbidden:
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		logrus.WithError(err).WithField("path", c.FullPath()).Error("unhandled error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
