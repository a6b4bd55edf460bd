package handlers

import (
	"errors"
	"net/http"

	"purchase-intent-service/internal/core/domain"

	"github.com/gin-gonic/gin"
)

func mapDomainError(c *gin.Context, err error) {
	switch {
	// Not found errors
	case errors.Is(err, domain.ErrArtifactNotFound),
		errors.Is(err, domain.ErrTrainingDataNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	// Malformed artifact errors
	case errors.Is(err, domain.ErrInvalidArtifactFormat),
		errors.Is(err, domain.ErrInvalidThreshold):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})

	// Bad request / validation errors
	case errors.Is(err, domain.ErrUnknownStrategy),
		errors.Is(err, domain.ErrEmptyFrame),
		errors.Is(err, domain.ErrFrameShape),
		errors.Is(err, domain.ErrMissingFeatures),
		errors.Is(err, domain.ErrNoThreshold),
		errors.Is(err, domain.ErrInvalidTopKRatio):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
