package handlers

import (
	"errors"
	"net/http"

	"furniture-catalog/logger"
	"furniture-catalog/repository"
	"furniture-catalog/utils"

	"github.com/gin-gonic/gin"
)

// respondError maps repository outcomes to status codes. Anything that is
// not a caller-correctable kind is logged and hidden behind a 500.
func respondError(c *gin.Context, log *logger.Logger, err error) {
	var repoErr *repository.Error
	if errors.As(err, &repoErr) {
		switch repoErr.Kind {
		case repository.KindNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": messageOr(repoErr, "Not found")})
			return
		case repository.KindDuplicateSlug, repository.KindInvalidReference, repository.KindValidation:
			c.JSON(http.StatusBadRequest, gin.H{"error": messageOr(repoErr, "Invalid request")})
			return
		}
	}

	if log == nil {
		log = logger.Nop()
	}
	log.Error("request failed",
		"method", c.Request.Method,
		"route", c.FullPath(),
		"error", err,
	)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

func messageOr(err *repository.Error, fallback string) string {
	if err.Message != "" {
		return err.Message
	}
	return fallback
}

// bindJSON decodes the body into dst and writes a 400 on failure.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return false
	}
	return true
}
