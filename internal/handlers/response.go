package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/campuslink/campuslink-backend/internal/apperr"
	"github.com/campuslink/campuslink-backend/internal/logger"
)

// Every response uses the {success, data?|error?} envelope. Domain
// errors carry their own status; everything else collapses to a
// generic 500 so internals never leak.

func respondOK(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

func respondError(c *gin.Context, err error) {
	mapped := apperr.Map(err)

	var ae *apperr.Error
	if !errors.As(mapped, &ae) || ae.Kind == apperr.KindInternal {
		logger.Error("request failed", "path", c.FullPath(), "err", err)
	}

	errors.As(mapped, &ae)
	c.JSON(apperr.HTTPStatus(mapped), gin.H{
		"success": false,
		"error":   gin.H{"code": ae.Code, "message": ae.Message},
	})
}

func respondBindError(c *gin.Context, err error) {
	respondError(c, apperr.Validation("INVALID_REQUEST", err.Error()))
}
