package controllers

import (
	"net/http"

	"github.com/Kalhara-JA/care4u-V7-sub001/services"

	"github.com/gin-gonic/gin"
)

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

// failErr maps service error kinds onto HTTP statuses. Internal failures
// already carry a generic message; nothing here leaks storage detail.
func failErr(c *gin.Context, err *services.Error) {
	status := http.StatusInternalServerError
	switch err.Kind {
	case services.KindUserNotFound, services.KindProfileNotFound:
		status = http.StatusNotFound
	case services.KindInvalidOrExpiredOTP, services.KindInvalidToken:
		status = http.StatusUnauthorized
	case services.KindProfileAlreadyComplete:
		status = http.StatusConflict
	case services.KindValidationFailed:
		status = http.StatusBadRequest
	}
	fail(c, status, err.Message)
}
