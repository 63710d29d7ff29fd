package controllers

import (
	"net/http"

	"github.com/Kalhara-JA/care4u-V7-sub001/services"

	"github.com/gin-gonic/gin"
)

type AlertController struct {
	Alerts *services.AlertBus
}

func NewAlertController(alerts *services.AlertBus) *AlertController {
	return &AlertController{Alerts: alerts}
}

func (ac *AlertController) List(c *gin.Context) {
	uid := c.GetUint("userID")

	alerts, err := ac.Alerts.List(uid)
	if err != nil {
		fail(c, http.StatusInternalServerError, "something went wrong, please try again")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "ok", "alerts": alerts})
}
