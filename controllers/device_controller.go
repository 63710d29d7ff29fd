package controllers

import (
	"net/http"

	"github.com/Kalhara-JA/care4u-V7-sub001/services"

	"github.com/gin-gonic/gin"
)

type DeviceController struct {
	Push *services.PushService
}

func NewDeviceController(push *services.PushService) *DeviceController {
	return &DeviceController{Push: push}
}

func (dc *DeviceController) Register(c *gin.Context) {
	if dc.Push == nil {
		fail(c, http.StatusServiceUnavailable, "push notifications are not available")
		return
	}

	uid := c.GetUint("userID")

	var req services.RegisterDeviceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "platform and token are required")
		return
	}

	dev, err := dc.Push.RegisterDevice(uid, req.Platform, req.Token)
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "device registered", "endpoint_arn": dev.EndpointARN})
}
