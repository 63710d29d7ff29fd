package controllers

import (
	"net/http"
	"strconv"

	"github.com/Kalhara-JA/care4u-V7-sub001/services"

	"github.com/gin-gonic/gin"
)

type AppointmentController struct {
	Appointments *services.AppointmentService
}

func NewAppointmentController(appts *services.AppointmentService) *AppointmentController {
	return &AppointmentController{Appointments: appts}
}

func (ac *AppointmentController) Create(c *gin.Context) {
	uid := c.GetUint("userID")

	var input services.AppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "doctor_name and scheduled_at are required")
		return
	}

	appt, err := ac.Appointments.Create(uid, input)
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "appointment created", "appointment": appt})
}

func (ac *AppointmentController) List(c *gin.Context) {
	uid := c.GetUint("userID")

	appts, err := ac.Appointments.List(uid)
	if err != nil {
		fail(c, http.StatusInternalServerError, "something went wrong, please try again")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "ok", "appointments": appts})
}

func (ac *AppointmentController) Update(c *gin.Context) {
	uid := c.GetUint("userID")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid appointment id")
		return
	}

	var input services.AppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "invalid appointment payload")
		return
	}

	appt, err := ac.Appointments.Update(uid, uint(id), input)
	if err != nil {
		if err == services.ErrNotFound {
			fail(c, http.StatusNotFound, "appointment not found")
			return
		}
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "appointment updated", "appointment": appt})
}

func (ac *AppointmentController) Cancel(c *gin.Context) {
	uid := c.GetUint("userID")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid appointment id")
		return
	}

	if err := ac.Appointments.Cancel(uid, uint(id)); err != nil {
		if err == services.ErrNotFound {
			fail(c, http.StatusNotFound, "appointment not found")
			return
		}
		fail(c, http.StatusInternalServerError, "something went wrong, please try again")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "appointment cancelled"})
}
