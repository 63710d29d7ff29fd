package controllers

import (
	"net/http"
	"strconv"

	"github.com/Kalhara-JA/care4u-V7-sub001/services"

	"github.com/gin-gonic/gin"
)

type SugarController struct {
	Sugar *services.SugarService
}

func NewSugarController(sugar *services.SugarService) *SugarController {
	return &SugarController{Sugar: sugar}
}

func (sc *SugarController) Log(c *gin.Context) {
	uid := c.GetUint("userID")

	var input services.SugarInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "level_mg_dl and measured_at are required")
		return
	}

	reading, err := sc.Sugar.Log(uid, input)
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "reading logged", "reading": reading})
}

func (sc *SugarController) List(c *gin.Context) {
	uid := c.GetUint("userID")

	readings, err := sc.Sugar.List(uid)
	if err != nil {
		fail(c, http.StatusInternalServerError, "something went wrong, please try again")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "ok", "readings": readings})
}

func (sc *SugarController) Summary(c *gin.Context) {
	uid := c.GetUint("userID")

	summary, err := sc.Sugar.WeeklySummary(uid)
	if err != nil {
		fail(c, http.StatusInternalServerError, "something went wrong, please try again")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "ok", "summary": summary})
}

func (sc *SugarController) Delete(c *gin.Context) {
	uid := c.GetUint("userID")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid reading id")
		return
	}

	if err := sc.Sugar.Delete(uid, uint(id)); err != nil {
		if err == services.ErrNotFound {
			fail(c, http.StatusNotFound, "reading not found")
			return
		}
		fail(c, http.StatusInternalServerError, "something went wrong, please try again")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "reading deleted"})
}
