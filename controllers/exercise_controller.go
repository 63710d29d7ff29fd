package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Kalhara-JA/care4u-V7-sub001/services"

	"github.com/gin-gonic/gin"
)

type ExerciseController struct {
	Exercises *services.ExerciseService
}

func NewExerciseController(ex *services.ExerciseService) *ExerciseController {
	return &ExerciseController{Exercises: ex}
}

func (ec *ExerciseController) Log(c *gin.Context) {
	uid := c.GetUint("userID")

	var input services.ExerciseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "activity, duration_min and performed_at are required")
		return
	}

	session, err := ec.Exercises.Log(uid, input)
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "exercise logged", "exercise": session})
}

func (ec *ExerciseController) List(c *gin.Context) {
	uid := c.GetUint("userID")

	var from, to time.Time
	if v := c.Query("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			fail(c, http.StatusBadRequest, "from must be YYYY-MM-DD")
			return
		}
		from = t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			fail(c, http.StatusBadRequest, "to must be YYYY-MM-DD")
			return
		}
		to = t
	}

	sessions, err := ec.Exercises.List(uid, from, to)
	if err != nil {
		fail(c, http.StatusInternalServerError, "something went wrong, please try again")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "ok", "exercises": sessions})
}

func (ec *ExerciseController) Delete(c *gin.Context) {
	uid := c.GetUint("userID")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid exercise id")
		return
	}

	if err := ec.Exercises.Delete(uid, uint(id)); err != nil {
		if err == services.ErrNotFound {
			fail(c, http.StatusNotFound, "exercise not found")
			return
		}
		fail(c, http.StatusInternalServerError, "something went wrong, please try again")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "exercise deleted"})
}
