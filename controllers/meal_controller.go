package controllers

import (
	"net/http"
	"strconv"

	"github.com/Kalhara-JA/care4u-V7-sub001/services"
	"github.com/Kalhara-JA/care4u-V7-sub001/utils"

	"github.com/gin-gonic/gin"
)

type MealController struct {
	Meals   *services.MealService
	Labeler *utils.FoodLabeler
}

func NewMealController(meals *services.MealService, labeler *utils.FoodLabeler) *MealController {
	return &MealController{Meals: meals, Labeler: labeler}
}

func (mc *MealController) Log(c *gin.Context) {
	uid := c.GetUint("userID")

	var input services.MealInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "type, name and ate_at are required")
		return
	}

	meal, err := mc.Meals.Log(uid, input)
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "meal logged", "meal": meal})
}

func (mc *MealController) List(c *gin.Context) {
	uid := c.GetUint("userID")

	meals, err := mc.Meals.List(uid)
	if err != nil {
		fail(c, http.StatusInternalServerError, "something went wrong, please try again")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "ok", "meals": meals})
}

func (mc *MealController) Delete(c *gin.Context) {
	uid := c.GetUint("userID")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid meal id")
		return
	}

	if err := mc.Meals.Delete(uid, uint(id)); err != nil {
		if err == services.ErrNotFound {
			fail(c, http.StatusNotFound, "meal not found")
			return
		}
		fail(c, http.StatusInternalServerError, "something went wrong, please try again")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "meal deleted"})
}

type mealPhotoInput struct {
	ImageBase64 string `json:"image_base64" binding:"required"`
}

// LabelPhoto suggests food labels from a meal photo so the app can prefill
// the log form.
func (mc *MealController) LabelPhoto(c *gin.Context) {
	if mc.Labeler == nil {
		fail(c, http.StatusServiceUnavailable, "photo labeling is not available")
		return
	}

	var input mealPhotoInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "image_base64 is required")
		return
	}

	labels, err := mc.Labeler.DetectFoodLabels(input.ImageBase64)
	if err != nil {
		fail(c, http.StatusBadRequest, "could not analyze image")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "ok", "labels": labels})
}
