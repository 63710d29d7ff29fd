package controllers

import (
	"net/http"

	"github.com/Kalhara-JA/care4u-V7-sub001/models"
	"github.com/Kalhara-JA/care4u-V7-sub001/services"
	"github.com/Kalhara-JA/care4u-V7-sub001/utils"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	Auth *services.AuthService
}

func NewUserController(auth *services.AuthService) *UserController {
	return &UserController{Auth: auth}
}

func profileJSON(u *models.User) gin.H {
	birthDate := ""
	if u.BirthDate != nil {
		birthDate = u.BirthDate.Format("2006-01-02")
	}
	return gin.H{
		"id":                       u.ID,
		"email":                    u.Email,
		"first_name":               u.FirstName,
		"last_name":                u.LastName,
		"contact_number":           u.ContactNumber,
		"birth_date":               birthDate,
		"gender":                   u.Gender,
		"height":                   u.HeightCm,
		"weight":                   u.WeightKg,
		"bmi":                      u.BMI,
		"bmi_category":             utils.BMICategory(u.BMI),
		"emergency_contact_name":   u.EmergencyContactName,
		"emergency_contact_number": u.EmergencyContactNumber,
		"dietary_preference":       u.DietaryPreference,
		"calorie_intake_goal":      u.CalorieIntakeGoal,
		"calorie_burn_goal":        u.CalorieBurnGoal,
		"profile_picture":          u.ProfilePicture,
		"is_profile_complete":      u.IsProfileComplete(),
	}
}

func (uc *UserController) CreateProfile(c *gin.Context) {
	uid := c.GetUint("userID")

	var input services.CreateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "all required profile fields must be provided")
		return
	}

	res, serr := uc.Auth.CreateProfile(uid, input)
	if serr != nil {
		failErr(c, serr)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "profile created",
		"token":   res.Token,
		"profile": profileJSON(res.Profile),
	})
}

func (uc *UserController) GetProfile(c *gin.Context) {
	uid := c.GetUint("userID")

	user, serr := uc.Auth.GetProfile(uid)
	if serr != nil {
		failErr(c, serr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "ok",
		"profile": profileJSON(user),
	})
}

func (uc *UserController) UpdateProfile(c *gin.Context) {
	uid := c.GetUint("userID")

	var input services.UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "invalid profile payload")
		return
	}

	user, serr := uc.Auth.UpdateProfile(uid, input)
	if serr != nil {
		failErr(c, serr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "profile updated",
		"profile": profileJSON(user),
	})
}
