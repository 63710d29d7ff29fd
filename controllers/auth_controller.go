package controllers

import (
	"net/http"
	"strings"

	"github.com/Kalhara-JA/care4u-V7-sub001/services"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{Auth: auth}
}

type emailInput struct {
	Email string `json:"email" binding:"required,email"`
}

type verifyInput struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,len=6,numeric"`
}

func (ac *AuthController) SendOTP(c *gin.Context) {
	var input emailInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "a valid email is required")
		return
	}

	res, serr := ac.Auth.SendOTP(input.Email)
	if serr != nil {
		failErr(c, serr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "a login code is on its way",
		"user_id": res.UserID,
	})
}

func (ac *AuthController) ResendOTP(c *gin.Context) {
	var input emailInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "a valid email is required")
		return
	}

	res, serr := ac.Auth.ResendOTP(input.Email)
	if serr != nil {
		failErr(c, serr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "a new login code is on its way",
		"user_id": res.UserID,
	})
}

func (ac *AuthController) VerifyOTP(c *gin.Context) {
	var input verifyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "email and a 6-digit code are required")
		return
	}

	res, serr := ac.Auth.VerifyOTP(input.Email, input.Code)
	if serr != nil {
		failErr(c, serr)
		return
	}

	// A complete profile travels in full; an incomplete one only as identity.
	var user gin.H
	if res.RedirectTo == "home" {
		user = profileJSON(res.User)
	} else {
		user = gin.H{"id": res.User.ID, "email": res.User.Email}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     "signed in",
		"token":       res.Token,
		"user":        user,
		"is_new_user": res.IsNewUser,
		"redirect_to": res.RedirectTo,
	})
}

func (ac *AuthController) CheckAuth(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		fail(c, http.StatusUnauthorized, "authorization header required")
		return
	}

	res, serr := ac.Auth.CheckAuth(strings.TrimPrefix(authHeader, "Bearer "))
	if serr != nil {
		failErr(c, serr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"user":        profileJSON(res.User),
		"has_profile": res.HasProfile,
	})
}
