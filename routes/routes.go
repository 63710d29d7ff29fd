package routes

import (
	"github.com/Kalhara-JA/care4u-V7-sub001/controllers"
	"github.com/Kalhara-JA/care4u-V7-sub001/middlewares"
	"github.com/Kalhara-JA/care4u-V7-sub001/utils"

	"github.com/gin-gonic/gin"
)

type Deps struct {
	Tokens      *utils.TokenIssuer
	Auth        *controllers.AuthController
	User        *controllers.UserController
	Meal        *controllers.MealController
	Exercise    *controllers.ExerciseController
	Sugar       *controllers.SugarController
	Appointment *controllers.AppointmentController
	Alert       *controllers.AlertController
	Device      *controllers.DeviceController
	Realtime    *controllers.RealtimeController
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.Default()

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/send-otp", d.Auth.SendOTP)
		auth.POST("/verify-otp", d.Auth.VerifyOTP)
		auth.POST("/resend-otp", d.Auth.ResendOTP)
		auth.GET("/check", d.Auth.CheckAuth)
	}

	protected := r.Group("/")
	protected.Use(middlewares.AuthMiddleware(d.Tokens))
	{
		user := protected.Group("/user")
		{
			user.POST("/profile", d.User.CreateProfile)
			user.GET("/profile", d.User.GetProfile)
			user.PUT("/profile", d.User.UpdateProfile)
		}

		meals := protected.Group("/meals")
		{
			meals.POST("", d.Meal.Log)
			meals.GET("", d.Meal.List)
			meals.DELETE("/:id", d.Meal.Delete)
			meals.POST("/photo", d.Meal.LabelPhoto)
		}

		exercises := protected.Group("/exercises")
		{
			exercises.POST("", d.Exercise.Log)
			exercises.GET("", d.Exercise.List)
			exercises.DELETE("/:id", d.Exercise.Delete)
		}

		sugar := protected.Group("/sugar")
		{
			sugar.POST("", d.Sugar.Log)
			sugar.GET("", d.Sugar.List)
			sugar.GET("/summary", d.Sugar.Summary)
			sugar.DELETE("/:id", d.Sugar.Delete)
		}

		appointments := protected.Group("/appointments")
		{
			appointments.POST("", d.Appointment.Create)
			appointments.GET("", d.Appointment.List)
			appointments.PUT("/:id", d.Appointment.Update)
			appointments.DELETE("/:id", d.Appointment.Cancel)
		}

		protected.GET("/alerts", d.Alert.List)
		protected.POST("/devices", d.Device.Register)
		protected.GET("/realtime/alerts", d.Realtime.AlertsWS)
	}

	return r
}
