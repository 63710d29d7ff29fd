package main

import (
	"context"
	"log"

	"github.com/Kalhara-JA/care4u-V7-sub001/config"
	"github.com/Kalhara-JA/care4u-V7-sub001/controllers"
	"github.com/Kalhara-JA/care4u-V7-sub001/repository"
	"github.com/Kalhara-JA/care4u-V7-sub001/routes"
	"github.com/Kalhara-JA/care4u-V7-sub001/services"
	"github.com/Kalhara-JA/care4u-V7-sub001/utils"
)

// main owns the lifecycle of every external client (DB, SES, SNS, S3,
// Rekognition) and injects them downward; nothing below here holds a
// process-wide singleton.
func main() {
	cfg := config.Load()
	ctx := context.Background()

	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	mailer, err := utils.NewMailer(ctx, cfg.AWSRegion, cfg.SESEmail)
	if err != nil {
		log.Fatalf("mailer init failed: %v", err)
	}

	uploader, err := utils.NewS3Uploader(ctx, cfg.AWSRegion, cfg.S3Bucket)
	if err != nil {
		log.Fatalf("S3 init failed: %v", err)
	}

	labeler, err := utils.NewFoodLabeler(ctx, cfg.AWSRegion)
	if err != nil {
		log.Fatalf("rekognition init failed: %v", err)
	}

	push, err := services.NewPushService(ctx, db, cfg.AWSRegion, cfg.SNSFCMArn)
	if err != nil {
		log.Fatalf("SNS init failed: %v", err)
	}

	hub := services.NewRealtimeHub()
	alerts := services.NewAlertBus(db, hub, push)

	store := repository.NewAuthRepository(db)
	tokens := utils.NewTokenIssuer(cfg.JWTSecret, cfg.TempTokenTTL, cfg.PermTokenTTL)
	otp := services.NewOTPService(store, mailer, cfg.OTPTTL)
	auth := services.NewAuthService(store, otp, tokens, uploader)

	r := routes.SetupRouter(routes.Deps{
		Tokens:      tokens,
		Auth:        controllers.NewAuthController(auth),
		User:        controllers.NewUserController(auth),
		Meal:        controllers.NewMealController(services.NewMealService(db), labeler),
		Exercise:    controllers.NewExerciseController(services.NewExerciseService(db)),
		Sugar:       controllers.NewSugarController(services.NewSugarService(db, alerts)),
		Appointment: controllers.NewAppointmentController(services.NewAppointmentService(db)),
		Alert:       controllers.NewAlertController(alerts),
		Device:      controllers.NewDeviceController(push),
		Realtime:    controllers.NewRealtimeController(hub),
	})

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
