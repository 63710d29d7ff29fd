package services

import (
	"fmt"
	"log"
	"time"

	"github.com/Kalhara-JA/care4u-V7-sub001/models"

	"gorm.io/gorm"
)

// AlertBus persists per-user alerts and fans them out to connected websocket
// clients and registered devices. Hub and push are optional.
type AlertBus struct {
	db   *gorm.DB
	hub  *RealtimeHub
	push *PushService
}

func NewAlertBus(db *gorm.DB, hub *RealtimeHub, push *PushService) *AlertBus {
	return &AlertBus{db: db, hub: hub, push: push}
}

func (b *AlertBus) Emit(userID uint, typ, message string) {
	alert := &models.Alert{UserID: userID, Type: typ, Message: message, CreatedAt: time.Now()}
	if err := b.db.Create(alert).Error; err != nil {
		log.Printf("alert persist failed for user %d: %v", userID, err)
		return
	}

	if b.hub != nil {
		b.hub.Broadcast(userID, map[string]any{
			"kind":  "alert.created",
			"alert": alert,
		})
	}
	if b.push != nil {
		b.push.PushToUser(userID, "Health Alert", message, map[string]string{
			"type": typ, "alertId": fmt.Sprintf("%d", alert.ID),
		})
	}
}

func (b *AlertBus) List(userID uint) ([]models.Alert, error) {
	var alerts []models.Alert
	err := b.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(100).
		Find(&alerts).Error
	return alerts, err
}
