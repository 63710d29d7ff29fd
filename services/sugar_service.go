package services

import (
	"errors"
	"time"

	"github.com/Kalhara-JA/care4u-V7-sub001/models"
	"github.com/Kalhara-JA/care4u-V7-sub001/utils"

	"gorm.io/gorm"
)

type SugarService struct {
	db     *gorm.DB
	alerts *AlertBus
}

func NewSugarService(db *gorm.DB, alerts *AlertBus) *SugarService {
	return &SugarService{db: db, alerts: alerts}
}

type SugarInput struct {
	LevelMgDl  float64   `json:"level_mg_dl" binding:"required"`
	Context    string    `json:"context"` // "fasting" | "post_meal" | "random"
	MeasuredAt time.Time `json:"measured_at" binding:"required"`
	Notes      string    `json:"notes"`
}

// Log stores a reading and raises an alert when it falls outside the
// reference range for its context.
func (s *SugarService) Log(userID uint, in SugarInput) (*models.SugarReading, error) {
	if in.LevelMgDl <= 0 {
		return nil, errors.New("glucose level must be positive")
	}
	if in.Context == "" {
		in.Context = "random"
	}

	reading := &models.SugarReading{
		UserID:     userID,
		LevelMgDl:  in.LevelMgDl,
		Context:    in.Context,
		MeasuredAt: in.MeasuredAt,
		Notes:      in.Notes,
	}
	if err := s.db.Create(reading).Error; err != nil {
		return nil, err
	}

	if inRange, warning := utils.AssessSugarReading(in.Context, in.LevelMgDl); !inRange && s.alerts != nil {
		s.alerts.Emit(userID, "warning", warning)
	}
	return reading, nil
}

func (s *SugarService) List(userID uint) ([]models.SugarReading, error) {
	var readings []models.SugarReading
	err := s.db.
		Where("user_id = ?", userID).
		Order("measured_at DESC").
		Find(&readings).Error
	return readings, err
}

func (s *SugarService) Delete(userID, readingID uint) error {
	res := s.db.Where("id = ? AND user_id = ?", readingID, userID).Delete(&models.SugarReading{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

type SugarSummary struct {
	Days    int     `json:"days"`
	Count   int     `json:"count"`
	Average float64 `json:"average"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
}

// WeeklySummary aggregates the last seven days of readings.
func (s *SugarService) WeeklySummary(userID uint) (*SugarSummary, error) {
	since := time.Now().AddDate(0, 0, -7)

	var readings []models.SugarReading
	if err := s.db.
		Where("user_id = ? AND measured_at >= ?", userID, since).
		Find(&readings).Error; err != nil {
		return nil, err
	}

	summary := &SugarSummary{Days: 7, Count: len(readings)}
	if len(readings) == 0 {
		return summary, nil
	}

	var total float64
	summary.Min = readings[0].LevelMgDl
	summary.Max = readings[0].LevelMgDl
	for _, r := range readings {
		total += r.LevelMgDl
		if r.LevelMgDl < summary.Min {
			summary.Min = r.LevelMgDl
		}
		if r.LevelMgDl > summary.Max {
			summary.Max = r.LevelMgDl
		}
	}
	summary.Average = total / float64(len(readings))
	return summary, nil
}
