package services

import (
	"errors"
	"time"

	"github.com/Kalhara-JA/care4u-V7-sub001/models"

	"gorm.io/gorm"
)

type ExerciseService struct {
	db *gorm.DB
}

func NewExerciseService(db *gorm.DB) *ExerciseService {
	return &ExerciseService{db: db}
}

type ExerciseInput struct {
	Activity       string    `json:"activity" binding:"required"`
	DurationMin    float64   `json:"duration_min" binding:"required"`
	CaloriesBurned float64   `json:"calories_burned"`
	PerformedAt    time.Time `json:"performed_at" binding:"required"`
	Notes          string    `json:"notes"`
}

func (s *ExerciseService) Log(userID uint, in ExerciseInput) (*models.Exercise, error) {
	if in.DurationMin <= 0 {
		return nil, errors.New("duration must be positive")
	}
	if in.CaloriesBurned < 0 {
		return nil, errors.New("calories burned cannot be negative")
	}

	ex := &models.Exercise{
		UserID:         userID,
		Activity:       in.Activity,
		DurationMin:    in.DurationMin,
		CaloriesBurned: in.CaloriesBurned,
		PerformedAt:    in.PerformedAt,
		Notes:          in.Notes,
	}
	if err := s.db.Create(ex).Error; err != nil {
		return nil, err
	}
	return ex, nil
}

// List returns sessions in [from, to); zero bounds mean unbounded.
func (s *ExerciseService) List(userID uint, from, to time.Time) ([]models.Exercise, error) {
	q := s.db.Where("user_id = ?", userID)
	if !from.IsZero() {
		q = q.Where("performed_at >= ?", from)
	}
	if !to.IsZero() {
		q = q.Where("performed_at < ?", to)
	}

	var sessions []models.Exercise
	err := q.Order("performed_at DESC").Find(&sessions).Error
	return sessions, err
}

func (s *ExerciseService) Delete(userID, exerciseID uint) error {
	res := s.db.Where("id = ? AND user_id = ?", exerciseID, userID).Delete(&models.Exercise{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
