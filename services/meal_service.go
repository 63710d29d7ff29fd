package services

import (
	"errors"
	"time"

	"github.com/Kalhara-JA/care4u-V7-sub001/models"

	"gorm.io/gorm"
)

type MealService struct {
	db *gorm.DB
}

func NewMealService(db *gorm.DB) *MealService {
	return &MealService{db: db}
}

type MealInput struct {
	Type     string    `json:"type" binding:"required"`
	Name     string    `json:"name" binding:"required"`
	AteAt    time.Time `json:"ate_at" binding:"required"`
	Calories float64   `json:"calories"`
	Protein  float64   `json:"protein"`
	Carbs    float64   `json:"carbs"`
	Fat      float64   `json:"fat"`
	Notes    string    `json:"notes"`
}

func (s *MealService) Log(userID uint, in MealInput) (*models.Meal, error) {
	if in.Calories < 0 || in.Protein < 0 || in.Carbs < 0 || in.Fat < 0 {
		return nil, errors.New("nutrition values cannot be negative")
	}

	meal := &models.Meal{
		UserID:   userID,
		Type:     in.Type,
		Name:     in.Name,
		AteAt:    in.AteAt,
		Calories: in.Calories,
		Protein:  in.Protein,
		Carbs:    in.Carbs,
		Fat:      in.Fat,
		Notes:    in.Notes,
	}
	if err := s.db.Create(meal).Error; err != nil {
		return nil, err
	}
	return meal, nil
}

func (s *MealService) List(userID uint) ([]models.Meal, error) {
	var meals []models.Meal
	err := s.db.
		Where("user_id = ?", userID).
		Order("ate_at DESC").
		Find(&meals).Error
	return meals, err
}

func (s *MealService) Delete(userID, mealID uint) error {
	res := s.db.Where("id = ? AND user_id = ?", mealID, userID).Delete(&models.Meal{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
