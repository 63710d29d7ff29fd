package services

import (
	"errors"
	"time"

	"github.com/Kalhara-JA/care4u-V7-sub001/models"

	"gorm.io/gorm"
)

type AppointmentService struct {
	db *gorm.DB
}

func NewAppointmentService(db *gorm.DB) *AppointmentService {
	return &AppointmentService{db: db}
}

// AppointmentInput doubles as the create payload and the partial-update
// payload; Create enforces the required fields itself.
type AppointmentInput struct {
	DoctorName  string    `json:"doctor_name"`
	Purpose     string    `json:"purpose"`
	Location    string    `json:"location"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Notes       string    `json:"notes"`
}

func (s *AppointmentService) Create(userID uint, in AppointmentInput) (*models.Appointment, error) {
	if in.DoctorName == "" || in.ScheduledAt.IsZero() {
		return nil, errors.New("doctor_name and scheduled_at are required")
	}
	appt := &models.Appointment{
		UserID:      userID,
		DoctorName:  in.DoctorName,
		Purpose:     in.Purpose,
		Location:    in.Location,
		ScheduledAt: in.ScheduledAt,
		Notes:       in.Notes,
	}
	if err := s.db.Create(appt).Error; err != nil {
		return nil, err
	}
	return appt, nil
}

func (s *AppointmentService) List(userID uint) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := s.db.
		Where("user_id = ?", userID).
		Order("scheduled_at ASC").
		Find(&appts).Error
	return appts, err
}

// Update merges only the supplied fields into an upcoming appointment.
func (s *AppointmentService) Update(userID, apptID uint, in AppointmentInput) (*models.Appointment, error) {
	var appt models.Appointment
	if err := s.db.Where("id = ? AND user_id = ?", apptID, userID).First(&appt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if appt.Cancelled {
		return nil, errors.New("appointment is cancelled")
	}

	if in.DoctorName != "" {
		appt.DoctorName = in.DoctorName
	}
	if in.Purpose != "" {
		appt.Purpose = in.Purpose
	}
	if in.Location != "" {
		appt.Location = in.Location
	}
	if !in.ScheduledAt.IsZero() {
		appt.ScheduledAt = in.ScheduledAt
	}
	if in.Notes != "" {
		appt.Notes = in.Notes
	}

	if err := s.db.Save(&appt).Error; err != nil {
		return nil, err
	}
	return &appt, nil
}

func (s *AppointmentService) Cancel(userID, apptID uint) error {
	res := s.db.Model(&models.Appointment{}).
		Where("id = ? AND user_id = ?", apptID, userID).
		Update("cancelled", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
