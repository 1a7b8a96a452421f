package stats

import (
	"gorm.io/gorm"

	"github.com/mfadhilr/jobboard_be/internal/models"
)

type Service struct {
	DB *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

type RoleCount struct {
	Role  string `json:"role"`
	Count int64  `json:"count"`
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

type Dashboard struct {
	TotalUsers    int64           `json:"total_users"`
	TotalJobs     int64           `json:"total_jobs"`
	ActiveJobs    int64           `json:"active_jobs"`
	CompletedJobs int64           `json:"completed_jobs"`
	UserStats     []RoleCount     `json:"user_stats"`
	JobStats      []CategoryCount `json:"job_stats"`
}

// Dashboard is a read-side rollup, no mutation anywhere.
func (s *Service) Dashboard() (*Dashboard, error) {
	var d Dashboard

	if err := s.DB.Model(&models.User{}).Count(&d.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.Job{}).Count(&d.TotalJobs).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.Job{}).
		Where("status = ? AND is_active = ?", models.JobStatusOpen, true).
		Count(&d.ActiveJobs).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.Job{}).
		Where("status = ?", models.JobStatusCompleted).
		Count(&d.CompletedJobs).Error; err != nil {
		return nil, err
	}

	if err := s.DB.Model(&models.User{}).
		Select("role, COUNT(*) as count").
		Group("role").
		Scan(&d.UserStats).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.Job{}).
		Select("category, COUNT(*) as count").
		Group("category").
		Scan(&d.JobStats).Error; err != nil {
		return nil, err
	}

	return &d, nil
}
