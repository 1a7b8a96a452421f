package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationAccepted ApplicationStatus = "accepted"
	ApplicationRejected ApplicationStatus = "rejected"
)

// Application is one freelancer's bid on a job. The composite unique
// index keeps a freelancer from racing two applies past the handler
// check: the second insert fails at the database.
type Application struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	JobID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_app_job_freelancer" json:"job_id"`
	FreelancerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_app_job_freelancer;index" json:"freelancer_id"`

	Proposal          string  `gorm:"type:text;not null" json:"proposal"`
	BidAmount         float64 `json:"bid_amount"`
	EstimatedDuration string  `gorm:"type:varchar(60)" json:"estimated_duration"`

	Status    ApplicationStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
	AppliedAt time.Time         `json:"applied_at"`

	// Relations
	Job        *Job  `gorm:"foreignKey:JobID" json:"job,omitempty"`
	Freelancer *User `gorm:"foreignKey:FreelancerID" json:"freelancer,omitempty"`
}

func (a *Application) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Status == "" {
		a.Status = ApplicationPending
	}
	if a.AppliedAt.IsZero() {
		a.AppliedAt = time.Now()
	}
	return nil
}
