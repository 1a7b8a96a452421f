package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type JobStatus string

const (
	JobStatusOpen       JobStatus = "open"
	JobStatusInProgress JobStatus = "in-progress"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusCancelled  JobStatus = "cancelled"
)

type BudgetType string

const (
	BudgetFixed  BudgetType = "fixed"
	BudgetHourly BudgetType = "hourly"
)

type ExperienceLevel string

const (
	ExperienceEntry        ExperienceLevel = "entry"
	ExperienceIntermediate ExperienceLevel = "intermediate"
	ExperienceExpert       ExperienceLevel = "expert"
)

// Categories is the closed set a job must belong to.
var Categories = []string{
	"Web Development",
	"Mobile Development",
	"Design",
	"Writing",
	"Marketing",
	"Data Science",
	"Other",
}

// Durations is the closed set for the optional duration field.
var Durations = []string{
	"less than 1 week",
	"1-2 weeks",
	"2-4 weeks",
	"1-3 months",
	"3-6 months",
	"more than 6 months",
}

type Budget struct {
	Type      BudgetType `gorm:"type:varchar(10)" json:"type"`
	Amount    float64    `json:"amount"`
	MinAmount *float64   `json:"min_amount,omitempty"`
	MaxAmount *float64   `json:"max_amount,omitempty"`
}

type Job struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID uuid.UUID `gorm:"type:uuid;not null;index" json:"client_id"`

	Title       string         `gorm:"not null" json:"title"`
	Description string         `gorm:"type:text;not null" json:"description"`
	Category    string         `gorm:"type:varchar(50);not null;index" json:"category"`
	Skills      datatypes.JSON `json:"skills"`
	Budget      Budget         `gorm:"embedded;embeddedPrefix:budget_" json:"budget"`

	Duration   string          `gorm:"type:varchar(30)" json:"duration,omitempty"`
	Experience ExperienceLevel `gorm:"type:varchar(20);not null" json:"experience"`

	Status   JobStatus `gorm:"type:varchar(20);default:'open';index" json:"status"`
	IsActive bool      `gorm:"default:true" json:"is_active"`

	Deadline          *time.Time `json:"deadline,omitempty"`
	HiredFreelancerID *uuid.UUID `gorm:"type:uuid" json:"hired_freelancer_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Client          *User         `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	HiredFreelancer *User         `gorm:"foreignKey:HiredFreelancerID" json:"hired_freelancer,omitempty"`
	Applications    []Application `gorm:"foreignKey:JobID" json:"applications,omitempty"`
}

func (j *Job) BeforeCreate(tx *gorm.DB) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	if j.Status == "" {
		j.Status = JobStatusOpen
	}
	return nil
}

func ValidCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

func ValidDuration(d string) bool {
	for _, v := range Durations {
		if v == d {
			return true
		}
	}
	return false
}
