package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mfadhilr/jobboard_be/internal/models"
)

type ApplicationHandler struct {
	DB *gorm.DB
}

func NewApplicationHandler(db *gorm.DB) *ApplicationHandler {
	return &ApplicationHandler{DB: db}
}

// MyApplications lists every bid the calling freelancer has out, with a
// summary of the job each one targets.
func (h *ApplicationHandler) MyApplications(c *fiber.Ctx) error {
	uid, err := getAuth(c)
	if err != nil {
		return err
	}

	var apps []models.Application
	if err := h.DB.
		Preload("Job").
		Preload("Job.Client").
		Where("freelancer_id = ?", uid).
		Order("applied_at DESC").
		Find(&apps).Error; err != nil {
		return fail500(c, "Failed to fetch applications")
	}

	out := make([]fiber.Map, 0, len(apps))
	for _, a := range apps {
		entry := fiber.Map{
			"application": fiber.Map{
				"id":                 a.ID,
				"proposal":           a.Proposal,
				"bid_amount":         a.BidAmount,
				"estimated_duration": a.EstimatedDuration,
				"status":             a.Status,
				"applied_at":         a.AppliedAt,
			},
		}
		if a.Job != nil {
			entry["job_id"] = a.Job.ID
			entry["job_title"] = a.Job.Title
			entry["job_category"] = a.Job.Category
			entry["job_budget"] = a.Job.Budget
			entry["job_status"] = a.Job.Status
			if a.Job.Client != nil {
				entry["client_name"] = a.Job.Client.Name
			}
		}
		out = append(out, entry)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    out,
	})
}

// MyJobsApplications lists the calling client's jobs with all embedded
// applications and applicant identity resolved.
func (h *ApplicationHandler) MyJobsApplications(c *fiber.Ctx) error {
	uid, err := getAuth(c)
	if err != nil {
		return err
	}

	var jobs []models.Job
	if err := h.DB.
		Preload("Applications").
		Preload("Applications.Freelancer").
		Preload("Applications.Freelancer.Profile").
		Where("client_id = ?", uid).
		Order("created_at DESC").
		Find(&jobs).Error; err != nil {
		return fail500(c, "Failed to fetch jobs")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    jobs,
	})
}

// Withdraw removes the caller's application from a job, addressed by
// key rather than positional index.
func (h *ApplicationHandler) Withdraw(c *fiber.Ctx) error {
	uid, err := getAuth(c)
	if err != nil {
		return err
	}

	jobID, err := uuid.Parse(c.Params("jobId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid job ID",
		})
	}

	var job models.Job
	if err := h.DB.First(&job, "id = ?", jobID).Error; err != nil {
		return notFound(c, "Job not found")
	}

	var app models.Application
	if err := h.DB.First(&app, "job_id = ? AND freelancer_id = ?", jobID, uid).Error; err != nil {
		return notFound(c, "Application not found")
	}

	if err := h.DB.Delete(&app).Error; err != nil {
		return fail500(c, "Failed to withdraw application")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Application withdrawn successfully",
	})
}
