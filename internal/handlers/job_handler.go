package handlers

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/mfadhilr/jobboard_be/internal/models"
)

type JobHandler struct {
	DB *gorm.DB
}

func NewJobHandler(db *gorm.DB) *JobHandler {
	return &JobHandler{DB: db}
}

// ==== REQUEST STRUCTS ====

type BudgetReq struct {
	Type      string   `json:"type"`
	Amount    float64  `json:"amount"`
	MinAmount *float64 `json:"min_amount"`
	MaxAmount *float64 `json:"max_amount"`
}

type JobReq struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Skills      []string   `json:"skills"`
	Budget      BudgetReq  `json:"budget"`
	Duration    string     `json:"duration"`
	Experience  string     `json:"experience"`
	Deadline    *time.Time `json:"deadline"`
	Status      string     `json:"status"` // only honored on update
}

func validateJobReq(req *JobReq) FieldErrors {
	errors := FieldErrors{}

	if len(strings.TrimSpace(req.Title)) < 5 {
		errors.Add("title", "Title must be at least 5 characters")
	}
	if len(strings.TrimSpace(req.Description)) < 20 {
		errors.Add("description", "Description must be at least 20 characters")
	}
	if !models.ValidCategory(req.Category) {
		errors.Add("category", "Invalid category")
	}
	if req.Budget.Type != string(models.BudgetFixed) && req.Budget.Type != string(models.BudgetHourly) {
		errors.Add("budget.type", "Budget type must be fixed or hourly")
	}
	if req.Budget.Amount <= 0 {
		errors.Add("budget.amount", "Budget amount must be a positive number")
	}
	switch req.Experience {
	case string(models.ExperienceEntry), string(models.ExperienceIntermediate), string(models.ExperienceExpert):
	default:
		errors.Add("experience", "Invalid experience level")
	}
	if req.Duration != "" && !models.ValidDuration(req.Duration) {
		errors.Add("duration", "Invalid duration")
	}

	return errors
}

// clientSummary is the resolved owner identity attached to listings.
type clientSummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

func toJobSummary(j *models.Job) fiber.Map {
	var skills []string
	if len(j.Skills) > 0 {
		_ = json.Unmarshal(j.Skills, &skills)
	}

	out := fiber.Map{
		"id":          j.ID,
		"title":       j.Title,
		"description": j.Description,
		"category":    j.Category,
		"skills":      skills,
		"budget":      j.Budget,
		"duration":    j.Duration,
		"experience":  j.Experience,
		"status":      j.Status,
		"is_active":   j.IsActive,
		"deadline":    j.Deadline,
		"created_at":  j.CreatedAt,
	}
	if j.Client != nil {
		out["client"] = clientSummary{ID: j.Client.ID, Name: j.Client.Name}
	}
	return out
}

// ==== HANDLERS ====

// List is the public browse endpoint: active jobs only, one status at a
// time (open unless asked otherwise), newest first.
func (h *JobHandler) List(c *fiber.Ctx) error {
	status := c.Query("status", string(models.JobStatusOpen))
	category := c.Query("category")
	experience := c.Query("experience")
	budgetMin := c.QueryFloat("budgetMin", 0)
	budgetMax := c.QueryFloat("budgetMax", 0)
	search := strings.ToLower(strings.TrimSpace(c.Query("search")))

	base := func() *gorm.DB {
		q := h.DB.Model(&models.Job{}).
			Where("is_active = ?", true).
			Where("status = ?", status)

		if category != "" {
			q = q.Where("category = ?", category)
		}
		if experience != "" {
			q = q.Where("experience = ?", experience)
		}
		if budgetMin > 0 {
			q = q.Where("budget_amount >= ?", budgetMin)
		}
		if budgetMax > 0 {
			q = q.Where("budget_amount <= ?", budgetMax)
		}
		if search != "" {
			like := "%" + search + "%"
			q = q.Where(
				"LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(CAST(skills AS TEXT)) LIKE ?",
				like, like, like,
			)
		}
		return q
	}

	page, limit, offset := pageParams(c, 10)

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return fail500(c, "Failed to count jobs")
	}

	var jobs []models.Job
	if err := base().
		Preload("Client").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&jobs).Error; err != nil {
		return fail500(c, "Failed to fetch jobs")
	}

	out := make([]fiber.Map, 0, len(jobs))
	for i := range jobs {
		out = append(out, toJobSummary(&jobs[i]))
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"data":       out,
		"pagination": pageMeta(page, limit, total),
	})
}

// Get returns one job with the client and every applicant resolved.
func (h *JobHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid job ID",
		})
	}

	var job models.Job
	if err := h.DB.
		Preload("Client").
		Preload("Applications").
		Preload("Applications.Freelancer").
		Preload("Applications.Freelancer.Profile").
		First(&job, "id = ?", id).Error; err != nil {
		return notFound(c, "Job not found")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    job,
	})
}

func (h *JobHandler) Create(c *fiber.Ctx) error {
	uid, err := getAuth(c)
	if err != nil {
		return err
	}

	var req JobReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid body",
		})
	}

	if errs := validateJobReq(&req); len(errs) > 0 {
		return validationFail(c, errs)
	}

	skillsJSON, _ := json.Marshal(req.Skills)

	job := models.Job{
		ClientID:    uid,
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Category:    req.Category,
		Skills:      datatypes.JSON(skillsJSON),
		Budget: models.Budget{
			Type:      models.BudgetType(req.Budget.Type),
			Amount:    req.Budget.Amount,
			MinAmount: req.Budget.MinAmount,
			MaxAmount: req.Budget.MaxAmount,
		},
		Duration:   req.Duration,
		Experience: models.ExperienceLevel(req.Experience),
		Status:     models.JobStatusOpen,
		IsActive:   true,
		Deadline:   req.Deadline,
	}

	if err := h.DB.Create(&job).Error; err != nil {
		return fail500(c, "Failed to create job")
	}

	if err := h.DB.Preload("Client").First(&job, "id = ?", job.ID).Error; err != nil {
		return fail500(c, "Failed to load job")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Job created successfully",
		"data":    toJobSummary(&job),
	})
}

// loadOwnedJob fetches a job and enforces the owner-or-admin rule.
// Not-found and forbidden stay distinct outcomes.
func (h *JobHandler) loadOwnedJob(c *fiber.Ctx) (*models.Job, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid job ID",
		})
	}

	uid, err := getAuth(c)
	if err != nil {
		return nil, err
	}

	var job models.Job
	if err := h.DB.First(&job, "id = ?", id).Error; err != nil {
		return nil, notFound(c, "Job not found")
	}

	if job.ClientID != uid && getRole(c) != string(models.RoleAdmin) {
		return nil, forbidden(c)
	}
	return &job, nil
}

func (h *JobHandler) Update(c *fiber.Ctx) error {
	job, err := h.loadOwnedJob(c)
	if job == nil {
		return err
	}

	var req JobReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid body",
		})
	}

	if errs := validateJobReq(&req); len(errs) > 0 {
		return validationFail(c, errs)
	}

	skillsJSON, _ := json.Marshal(req.Skills)

	job.Title = strings.TrimSpace(req.Title)
	job.Description = strings.TrimSpace(req.Description)
	job.Category = req.Category
	job.Skills = datatypes.JSON(skillsJSON)
	job.Budget = models.Budget{
		Type:      models.BudgetType(req.Budget.Type),
		Amount:    req.Budget.Amount,
		MinAmount: req.Budget.MinAmount,
		MaxAmount: req.Budget.MaxAmount,
	}
	job.Duration = req.Duration
	job.Experience = models.ExperienceLevel(req.Experience)
	job.Deadline = req.Deadline

	if req.Status != "" {
		switch models.JobStatus(req.Status) {
		case models.JobStatusOpen, models.JobStatusInProgress, models.JobStatusCompleted, models.JobStatusCancelled:
			job.Status = models.JobStatus(req.Status)
		default:
			errs := FieldErrors{}
			errs.Add("status", "Invalid status")
			return validationFail(c, errs)
		}
	}

	if err := h.DB.Save(job).Error; err != nil {
		return fail500(c, "Failed to update job")
	}

	if err := h.DB.Preload("Client").First(job, "id = ?", job.ID).Error; err != nil {
		return fail500(c, "Failed to load job")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Job updated successfully",
		"data":    toJobSummary(job),
	})
}

func (h *JobHandler) Delete(c *fiber.Ctx) error {
	job, err := h.loadOwnedJob(c)
	if job == nil {
		return err
	}

	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("job_id = ?", job.ID).Delete(&models.Application{}).Error; err != nil {
			return err
		}
		return tx.Delete(job).Error
	}); err != nil {
		return fail500(c, "Failed to delete job")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Job deleted successfully",
	})
}

type ApplyReq struct {
	Proposal          string  `json:"proposal"`
	BidAmount         float64 `json:"bid_amount"`
	EstimatedDuration string  `json:"estimated_duration"`
}

func (h *JobHandler) Apply(c *fiber.Ctx) error {
	uid, err := getAuth(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid job ID",
		})
	}

	var req ApplyReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid body",
		})
	}

	errors := FieldErrors{}
	if len(strings.TrimSpace(req.Proposal)) < 50 {
		errors.Add("proposal", "Proposal must be at least 50 characters")
	}
	if req.BidAmount <= 0 {
		errors.Add("bid_amount", "Bid amount must be a positive number")
	}
	if strings.TrimSpace(req.EstimatedDuration) == "" {
		errors.Add("estimated_duration", "Estimated duration is required")
	}
	if len(errors) > 0 {
		return validationFail(c, errors)
	}

	var job models.Job
	if err := h.DB.First(&job, "id = ?", id).Error; err != nil {
		return notFound(c, "Job not found")
	}

	if job.Status != models.JobStatusOpen {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Job is not open for applications",
		})
	}

	var existing int64
	h.DB.Model(&models.Application{}).
		Where("job_id = ? AND freelancer_id = ?", job.ID, uid).
		Count(&existing)
	if existing > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "You have already applied for this job",
		})
	}

	app := models.Application{
		JobID:             job.ID,
		FreelancerID:      uid,
		Proposal:          strings.TrimSpace(req.Proposal),
		BidAmount:         req.BidAmount,
		EstimatedDuration: strings.TrimSpace(req.EstimatedDuration),
	}

	if err := h.DB.Create(&app).Error; err != nil {
		// unique (job_id, freelancer_id) catches the concurrent double-apply
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "You have already applied for this job",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Application submitted successfully",
		"data":    app,
	})
}

type DecideReq struct {
	Status string `json:"status"`
}

// Decide accepts or rejects one application. Accepting moves the job to
// in-progress and records the hire; the other applications are left
// pending, matching the marketplace's historical behavior.
func (h *JobHandler) Decide(c *fiber.Ctx) error {
	job, err := h.loadOwnedJob(c)
	if job == nil {
		return err
	}

	appID, err := uuid.Parse(c.Params("appId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid application ID",
		})
	}

	var req DecideReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid body",
		})
	}

	decision := models.ApplicationStatus(req.Status)
	if decision != models.ApplicationAccepted && decision != models.ApplicationRejected {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid status",
		})
	}

	var app models.Application
	if err := h.DB.First(&app, "id = ? AND job_id = ?", appID, job.ID).Error; err != nil {
		return notFound(c, "Application not found")
	}

	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&app).Update("status", decision).Error; err != nil {
			return err
		}
		if decision == models.ApplicationAccepted {
			return tx.Model(job).Updates(map[string]interface{}{
				"status":              models.JobStatusInProgress,
				"hired_freelancer_id": app.FreelancerID,
			}).Error
		}
		return nil
	}); err != nil {
		return fail500(c, "Failed to update application")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Application " + string(decision) + " successfully",
	})
}
