package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/mfadhilr/jobboard_be/internal/cache"
	"github.com/mfadhilr/jobboard_be/internal/models"
	"github.com/mfadhilr/jobboard_be/internal/services/stats"
)

type AdminHandler struct {
	DB    *gorm.DB
	Stats *stats.Service
	snap  *cache.Snapshot
}

func NewAdminHandler(db *gorm.DB, rdb *redis.Client) *AdminHandler {
	return &AdminHandler{
		DB:    db,
		Stats: stats.NewService(db),
		snap: &cache.Snapshot{
			RDB: rdb,
			Key: "admin:dashboard",
			TTL: 30 * time.Second,
		},
	}
}

// Dashboard serves the aggregate rollup, cached for a short window so a
// busy admin screen does not hammer the group-by queries.
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	var d stats.Dashboard
	if h.snap.Get(c.Context(), &d) {
		return c.JSON(fiber.Map{
			"success": true,
			"data":    d,
		})
	}

	fresh, err := h.Stats.Dashboard()
	if err != nil {
		return fail500(c, "Failed to compute dashboard stats")
	}
	h.snap.Set(c.Context(), fresh)

	return c.JSON(fiber.Map{
		"success": true,
		"data":    fresh,
	})
}

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	role := c.Query("role")
	search := strings.ToLower(strings.TrimSpace(c.Query("search")))

	base := func() *gorm.DB {
		q := h.DB.Model(&models.User{})
		if role != "" {
			q = q.Where("role = ?", role)
		}
		if search != "" {
			like := "%" + search + "%"
			q = q.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", like, like)
		}
		return q
	}

	page, limit, offset := pageParams(c, 10)

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return fail500(c, "Failed to count users")
	}

	var users []models.User
	if err := base().
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error; err != nil {
		return fail500(c, "Failed to fetch users")
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"data":       users,
		"pagination": pageMeta(page, limit, total),
	})
}

type AdminUserUpdateReq struct {
	Role       *string `json:"role"`
	IsVerified *bool   `json:"is_verified"`
}

// UpdateUser is a partial moderation update; omitted fields stay as-is.
func (h *AdminHandler) UpdateUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid user ID",
		})
	}

	var req AdminUserUpdateReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid body",
		})
	}

	updates := map[string]interface{}{}
	if req.Role != nil {
		role := models.Role(strings.ToLower(*req.Role))
		switch role {
		case models.RoleClient, models.RoleFreelancer, models.RoleAdmin:
			updates["role"] = role
		default:
			errs := FieldErrors{}
			errs.Add("role", "Invalid role")
			return validationFail(c, errs)
		}
	}
	if req.IsVerified != nil {
		updates["is_verified"] = *req.IsVerified
	}

	var user models.User
	if err := h.DB.First(&user, "id = ?", id).Error; err != nil {
		return notFound(c, "User not found")
	}

	if len(updates) > 0 {
		if err := h.DB.Model(&user).Updates(updates).Error; err != nil {
			return fail500(c, "Failed to update user")
		}
		if err := h.DB.First(&user, "id = ?", id).Error; err != nil {
			return fail500(c, "Failed to load user")
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "User updated successfully",
		"data":    user,
	})
}

// DeleteUser removes an account and everything hanging off it: the
// user's own jobs (with their applications) and the applications the
// user filed on other jobs.
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid user ID",
		})
	}

	var user models.User
	if err := h.DB.First(&user, "id = ?", id).Error; err != nil {
		return notFound(c, "User not found")
	}

	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("freelancer_id = ?", id).Delete(&models.Application{}).Error; err != nil {
			return err
		}
		if err := tx.Where("job_id IN (?)",
			tx.Model(&models.Job{}).Select("id").Where("client_id = ?", id),
		).Delete(&models.Application{}).Error; err != nil {
			return err
		}
		if err := tx.Where("client_id = ?", id).Delete(&models.Job{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Profile{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	}); err != nil {
		return fail500(c, "Failed to delete user")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "User deleted successfully",
	})
}

func (h *AdminHandler) ListJobs(c *fiber.Ctx) error {
	status := c.Query("status")
	category := c.Query("category")

	base := func() *gorm.DB {
		q := h.DB.Model(&models.Job{})
		if status != "" {
			q = q.Where("status = ?", status)
		}
		if category != "" {
			q = q.Where("category = ?", category)
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

type AdminJobUpdateReq struct {
	Status   *string `json:"status"`
	IsActive *bool   `json:"is_active"`
}

func (h *AdminHandler) UpdateJob(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid job ID",
		})
	}

	var req AdminJobUpdateReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid body",
		})
	}

	updates := map[string]interface{}{}
	if req.Status != nil {
		status := models.JobStatus(*req.Status)
		switch status {
		case models.JobStatusOpen, models.JobStatusInProgress, models.JobStatusCompleted, models.JobStatusCancelled:
			updates["status"] = status
		default:
			errs := FieldErrors{}
			errs.Add("status", "Invalid status")
			return validationFail(c, errs)
		}
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	var job models.Job
	if err := h.DB.First(&job, "id = ?", id).Error; err != nil {
		return notFound(c, "Job not found")
	}

	if len(updates) > 0 {
		if err := h.DB.Model(&job).Updates(updates).Error; err != nil {
			return fail500(c, "Failed to update job")
		}
		if err := h.DB.First(&job, "id = ?", id).Error; err != nil {
			return fail500(c, "Failed to load job")
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Job updated successfully",
		"data":    job,
	})
}

// DeleteJob needs no ownership check, the route is already admin-gated.
func (h *AdminHandler) DeleteJob(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid job ID",
		})
	}

	var job models.Job
	if err := h.DB.First(&job, "id = ?", id).Error; err != nil {
		return notFound(c, "Job not found")
	}

	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("job_id = ?", id).Delete(&models.Application{}).Error; err != nil {
			return err
		}
		return tx.Delete(&job).Error
	}); err != nil {
		return fail500(c, "Failed to delete job")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Job deleted successfully",
	})
}
