package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mfadhilr/jobboard_be/internal/middleware"
	"github.com/mfadhilr/jobboard_be/internal/models"
	"github.com/mfadhilr/jobboard_be/internal/utils"
)

const testSecret = "test-secret"

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open sqlite: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	// one connection so every query sees the same in-memory database
	sqlDB.SetMaxOpenConns(1)

	if err := gdb.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Job{},
		&models.Application{},
	); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	return gdb
}

// setupApp builds a fiber app with the same route layout as cmd/api.
func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	gdb := setupDB(t)
	app := fiber.New()

	authH := &AuthHandler{DB: gdb, JWTSecret: testSecret, Expires: 60}
	jobH := NewJobHandler(gdb)
	appH := NewApplicationHandler(gdb)
	adminH := NewAdminHandler(gdb, nil)
	categoryH := NewCategoryHandler()

	api := app.Group("/api")

	api.Post("/auth/register", authH.Register)
	api.Post("/auth/login", authH.Login)
	api.Get("/categories", categoryH.GetCategories)
	api.Get("/jobs", jobH.List)
	api.Get("/jobs/:id", jobH.Get)

	protected := api.Group("/", middleware.Authenticate(testSecret))
	protected.Get("/me", authH.Me)
	protected.Post("/jobs", middleware.RequireRoles("client", "admin"), jobH.Create)
	protected.Put("/jobs/:id", middleware.RequireRoles("client", "admin"), jobH.Update)
	protected.Delete("/jobs/:id", middleware.RequireRoles("client", "admin"), jobH.Delete)
	protected.Post("/jobs/:id/apply", middleware.RequireRoles("freelancer"), jobH.Apply)
	protected.Put("/jobs/:id/applications/:appId", middleware.RequireRoles("client", "admin"), jobH.Decide)
	protected.Get("/my-applications", middleware.RequireRoles("freelancer"), appH.MyApplications)
	protected.Get("/my-jobs-applications", middleware.RequireRoles("client"), appH.MyJobsApplications)
	protected.Delete("/withdraw/:jobId", middleware.RequireRoles("freelancer"), appH.Withdraw)

	admin := protected.Group("/admin", middleware.RequireRoles("admin"))
	admin.Get("/dashboard", adminH.Dashboard)
	admin.Get("/users", adminH.ListUsers)
	admin.Put("/users/:id", adminH.UpdateUser)
	admin.Delete("/users/:id", adminH.DeleteUser)
	admin.Get("/jobs", adminH.ListJobs)
	admin.Put("/jobs/:id", adminH.UpdateJob)
	admin.Delete("/jobs/:id", adminH.DeleteJob)

	return app, gdb
}

func createUser(t *testing.T, gdb *gorm.DB, name, email string, role models.Role) models.User {
	t.Helper()

	hashed, err := utils.HashPassword("password123")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	u := models.User{Name: name, Email: email, Password: hashed, Role: role}
	if err := gdb.Create(&u).Error; err != nil {
		t.Fatalf("Failed to create user %s: %v", email, err)
	}
	return u
}

func tokenFor(t *testing.T, u models.User) string {
	t.Helper()

	token, err := utils.SignJWT(testSecret, u.ID.String(), string(u.Role), 60)
	if err != nil {
		t.Fatalf("SignJWT failed: %v", err)
	}
	return token
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read response body: %v", err)
	}
	out := map[string]interface{}{}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &out)
	}
	return resp, out
}

func validJobBody() map[string]interface{} {
	return map[string]interface{}{
		"title":       "UX Designer Needed",
		"description": "Need a UX designer for app", // 26 chars
		"category":    "Design",
		"skills":      []string{"figma", "wireframing"},
		"budget":      map[string]interface{}{"type": "fixed", "amount": 500},
		"experience":  "entry",
	}
}
