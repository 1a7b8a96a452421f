package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"

	"github.com/mfadhilr/jobboard_be/internal/cache"
	"github.com/mfadhilr/jobboard_be/internal/config"
	"github.com/mfadhilr/jobboard_be/internal/db"
	"github.com/mfadhilr/jobboard_be/internal/handlers"
	"github.com/mfadhilr/jobboard_be/internal/middleware"
	"github.com/mfadhilr/jobboard_be/internal/models"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	gdb, err := db.Connect(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	rdb := cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		// dashboard cache degrades to direct queries without redis
		log.Println("redis unavailable, running without dashboard cache:", err)
	}

	if err := gdb.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Job{},
		&models.Application{},
	); err != nil {
		log.Fatal(err)
	}

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendBaseURL,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		ExposeHeaders:    "Content-Length",
		AllowCredentials: true,
	}))

	app.Options("/*", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	authH := &handlers.AuthHandler{
		DB:        gdb,
		JWTSecret: cfg.JWTSecret,
		Expires:   cfg.JWTExpiresMin,
	}
	googleH := &handlers.GoogleOAuthHandler{
		DB:              gdb,
		JWTSecret:       cfg.JWTSecret,
		Expires:         cfg.JWTExpiresMin,
		GoogleClientID:  cfg.GoogleClientID,
		GoogleSecret:    cfg.GoogleSecret,
		GoogleRedirect:  cfg.GoogleRedirect,
		FrontendBaseURL: cfg.FrontendBaseURL,
	}
	jobH := handlers.NewJobHandler(gdb)
	appH := handlers.NewApplicationHandler(gdb)
	adminH := handlers.NewAdminHandler(gdb, rdb)
	categoryH := handlers.NewCategoryHandler()

	api := app.Group("/api")

	// public
	api.Post("/auth/register", authH.Register)
	api.Post("/auth/login", authH.Login)
	api.Post("/auth/logout", authH.Logout)
	api.Get("/auth/google/start", googleH.GoogleStart)
	api.Get("/auth/google/callback", googleH.GoogleCallback)
	api.Get("/categories", categoryH.GetCategories)
	api.Get("/jobs", jobH.List)
	api.Get("/jobs/:id", jobH.Get)

	// protected (JWT)
	protected := api.Group("/", middleware.Authenticate(cfg.JWTSecret))

	protected.Get("/me", authH.Me)

	protected.Post("/jobs",
		middleware.RequireRoles("client", "admin"),
		jobH.Create,
	)
	protected.Put("/jobs/:id",
		middleware.RequireRoles("client", "admin"),
		jobH.Update,
	)
	protected.Delete("/jobs/:id",
		middleware.RequireRoles("client", "admin"),
		jobH.Delete,
	)

	protected.Post("/jobs/:id/apply",
		middleware.RequireRoles("freelancer"),
		jobH.Apply,
	)
	protected.Put("/jobs/:id/applications/:appId",
		middleware.RequireRoles("client", "admin"),
		jobH.Decide,
	)

	protected.Get("/my-applications",
		middleware.RequireRoles("freelancer"),
		appH.MyApplications,
	)
	protected.Get("/my-jobs-applications",
		middleware.RequireRoles("client"),
		appH.MyJobsApplications,
	)
	protected.Delete("/withdraw/:jobId",
		middleware.RequireRoles("freelancer"),
		appH.Withdraw,
	)

	// admin only
	admin := protected.Group("/admin", middleware.RequireRoles("admin"))
	admin.Get("/dashboard", adminH.Dashboard)
	admin.Get("/users", adminH.ListUsers)
	admin.Put("/users/:id", adminH.UpdateUser)
	admin.Delete("/users/:id", adminH.DeleteUser)
	admin.Get("/jobs", adminH.ListJobs)
	admin.Put("/jobs/:id", adminH.UpdateJob)
	admin.Delete("/jobs/:id", adminH.DeleteJob)

	log.Fatal(app.Listen(":" + cfg.AppPort))
}
