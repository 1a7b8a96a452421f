package main

import (
	"flag"
	"log"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/mfadhilr/jobboard_be/internal/config"
	"github.com/mfadhilr/jobboard_be/internal/db"
	"github.com/mfadhilr/jobboard_be/internal/models"
	"github.com/mfadhilr/jobboard_be/internal/utils"
)

func main() {
	name := flag.String("name", "Admin User", "admin display name")
	email := flag.String("email", "admin@freelancehub.com", "admin email")
	password := flag.String("password", "admin123", "admin password")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()

	gdb, err := db.Connect(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	if err := gdb.AutoMigrate(&models.User{}); err != nil {
		log.Fatal(err)
	}

	var existing models.User
	err = gdb.Where("email = ?", *email).First(&existing).Error
	if err == nil {
		log.Println("Admin user already exists")
		return
	}
	if err != gorm.ErrRecordNotFound {
		log.Fatal(err)
	}

	hashed, err := utils.HashPassword(*password)
	if err != nil {
		log.Fatal(err)
	}

	admin := models.User{
		Name:       *name,
		Email:      *email,
		Password:   hashed,
		Role:       models.RoleAdmin,
		IsVerified: true,
	}
	if err := gdb.Create(&admin).Error; err != nil {
		log.Fatal(err)
	}

	log.Println("Admin user created successfully!")
	log.Println("Email:", *email)
}
