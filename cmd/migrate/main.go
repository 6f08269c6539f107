package main

import (
	"log"
	"os"

	"github.com/meiliyuri/AI-Study-Planner-Group8/app/config"
	"github.com/meiliyuri/AI-Study-Planner-Group8/app/database"
	"github.com/meiliyuri/AI-Study-Planner-Group8/app/models"
)

func main() {
	log.Println("Starting migration...")

	config.InitDB()
	db := config.GetDB()
	if db == nil {
		log.Fatal("Failed to get database instance")
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		log.Fatal("Migration failed:", err)
	}
	log.Println("Migration completed successfully!")

	// Seed the first admin account when credentials are provided
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return
	}

	if _, err := database.GetUserByEmail(db, email); err == nil {
		log.Printf("Admin %s already exists, skipping seed", email)
		return
	}

	admin := &models.User{
		Email:     email,
		Password:  password,
		FirstName: "Plan",
		LastName:  "Admin",
	}
	if err := database.CreateUser(db, admin); err != nil {
		log.Fatal("Failed to seed admin user:", err)
	}
	log.Printf("Seeded admin user %s", email)
}
