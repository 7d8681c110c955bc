// Package main provides admin management utilities for Bayaaz.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"bayaaz/internal/config"
	"bayaaz/internal/database"
	"bayaaz/internal/models"

	"gorm.io/gorm"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage:")
		fmt.Println("  go run ./cmd/admin/main.go promote <user_id>      - Promote user to admin")
		fmt.Println("  go run ./cmd/admin/main.go demote <user_id>       - Demote user from admin")
		fmt.Println("  go run ./cmd/admin/main.go list-admins            - List all admins")
		fmt.Println("  go run ./cmd/admin/main.go list-poets             - List all poets")
		os.Exit(1)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	command := os.Args[1]

	switch command {
	case "promote":
		if len(os.Args) < 3 {
			fmt.Println("Usage: go run ./cmd/admin/main.go promote <user_id>")
			os.Exit(1)
		}
		setAdmin(db, os.Args[2], true)

	case "demote":
		if len(os.Args) < 3 {
			fmt.Println("Usage: go run ./cmd/admin/main.go demote <user_id>")
			os.Exit(1)
		}
		setAdmin(db, os.Args[2], false)

	case "list-admins":
		listAdmins(db)

	case "list-poets":
		listPoets(db)

	default:
		fmt.Printf("Unknown command: %s\n", command)
		os.Exit(1)
	}
}

func setAdmin(db *gorm.DB, userID string, admin bool) {
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fmt.Printf("User with ID %s not found\n", userID)
		} else {
			log.Fatalf("Database error: %v", err)
		}
		os.Exit(1)
	}

	if user.IsAdmin == admin {
		if admin {
			fmt.Printf("User %s (ID: %d) is already an admin\n", user.Username, user.ID)
		} else {
			fmt.Printf("User %s (ID: %d) is not an admin\n", user.Username, user.ID)
		}
		return
	}

	user.IsAdmin = admin
	if err := db.Save(&user).Error; err != nil {
		log.Fatalf("Failed to update user: %v", err)
	}

	if admin {
		fmt.Printf("✅ Successfully promoted %s (ID: %d) to admin\n", user.Username, user.ID)
	} else {
		fmt.Printf("✅ Successfully demoted %s (ID: %d) from admin\n", user.Username, user.ID)
	}
}

func listAdmins(db *gorm.DB) {
	var admins []models.User
	if err := db.Where("is_admin = ?", true).Find(&admins).Error; err != nil {
		log.Fatalf("Failed to fetch admins: %v", err)
	}

	if len(admins) == 0 {
		fmt.Println("No admins found in the system")
		return
	}

	fmt.Println("\n📋 Current Admins:")
	fmt.Println("─────────────────────────────────────")
	for _, admin := range admins {
		fmt.Printf("ID: %d | Username: %s | Email: %s\n", admin.ID, admin.Username, admin.Email)
	}
	fmt.Println("─────────────────────────────────────")
}

func listPoets(db *gorm.DB) {
	var poets []models.User
	if err := db.Where("is_poet = ?", true).Order("slug").Find(&poets).Error; err != nil {
		log.Fatalf("Failed to fetch poets: %v", err)
	}

	if len(poets) == 0 {
		fmt.Println("No poets found in the system")
		return
	}

	fmt.Println("\n📋 Current Poets:")
	fmt.Println("─────────────────────────────────────")
	for _, poet := range poets {
		fmt.Printf("ID: %d | Slug: %s | Pen name: %s\n", poet.ID, poet.Slug, poet.DisplayName())
	}
	fmt.Println("─────────────────────────────────────")
}
