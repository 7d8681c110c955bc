// Command migrate applies the database schema. Connect skips AutoMigrate in
// production, so deploys run this explicitly.
package main

import (
	"log"

	"bayaaz/internal/config"
	"bayaaz/internal/database"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}

	if err := db.AutoMigrate(database.PersistentModels()...); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	log.Println("schema migration completed")
}
