// Command main runs the database seeder for Bayaaz.
package main

import (
	"flag"
	"log"

	"bayaaz/internal/config"
	"bayaaz/internal/database"
	"bayaaz/internal/seed"
)

func main() {
	// Parse command line flags
	numReaders := flag.Int("readers", 50, "Number of reader accounts to create")
	poemsPerPoet := flag.Int("poems", 20, "Number of poems per built-in poet")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	skipBcrypt := flag.Bool("skip-bcrypt", false, "Store plaintext passwords (dev fast mode)")
	maxDays := flag.Int("max-days", 365, "How far back to spread poem timestamps")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")
	log.Printf("Target: %d readers, %d poems per poet, clean=%v\n", *numReaders, *poemsPerPoet, *shouldClean)

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run seeder
	s := seed.NewSeeder(db, seed.Options{
		NumReaders:   *numReaders,
		PoemsPerPoet: *poemsPerPoet,
		ShouldClean:  *shouldClean,
		SkipBcrypt:   *skipBcrypt,
		MaxDays:      *maxDays,
	})
	if err := s.Run(); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Println("✨ All done! Your database is now populated with test data.")
	log.Println("📧 All seeded readers have the password: Password123$ufi")
}
