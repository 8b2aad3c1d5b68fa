// Command seed populates the database with demo data.
package main

import (
	"flag"
	"log"

	"skillswap/internal/config"
	"skillswap/internal/database"
	"skillswap/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 15, "Number of users to create")
	numSwaps := flag.Int("swaps", 40, "Number of swap requests to create")
	catalog := flag.String("catalog", "", "Path to a yaml skill catalog (uses the built-in catalog when empty)")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("SkillSwap Database Seeder")
	log.Printf("Target: %d users, %d swaps, clean=%v\n", *numUsers, *numSwaps, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Env == "production" || cfg.Env == "prod" {
		log.Fatal("Refusing to seed a production database")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	opts := seed.Options{
		Users:       *numUsers,
		Swaps:       *numSwaps,
		CatalogPath: *catalog,
		Wipe:        *shouldClean,
	}
	if err := seed.Seed(db, opts); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("All done! Your database is now populated with demo data.")
	log.Printf("All demo users have the password: %s", seed.DemoPassword)
}
