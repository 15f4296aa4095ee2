// Command seed runs the database seeder for TravelBuddy.
package main

import (
	"flag"
	"log"

	"travelbuddy/internal/config"
	"travelbuddy/internal/database"
	"travelbuddy/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 20, "Number of users to create")
	numBlogs := flag.Int("blogs", 40, "Number of blogs to create")
	numTrips := flag.Int("trips", 10, "Number of trips to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")
	log.Printf("Target: %d users, %d blogs, %d trips, clean=%v\n", *numUsers, *numBlogs, *numTrips, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Seed(db, seed.Options{
		NumUsers:    *numUsers,
		NumBlogs:    *numBlogs,
		NumTrips:    *numTrips,
		ShouldClean: *shouldClean,
	}); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Println("✨ All done! Your database is now populated with test data.")
	log.Println("📧 All test users have the password: Password123!!")
}
