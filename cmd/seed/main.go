// Command seed populates the database with demo data.
package main

import (
	"flag"
	"log"

	"comunidad/internal/config"
	"comunidad/internal/database"
	"comunidad/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 10, "Number of users to create")
	postsPerUser := flag.Int("posts", 3, "Number of posts per user")
	fixture := flag.String("fixture", "", "Load this YAML fixture instead of generated data")
	shouldClean := flag.Bool("clean", false, "Delete existing rows before seeding")
	randSeed := flag.Int64("seed", 0, "Random seed for generated data (0 picks one)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.IsProduction() {
		log.Fatal("Refusing to seed a production database")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if *shouldClean {
		if err := seed.Clear(db); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
		log.Println("Existing data removed")
	}

	f := seed.NewFactory(db, *randSeed)

	var summary seed.Summary
	if *fixture != "" {
		fx, err := seed.LoadFixture(*fixture)
		if err != nil {
			log.Fatalf("Fixture load failed: %v", err)
		}
		summary, err = f.ApplyFixture(fx)
		if err != nil {
			log.Fatalf("Fixture seeding failed: %v", err)
		}
	} else {
		summary, err = f.Demo(seed.DemoOptions{Users: *numUsers, PostsPerUser: *postsPerUser})
		if err != nil {
			log.Fatalf("Demo seeding failed: %v", err)
		}
	}

	log.Printf("Seeded %d users, %d posts, %d replies, %d favorites, %d tasks, %d medications",
		summary.Users, summary.Posts, summary.Replies, summary.Favorites, summary.Tasks, summary.Medications)
	if *fixture == "" {
		log.Printf("Generated users have the password: %s", seed.DefaultPassword)
	}
}
