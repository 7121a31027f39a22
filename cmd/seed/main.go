package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"campusbarter/internal/config"
	"campusbarter/internal/db"
	"campusbarter/internal/model"
	"campusbarter/internal/repository"
)

// sampleItems are inserted only when the items table is empty, so the
// seed can run safely on every deploy.
var sampleItems = []model.Item{
	{
		Title:       "Calculus Textbook",
		Owner:       "Ayesha",
		Description: "Good condition, some notes",
		Tags:        []string{"books", "education"},
		Category:    "Academic",
		Type:        model.ItemTypeOffer,
	},
	{
		Title:       "Guitar Lessons",
		Owner:       "Bilal",
		Description: "30-minute session, beginner-friendly",
		Tags:        []string{"skills", "music"},
		Category:    "Skills",
		Type:        model.ItemTypeOffer,
	},
}

func main() {
	log.Println("Starting seed script...")

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}
	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.Item{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	itemRepo := repository.NewItemRepository(gormDB)
	ctx := context.Background()

	count, err := itemRepo.Count(ctx)
	if err != nil {
		log.Fatalf("Failed to count items: %v", err)
	}
	if count > 0 {
		log.Printf("Items table already has %d records, nothing to do", count)
		return
	}

	for i := range sampleItems {
		if err := itemRepo.Create(ctx, &sampleItems[i]); err != nil {
			log.Fatalf("Failed to seed item %q: %v", sampleItems[i].Title, err)
		}
		log.Printf("Seeded item: %s", sampleItems[i].Title)
	}
	log.Printf("Seed completed: %d items created", len(sampleItems))
}
