// Reloads the default practice content into the database.
//
// First-run seeding happens automatically when the topics table is empty;
// this script is for resetting a development database back to the stock
// dataset after experiments.
//
// Usage: go run scripts/seed_content.go

package main

import (
	"log"

	"trading_edu_backend/internal/config"
	"trading_edu_backend/internal/model"
	"trading_edu_backend/internal/repository"
	"trading_edu_backend/pkg/database"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	// Drop current content, then reinsert the stock dataset.
	for _, m := range []interface{}{
		&model.Exercise{}, &model.Question{}, &model.Section{}, &model.Topic{},
	} {
		if err := db.Unscoped().Where("1 = 1").Delete(m).Error; err != nil {
			log.Fatalf("failed to clear table: %v", err)
		}
	}

	topics, sections, questions, exercises := repository.DefaultDataset()
	for i := range topics {
		db.Create(&topics[i])
	}
	for i := range sections {
		db.Create(&sections[i])
	}
	for i := range questions {
		db.Create(&questions[i])
	}
	for i := range exercises {
		db.Create(&exercises[i])
	}

	log.Printf("seeded %d topics, %d sections, %d questions, %d exercises",
		len(topics), len(sections), len(questions), len(exercises))
}
