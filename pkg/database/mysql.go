package database

import (
	"fmt"
	"log"

	"trading_edu_backend/internal/config"
	"trading_edu_backend/internal/model"
	"trading_edu_backend/internal/repository"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.Topic{},
		&model.Section{},
		&model.Question{},
		&model.Exercise{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	seedDefaultContent(db)

	return db, nil
}

// seedDefaultContent loads the surrogate dataset into an empty database so
// a fresh install has a browsable content tree. Tables that already hold
// rows are left alone.
func seedDefaultContent(db *gorm.DB) {
	var count int64
	db.Model(&model.Topic{}).Count(&count)
	if count > 0 {
		return
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

	log.Println("Seeded default practice content")
}
