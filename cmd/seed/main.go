package main

import (
	"encoding/json"
	"errors"
	"flag"
	"os"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/foodgram/backend/config"
	"github.com/foodgram/backend/internal/database"
	"github.com/foodgram/backend/internal/models"
)

// fixture is the on-disk seed format: reference ingredients and tags.
type fixture struct {
	Ingredients []struct {
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
	} `json:"ingredients"`
	Tags []struct {
		Name  string `json:"name"`
		Color string `json:"color"`
		Slug  string `json:"slug"`
	} `json:"tags"`
}

func main() {
	path := flag.String("fixture", "data/fixture.json", "path to the seed fixture")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		logrus.Fatalf("migration failed: %v", err)
	}

	raw, err := os.ReadFile(*path)
	if err != nil {
		logrus.Fatalf("failed to read fixture %s: %v", *path, err)
	}
	var fx fixture
	if err := json.Unmarshal(raw, &fx); err != nil {
		logrus.Fatalf("failed to parse fixture: %v", err)
	}

	var created, skipped int
	for _, ing := range fx.Ingredients {
		row := models.Ingredient{Name: ing.Name, MeasurementUnit: ing.MeasurementUnit}
		var existing models.Ingredient
		err := db.Where("name = ? AND measurement_unit = ?", ing.Name, ing.MeasurementUnit).First(&existing).Error
		if err == nil {
			skipped++
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logrus.Fatalf("failed to check ingredient %q: %v", ing.Name, err)
		}
		if err := db.Create(&row).Error; err != nil {
			logrus.Fatalf("failed to create ingredient %q: %v", ing.Name, err)
		}
		created++
	}
	logrus.WithFields(logrus.Fields{"created": created, "skipped": skipped}).Info("ingredients seeded")

	created, skipped = 0, 0
	for _, tag := range fx.Tags {
		row := models.Tag{Name: tag.Name, Color: tag.Color, Slug: tag.Slug}
		if err := db.Create(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				skipped++
				continue
			}
			logrus.Fatalf("failed to create tag %q: %v", tag.Name, err)
		}
		created++
	}
	logrus.WithFields(logrus.Fields{"created": created, "skipped": skipped}).Info("tags seeded")
}
