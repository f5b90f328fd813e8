package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tag is a labeled category attachable to many recipes. Name, color and slug
// are each globally unique.
type Tag struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name  string    `gorm:"size:16;not null;uniqueIndex" json:"name"`
	Color string    `gorm:"size:8;not null;uniqueIndex" json:"color"`
	Slug  string    `gorm:"size:50;not null;uniqueIndex" json:"slug"`
}

func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

type Ingredient struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name            string    `gorm:"size:40;not null;index" json:"name"`
	MeasurementUnit string    `gorm:"size:16;not null" json:"measurement_unit"`
}

func (i *Ingredient) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
