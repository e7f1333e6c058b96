package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ttanapat/mealdiary-backend/pkg/enums"
)

// FoodEntry is one logged meal. Every entry belongs to exactly one user and
// created_at is the default sort key for the dashboard listing.
type FoodEntry struct {
	ID        uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID      `gorm:"column:user_id;type:uuid;not null;index"`
	Name      string         `gorm:"column:name;not null"`
	MealType  enums.MealType `gorm:"column:meal_type;not null"`
	EatenOn   time.Time      `gorm:"column:eaten_on;type:date;not null"`
	ImageKey  *string        `gorm:"column:image_key"`
	ImageURL  *string        `gorm:"column:image_url"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

// BeforeCreate assigns an ID when the database cannot (sqlite has no
// gen_random_uuid).
func (f *FoodEntry) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
