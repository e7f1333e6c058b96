package foods

import (
	"time"

	"github.com/google/uuid"

	"github.com/ttanapat/mealdiary-backend/internal/media"
	"github.com/ttanapat/mealdiary-backend/pkg/db/models"
	"github.com/ttanapat/mealdiary-backend/pkg/enums"
)

// DateLayout is the wire format for the eaten-on date.
const DateLayout = "2006-01-02"

// FoodDTO is the transport shape of a logged meal.
type FoodDTO struct {
	ID        uuid.UUID      `json:"id"`
	Name      string         `json:"name"`
	MealType  enums.MealType `json:"meal_type"`
	EatenOn   string         `json:"eaten_on"`
	ImageURL  *string        `json:"image_url,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// FromModel converts a persisted entry into its transport shape.
func FromModel(entry *models.FoodEntry) *FoodDTO {
	if entry == nil {
		return nil
	}
	return &FoodDTO{
		ID:        entry.ID,
		Name:      entry.Name,
		MealType:  entry.MealType,
		EatenOn:   entry.EatenOn.Format(DateLayout),
		ImageURL:  entry.ImageURL,
		CreatedAt: entry.CreatedAt,
		UpdatedAt: entry.UpdatedAt,
	}
}

// CreateInput captures the fields required to log a meal.
type CreateInput struct {
	Name     string
	MealType string
	EatenOn  string
	Image    *media.UploadInput
}

// UpdateInput captures the editable fields of an entry. A nil Image keeps
// the current photo.
type UpdateInput struct {
	Name     string
	MealType string
	EatenOn  string
	Image    *media.UploadInput
}

// ListInput captures the search and pagination knobs of the dashboard listing.
type ListInput struct {
	Search string
	Page   int
}

// ListResult is one page of entries plus the pagination metadata the
// dashboard renders.
type ListResult struct {
	Items      []FoodDTO `json:"items"`
	Page       int       `json:"page"`
	TotalPages int       `json:"total_pages"`
	TotalItems int64     `json:"total_items"`
}
