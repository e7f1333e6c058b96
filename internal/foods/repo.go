package foods

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ttanapat/mealdiary-backend/pkg/db/models"
)

// Repository exposes food entry persistence operations. Every query is
// scoped to the owning user.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) scoped(ctx context.Context, userID uuid.UUID) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.FoodEntry{}).Where("user_id = ?", userID)
}

func applySearch(tx *gorm.DB, search string) *gorm.DB {
	needle := strings.TrimSpace(search)
	if needle == "" {
		return tx
	}
	return tx.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(needle)+"%")
}

// Count returns how many entries match the search for the user.
func (r *Repository) Count(ctx context.Context, userID uuid.UUID, search string) (int64, error) {
	var count int64
	if err := applySearch(r.scoped(ctx, userID), search).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// List returns one page of entries, newest first.
func (r *Repository) List(ctx context.Context, userID uuid.UUID, search string, offset, limit int) ([]models.FoodEntry, error) {
	var entries []models.FoodEntry
	err := applySearch(r.scoped(ctx, userID), search).
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// FindByID loads a single entry owned by the user.
func (r *Repository) FindByID(ctx context.Context, userID, id uuid.UUID) (*models.FoodEntry, error) {
	var entry models.FoodEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// Create inserts a new entry.
func (r *Repository) Create(ctx context.Context, entry *models.FoodEntry) (*models.FoodEntry, error) {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// Update persists the mutable fields of an existing entry.
func (r *Repository) Update(ctx context.Context, entry *models.FoodEntry) error {
	return r.db.WithContext(ctx).
		Model(&models.FoodEntry{}).
		Where("id = ? AND user_id = ?", entry.ID, entry.UserID).
		Updates(map[string]any{
			"name":      entry.Name,
			"meal_type": entry.MealType,
			"eaten_on":  entry.EatenOn,
			"image_key": entry.ImageKey,
			"image_url": entry.ImageURL,
		}).Error
}

// Delete removes the entry and reports whether a row was deleted.
func (r *Repository) Delete(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.FoodEntry{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
