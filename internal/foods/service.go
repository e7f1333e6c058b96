package foods

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ttanapat/mealdiary-backend/internal/media"
	"github.com/ttanapat/mealdiary-backend/pkg/db/models"
	"github.com/ttanapat/mealdiary-backend/pkg/enums"
	pkgerrors "github.com/ttanapat/mealdiary-backend/pkg/errors"
	"github.com/ttanapat/mealdiary-backend/pkg/logger"
	"github.com/ttanapat/mealdiary-backend/pkg/pagination"
)

const notFoundMessage = "food entry not found"

type repository interface {
	Count(ctx context.Context, userID uuid.UUID, search string) (int64, error)
	List(ctx context.Context, userID uuid.UUID, search string, offset, limit int) ([]models.FoodEntry, error)
	FindByID(ctx context.Context, userID, id uuid.UUID) (*models.FoodEntry, error)
	Create(ctx context.Context, entry *models.FoodEntry) (*models.FoodEntry, error)
	Update(ctx context.Context, entry *models.FoodEntry) error
	Delete(ctx context.Context, userID, id uuid.UUID) (bool, error)
}

// Service exposes the food diary operations behind the /foods endpoints.
type Service interface {
	List(ctx context.Context, userID uuid.UUID, input ListInput) (*ListResult, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*FoodDTO, error)
	Create(ctx context.Context, userID uuid.UUID, input CreateInput) (*FoodDTO, error)
	Update(ctx context.Context, userID, id uuid.UUID, input UpdateInput) (*FoodDTO, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type service struct {
	repo  repository
	media media.Service
	logg  *logger.Logger
}

// ServiceParams bundles the dependencies required to build a foods service.
type ServiceParams struct {
	Repo   repository
	Media  media.Service
	Logger *logger.Logger
}

// NewService constructs a foods service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("foods repository is required")
	}
	if params.Media == nil {
		return nil, fmt.Errorf("media service is required")
	}
	return &service{
		repo:  params.Repo,
		media: params.Media,
		logg:  params.Logger,
	}, nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID, input ListInput) (*ListResult, error) {
	total, err := s.repo.Count(ctx, userID, input.Search)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count entries")
	}

	totalPages := pagination.TotalPages(total)
	page := pagination.ClampPage(input.Page, totalPages)

	items := []FoodDTO{}
	if total > 0 {
		entries, err := s.repo.List(ctx, userID, input.Search, pagination.Offset(page), pagination.PageSize)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list entries")
		}
		items = make([]FoodDTO, 0, len(entries))
		for i := range entries {
			items = append(items, *FromModel(&entries[i]))
		}
	}

	return &ListResult{
		Items:      items,
		Page:       page,
		TotalPages: totalPages,
		TotalItems: total,
	}, nil
}

func (s *service) Get(ctx context.Context, userID, id uuid.UUID) (*FoodDTO, error) {
	entry, err := s.findOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return FromModel(entry), nil
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, input CreateInput) (*FoodDTO, error) {
	name, mealType, eatenOn, err := validateFields(input.Name, input.MealType, input.EatenOn)
	if err != nil {
		return nil, err
	}
	if input.Image == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "image is required")
	}

	uploaded, err := s.media.Upload(ctx, enums.MediaKindFood, *input.Image)
	if err != nil {
		return nil, err
	}
	imageKey, imageURL := &uploaded.Key, &uploaded.URL

	entry, err := s.repo.Create(ctx, &models.FoodEntry{
		UserID:   userID,
		Name:     name,
		MealType: mealType,
		EatenOn:  eatenOn,
		ImageKey: imageKey,
		ImageURL: imageURL,
	})
	if err != nil {
		if imageKey != nil {
			s.removeObject(ctx, *imageKey)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create entry")
	}

	return FromModel(entry), nil
}

func (s *service) Update(ctx context.Context, userID, id uuid.UUID, input UpdateInput) (*FoodDTO, error) {
	entry, err := s.findOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	name, mealType, eatenOn, err := validateFields(input.Name, input.MealType, input.EatenOn)
	if err != nil {
		return nil, err
	}

	oldImageKey := entry.ImageKey
	if input.Image != nil {
		uploaded, err := s.media.Upload(ctx, enums.MediaKindFood, *input.Image)
		if err != nil {
			return nil, err
		}
		entry.ImageKey = &uploaded.Key
		entry.ImageURL = &uploaded.URL
	}

	entry.Name = name
	entry.MealType = mealType
	entry.EatenOn = eatenOn

	if err := s.repo.Update(ctx, entry); err != nil {
		if input.Image != nil && entry.ImageKey != nil {
			s.removeObject(ctx, *entry.ImageKey)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update entry")
	}

	// The replaced photo is unreferenced now; losing it only leaks storage.
	if input.Image != nil && oldImageKey != nil {
		s.removeObject(ctx, *oldImageKey)
	}

	return FromModel(entry), nil
}

func (s *service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	entry, err := s.findOwned(ctx, userID, id)
	if err != nil {
		return err
	}

	deleted, err := s.repo.Delete(ctx, userID, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete entry")
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, notFoundMessage)
	}

	if entry.ImageKey != nil {
		s.removeObject(ctx, *entry.ImageKey)
	}
	return nil
}

func (s *service) findOwned(ctx context.Context, userID, id uuid.UUID) (*models.FoodEntry, error) {
	entry, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, notFoundMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load entry")
	}
	return entry, nil
}

func (s *service) removeObject(ctx context.Context, key string) {
	if err := s.media.Remove(ctx, enums.MediaKindFood, key); err != nil && s.logg != nil {
		s.logg.Error(ctx, "remove food image", err)
	}
}

func validateFields(name, mealType, eatenOn string) (string, enums.MealType, time.Time, error) {
	cleanName := strings.TrimSpace(name)
	if cleanName == "" {
		return "", "", time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}

	parsedMeal, err := enums.ParseMealType(mealType)
	if err != nil {
		return "", "", time.Time{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "parse meal type")
	}

	parsedDate, err := time.Parse(DateLayout, strings.TrimSpace(eatenOn))
	if err != nil {
		return "", "", time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "eaten_on must be formatted YYYY-MM-DD")
	}

	return cleanName, parsedMeal, parsedDate, nil
}
