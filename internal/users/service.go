package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ttanapat/mealdiary-backend/internal/media"
	"github.com/ttanapat/mealdiary-backend/pkg/db/models"
	"github.com/ttanapat/mealdiary-backend/pkg/enums"
	pkgerrors "github.com/ttanapat/mealdiary-backend/pkg/errors"
	"github.com/ttanapat/mealdiary-backend/pkg/logger"
)

// UpdateProfileInput captures the editable profile fields. A nil Avatar
// keeps the current picture.
type UpdateProfileInput struct {
	FullName string
	Gender   *string
	Avatar   *media.UploadInput
}

type profileRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
}

// ProfileService exposes the /me endpoints.
type ProfileService interface {
	Get(ctx context.Context, userID uuid.UUID) (*UserDTO, error)
	Update(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*UserDTO, error)
}

type profileService struct {
	repo  profileRepository
	media media.Service
	logg  *logger.Logger
}

// ProfileServiceParams bundles the dependencies for the profile service.
type ProfileServiceParams struct {
	Repo   profileRepository
	Media  media.Service
	Logger *logger.Logger
}

// NewProfileService constructs a profile service with the provided dependencies.
func NewProfileService(params ProfileServiceParams) (ProfileService, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if params.Media == nil {
		return nil, fmt.Errorf("media service is required")
	}
	return &profileService{
		repo:  params.Repo,
		media: params.Media,
		logg:  params.Logger,
	}, nil
}

func (s *profileService) Get(ctx context.Context, userID uuid.UUID) (*UserDTO, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return FromModel(user), nil
}

func (s *profileService) Update(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*UserDTO, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	fullName := strings.TrimSpace(input.FullName)
	if fullName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "full name is required")
	}

	oldAvatarKey := user.AvatarKey
	if input.Avatar != nil {
		uploaded, err := s.media.Upload(ctx, enums.MediaKindProfile, *input.Avatar)
		if err != nil {
			return nil, err
		}
		user.AvatarKey = &uploaded.Key
		user.AvatarURL = &uploaded.URL
	}

	user.FullName = fullName
	// A form that omits gender keeps the stored value; nil is absence, not
	// a request to clear.
	if input.Gender != nil {
		user.Gender = input.Gender
	}

	if err := s.repo.Update(ctx, user); err != nil {
		if input.Avatar != nil && user.AvatarKey != nil {
			s.removeAvatar(ctx, *user.AvatarKey)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update profile")
	}

	if input.Avatar != nil && oldAvatarKey != nil {
		s.removeAvatar(ctx, *oldAvatarKey)
	}

	return FromModel(user), nil
}

func (s *profileService) findUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load user")
	}
	return user, nil
}

func (s *profileService) removeAvatar(ctx context.Context, key string) {
	if err := s.media.Remove(ctx, enums.MediaKindProfile, key); err != nil && s.logg != nil {
		s.logg.Error(ctx, "remove profile image", err)
	}
}
