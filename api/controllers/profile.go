package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/ttanapat/mealdiary-backend/api/middleware"
	"github.com/ttanapat/mealdiary-backend/api/responses"
	"github.com/ttanapat/mealdiary-backend/internal/users"
	pkgerrors "github.com/ttanapat/mealdiary-backend/pkg/errors"
	"github.com/ttanapat/mealdiary-backend/pkg/logger"
)

func authedUserID(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user id")
	}
	return id, nil
}

// MeGet returns the authenticated user's profile.
func MeGet(svc users.ProfileService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "profile service unavailable"))
			return
		}

		userID, err := authedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Get(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// MeUpdate edits the authenticated user's profile from a multipart form.
func MeUpdate(svc users.ProfileService, maxUploadBytes int64, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "profile service unavailable"))
			return
		}

		userID, err := authedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := parseMultipartForm(r, maxUploadBytes); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		avatar, closeAvatar, err := formImage(r, "avatar")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		defer closeAvatar()

		input := users.UpdateProfileInput{
			FullName: r.FormValue("full_name"),
			Avatar:   avatar,
		}
		if gender := strings.TrimSpace(r.FormValue("gender")); gender != "" {
			input.Gender = &gender
		}

		dto, err := svc.Update(r.Context(), userID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}
