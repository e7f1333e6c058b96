package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ttanapat/mealdiary-backend/api/responses"
	"github.com/ttanapat/mealdiary-backend/api/validators"
	"github.com/ttanapat/mealdiary-backend/internal/foods"
	pkgerrors "github.com/ttanapat/mealdiary-backend/pkg/errors"
	"github.com/ttanapat/mealdiary-backend/pkg/logger"
)

func foodIDFromPath(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "foodId")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid food id")
	}
	return id, nil
}

// FoodsList returns one page of the user's entries, optionally filtered by a
// name search.
func FoodsList(svc foods.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := authedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := validators.ParseQueryInt(r, "page", 1, 1, 1000000)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.List(r.Context(), userID, foods.ListInput{
			Search: validators.SanitizeString(r.URL.Query().Get("search"), 200),
			Page:   page,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// FoodsGet returns a single entry owned by the user.
func FoodsGet(svc foods.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := authedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := foodIDFromPath(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Get(r.Context(), userID, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// FoodsCreate logs a new meal from a multipart form.
func FoodsCreate(svc foods.Service, maxUploadBytes int64, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := authedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := parseMultipartForm(r, maxUploadBytes); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		image, closeImage, err := formImage(r, "image")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		defer closeImage()

		dto, err := svc.Create(r.Context(), userID, foods.CreateInput{
			Name:     r.FormValue("name"),
			MealType: r.FormValue("meal_type"),
			EatenOn:  r.FormValue("eaten_on"),
			Image:    image,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

// FoodsUpdate edits an entry from a multipart form. Omitting the image part
// keeps the existing photo.
func FoodsUpdate(svc foods.Service, maxUploadBytes int64, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := authedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := foodIDFromPath(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := parseMultipartForm(r, maxUploadBytes); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		image, closeImage, err := formImage(r, "image")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		defer closeImage()

		dto, err := svc.Update(r.Context(), userID, id, foods.UpdateInput{
			Name:     r.FormValue("name"),
			MealType: r.FormValue("meal_type"),
			EatenOn:  r.FormValue("eaten_on"),
			Image:    image,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// FoodsDelete removes an entry and its stored photo.
func FoodsDelete(svc foods.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := authedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := foodIDFromPath(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), userID, id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
