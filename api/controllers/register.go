package controllers

import (
	"net/http"
	"strings"

	"github.com/ttanapat/mealdiary-backend/api/responses"
	"github.com/ttanapat/mealdiary-backend/api/validators"
	"github.com/ttanapat/mealdiary-backend/internal/auth"
	pkgerrors "github.com/ttanapat/mealdiary-backend/pkg/errors"
	"github.com/ttanapat/mealdiary-backend/pkg/logger"
)

// AuthRegister onboards a new user from a multipart form. The new account is
// not logged in; the client follows up with the login endpoint.
func AuthRegister(reg auth.RegisterService, maxUploadBytes int64, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if reg == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
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

		req := auth.RegisterRequest{
			FullName: r.FormValue("full_name"),
			Email:    r.FormValue("email"),
			Password: r.FormValue("password"),
			Avatar:   avatar,
		}
		if gender := strings.TrimSpace(r.FormValue("gender")); gender != "" {
			req.Gender = &gender
		}
		if err := validators.ValidateStruct(req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := reg.Register(r.Context(), req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, user)
	}
}
