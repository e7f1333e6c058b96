package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/ttanapat/mealdiary-backend/internal/auth"
	"github.com/ttanapat/mealdiary-backend/internal/users"
)

type stubRegisterService struct {
	lastReq auth.RegisterRequest
	user    *users.UserDTO
	err     error
	calls   int
}

func (s *stubRegisterService) Register(ctx context.Context, req auth.RegisterRequest) (*users.UserDTO, error) {
	s.calls++
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

func TestAuthRegisterParsesMultipart(t *testing.T) {
	reg := &stubRegisterService{user: &users.UserDTO{ID: uuid.New(), Email: "new@example.com"}}
	handler := AuthRegister(reg, 1<<20, nil)

	body, contentType := multipartFoodForm(t, map[string]string{
		"full_name": "New User",
		"email":     "new@example.com",
		"password":  "password123",
		"gender":    "female",
	}, "avatar", "face.png")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rec.Code, rec.Body.String())
	}
	if reg.lastReq.Email != "new@example.com" || reg.lastReq.FullName != "New User" {
		t.Fatalf("unexpected register request %+v", reg.lastReq)
	}
	if reg.lastReq.Gender == nil || *reg.lastReq.Gender != "female" {
		t.Fatalf("expected gender to be parsed, got %+v", reg.lastReq.Gender)
	}
	if reg.lastReq.Avatar == nil || reg.lastReq.Avatar.FileName != "face.png" {
		t.Fatalf("expected avatar part, got %+v", reg.lastReq.Avatar)
	}
}

func TestAuthRegisterWithoutAvatar(t *testing.T) {
	reg := &stubRegisterService{user: &users.UserDTO{ID: uuid.New()}}
	handler := AuthRegister(reg, 1<<20, nil)

	body, contentType := multipartFoodForm(t, map[string]string{
		"full_name": "New User",
		"email":     "new@example.com",
		"password":  "password123",
	}, "", "")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rec.Code, rec.Body.String())
	}
	if reg.lastReq.Avatar != nil {
		t.Fatalf("expected nil avatar, got %+v", reg.lastReq.Avatar)
	}
}

func TestAuthRegisterValidatesForm(t *testing.T) {
	cases := map[string]map[string]string{
		"short password": {
			"full_name": "New User",
			"email":     "new@example.com",
			"password":  "short",
		},
		"malformed email": {
			"full_name": "New User",
			"email":     "not-an-email",
			"password":  "password123",
		},
		"missing name": {
			"email":    "new@example.com",
			"password": "password123",
		},
	}

	for name, fields := range cases {
		t.Run(name, func(t *testing.T) {
			reg := &stubRegisterService{}
			handler := AuthRegister(reg, 1<<20, nil)

			body, contentType := multipartFoodForm(t, fields, "", "")
			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", body)
			req.Header.Set("Content-Type", contentType)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400 got %d: %s", rec.Code, rec.Body.String())
			}
			if reg.calls != 0 {
				t.Fatalf("expected no register call, got %d", reg.calls)
			}
		})
	}
}
