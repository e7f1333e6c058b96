package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/ttanapat/mealdiary-backend/internal/users"
	"github.com/ttanapat/mealdiary-backend/pkg/types"
)

type stubProfileService struct {
	dto       *users.UserDTO
	err       error
	lastInput users.UpdateProfileInput
}

func (s *stubProfileService) Get(ctx context.Context, userID uuid.UUID) (*users.UserDTO, error) {
	return s.dto, s.err
}

func (s *stubProfileService) Update(ctx context.Context, userID uuid.UUID, input users.UpdateProfileInput) (*users.UserDTO, error) {
	s.lastInput = input
	return s.dto, s.err
}

func TestMeGetReturnsProfile(t *testing.T) {
	userID := uuid.New()
	svc := &stubProfileService{dto: &users.UserDTO{ID: userID, Email: "alice@example.com", FullName: "Alice"}}
	handler := MeGet(svc, nil)

	req := withAuthedUser(httptest.NewRequest(http.MethodGet, "/api/v1/me", nil), userID)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}

	var envelope types.SuccessEnvelope
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	payload := envelope.Data.(map[string]any)
	if payload["email"] != "alice@example.com" {
		t.Fatalf("unexpected payload %v", payload)
	}
}

func TestMeGetWithoutUserIs401(t *testing.T) {
	handler := MeGet(&stubProfileService{}, nil)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/me", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestMeUpdateParsesForm(t *testing.T) {
	userID := uuid.New()
	svc := &stubProfileService{dto: &users.UserDTO{ID: userID, FullName: "Alice Updated"}}
	handler := MeUpdate(svc, 10<<20, nil)

	body, contentType := multipartFoodForm(t, map[string]string{
		"full_name": "Alice Updated",
		"gender":    "female",
	}, "avatar", "me.png")

	req := withAuthedUser(httptest.NewRequest(http.MethodPut, "/api/v1/me", body), userID)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.lastInput.FullName != "Alice Updated" {
		t.Fatalf("unexpected input %+v", svc.lastInput)
	}
	if svc.lastInput.Gender == nil || *svc.lastInput.Gender != "female" {
		t.Fatalf("expected gender set, got %v", svc.lastInput.Gender)
	}
	if svc.lastInput.Avatar == nil || svc.lastInput.Avatar.FileName != "me.png" {
		t.Fatalf("expected avatar part, got %+v", svc.lastInput.Avatar)
	}
}
