package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ttanapat/mealdiary-backend/internal/auth"
	"github.com/ttanapat/mealdiary-backend/internal/foods"
	"github.com/ttanapat/mealdiary-backend/internal/users"
	pkgAuth "github.com/ttanapat/mealdiary-backend/pkg/auth"
	"github.com/ttanapat/mealdiary-backend/pkg/auth/session"
	"github.com/ttanapat/mealdiary-backend/pkg/config"
	"github.com/ttanapat/mealdiary-backend/pkg/logger"
)

type stubPinger struct{ err error }

func (s stubPinger) Ping(ctx context.Context) error { return s.err }

type stubSessionManager struct{}

func (stubSessionManager) HasSession(ctx context.Context, accessID string) (bool, error) {
	return true, nil
}

func (stubSessionManager) Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error) {
	return "", "", nil
}

func (stubSessionManager) Revoke(ctx context.Context, accessID string) error {
	return nil
}

type stubAuthService struct{}

func (stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
	return &auth.LoginResponse{AccessToken: "token", RefreshToken: "refresh"}, nil
}

type stubRegisterService struct{}

func (stubRegisterService) Register(ctx context.Context, req auth.RegisterRequest) (*users.UserDTO, error) {
	return &users.UserDTO{ID: uuid.New(), Email: req.Email}, nil
}

type stubProfileService struct{}

func (stubProfileService) Get(ctx context.Context, userID uuid.UUID) (*users.UserDTO, error) {
	return &users.UserDTO{ID: userID, Email: "me@example.com"}, nil
}

func (stubProfileService) Update(ctx context.Context, userID uuid.UUID, input users.UpdateProfileInput) (*users.UserDTO, error) {
	return &users.UserDTO{ID: userID, FullName: input.FullName}, nil
}

type stubFoodsService struct{}

func (stubFoodsService) List(ctx context.Context, userID uuid.UUID, input foods.ListInput) (*foods.ListResult, error) {
	return &foods.ListResult{Items: []foods.FoodDTO{}, Page: 1}, nil
}

func (stubFoodsService) Get(ctx context.Context, userID, id uuid.UUID) (*foods.FoodDTO, error) {
	return &foods.FoodDTO{ID: id}, nil
}

func (stubFoodsService) Create(ctx context.Context, userID uuid.UUID, input foods.CreateInput) (*foods.FoodDTO, error) {
	return &foods.FoodDTO{ID: uuid.New(), Name: input.Name}, nil
}

func (stubFoodsService) Update(ctx context.Context, userID, id uuid.UUID, input foods.UpdateInput) (*foods.FoodDTO, error) {
	return &foods.FoodDTO{ID: id, Name: input.Name}, nil
}

func (stubFoodsService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		App:   config.AppConfig{Env: "test", Port: "0"},
		Media: config.MediaConfig{MaxUploadMB: 10},
		JWT: config.JWTConfig{
			Secret:                 "secret",
			Issuer:                 "issuer",
			ExpirationMinutes:      60,
			RefreshTokenTTLMinutes: 120,
		},
	}
}

func newTestRouter(cfg *config.Config, dbErr error) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(Params{
		Config:          cfg,
		Logger:          logg,
		DB:              stubPinger{err: dbErr},
		Storage:         stubPinger{},
		SessionManager:  stubSessionManager{},
		AuthService:     stubAuthService{},
		RegisterService: stubRegisterService{},
		ProfileService:  stubProfileService{},
		FoodsService:    stubFoodsService{},
	})
}

func buildToken(t *testing.T, cfg *config.Config) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		JTI:    session.NewAccessID(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter(testConfig(), nil)
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for liveness got %d", resp.Code)
	}
	if got := resp.Header().Get("X-MealDiary-Env"); got != "test" {
		t.Fatalf("expected env header got %q", got)
	}
}

func TestHealthReadyReportsDependencyFailure(t *testing.T) {
	router := newTestRouter(testConfig(), context.DeadlineExceeded)
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadGateway {
		t.Fatalf("expected 502 when the database is down got %d", resp.Code)
	}
}

func TestLoginRouteIsPublic(t *testing.T) {
	router := newTestRouter(testConfig(), nil)
	body := strings.NewReader(`{"email":"me@example.com","password":"password123"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", body)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for login got %d: %s", resp.Code, resp.Body.String())
	}
	if resp.Header().Get("X-MD-Token") == "" {
		t.Fatal("expected access token header on login")
	}
}

func TestFoodsRejectsMissingJWT(t *testing.T) {
	router := newTestRouter(testConfig(), nil)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/foods/", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestFoodsSucceedsWithJWT(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/foods/", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for foods list got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestProfileSucceedsWithJWT(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/me/", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for profile got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestUnknownRoutes(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg, nil)

	// Outside the authenticated group, unmatched paths are plain 404s.
	req := httptest.NewRequest(http.MethodGet, "/nowhere", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}

	// Inside it the auth middleware answers first, so anonymous callers
	// cannot probe which routes exist.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/nowhere", nil)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/nowhere", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for authed unknown route got %d", resp.Code)
	}
}
