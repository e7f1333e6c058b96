package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ttanapat/mealdiary-backend/api/controllers"
	"github.com/ttanapat/mealdiary-backend/api/middleware"
	"github.com/ttanapat/mealdiary-backend/internal/auth"
	"github.com/ttanapat/mealdiary-backend/internal/foods"
	"github.com/ttanapat/mealdiary-backend/internal/users"
	"github.com/ttanapat/mealdiary-backend/pkg/auth/session"
	"github.com/ttanapat/mealdiary-backend/pkg/config"
	"github.com/ttanapat/mealdiary-backend/pkg/logger"
	"github.com/ttanapat/mealdiary-backend/pkg/metrics"
	"github.com/ttanapat/mealdiary-backend/pkg/redis"
)

type sessionManager interface {
	session.AccessSessionChecker
	Rotate(context.Context, string, string) (string, string, error)
	Revoke(context.Context, string) error
}

// Pinger matches the dependency health-check surface.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Params carries everything the router needs. Pingers may be nil when a
// dependency is not wired (tests).
type Params struct {
	Config  *config.Config
	Logger  *logger.Logger
	DB      Pinger
	Redis   *redis.Client
	Storage Pinger

	SessionManager  sessionManager
	AuthService     auth.Service
	RegisterService auth.RegisterService
	ProfileService  users.ProfileService
	FoodsService    foods.Service

	HTTPMetrics *metrics.HTTPMetrics
	Registry    *prometheus.Registry
}

func NewRouter(p Params) http.Handler {
	cfg := p.Config
	logg := p.Logger
	maxUpload := cfg.Media.MaxUploadBytes()

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(p.HTTPMetrics),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readinessDeps(p)))
	})

	if p.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(p.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, p.Redis, logg)).
			Post("/login", controllers.AuthLogin(p.AuthService, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, p.Redis, logg)).
			Post("/register", controllers.AuthRegister(p.RegisterService, maxUpload, logg))
		r.Post("/logout", controllers.AuthLogout(p.SessionManager, cfg.JWT, logg))
		r.Post("/refresh", controllers.AuthRefresh(p.SessionManager, cfg.JWT, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, p.SessionManager, logg))

		r.Route("/me", func(r chi.Router) {
			r.Get("/", controllers.MeGet(p.ProfileService, logg))
			r.Put("/", controllers.MeUpdate(p.ProfileService, maxUpload, logg))
		})

		r.Route("/foods", func(r chi.Router) {
			r.Get("/", controllers.FoodsList(p.FoodsService, logg))
			r.Post("/", controllers.FoodsCreate(p.FoodsService, maxUpload, logg))
			r.Get("/{foodId}", controllers.FoodsGet(p.FoodsService, logg))
			r.Put("/{foodId}", controllers.FoodsUpdate(p.FoodsService, maxUpload, logg))
			r.Delete("/{foodId}", controllers.FoodsDelete(p.FoodsService, logg))
		})
	})

	return r
}

func readinessDeps(p Params) map[string]controllers.Pinger {
	deps := map[string]controllers.Pinger{}
	if p.DB != nil {
		deps["database"] = p.DB
	}
	if p.Redis != nil {
		deps["redis"] = p.Redis
	}
	if p.Storage != nil {
		deps["object storage"] = p.Storage
	}
	return deps
}
