package controllers

import (
	"context"
	"fmt"
	"net/http"
	"sort"

	"go.uber.org/multierr"

	"github.com/ttanapat/mealdiary-backend/api/responses"
	"github.com/ttanapat/mealdiary-backend/pkg/config"
	pkgerrors "github.com/ttanapat/mealdiary-backend/pkg/errors"
	"github.com/ttanapat/mealdiary-backend/pkg/logger"
)

const envHeader = "X-MealDiary-Env"

type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready only when every wired dependency answers a ping.
// All dependencies are probed so the logged failure names everything that is
// down, not just the first.
func HealthReady(cfg *config.Config, logg *logger.Logger, deps map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		names := make([]string, 0, len(deps))
		for name := range deps {
			names = append(names, name)
		}
		sort.Strings(names)

		var errs []error
		var down []string
		for _, name := range names {
			dep := deps[name]
			if dep == nil {
				continue
			}
			if err := dep.Ping(r.Context()); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
				down = append(down, name)
			}
		}
		if len(errs) > 0 {
			combined := multierr.Combine(errs...)
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeDependency, combined, fmt.Sprintf("unavailable: %v", down)))
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
