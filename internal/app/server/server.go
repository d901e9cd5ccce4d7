package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"worklog/internal/domain/auth"
	"worklog/internal/domain/business"
	"worklog/internal/domain/employer"
	"worklog/internal/domain/workday"
	"worklog/internal/platform/config"
	"worklog/internal/platform/db"
	"worklog/internal/platform/jobs"
	"worklog/internal/platform/metrics"
	"worklog/internal/transport/http/api"
	authhandler "worklog/internal/transport/http/handlers/auth"
	businesshandler "worklog/internal/transport/http/handlers/business"
	employershandler "worklog/internal/transport/http/handlers/employers"
	reportshandler "worklog/internal/transport/http/handlers/reports"
	workdayshandler "worklog/internal/transport/http/handlers/workdays"
	"worklog/internal/transport/http/middleware"
)

const loginRateLimit = 10

func Run() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	}

	collector := metrics.New()
	router := NewRouter(cfg, pool, collector)

	background := jobs.New(pool, cfg, workday.NewStore(pool), employer.NewStore(pool), collector)
	background.Start(ctx)

	log.Printf("worklog server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

// NewRouter wires the full HTTP surface. Login is the only API route
// outside the auth gate and sits behind a per-client rate limit.
func NewRouter(cfg config.Config, pool *pgxpool.Pool, collector *metrics.Collector) http.Handler {
	authStore := auth.NewStore(pool)
	employerStore := employer.NewStore(pool)
	workDayStore := workday.NewStore(pool)
	businessStore := business.NewStore(pool)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Metrics(collector))
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	authHandler := authhandler.NewHandler(authStore, cfg.JWTSecret, cfg.TokenTTL)

	router.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(loginRateLimit, time.Minute))
			r.Post("/auth/login", authHandler.HandleLogin)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(cfg.JWTSecret))

			authHandler.RegisterRoutes(r)
			employershandler.NewHandler(employerStore).RegisterRoutes(r)
			workdayshandler.NewHandler(workDayStore, employerStore, collector).RegisterRoutes(r)
			businesshandler.NewHandler(businessStore).RegisterRoutes(r)
			reportshandler.NewHandler(workDayStore, employerStore, businessStore, collector).RegisterRoutes(r)

			r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
				api.Success(w, collector.Snapshot(), middleware.GetRequestID(r.Context()))
			})
		})
	})

	return router
}
