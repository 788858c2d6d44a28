package server

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"paymaster/internal/domain/audit"
	"paymaster/internal/domain/auth"
	"paymaster/internal/domain/employee"
	"paymaster/internal/domain/payroll"
	"paymaster/internal/domain/payslip"
	"paymaster/internal/platform/config"
	"paymaster/internal/platform/db"
	"paymaster/internal/platform/metrics"
	"paymaster/internal/transport/http/api"
	authhandler "paymaster/internal/transport/http/handlers/auth"
	employeehandler "paymaster/internal/transport/http/handlers/employees"
	payrollhandler "paymaster/internal/transport/http/handlers/payroll"
	"paymaster/internal/transport/http/middleware"
)

func Run() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
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
	auditSvc := audit.New(pool)
	employeeStore := employee.NewStore(pool)
	historyStore := payroll.NewHistoryStore(pool)
	renderer := payslip.NewRenderer(cfg.CompanyName)

	defaults := payroll.RunConfig{
		WorkingDays: float64(cfg.WorkingDays),
		StampsFee:   cfg.StampsFee,
		EPFEmpRate:  cfg.EPFEmpRate,
		EPFCoRate:   cfg.EPFCoRate,
		ETFCoRate:   cfg.ETFCoRate,
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(collector))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Auth(cfg.JWTSecret))

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

	if cfg.MetricsEnabled {
		router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			api.Success(w, collector.Snapshot(), middleware.GetRequestID(r.Context()))
		})
	}

	router.Route("/api/v1", func(r chi.Router) {
		authHandler := authhandler.NewHandler(auth.NewStore(pool), cfg.JWTSecret)
		r.Post("/auth/login", authHandler.HandleLogin)
		r.Post("/auth/logout", authHandler.HandleLogout)

		employeeHandler := employeehandler.NewHandler(employeeStore, auditSvc)
		employeeHandler.RegisterRoutes(r)

		payrollHandler := payrollhandler.NewHandler(employeeStore, historyStore, auditSvc, renderer, collector, defaults)
		payrollHandler.RegisterRoutes(r)

		r.Get("/audit/recent", func(w http.ResponseWriter, req *http.Request) {
			if _, ok := middleware.GetUser(req.Context()); !ok {
				api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(req.Context()))
				return
			}
			limit := 50
			if raw := req.URL.Query().Get("limit"); raw != "" {
				if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
					limit = parsed
				}
			}
			events, err := auditSvc.ListRecent(req.Context(), limit)
			if err != nil {
				api.Fail(w, http.StatusInternalServerError, "audit_failed", "failed to load audit events", middleware.GetRequestID(req.Context()))
				return
			}
			api.Success(w, events, middleware.GetRequestID(req.Context()))
		})
	})

	handler := http.MaxBytesHandler(router, cfg.MaxBodyBytes)

	log.Printf("paymaster server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, handler); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
