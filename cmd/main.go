// cemse-placement-service
//
// Authenticated, transactional resource creation for the placement
// platform. Exposes a REST API used by the Gateway to implement:
//   - POST /api/company   — atomic User + Company registration
//   - POST /api/joboffer  — offer publishing with company auto-provisioning
//   - GET  /api/joboffer  — filtered / public offer listing
//
// Seeds the well-known municipality catalog at startup and sweeps offers
// past their application deadline on a cron interval.
// Publishes EVENT_COMPANY_CREATED / EVENT_JOBOFFER_CREATED to Redis for
// Gateway SSE forward.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cemse/placement-service/internal/api"
	"cemse/placement-service/internal/auth"
	"cemse/placement-service/internal/company"
	"cemse/placement-service/internal/config"
	"cemse/placement-service/internal/db"
	"cemse/placement-service/internal/joboffer"
	"cemse/placement-service/internal/provision"
)

const version = "1.0.0"

func main() {
	// ── Config ──────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[placement-service] Config error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ── PostgreSQL ───────────────────────────────────────────────────────────
	log.Println("[placement-service] Connecting to PostgreSQL…")
	pool, err := db.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("[placement-service] PostgreSQL: %v", err)
	}
	defer pool.Close()
	log.Println("[placement-service] PostgreSQL connected ✓")

	if err := db.Migrate(ctx, pool); err != nil {
		log.Fatalf("[placement-service] Migrate: %v", err)
	}

	// ── Redis ────────────────────────────────────────────────────────────────
	log.Println("[placement-service] Connecting to Redis…")
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatalf("[placement-service] Redis: %v", err)
	}
	defer rdb.Close()
	log.Println("[placement-service] Redis connected ✓")

	// ── Seed catalog ─────────────────────────────────────────────────────────
	catalog, err := provision.LoadCatalog(os.Getenv("SEED_CATALOG_PATH"))
	if err != nil {
		log.Fatalf("[placement-service] Seed catalog: %v", err)
	}
	prov := provision.New(catalog)
	if err := provision.Bootstrap(ctx, pool, prov); err != nil {
		log.Fatalf("[placement-service] Bootstrap: %v", err)
	}
	log.Printf("[placement-service] Seeded %d municipality default(s)", len(catalog.IDs()))

	// ── Services ─────────────────────────────────────────────────────────────
	verifier := auth.NewVerifier(cfg, db.NewUserStore(pool))
	hasher := auth.NewHasher()
	companySvc := company.NewService(pool, rdb, prov, hasher)
	offerSvc := joboffer.NewService(pool, rdb, prov)

	// ── Deadline sweeper ─────────────────────────────────────────────────────
	sweeper := joboffer.NewSweeper(offerSvc, cfg.SweepIntervalHours)
	if err := sweeper.Start(ctx); err != nil {
		log.Fatalf("[placement-service] Sweeper: %v", err)
	}
	defer sweeper.Stop()

	// ── HTTP server ──────────────────────────────────────────────────────────
	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthHandler)

	company.NewHandler(companySvc, verifier).RegisterRoutes(mux)
	joboffer.NewHandler(offerSvc, verifier, cfg.Mode == config.ModeDevelopment).RegisterRoutes(mux)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      api.Chain(mux, api.RequestID, api.Recover, api.AccessLog),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("[placement-service] v%s listening on :%s (%s mode)", version, cfg.Port, cfg.Mode)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[placement-service] HTTP server error: %v", err)
		}
	}()

	// ── Graceful shutdown ────────────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[placement-service] Shutting down…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[placement-service] Shutdown error: %v", err)
	}
	log.Println("[placement-service] Stopped.")
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"service": "placement-service",
		"version": version,
	})
}
