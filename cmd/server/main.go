package main

import (
	"log"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shilo-maker/solupresenter-sub003/internal/api"
	"github.com/shilo-maker/solupresenter-sub003/internal/config"
	database "github.com/shilo-maker/solupresenter-sub003/internal/db"
	"github.com/shilo-maker/solupresenter-sub003/internal/hub"
	"github.com/shilo-maker/solupresenter-sub003/internal/presenter"
	"github.com/shilo-maker/solupresenter-sub003/internal/storage"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting SoluPresenter Server...")

	// 1. Setup Configuration
	cfg := config.Load()

	// 2. Initialize Infrastructure
	db := database.New(cfg)

	// 3. Run Database Migrations
	db.AutoMigrate()
	database.SeedAdminUser(db.DB)

	// 4. Storage & tool presets
	store := storage.New(cfg)
	if err := presenter.LoadPresets(cfg.Presets.Path); err != nil {
		log.Printf("⚠️ No tool presets loaded: %v", err)
	}

	// 5. Setup Metrics
	presenter.RegisterMetrics()
	hub.RegisterMetrics()
	go func() {
		http.Handle("/_metrics", promhttp.Handler())
		log.Printf("📊 Metrics exposed at http://localhost%s/_metrics", cfg.Server.MetricsPort)
		if err := http.ListenAndServe(cfg.Server.MetricsPort, nil); err != nil {
			log.Printf("⚠️ Metrics server error: %v", err)
		}
	}()

	// 6. Start Server
	h := hub.New()
	srv := api.New(cfg, db, store, h)

	log.Printf("🚀 Server starting on %s", cfg.Server.Port)
	if err := srv.Start(cfg.Server.Port); err != nil {
		log.Fatalf("❌ Server failed to start: %v", err)
	}
}
