package main

import (
	"context"
	"log"

	"diettracker/config"
	"diettracker/routes"
	"diettracker/services"
)

func main() {
	cfg := config.MustLoad()

	store, err := services.NewSheetsService(context.Background(), cfg.SpreadsheetID, cfg.GoogleCredentialsJSON)
	if err != nil {
		log.Fatalf("sheets: %v", err)
	}
	estimator := services.NewEstimatorService(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)
	cache := services.NewSnapshotCache(store)
	mgr := services.NewSessionManager(cfg.Users)
	hub := services.NewRealtimeHub()

	r := routes.SetupRouter(cfg, store, estimator, cache, mgr, hub)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("server: %v", err)
	}
}
