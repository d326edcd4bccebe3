package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"filing-backend/internal/bootstrap"
	"filing-backend/internal/shared/config"
	"filing-backend/internal/shared/server"
)

func main() {
	cfg := config.Load()
	app := bootstrap.Build(context.Background(), cfg)
	if app.DB != nil {
		defer app.DB.Close()
	}

	addr := server.Addr(cfg.Port)
	log.Printf("Starting API server on %s", addr)

	srv := &http.Server{
		Addr:              addr,
		Handler:           app.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
