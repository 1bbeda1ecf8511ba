package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/vocabquiz/internal/auth"
	"github.com/example/vocabquiz/internal/authoring"
	"github.com/example/vocabquiz/internal/config"
	"github.com/example/vocabquiz/internal/database"
	"github.com/example/vocabquiz/internal/httpapi"
	"github.com/example/vocabquiz/internal/progress"
	"github.com/example/vocabquiz/internal/quiz"
	"github.com/example/vocabquiz/internal/scheduler"
	"github.com/joho/godotenv"
)

func main() {
	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found, using environment variables")
		}
	}
	cfg := config.Load()

	// Channel for shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	db, err := database.Connect(database.Config{Driver: cfg.DBDriver, DSN: cfg.DBDSN})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	engine := quiz.NewEngine(db, cfg.AttemptTTL)
	router := httpapi.NewRouter(httpapi.Services{
		Auth: auth.NewService(db, cfg.JWTSecret, cfg.TokenTTL),
		Authoring: authoring.NewService(db, authoring.TextPolicy{
			MaxLength:   cfg.EntryMaxLength,
			Punctuation: cfg.EntryAllowedPunctuation,
		}),
		Quiz:     engine,
		Progress: progress.NewService(db),
	})

	sched := scheduler.New(engine, cfg.AttemptSweepInterval)
	if err := sched.Start(); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           httpapi.WithCORS(router, cfg.CORSOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Server listening on :%s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	sig := <-sigChan
	log.Printf("Received signal: %v", sig)

	// Give in-flight requests time to finish
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("Server stopped successfully")
}
