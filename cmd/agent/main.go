package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/mkrtchyyan/AI-social-media-agent/internal/agent"
	"github.com/mkrtchyyan/AI-social-media-agent/internal/ai"
	"github.com/mkrtchyyan/AI-social-media-agent/internal/brand"
	"github.com/mkrtchyyan/AI-social-media-agent/internal/config"
	"github.com/mkrtchyyan/AI-social-media-agent/internal/feedback"
	"github.com/mkrtchyyan/AI-social-media-agent/internal/images"
	"github.com/mkrtchyyan/AI-social-media-agent/internal/models"
	"github.com/mkrtchyyan/AI-social-media-agent/internal/notifications"
	"github.com/mkrtchyyan/AI-social-media-agent/internal/posts"
	"github.com/mkrtchyyan/AI-social-media-agent/internal/scheduler"
	"github.com/mkrtchyyan/AI-social-media-agent/internal/storage"
)

func main() {
	// Load environment variables from .env file if it exists
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set up logging
	logrus.SetLevel(logrus.InfoLevel)
	if cfg.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
	logrus.SetFormatter(&logrus.JSONFormatter{})

	logrus.Info("Starting social media agent")

	client, err := ai.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.TextModel, cfg.ImageModel,
		time.Duration(cfg.RequestTimeoutSeconds)*time.Second)
	if err != nil {
		logrus.Fatalf("Failed to initialize OpenAI client: %v", err)
	}

	store, err := storage.NewLocalStorage(cfg.OutputDir)
	if err != nil {
		logrus.Fatalf("Failed to initialize storage: %v", err)
	}

	// Azure archive is optional; only wire it when an account is configured
	var archive storage.Interface
	if cfg.StorageAccount != "" {
		azure, err := storage.NewAzureStorage(cfg.StorageAccount, cfg.StorageContainer)
		if err != nil {
			logrus.Fatalf("Failed to initialize Azure archive: %v", err)
		}
		archive = azure
	}

	composer, err := images.NewComposer(client, cfg.ImageOutputDir)
	if err != nil {
		logrus.Fatalf("Failed to initialize image composer: %v", err)
	}

	scraper := brand.NewScraper(time.Duration(cfg.WebsiteFetchTimeoutSeconds)*time.Second, cfg.WebsiteContentLimit)

	service := agent.NewService(cfg,
		brand.NewAnalyzer(client, scraper),
		posts.NewGenerator(client),
		feedback.NewLoop(client),
		composer,
		store,
		archive,
		notifications.NewService(cfg),
	)

	schedulerService := scheduler.NewService(cfg)
	if err := schedulerService.Start(); err != nil {
		logrus.Fatalf("Failed to start scheduler: %v", err)
	}
	defer schedulerService.Stop()

	router := mux.NewRouter()
	router.HandleFunc("/health", healthCheckHandler).Methods("GET")
	router.HandleFunc("/api/sessions", createSessionHandler(service)).Methods("POST")
	router.HandleFunc("/api/sessions/{id}/analyze", analyzeHandler(service)).Methods("POST")
	router.HandleFunc("/api/sessions/{id}/generate", generateHandler(service)).Methods("POST")
	router.HandleFunc("/api/sessions/{id}/refine", refineHandler(service)).Methods("POST")
	router.HandleFunc("/api/sessions/{id}/save", saveHandler(service)).Methods("POST")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 10 * time.Minute, // generation requests chain several model calls
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logrus.Infof("HTTP server starting on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exited")
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func createSessionHandler(service *agent.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := service.CreateSession()
		writeJSON(w, http.StatusCreated, session)
	}
}

func analyzeHandler(service *agent.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req brand.AnalyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		profile, err := service.AnalyzeBrand(r.Context(), mux.Vars(r)["id"], req)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, profile)
	}
}

func generateHandler(service *agent.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req agent.GenerateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Intent == "" || req.Platform == "" {
			writeError(w, http.StatusBadRequest, "intent and platform are required")
			return
		}

		result, err := service.GeneratePosts(r.Context(), mux.Vars(r)["id"], req)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{"posts": result})
	}
}

type refineRequest struct {
	Post     models.Post `json:"post"`
	Feedback string      `json:"feedback"`
}

func refineHandler(service *agent.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req refineRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Feedback == "" {
			writeError(w, http.StatusBadRequest, "feedback is required")
			return
		}

		refined, err := service.RefinePost(r.Context(), mux.Vars(r)["id"], req.Post, req.Feedback)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, refined)
	}
}

func saveHandler(service *agent.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var post models.Post
		if err := json.NewDecoder(r.Body).Decode(&post); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		base, err := service.SavePost(mux.Vars(r)["id"], post)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"saved_as": base})
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, agent.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, agent.ErrNoBrandProfile):
		writeError(w, http.StatusPreconditionFailed, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logrus.Errorf("Failed to encode response: %v", err)
	}
}
