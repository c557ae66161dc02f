package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"database/sql"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/budgetflow/budgetflow/internal/config"
	"github.com/budgetflow/budgetflow/internal/handler"
	"github.com/budgetflow/budgetflow/internal/jobs"
	"github.com/budgetflow/budgetflow/internal/middleware"
	"github.com/budgetflow/budgetflow/internal/repository"
	"github.com/budgetflow/budgetflow/internal/service"
	"github.com/budgetflow/budgetflow/internal/utils/email"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	svc := service.NewService(repo, logger, cfg)
	h := handler.NewHandler(svc)
	sender := email.NewSender(cfg, logger)

	// Schedule daily maintenance: advance overdue subscription anchors and
	// send reminder emails shortly after midnight.
	daily := jobs.NewJobs(svc, repo, sender, cfg, logger)
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("15 0 * * *", func() {
		daily.RunDaily(context.Background())
	}); err != nil {
		logger.Fatalf("Failed to schedule daily jobs: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Setup router
	r := mux.NewRouter()
	// Public routes
	r.HandleFunc("/register", h.Register).Methods("POST")
	r.HandleFunc("/login", h.Login).Methods("POST")
	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))
	authRouter.HandleFunc("/settings", h.GetSettings).Methods("GET")
	authRouter.HandleFunc("/settings/balance", h.SetBalance).Methods("PUT")
	authRouter.HandleFunc("/transactions", h.ListTransactions).Methods("GET")
	authRouter.HandleFunc("/transactions", h.CreateTransaction).Methods("POST")
	authRouter.HandleFunc("/transactions/{id:[0-9]+}", h.DeleteTransaction).Methods("DELETE")
	authRouter.HandleFunc("/transactions/import", h.ImportStatement).Methods("POST")
	authRouter.HandleFunc("/recurring", h.ListRecurring).Methods("GET")
	authRouter.HandleFunc("/recurring", h.CreateRecurring).Methods("POST")
	authRouter.HandleFunc("/recurring/{id:[0-9]+}", h.UpdateRecurring).Methods("PUT")
	authRouter.HandleFunc("/recurring/{id:[0-9]+}", h.DeleteRecurring).Methods("DELETE")
	authRouter.HandleFunc("/subscriptions", h.ListSubscriptions).Methods("GET")
	authRouter.HandleFunc("/subscriptions", h.CreateSubscription).Methods("POST")
	authRouter.HandleFunc("/subscriptions/candidates", h.ListCandidates).Methods("GET")
	authRouter.HandleFunc("/subscriptions/candidates/confirm", h.ConfirmCandidate).Methods("POST")
	authRouter.HandleFunc("/subscriptions/candidates/ignore", h.IgnoreCandidate).Methods("POST")
	authRouter.HandleFunc("/subscriptions/{id:[0-9]+}", h.UpdateSubscription).Methods("PUT")
	authRouter.HandleFunc("/subscriptions/{id:[0-9]+}", h.DeleteSubscription).Methods("DELETE")
	authRouter.HandleFunc("/forecast", h.Forecast).Methods("GET")
	authRouter.HandleFunc("/forecast/timeline", h.ForecastTimeline).Methods("GET")

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
