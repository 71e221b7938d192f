package main

import (
	"database/sql"
	"fmt"

	"complaint-service/config"
	"complaint-service/internal/handler"
	"complaint-service/internal/messaging"
	"complaint-service/internal/middleware"
	"complaint-service/internal/repository"
	"complaint-service/internal/service"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(fmt.Sprintf("failed to create logger: %v", err))
	}
	defer logger.Sync()

	cfg, err := config.LoadConfig("config/config.json")
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	// Connect to database
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.DBName,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatal("failed to ping database", zap.Error(err))
	}
	logger.Info("connected to database")

	// Connect to RabbitMQ
	rmq, err := messaging.NewRabbitMQ(
		cfg.RabbitMQ.Host,
		cfg.RabbitMQ.Port,
		cfg.RabbitMQ.User,
		cfg.RabbitMQ.Password,
		logger,
	)
	if err != nil {
		logger.Fatal("failed to connect to RabbitMQ", zap.Error(err))
	}
	defer rmq.Close()

	// Initialize repositories
	complaintRepo := repository.NewComplaintRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	outboxRepo := repository.NewOutboxRepository(db)

	// Start outbox worker
	outboxWorker := messaging.NewOutboxWorker(outboxRepo, rmq, logger)
	outboxWorker.Start()
	defer outboxWorker.Stop()

	// Initialize services
	tokenVerifier := service.NewTokenVerifier(cfg.JWT)
	complaintService := service.NewComplaintService(complaintRepo, adminRepo, outboxRepo, logger)

	// Initialize handlers
	complaintHandler := handler.NewComplaintHandler(complaintService, logger)

	// Setup Gin
	r := gin.Default()

	// Health check
	r.GET("/health", complaintHandler.Health)

	authed := r.Group("/", middleware.RequireAuth(tokenVerifier, logger))
	{
		// Complaint routes
		authed.POST("/request/", complaintHandler.FileComplaint)
		authed.GET("/request/all", complaintHandler.ListComplaints)
		authed.PATCH("/request/update/:id", complaintHandler.UpdateStatus)

		// History for the logged in user
		authed.GET("/api/complaints/history", complaintHandler.ComplaintHistory)
	}

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	logger.Info("complaint service starting", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}
