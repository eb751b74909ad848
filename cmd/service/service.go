package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	configs "progress_service/config"
	"progress_service/internal/cache"
	"progress_service/internal/repository"
	"progress_service/internal/server/httpapi"
	"progress_service/internal/service"
	"progress_service/pkg/db"
	"progress_service/pkg/kafka"
	"progress_service/pkg/logger"

	_ "github.com/lib/pq"
)

func main() {
	log := logger.New()
	defer func() { _ = log.Sync() }()

	cfg, err := configs.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pg, err := db.NewPostgres(db.Config{
		Host:          cfg.DB.Host,
		Port:          cfg.DB.Port,
		User:          cfg.DB.User,
		Password:      cfg.DB.Password,
		DBName:        cfg.DB.DBName,
		SSLMode:       cfg.DB.SSLMode,
		MigrationsDir: cfg.DB.MigrationsDir,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pg.Close()

	submissionRepo := repository.NewSubmissionRepository(pg.DB())
	reviewRepo := repository.NewReviewRepository(pg.DB())
	assignmentRepo := repository.NewAssignmentRepository(pg.DB())
	courseRepo := repository.NewCourseRepository(pg.DB())
	userRepo := repository.NewUserRepository(pg.DB())
	groupRepo := repository.NewGroupRepository(pg.DB())
	enrollmentRepo := repository.NewEnrollmentRepository(pg.DB())

	kafkaProducer, err := kafka.NewProducer(kafka.Config{
		Brokers: cfg.Kafka.Brokers,
	})
	if err != nil {
		log.Fatalf("Failed to create Kafka producer: %v", err)
	}
	defer kafkaProducer.Close()

	submissionService := service.NewSubmissionService(
		submissionRepo,
		reviewRepo,
		assignmentRepo,
		courseRepo,
		userRepo,
		groupRepo,
		kafkaProducer,
		log,
	)
	reviewService := service.NewReviewService(reviewRepo)
	linkService := service.NewLinkService(
		submissionRepo,
		assignmentRepo,
		enrollmentRepo,
	)

	var rosterCache httpapi.Cache
	if cfg.Redis.Address != "" {
		redisConn := redis.NewClient(&redis.Options{
			Addr: cfg.Redis.Address,
		})
		defer redisConn.Close()
		rosterCache = cache.NewRedisCache(redisConn)
	}

	handler := httpapi.NewHandler(
		submissionService,
		reviewService,
		linkService,
		courseRepo,
		userRepo,
		groupRepo,
		rosterCache,
		cfg.Redis.RosterTTL,
		log,
	)

	srv := &http.Server{
		Addr:         cfg.HTTP.Address,
		Handler:      handler.Routes(),
		ReadTimeout:  cfg.HTTP.Timeout,
		WriteTimeout: cfg.HTTP.Timeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	worker := NewReviewReminderWorker(submissionRepo, kafkaProducer, log, cfg.Worker.Interval)
	go worker.Start(ctx)

	go func() {
		log.Infof("Starting HTTP server on %s", cfg.HTTP.Address)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	<-ctx.Done()

	log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.Timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Server shutdown failed: %v", err)
	}
	log.Info("Server stopped")
}
