package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/comitanigiacomo/life-cockpit/internal/adapters/cache"
	adapterHTTP "github.com/comitanigiacomo/life-cockpit/internal/adapters/handler/http"
	"github.com/comitanigiacomo/life-cockpit/internal/adapters/repository"
	"github.com/comitanigiacomo/life-cockpit/internal/core/domain"
	"github.com/comitanigiacomo/life-cockpit/internal/core/services"
	"github.com/comitanigiacomo/life-cockpit/internal/core/workers"
)

func main() {
	startTime := time.Now()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables.")
	}

	dbUser := os.Getenv("DB_USER")
	dbPass := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")

	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		dbHost = "localhost"
	}

	dbPort := os.Getenv("DB_PORT")
	if dbPort == "" {
		dbPort = "5432"
	}

	serverPort := os.Getenv("PORT")
	if serverPort == "" {
		serverPort = "8080"
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("Critical: JWT_SECRET is not set")
	}
	jwtIssuer := os.Getenv("JWT_ISSUER")
	if jwtIssuer == "" {
		jwtIssuer = "life-cockpit"
	}

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		dbUser, dbPass, dbHost, dbPort, dbName)

	log.Println("Connecting to database...")

	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		log.Fatalf("Critical: Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	log.Println("Database connected successfully.")

	redisClient := connectRedis()

	userRepo := repository.NewPostgresUserRepository(db)
	taskRepo := repository.NewPostgresTaskRepository(db)
	projectRepo := repository.NewPostgresProjectRepository(db)
	noteRepo := repository.NewPostgresNoteRepository(db)
	readingRepo := repository.NewPostgresReadingRepository(db)
	completionRepo := repository.NewPostgresCompletionRepository(db)
	focusRepo := repository.NewPostgresFocusRepository(db)
	vitalityRepo := repository.NewPostgresVitalityRepository(db)
	allocationRepo := repository.NewPostgresAllocationRepository(db)

	var habitRepo domain.HabitRepository = repository.NewPostgresHabitRepository(db)
	if redisClient != nil {
		habitRepo = repository.NewCachedHabitRepository(habitRepo, redisClient)
	}

	statsService := buildStatsService(habitRepo, taskRepo, focusRepo, vitalityRepo, redisClient)

	var notifier services.SummaryNotifier
	if redisClient != nil {
		worker := workers.NewSummaryWorker(statsService, cache.NewRedisSummaryCache(redisClient))
		workerCtx, workerCancel := context.WithCancel(context.Background())
		defer workerCancel()
		worker.Start(workerCtx)
		notifier = worker
	}

	captureService := services.NewCaptureService(taskRepo, noteRepo, readingRepo, projectRepo)
	habitService := services.NewHabitService(habitRepo, completionRepo, notifier)
	taskService := services.NewTaskService(taskRepo, projectRepo, notifier)
	projectService := services.NewProjectService(projectRepo)
	noteService := services.NewNoteService(noteRepo)
	readingService := services.NewReadingService(readingRepo)
	trackerService := services.NewTrackerService(focusRepo, vitalityRepo, allocationRepo, taskRepo, notifier)
	tokenService := services.NewTokenService(jwtSecret, jwtIssuer, userRepo)

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		CaptureHandler:   adapterHTTP.NewCaptureHandler(captureService),
		HabitHandler:     adapterHTTP.NewHabitHandler(habitService),
		TaskHandler:      adapterHTTP.NewTaskHandler(taskService),
		ProjectHandler:   adapterHTTP.NewProjectHandler(projectService),
		NoteHandler:      adapterHTTP.NewNoteHandler(noteService),
		ReadingHandler:   adapterHTTP.NewReadingHandler(readingService),
		TrackerHandler:   adapterHTTP.NewTrackerHandler(trackerService),
		DashboardHandler: adapterHTTP.NewDashboardHandler(statsService),
		TokenService:     tokenService,
		DB:               db,
		Redis:            redisClient,
		StartTime:        startTime,
	})

	srv := &http.Server{
		Addr:         ":" + serverPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Life Cockpit API running on http://localhost:%s", serverPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Critical server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Stop signal received. Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Forced shutdown error:", err)
	}

	log.Println("Server stopped gracefully.")
}

// connectRedis returns nil when Redis is not configured or unreachable.
// Everything that depends on it degrades: no rate limiting, no habit list
// cache, no precomputed summaries.
func connectRedis() *redis.Client {
	redisHost := os.Getenv("REDIS_HOST")
	if redisHost == "" {
		log.Println("REDIS_HOST not set, running without Redis.")
		return nil
	}

	redisPort := os.Getenv("REDIS_PORT")
	if redisPort == "" {
		redisPort = "6379"
	}

	redisDB := 0
	if raw := os.Getenv("REDIS_DB"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			log.Printf("Invalid REDIS_DB %q, using 0", raw)
		} else {
			redisDB = parsed
		}
	}

	client, err := cache.NewRedisClient(redisHost, redisPort, os.Getenv("REDIS_PASSWORD"), redisDB)
	if err != nil {
		log.Printf("Redis unavailable (%v), running in degraded mode.", err)
		return nil
	}

	log.Println("Redis connected successfully.")
	return client
}

func buildStatsService(
	habits domain.HabitRepository,
	tasks domain.TaskRepository,
	focus domain.FocusSessionRepository,
	vitality domain.VitalityLogRepository,
	redisClient *redis.Client,
) *services.StatsService {
	var summaryCache services.SummaryCache
	if redisClient != nil {
		summaryCache = cache.NewRedisSummaryCache(redisClient)
	}
	return services.NewStatsService(habits, tasks, focus, vitality, summaryCache)
}
