package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/contentdeck/contentdeck/configs"
	"github.com/contentdeck/contentdeck/internal/api/handlers"
	"github.com/contentdeck/contentdeck/internal/api/middleware"
	job "github.com/contentdeck/contentdeck/internal/jobs"
	"github.com/contentdeck/contentdeck/internal/queue"
	"github.com/contentdeck/contentdeck/internal/repository"
	"github.com/contentdeck/contentdeck/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()

	db, err := sql.Open("postgres", cfg.PostgresURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer closeDB(db)

	if err := db.Ping(); err != nil {
		log.Fatalf("Database is unreachable: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisURI})
	defer rdb.Close()

	redisConn := asynq.RedisClientOpt{Addr: cfg.RedisURI}
	client := asynq.NewClient(redisConn)
	defer client.Close()

	app := fiber.New(fiber.Config{
		ReadTimeout:  2 * time.Minute,
		WriteTimeout: 2 * time.Minute,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"message": err.Error(),
			})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendURL,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	postRepo := repository.NewPostRepository(db)
	folderRepo := repository.NewFolderRepository(db)

	postCache := service.NewPostCache(rdb)
	generationService := service.NewGenerationService(*cfg)
	postService := service.NewPostService(postRepo, folderRepo, postCache, generationService)
	folderService := service.NewFolderService(folderRepo, postRepo, postCache)

	authMiddleware := middleware.NewAuthMiddleware(*cfg)

	api := app.Group("/api")
	api.Use(authMiddleware.AuthMiddleware())

	folder := handlers.NewFolderHandler(folderService)
	api.Post("/folders", folder.CreateFolder)
	api.Get("/folders", folder.GetFolders)
	api.Get("/folders/:id", folder.GetFolder)
	api.Get("/folders/:id/posts", folder.GetFolderWithPosts)
	api.Put("/folders/:id", folder.UpdateFolder)
	api.Delete("/folders/:id", folder.DeleteFolder)

	post := handlers.NewPostHandler(postService, client)
	api.Post("/posts", post.CreatePost)
	api.Get("/posts", post.GetPosts)
	api.Get("/posts/scheduled", post.GetScheduledPosts)
	api.Post("/posts/generate-content", post.GenerateContent)
	api.Get("/posts/:id", post.GetPost)
	api.Put("/posts/:id", post.UpdatePost)
	api.Delete("/posts/:id", post.DeletePost)
	api.Post("/posts/:id/schedule", post.SchedulePost)
	api.Post("/posts/:id/unschedule", post.UnschedulePost)
	api.Post("/posts/:id/move", post.MovePostToFolder)
	api.Post("/posts/:id/duplicate", post.DuplicatePost)

	api.Get("/dashboard/stats", post.GetDashboardStats)

	// cron jobs
	sweepJob := job.NewPublishSweepJob(postRepo, client)

	// queue
	queueW := queue.NewQueue(postRepo, postCache)

	c := cron.New()
	c.AddFunc("@every 00h01m00s", sweepJob.SweepOverduePosts)
	c.Start()

	go func() {
		server := asynq.NewServer(redisConn, asynq.Config{
			Concurrency: 10,
		})

		mux := asynq.NewServeMux()
		mux.HandleFunc(queue.TaskTypePublishPost, queueW.HandlePublishPostTask)

		log.Println("Starting the Asynq server...")
		if err := server.Run(mux); err != nil {
			log.Fatalf("Could not start Asynq server: %v", err)
		}
	}()

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Printf("Server is running on http://localhost:%s", cfg.Port)

	gracefulShutdown(app, db)
}

func closeDB(db *sql.DB) {
	fmt.Fprint(os.Stdout, "Closing database connection... ")
	if err := db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close database: %v", err)
		return
	}
	fmt.Fprintln(os.Stdout, "Done")
}

func gracefulShutdown(app *fiber.App, db *sql.DB) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Fatalf("Failed to shut down server: %v", err)
	}

	closeDB(db)
	log.Println("Server shutdown complete.")
}
