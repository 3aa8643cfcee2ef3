package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/huddleup/huddle/pkg/huddle/database"
	"github.com/huddleup/huddle/pkg/huddle/groups"
	"github.com/huddleup/huddle/pkg/huddle/hangouts"
	"github.com/huddleup/huddle/pkg/huddle/importexport"
	"github.com/huddleup/huddle/pkg/huddle/logging"
	"github.com/huddleup/huddle/pkg/huddle/messages"
	"github.com/huddleup/huddle/pkg/huddle/metrics"
	"github.com/huddleup/huddle/pkg/huddle/models"
	"github.com/huddleup/huddle/pkg/huddle/stats"
	"github.com/huddleup/huddle/pkg/huddle/users"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/huddleup/huddle/api/swagger"
)

// @title Huddle API
// @version 1.0
// @description A small group-planning service: share-code groups, hangout proposals with attendance responses, and group chat with emoji reactions.

// @contact.name Huddle
// @contact.url https://github.com/huddleup/huddle

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api

func main() {
	logging.Setup()

	// Connect to database: MySQL if a DSN is set, SQLite file otherwise
	if dsn := os.Getenv("HUDDLE_MYSQL_DSN"); dsn != "" {
		if err := database.ConnectMySQL(dsn); err != nil {
			slog.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
	} else {
		dbPath := os.Getenv("HUDDLE_DB_PATH")
		if dbPath == "" {
			dbPath = "huddle.db"
		}
		if err := database.Connect(dbPath); err != nil {
			slog.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
	}

	// Run auto-migrations
	if err := models.AutoMigrate(database.GetDB()); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database migrations completed")

	// Set up Gin router
	r := gin.New()
	r.Use(logging.RequestLogger(), gin.Recovery(), metrics.Middleware())

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// Prometheus metrics
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes
	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "ok",
				"service": "huddle",
			})
		})

		// Users routes (public - login registers unknown usernames)
		usersHandler := users.NewHandler(database.GetDB())
		usersHandler.RegisterRoutes(api.Group("/users"))

		// Groups routes
		groupsHandler := groups.NewHandler(database.GetDB())
		groupsHandler.RegisterRoutes(api.Group("/groups"))

		// Hangouts routes (nested under /groups/:id)
		hangoutsHandler := hangouts.NewHandler(database.GetDB())
		hangoutsHandler.RegisterRoutes(api)

		// Messages routes (nested under /groups/:id)
		messagesHandler := messages.NewHandler(database.GetDB())
		messagesHandler.RegisterRoutes(api)

		// Import/Export routes
		importExportHandler := importexport.NewHandler(database.GetDB())
		importExportHandler.RegisterRoutes(api)

		// Stats routes
		statsHandler := stats.NewHandler(database.GetDB())
		statsHandler.RegisterRoutes(api)
	}

	// Serve static frontend files if web/dist exists
	webDistPath := "./web/dist"
	if _, err := os.Stat(webDistPath); err == nil {
		// Serve static assets (JS, CSS, images, etc.)
		r.Static("/assets", filepath.Join(webDistPath, "assets"))

		// Serve other static files at root (favicon, etc.)
		r.StaticFile("/favicon.ico", filepath.Join(webDistPath, "favicon.ico"))
		r.StaticFile("/robots.txt", filepath.Join(webDistPath, "robots.txt"))

		// SPA fallback - serve index.html for frontend routes
		indexHTML := filepath.Join(webDistPath, "index.html")
		spaRoutes := []string{"/", "/login", "/groups", "/join"}
		for _, route := range spaRoutes {
			r.GET(route, func(c *gin.Context) {
				c.File(indexHTML)
			})
		}
		// Also handle sub-routes like /groups/:id and /join/:code
		r.GET("/groups/*path", func(c *gin.Context) {
			c.File(indexHTML)
		})
		r.GET("/join/*path", func(c *gin.Context) {
			c.File(indexHTML)
		})

		slog.Info("Serving frontend from ./web/dist")
	} else {
		slog.Info("No frontend build found at ./web/dist - API only mode")
	}

	// Get port from environment or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	slog.Info("Starting huddle server", "port", port)
	if err := r.Run(":" + port); err != nil {
		slog.Error("Failed to start server", "error", err)
		os.Exit(1)
	}
}
