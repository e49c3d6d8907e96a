package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"alfredoptarigan/resume-analyzer/internal/config"
	"alfredoptarigan/resume-analyzer/internal/handlers"
	"alfredoptarigan/resume-analyzer/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}
	log.Printf("✅ Config loaded successfully (env: %s)", cfg.Server.Env)

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	extractor := services.NewTextExtractor()
	log.Println("✅ Services initialized successfully")

	// Initialize Gemini AI
	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Printf("✅ Gemini AI initialized with model %s", cfg.Gemini.Model)

	analyzerService := services.NewAnalyzerService(geminiService, cfg.Gemini.Timeout)

	// Initialize Handlers
	analyzeHandler := handlers.NewAnalyzeHandler(
		storageService,
		extractor,
		analyzerService,
		cfg.Storage.MaxFileSize,
	)
	answerHandler := handlers.NewAnswerHandler(analyzerService)
	log.Println("✅ Handlers initialized")

	// Create Fiber app. The body must fit a resume, a JD file and form fields.
	app := fiber.New(fiber.Config{
		AppName:           "AI Resume Analyzer",
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      cfg.Gemini.Timeout + 30*time.Second,
		BodyLimit:         int(2*cfg.Storage.MaxFileSize) + 1<<20,
		ErrorHandler:      customErrorHandler,
		EnablePrintRoutes: cfg.IsDevelopment(),
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	handlers.RegisterRoutes(app, analyzeHandler, answerHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// customErrorHandler only sees transport-level failures (body limit, panics,
// unknown routes); handlers report business errors in a 200 body themselves.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
