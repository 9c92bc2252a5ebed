package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"stacksync/core/config"
	"stacksync/core/logger"
	"stacksync/core/middleware/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// serveCmd exposes the run artifacts over HTTP for downstream consumers.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the snapshot and orphan report over HTTP",
	Long: `Serve starts a small read-only HTTP server exposing the latest snapshot
export and orphan report. It never touches BookStack; it only reads the
files the sync and orphans commands write.

Routes:
  GET /healthz   liveness probe (public)
  GET /snapshot  latest hierarchy export
  GET /orphans   latest orphan report (404 when clean)`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log, true)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()

		// 3. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We log our own startup message
		})

		app.Get("/healthz", func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"status": "ok"})
		})

		// Protect the artifact routes
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		app.Get("/snapshot", serveFile(cfg.Paths.Snapshot, "no snapshot has been exported yet"))
		app.Get("/orphans", serveFile(cfg.Paths.OrphanReport, "no orphan report exists; the hierarchy is clean"))

		// 4. Start Server
		go func() {
			logg.Info("Serving run artifacts", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 5. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)
}

// serveFile returns a handler streaming a JSON artifact from disk, with a
// JSON 404 when the file does not exist.
func serveFile(path, missingMsg string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": missingMsg})
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.SendFile(path)
	}
}
