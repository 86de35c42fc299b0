package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stock-checker/core/config"
	"stock-checker/core/loader"
	"stock-checker/core/logger"
	"stock-checker/core/middleware/auth"
	"stock-checker/core/middleware/rayid"
	"stock-checker/core/storage"
	"stock-checker/core/tableio"

	"stock-checker/feature/stock"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the stock reconciliation server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Initialize Storage (Optional, used for s3:// supplier refs and archiving)
		deps := tableio.Deps{
			HTTPClient: cfg.Source.HTTPClient(),
			Retries:    cfg.Source.Retries,
			RetryDelay: cfg.Source.RetryDelay(),
		}
		if store, err := storage.NewClient(cfg.Storage); err != nil {
			logg.Warn("Optional storage client failed, s3 sources and archiving are disabled", zap.Error(err))
		} else {
			deps.Storage = store
		}

		// 4. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
			BodyLimit:             cfg.Server.BodyLimit(),
		})

		// 5. Initialize Feature Loader
		mgr := loader.NewManager(logg)
		mgr.Register(stock.NewFeature(cfg.Reconcile, deps, cfg.Storage.Bucket, logg))

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Request logging (Zap + RayID)
		app.Use(requestLogger(logg))

		// 3. Auth (Protect API)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 6. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 7. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(cfg.Server.Address()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 8. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

// requestLogger logs every request with its RayID, status and duration.
func requestLogger(logg *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		l := logger.WithRayID(logg, c)

		err := c.Next()
		if err != nil {
			l.Error("Request error", zap.String("path", c.Path()), zap.Error(err))
			return err
		}

		l.Info("Request handled",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
		)
		return nil
	}
}

func init() {
	RootCmd.AddCommand(startCmd)
}
