package api

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"coffee-chat-backend/internal/api/middleware"
	"coffee-chat-backend/internal/config"
	"coffee-chat-backend/internal/dto"
	"coffee-chat-backend/internal/logger"
	"coffee-chat-backend/internal/repo"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// NewServer builds the Fiber app and its middleware stack for the given
// environment. Routes are registered separately.
func NewServer(cfg *config.Config, log logger.ILogger) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler(cfg, log),
		AppName:      cfg.App.Name,
		BodyLimit:    1 * 1024 * 1024, // 1MB
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	})

	// Global middleware
	app.Use(middleware.RequestIDHandler())
	if cfg.App.Debug {
		app.Use(fiberlogger.New(fiberlogger.Config{
			Format: "${time} | ${status} | ${latency} | ${method} ${path} | ${locals:requestid}\n",
		}))
	} else {
		app.Use(middleware.RequestLogger(log))
	}
	app.Use(recover.New(recover.Config{EnableStackTrace: cfg.App.Debug}))
	app.Use(middleware.AllowedHosts(cfg.App.AllowedHosts))
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.CORS.AllowOrigins, ","),
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	// after CORS so preflight requests are answered without credentials
	if cfg.BasicAuth.Enabled {
		app.Use(middleware.BasicAuth(cfg.BasicAuth))
	}
	if cfg.Static.Compress {
		app.Use(compress.New(compress.Config{Level: compress.LevelBestSpeed}))
	}

	app.Static(cfg.Static.URL, cfg.Static.Root, fiber.Static{
		Compress: cfg.Static.Compress,
		MaxAge:   cfg.Static.MaxAge,
	})

	return app
}

func customErrorHandler(cfg *config.Config, log logger.ILogger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var verr *dto.ValidationError
		var ferr *fiber.Error

		switch {
		case errors.As(err, &verr):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":  "Invalid request body",
				"fields": verr.Fields,
			})
		case errors.Is(err, repo.ErrChatNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Chat not found",
			})
		case errors.As(err, &ferr):
			return c.Status(ferr.Code).JSON(fiber.Map{
				"error": ferr.Message,
			})
		}

		log.Error("api", "unhandled error", map[string]interface{}{
			"request_id": middleware.RequestID(c),
			"method":     c.Method(),
			"path":       c.Path(),
			"error":      err,
		})

		body := fiber.Map{"error": "Internal server error"}
		if cfg.App.Debug {
			body["detail"] = err.Error()
		}
		return c.Status(fiber.StatusInternalServerError).JSON(body)
	}
}

func StartServer(app *fiber.App, cfg *config.Config, log logger.ILogger) error {
	log.Info("api", "🚀 Server starting", map[string]interface{}{
		"port":        cfg.App.Port,
		"environment": cfg.App.Environment,
	})
	return app.Listen(":" + cfg.App.Port)
}

// Serve runs the app until stop fires or the listener fails. On stop the app
// is shut down gracefully; either failure is returned.
func Serve(app *fiber.App, cfg *config.Config, log logger.ILogger, stop <-chan os.Signal) error {
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- StartServer(app, cfg, log)
	}()

	select {
	case <-stop:
		log.Info("api", "Shutting down...", nil)
		if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	}
}
