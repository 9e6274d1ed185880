// Package api serves the resolver over a small JSON REST API.
package api

import (
	"context"
	"errors"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"

	"pahe/internal/catalog"
	"pahe/internal/extract"
	"pahe/internal/httputil"
	"pahe/internal/provider"
)

// shutdownTimeout bounds how long in-flight requests may finish on shutdown.
const shutdownTimeout = 5 * time.Second

// New creates the fiber app with routes and middleware for p.
func New(p provider.Provider) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "pahe",
		DisableStartupMessage: true,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
		ErrorHandler:          errorHandler,
	})

	if logrus.IsLevelEnabled(logrus.DebugLevel) {
		app.Use(logger.New(logger.Config{
			Format: "[${ip}]:${port} ${status} - ${latency} ${method} ${path}\n",
			Output: logrus.StandardLogger().Out,
		}))
	}
	app.Use(recover.New())

	h := &handlers{provider: p}
	api := app.Group("/api")
	api.Get("/search", h.search)
	api.Get("/details", h.details)
	api.Get("/episodes", h.episodes)
	api.Get("/qualities", h.qualities)

	return app
}

// Serve runs app on addr until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, app *fiber.App, addr string) error {
	errc := make(chan error, 1)
	go func() {
		errc <- app.Listen(addr)
	}()

	logrus.WithField("addr", addr).Info("api listening")

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		logrus.Info("shutting down api")
		return app.ShutdownWithTimeout(shutdownTimeout)
	}
}

type errorBody struct {
	Error string `json:"error"`
}

// errorHandler maps resolver errors to HTTP statuses.
func errorHandler(c *fiber.Ctx, err error) error {
	code := statusFor(err)
	if code >= fiber.StatusInternalServerError {
		logrus.WithError(err).WithField("path", c.Path()).Warn("request failed")
	}
	return c.Status(code).JSON(errorBody{Error: err.Error()})
}

func statusFor(err error) int {
	var (
		fiberErr  *fiber.Error
		resErr    *provider.ResolutionError
		extErr    *extract.ExtractionError
		usageErr  *catalog.APIUsageError
		statusErr *httputil.StatusError
	)
	switch {
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	case errors.As(err, &resErr):
		return fiber.StatusNotFound
	case errors.As(err, &extErr):
		return fiber.StatusUnprocessableEntity
	case errors.As(err, &usageErr), errors.As(err, &statusErr):
		return fiber.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return fiber.StatusGatewayTimeout
	default:
		return fiber.StatusBadGateway
	}
}
