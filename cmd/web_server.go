package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	httpadapter "tracker/internal/adapters/in/http"
	"tracker/internal/generated/servers"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// NewWebServer builds the echo instance serving the REST API, the tracking
// WebSocket, the health check and the Swagger UI.
func NewWebServer(app *CompositionRoot, logLevel slog.Level, logger *slog.Logger) (*echo.Echo, error) {
	doc, err := servers.GetSwagger()
	if err != nil {
		return nil, err
	}
	if err = servers.RegisterSwaggerDoc(doc); err != nil {
		return nil, err
	}
	validator, err := httpadapter.NewOpenAPIValidator(doc)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(echoLogLevel(logLevel))
	e.HTTPErrorHandler = httpadapter.HTTPErrorHandler(logger)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Error != nil || v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}
			logger.LogAttrs(context.Background(), level, "request", attrs...)
			return nil
		},
	}))
	e.Use(middleware.BodyLimit(fmt.Sprintf("%dB", httpadapter.MaxUpdateRecordSize)))
	e.Use(validator)

	server := app.CreateHTTPServer()
	servers.RegisterHandlers(e, server)
	e.GET("/track/:id", server.TrackShipment)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e, nil
}

func echoLogLevel(level slog.Level) log.Lvl {
	switch {
	case level <= slog.LevelDebug:
		return log.DEBUG
	case level <= slog.LevelInfo:
		return log.INFO
	case level <= slog.LevelWarn:
		return log.WARN
	default:
		return log.ERROR
	}
}
