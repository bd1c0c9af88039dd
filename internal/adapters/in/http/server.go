// Package http exposes the tracker over HTTP and WebSocket. Server implements
// the generated servers.ServerInterface; TrackShipment is registered
// separately because the OpenAPI document does not describe WebSocket routes.
package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"tracker/internal/core/application/usecases/commands"
	"tracker/internal/core/application/usecases/queries"
	"tracker/internal/core/domain/model/shipment"
	"tracker/internal/generated/servers"
	"tracker/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/samber/lo"
)

// MaxUpdateRecordSize bounds the body of POST /updates, in bytes.
const MaxUpdateRecordSize = 64 << 10

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createShipmentHandler commands.CreateShipmentCommandHandler
	processUpdateHandler  commands.ProcessUpdateCommandHandler
	subscribeHandler      commands.SubscribeCommandHandler
	unsubscribeHandler    commands.UnsubscribeCommandHandler

	// Query handlers
	getShipmentHandler   queries.GetShipmentQueryHandler
	listShipmentsHandler queries.ListShipmentsQueryHandler
	getJournalHandler    queries.GetUpdateJournalQueryHandler

	encoder SnapshotEncoder
	logger  *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createShipmentHandler commands.CreateShipmentCommandHandler,
	processUpdateHandler commands.ProcessUpdateCommandHandler,
	subscribeHandler commands.SubscribeCommandHandler,
	unsubscribeHandler commands.UnsubscribeCommandHandler,
	getShipmentHandler queries.GetShipmentQueryHandler,
	listShipmentsHandler queries.ListShipmentsQueryHandler,
	getJournalHandler queries.GetUpdateJournalQueryHandler,
	logger *slog.Logger,
) *Server {
	return &Server{
		createShipmentHandler: createShipmentHandler,
		processUpdateHandler:  processUpdateHandler,
		subscribeHandler:      subscribeHandler,
		unsubscribeHandler:    unsubscribeHandler,
		getShipmentHandler:    getShipmentHandler,
		listShipmentsHandler:  listShipmentsHandler,
		getJournalHandler:     getJournalHandler,
		encoder:               NewSnapshotEncoder(),
		logger:                logger.With("component", "HTTPServer"),
	}
}

// ListShipments handles GET /shipments - retrieves every shipment.
func (s *Server) ListShipments(ctx echo.Context) error {
	snapshots, err := s.listShipmentsHandler.Handle(ctx.Request().Context(), queries.NewListShipmentsQuery())
	if err != nil {
		return s.writeError(ctx, err, "Failed to list shipments")
	}

	return ctx.JSON(http.StatusOK, lo.Map(snapshots, func(snapshot shipment.Snapshot, _ int) servers.Shipment {
		return toShipmentResponse(snapshot)
	}))
}

// CreateShipment handles POST /shipments?id=&type= - registers a new shipment.
func (s *Server) CreateShipment(ctx echo.Context, params servers.CreateShipmentParams) error {
	variant := ""
	if params.Type != nil {
		variant = *params.Type
	}

	cmd, err := commands.NewCreateShipmentCommand(params.Id, variant)
	if err != nil {
		return s.writeError(ctx, err, "Invalid shipment data")
	}

	snapshot, err := s.createShipmentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err, "Failed to create shipment")
	}

	return ctx.JSON(http.StatusCreated, toShipmentResponse(snapshot))
}

// GetShipment handles GET /shipments/{id} - reads one shipment.
func (s *Server) GetShipment(ctx echo.Context, id servers.ShipmentId) error {
	query, err := queries.NewGetShipmentQuery(id)
	if err != nil {
		return s.writeError(ctx, err, "Invalid shipment id")
	}

	snapshot, err := s.getShipmentHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err, "Failed to read shipment")
	}

	return ctx.JSON(http.StatusOK, toShipmentResponse(snapshot))
}

// GetShipmentJournal handles GET /shipments/{id}/journal - reads the update audit trail.
func (s *Server) GetShipmentJournal(ctx echo.Context, id servers.ShipmentId) error {
	if err := s.ensureShipmentExists(ctx.Request().Context(), id); err != nil {
		return s.writeError(ctx, err, "Failed to read shipment")
	}

	query, err := queries.NewGetUpdateJournalQuery(id)
	if err != nil {
		return s.writeError(ctx, err, "Invalid shipment id")
	}

	entries, err := s.getJournalHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err, "Failed to read journal")
	}

	return ctx.JSON(http.StatusOK, lo.Map(entries, func(entry queries.GetUpdateJournalQueryResponse, _ int) servers.JournalEntry {
		return servers.JournalEntry{
			Kind:       entry.Kind,
			Timestamp:  entry.Timestamp,
			Payload:    entry.Payload,
			AcceptedAt: entry.AcceptedAt,
		}
	}))
}

// SubmitUpdate handles POST /updates - applies one text update record.
// The body is read raw whatever its Content-Type; a body larger than
// MaxUpdateRecordSize is rejected with 413 instead of being truncated.
func (s *Server) SubmitUpdate(ctx echo.Context) error {
	body, err := io.ReadAll(io.LimitReader(ctx.Request().Body, MaxUpdateRecordSize+1))
	if err != nil {
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			return httpErr
		}
		return s.writeError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err), "Invalid request body")
	}
	if len(body) > MaxUpdateRecordSize {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge,
			fmt.Sprintf("update record exceeds %d bytes", MaxUpdateRecordSize))
	}

	cmd, err := commands.NewProcessUpdateCommand(string(body))
	if err != nil {
		return s.writeError(ctx, err, "Invalid update record")
	}

	snapshot, err := s.processUpdateHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err, "Failed to apply update")
	}

	return ctx.JSON(http.StatusOK, toShipmentResponse(snapshot))
}

// ensureShipmentExists returns errs.ErrObjectNotFound when id is not registered.
func (s *Server) ensureShipmentExists(ctx context.Context, id string) error {
	query, err := queries.NewGetShipmentQuery(id)
	if err != nil {
		return err
	}

	_, err = s.getShipmentHandler.Handle(ctx, query)
	return err
}

func (s *Server) writeError(ctx echo.Context, err error, message string) error {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), message,
			"method", ctx.Request().Method,
			"path", ctx.Path(),
			"error", err)
		return ctx.JSON(status, servers.Error{Code: status, Message: message})
	}

	return ctx.JSON(status, servers.Error{Code: status, Message: message + ": " + err.Error()})
}

// HTTPErrorHandler renders errors that escape handlers, such as unknown
// routes or parameter binding failures, in the API's error format.
func HTTPErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		if ctx.Response().Committed {
			return
		}

		status := statusFor(err)
		message := http.StatusText(status)

		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			status = httpErr.Code
			message = http.StatusText(status)
			if m, ok := httpErr.Message.(string); ok {
				message = m
			}
		}

		if status >= http.StatusInternalServerError {
			logger.ErrorContext(ctx.Request().Context(), "request failed",
				"method", ctx.Request().Method,
				"path", ctx.Request().URL.Path,
				"error", err)
		}

		if ctx.Request().Method == http.MethodHead {
			_ = ctx.NoContent(status)
			return
		}
		_ = ctx.JSON(status, servers.Error{Code: status, Message: message})
	}
}
