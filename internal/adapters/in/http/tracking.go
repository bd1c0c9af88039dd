package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"tracker/internal/core/application/usecases/commands"

	"github.com/labstack/echo/v4"
	"golang.org/x/net/websocket"
)

// TrackShipment handles GET /track/{id}: it upgrades the connection to a
// WebSocket and streams one text frame with the shipment JSON per change,
// starting with the current state. Unknown shipments are rejected with 404
// before the upgrade.
func (s *Server) TrackShipment(ctx echo.Context) error {
	id := ctx.Param("id")
	if err := s.ensureShipmentExists(ctx.Request().Context(), id); err != nil {
		return s.writeError(ctx, err, "Failed to track shipment")
	}

	server := websocket.Server{
		Handshake: acceptAnyOrigin,
		Handler: func(conn *websocket.Conn) {
			s.stream(ctx.Request().Context(), conn, id)
		},
	}
	server.ServeHTTP(ctx.Response(), ctx.Request())
	return nil
}

func acceptAnyOrigin(*websocket.Config, *http.Request) error {
	return nil
}

func (s *Server) stream(ctx context.Context, conn *websocket.Conn, shipmentID string) {
	defer conn.Close()

	logger := s.logger.With("shipment_id", shipmentID)

	cmd, err := commands.NewSubscribeCommand(shipmentID, newWebSocketSink(conn))
	if err != nil {
		logger.WarnContext(ctx, "invalid subscription", "error", err)
		return
	}

	subscription, err := s.subscribeHandler.Handle(ctx, cmd)
	if err != nil {
		logger.WarnContext(ctx, "subscription rejected", "error", err)
		return
	}
	logger.InfoContext(ctx, "tracking started", "subscription_id", subscription.ID().String())

	defer func() {
		unsubscribe, unsubErr := commands.NewUnsubscribeCommand(shipmentID, subscription.ID())
		if unsubErr == nil {
			_ = s.unsubscribeHandler.Handle(ctx, unsubscribe)
		}
		logger.InfoContext(ctx, "tracking stopped", "subscription_id", subscription.ID().String())
	}()

	// Inbound frames are ignored; reading only detects that the client went away.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		var discard string
		for {
			if err := websocket.Message.Receive(conn, &discard); err != nil {
				return
			}
		}
	}()

	select {
	case <-closed:
	case <-subscription.Done():
	case <-ctx.Done():
	}
}

// webSocketSink writes snapshots as text frames. Writes are serialized and
// bounded by the deadline of the send context.
type webSocketSink struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func newWebSocketSink(conn *websocket.Conn) *webSocketSink {
	return &webSocketSink{conn: conn}
}

func (s *webSocketSink) Send(ctx context.Context, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Time{}
	}
	if err := s.conn.SetWriteDeadline(deadline); err != nil {
		return err
	}

	return websocket.Message.Send(s.conn, string(payload))
}
