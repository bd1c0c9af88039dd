// Package fanout delivers shipment snapshots to live subscribers.
//
// Every subscriber owns a goroutine and a bounded mailbox, so a slow or
// broken sink only ever delays itself. Publish never blocks on sink I/O.
package fanout

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/shipment"
	"tracker/internal/core/ports"

	"github.com/samber/lo"
)

const (
	// DefaultSendTimeout bounds a single Send on a subscriber's sink.
	DefaultSendTimeout = 5 * time.Second

	// DefaultMailboxSize is the number of undelivered snapshots kept per
	// subscriber before the oldest pending one is discarded.
	DefaultMailboxSize = 64
)

// Hub implements ports.SnapshotNotifier.
//
// Example usage:
//
//	hub := fanout.NewHub(encoder, logger)
//	sub := hub.Subscribe("S1000", sink)
//	hub.Publish(snapshot) // returns immediately
//	<-sub.Done()          // closed on Unsubscribe or send failure
type Hub struct {
	encoder     ports.SnapshotEncoder
	logger      *slog.Logger
	sendTimeout time.Duration
	mailboxSize int

	mu          sync.RWMutex
	subscribers map[string]map[kernel.UUID]*subscriber
	closed      bool
	wg          sync.WaitGroup
}

// Option customizes a Hub.
type Option func(h *Hub)

// WithSendTimeout overrides DefaultSendTimeout. Non-positive values are ignored.
func WithSendTimeout(timeout time.Duration) Option {
	return func(h *Hub) {
		if timeout > 0 {
			h.sendTimeout = timeout
		}
	}
}

// WithMailboxSize overrides DefaultMailboxSize. Non-positive values are ignored.
func WithMailboxSize(size int) Option {
	return func(h *Hub) {
		if size > 0 {
			h.mailboxSize = size
		}
	}
}

// NewHub creates a hub that renders snapshots with encoder.
func NewHub(encoder ports.SnapshotEncoder, logger *slog.Logger, opts ...Option) *Hub {
	h := &Hub{
		encoder:     encoder,
		logger:      logger.With("component", "SnapshotHub"),
		sendTimeout: DefaultSendTimeout,
		mailboxSize: DefaultMailboxSize,
		subscribers: make(map[string]map[kernel.UUID]*subscriber),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Subscribe registers sink for shipmentID and starts its delivery goroutine.
// After Shutdown the returned subscription is already done.
func (h *Hub) Subscribe(shipmentID string, sink ports.SnapshotSink) ports.Subscription {
	sub := newSubscriber(h, shipmentID, sink)

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		sub.close()
		return sub
	}

	members, ok := h.subscribers[shipmentID]
	if !ok {
		members = make(map[kernel.UUID]*subscriber)
		h.subscribers[shipmentID] = members
	}
	members[sub.id] = sub

	h.wg.Add(1)
	go sub.run()

	h.logger.Debug("subscriber registered",
		"shipment_id", shipmentID,
		"subscription_id", sub.id.String())

	return sub
}

// Unsubscribe removes a subscription; unknown ids are ignored.
func (h *Hub) Unsubscribe(shipmentID string, subscriptionID kernel.UUID) {
	h.mu.Lock()
	sub := h.detachLocked(shipmentID, subscriptionID)
	h.mu.Unlock()

	if sub != nil {
		sub.close()
	}
}

// Publish queues snapshot for every subscriber of snapshot.ID.
func (h *Hub) Publish(snapshot shipment.Snapshot) {
	h.mu.RLock()
	targets := lo.Values(h.subscribers[snapshot.ID])
	h.mu.RUnlock()

	for _, sub := range targets {
		sub.Push(snapshot)
	}
}

// SubscriberCount returns the number of live subscriptions.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	count := 0
	for _, members := range h.subscribers {
		count += len(members)
	}
	return count
}

// Shutdown closes every subscription and waits for the delivery goroutines
// to exit, or for ctx to be done.
func (h *Hub) Shutdown(ctx context.Context) error {
	h.mu.Lock()
	h.closed = true
	all := lo.Flatten(lo.MapToSlice(h.subscribers, func(_ string, members map[kernel.UUID]*subscriber) []*subscriber {
		return lo.Values(members)
	}))
	clear(h.subscribers)
	h.mu.Unlock()

	for _, sub := range all {
		sub.close()
	}

	finished := make(chan struct{})
	go func() {
		h.wg.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (h *Hub) detachLocked(shipmentID string, subscriptionID kernel.UUID) *subscriber {
	members, ok := h.subscribers[shipmentID]
	if !ok {
		return nil
	}
	sub, ok := members[subscriptionID]
	if !ok {
		return nil
	}

	delete(members, subscriptionID)
	if len(members) == 0 {
		delete(h.subscribers, shipmentID)
	}
	return sub
}

func (h *Hub) drop(sub *subscriber, cause error) {
	h.mu.Lock()
	h.detachLocked(sub.shipmentID, sub.id)
	h.mu.Unlock()

	sub.close()

	h.logger.Debug("subscriber removed after failed send",
		"shipment_id", sub.shipmentID,
		"subscription_id", sub.id.String(),
		"error", cause)
}
