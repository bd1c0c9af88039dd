package ports

import (
	"context"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/shipment"
)

// SnapshotSink is one subscriber's output channel, for example an open
// WebSocket connection. Send may block; the notifier bounds it with ctx.
type SnapshotSink interface {
	Send(ctx context.Context, payload []byte) error
}

// SnapshotEncoder renders a snapshot into the payload handed to sinks.
type SnapshotEncoder interface {
	Encode(snapshot shipment.Snapshot) ([]byte, error)
}

// Subscription is a registered sink. Done is closed once the subscription is
// removed, either by Unsubscribe or because a send to its sink failed.
type Subscription interface {
	ID() kernel.UUID
	ShipmentID() string
	Push(snapshot shipment.Snapshot)
	Done() <-chan struct{}
}

// SnapshotNotifier keeps, per shipment id, the set of live subscriptions and
// pushes every published snapshot to each of them.
type SnapshotNotifier interface {
	// Subscribe registers sink for shipmentID. It does not check that the
	// shipment exists; callers go through the subscribe use case for that.
	Subscribe(shipmentID string, sink SnapshotSink) Subscription

	// Unsubscribe removes a subscription. Removing an unknown or already
	// removed subscription is a no-op.
	Unsubscribe(shipmentID string, subscriptionID kernel.UUID)

	// Publish hands snapshot to every subscription of snapshot.ID without
	// waiting for delivery.
	Publish(snapshot shipment.Snapshot)

	// SubscriberCount returns the number of live subscriptions across all shipments.
	SubscriberCount() int
}
