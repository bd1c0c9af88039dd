package fanout

import (
	"context"
	"sync"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/shipment"
	"tracker/internal/core/ports"
)

// subscriber is one registered sink with its own mailbox and goroutine.
//
// The mailbox only accepts snapshots newer than the last accepted one, so the
// sink observes shipment states in the order they were applied even when the
// initial push races with a publish.
type subscriber struct {
	id         kernel.UUID
	shipmentID string
	sink       ports.SnapshotSink
	hub        *Hub

	mu          sync.Mutex
	pending     []shipment.Snapshot
	accepted    bool
	lastVersion uint64

	wake      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

func newSubscriber(h *Hub, shipmentID string, sink ports.SnapshotSink) *subscriber {
	return &subscriber{
		id:         kernel.NewUUID(),
		shipmentID: shipmentID,
		sink:       sink,
		hub:        h,
		pending:    make([]shipment.Snapshot, 0, 1),
		wake:       make(chan struct{}, 1),
		done:       make(chan struct{}),
	}
}

func (s *subscriber) ID() kernel.UUID {
	return s.id
}

func (s *subscriber) ShipmentID() string {
	return s.shipmentID
}

func (s *subscriber) Done() <-chan struct{} {
	return s.done
}

// Push queues snapshot for delivery unless it is stale or the subscriber is closed.
func (s *subscriber) Push(snapshot shipment.Snapshot) {
	select {
	case <-s.done:
		return
	default:
	}

	s.mu.Lock()
	if s.accepted && snapshot.Version <= s.lastVersion {
		s.mu.Unlock()
		return
	}
	s.accepted = true
	s.lastVersion = snapshot.Version

	s.pending = append(s.pending, snapshot)
	if overflow := len(s.pending) - s.hub.mailboxSize; overflow > 0 {
		s.pending = append(s.pending[:0], s.pending[overflow:]...)
	}
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *subscriber) run() {
	defer s.hub.wg.Done()

	for {
		select {
		case <-s.done:
			return
		case <-s.wake:
		}

		for {
			snapshot, ok := s.next()
			if !ok {
				break
			}

			select {
			case <-s.done:
				return
			default:
			}

			payload, err := s.hub.encoder.Encode(snapshot)
			if err != nil {
				s.hub.logger.Warn("failed to encode snapshot",
					"shipment_id", s.shipmentID,
					"version", snapshot.Version,
					"error", err)
				continue
			}

			if err = s.send(payload); err != nil {
				s.hub.drop(s, err)
				return
			}
		}
	}
}

func (s *subscriber) next() (shipment.Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.pending) == 0 {
		return shipment.Snapshot{}, false
	}

	snapshot := s.pending[0]
	s.pending = s.pending[1:]
	return snapshot, true
}

func (s *subscriber) send(payload []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.hub.sendTimeout)
	defer cancel()

	return s.sink.Send(ctx, payload)
}

func (s *subscriber) close() {
	s.closeOnce.Do(func() {
		close(s.done)
	})
}
