package fanout_test

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"tracker/internal/adapters/out/fanout"
	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/shipment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const waitFor = 2 * time.Second

type versionEncoder struct{}

func (versionEncoder) Encode(snapshot shipment.Snapshot) ([]byte, error) {
	return []byte(fmt.Sprintf("%s:%d", snapshot.ID, snapshot.Version)), nil
}

type recordingSink struct {
	received chan string
}

func newRecordingSink() *recordingSink {
	return &recordingSink{received: make(chan string, 128)}
}

func (s *recordingSink) Send(_ context.Context, payload []byte) error {
	s.received <- string(payload)
	return nil
}

func (s *recordingSink) next(t *testing.T) string {
	t.Helper()
	select {
	case msg := <-s.received:
		return msg
	case <-time.After(waitFor):
		t.Fatal("timed out waiting for snapshot")
		return ""
	}
}

func (s *recordingSink) assertSilent(t *testing.T) {
	t.Helper()
	select {
	case msg := <-s.received:
		t.Fatalf("unexpected snapshot %q", msg)
	case <-time.After(50 * time.Millisecond):
	}
}

type failingSink struct{}

func (failingSink) Send(context.Context, []byte) error {
	return errors.New("connection reset")
}

type blockingSink struct {
	once    sync.Once
	entered chan struct{}
}

func (s *blockingSink) Send(ctx context.Context, _ []byte) error {
	s.once.Do(func() { close(s.entered) })
	<-ctx.Done()
	return ctx.Err()
}

func newHub(t *testing.T, opts ...fanout.Option) *fanout.Hub {
	t.Helper()
	hub := fanout.NewHub(versionEncoder{}, slog.New(slog.DiscardHandler), opts...)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), waitFor)
		defer cancel()
		_ = hub.Shutdown(ctx)
	})
	return hub
}

func snapshot(id string, version uint64) shipment.Snapshot {
	return shipment.Snapshot{ID: id, Version: version}
}

func waitDone(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(waitFor):
		t.Fatal("subscription was not closed")
	}
}

func TestHub_PublishDeliversInOrder(t *testing.T) {
	hub := newHub(t)
	sink := newRecordingSink()
	hub.Subscribe("S1", sink)

	for v := uint64(1); v <= 5; v++ {
		hub.Publish(snapshot("S1", v))
	}

	for v := 1; v <= 5; v++ {
		assert.Equal(t, fmt.Sprintf("S1:%d", v), sink.next(t))
	}
}

func TestHub_DropsStaleSnapshots(t *testing.T) {
	hub := newHub(t)
	sink := newRecordingSink()
	sub := hub.Subscribe("S1", sink)

	sub.Push(snapshot("S1", 3))
	sub.Push(snapshot("S1", 2))
	sub.Push(snapshot("S1", 3))
	sub.Push(snapshot("S1", 4))

	assert.Equal(t, "S1:3", sink.next(t))
	assert.Equal(t, "S1:4", sink.next(t))
	sink.assertSilent(t)
}

func TestHub_InitialSnapshotAtVersionZero(t *testing.T) {
	hub := newHub(t)
	sink := newRecordingSink()
	sub := hub.Subscribe("S1", sink)

	sub.Push(snapshot("S1", 0))

	assert.Equal(t, "S1:0", sink.next(t))
}

func TestHub_PublishOnlyReachesSubscribersOfThatShipment(t *testing.T) {
	hub := newHub(t)
	first := newRecordingSink()
	second := newRecordingSink()
	hub.Subscribe("S1", first)
	hub.Subscribe("S2", second)

	hub.Publish(snapshot("S2", 1))

	assert.Equal(t, "S2:1", second.next(t))
	first.assertSilent(t)
}

func TestHub_BrokenSinkIsRemovedWithoutAffectingOthers(t *testing.T) {
	// Given
	hub := newHub(t)
	healthy := newRecordingSink()
	hub.Subscribe("S1", healthy)
	broken := hub.Subscribe("S1", failingSink{})
	require.Equal(t, 2, hub.SubscriberCount())

	// When
	hub.Publish(snapshot("S1", 1))

	// Then
	waitDone(t, broken.Done())
	assert.Equal(t, "S1:1", healthy.next(t))
	assert.Eventually(t, func() bool { return hub.SubscriberCount() == 1 }, waitFor, 10*time.Millisecond)

	hub.Publish(snapshot("S1", 2))
	assert.Equal(t, "S1:2", healthy.next(t))
}

func TestHub_StalledSinkDoesNotBlockPublishOrOthers(t *testing.T) {
	// Given
	hub := newHub(t, fanout.WithSendTimeout(100*time.Millisecond))
	stalled := &blockingSink{entered: make(chan struct{})}
	stalledSub := hub.Subscribe("S1", stalled)
	healthy := newRecordingSink()
	hub.Subscribe("S1", healthy)

	// When
	start := time.Now()
	for v := uint64(1); v <= 3; v++ {
		hub.Publish(snapshot("S1", v))
	}
	elapsed := time.Since(start)

	// Then
	assert.Less(t, elapsed, 50*time.Millisecond)
	for v := 1; v <= 3; v++ {
		assert.Equal(t, fmt.Sprintf("S1:%d", v), healthy.next(t))
	}
	waitDone(t, stalledSub.Done())
}

func TestHub_UnsubscribeIsIdempotent(t *testing.T) {
	hub := newHub(t)
	sink := newRecordingSink()
	sub := hub.Subscribe("S1", sink)

	hub.Unsubscribe("S1", sub.ID())
	hub.Unsubscribe("S1", sub.ID())
	hub.Unsubscribe("unknown", kernel.NewUUID())

	waitDone(t, sub.Done())
	assert.Equal(t, 0, hub.SubscriberCount())

	hub.Publish(snapshot("S1", 1))
	sub.Push(snapshot("S1", 2))
	sink.assertSilent(t)
}

func TestHub_ConcurrentPublishAndUnsubscribe(t *testing.T) {
	hub := newHub(t)
	subs := make([]interface{ ID() kernel.UUID }, 0, 20)
	for i := 0; i < 20; i++ {
		subs = append(subs, hub.Subscribe("S1", newRecordingSink()))
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for v := uint64(1); v <= 100; v++ {
			hub.Publish(snapshot("S1", v))
		}
	}()
	go func() {
		defer wg.Done()
		for _, sub := range subs {
			hub.Unsubscribe("S1", sub.ID())
		}
	}()
	wg.Wait()

	assert.Equal(t, 0, hub.SubscriberCount())
}

func TestHub_Shutdown(t *testing.T) {
	hub := fanout.NewHub(versionEncoder{}, slog.New(slog.DiscardHandler))
	sub := hub.Subscribe("S1", newRecordingSink())

	require.NoError(t, hub.Shutdown(t.Context()))

	waitDone(t, sub.Done())
	assert.Equal(t, 0, hub.SubscriberCount())

	late := hub.Subscribe("S1", newRecordingSink())
	waitDone(t, late.Done())
	assert.Equal(t, 0, hub.SubscriberCount())
}

func TestHub_MailboxKeepsNewestSnapshots(t *testing.T) {
	hub := newHub(t, fanout.WithMailboxSize(2), fanout.WithSendTimeout(time.Second))
	gate := &gatedSink{release: make(chan struct{}), received: make(chan string, 16), entered: make(chan struct{}, 16)}
	sub := hub.Subscribe("S1", gate)

	sub.Push(snapshot("S1", 1))
	<-gate.entered
	for v := uint64(2); v <= 6; v++ {
		sub.Push(snapshot("S1", v))
	}
	close(gate.release)

	got := []string{<-gate.received, <-gate.received, <-gate.received}
	assert.Equal(t, []string{"S1:1", "S1:5", "S1:6"}, got)
}

type gatedSink struct {
	release  chan struct{}
	entered  chan struct{}
	received chan string
}

func (s *gatedSink) Send(ctx context.Context, payload []byte) error {
	s.entered <- struct{}{}
	select {
	case <-s.release:
	case <-ctx.Done():
		return ctx.Err()
	}
	s.received <- string(payload)
	return nil
}
