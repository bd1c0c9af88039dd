package commands_test

import (
	"context"
	"log/slog"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/shipment"
	"tracker/internal/core/domain/model/update"
	"tracker/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

const testNow int64 = 1_690_000_000_000

var testClock = kernel.ClockFunc(func() int64 { return testNow })

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

type MockShipmentRegistry struct{ mock.Mock }

func (m *MockShipmentRegistry) Create(
	ctx context.Context,
	id string,
	variant shipment.Variant,
	createdAt int64,
) (*shipment.Shipment, error) {
	args := m.Called(ctx, id, variant, createdAt)
	s, _ := args.Get(0).(*shipment.Shipment)
	return s, args.Error(1)
}

func (m *MockShipmentRegistry) Get(ctx context.Context, id string) (*shipment.Shipment, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*shipment.Shipment)
	return s, args.Error(1)
}

func (m *MockShipmentRegistry) GetAll(ctx context.Context) ([]*shipment.Shipment, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).([]*shipment.Shipment)
	return s, args.Error(1)
}

func (m *MockShipmentRegistry) Count(ctx context.Context) int {
	args := m.Called(ctx)
	return args.Int(0)
}

type MockSnapshotNotifier struct{ mock.Mock }

func (m *MockSnapshotNotifier) Subscribe(shipmentID string, sink ports.SnapshotSink) ports.Subscription {
	args := m.Called(shipmentID, sink)
	return args.Get(0).(ports.Subscription)
}

func (m *MockSnapshotNotifier) Unsubscribe(shipmentID string, subscriptionID kernel.UUID) {
	m.Called(shipmentID, subscriptionID)
}

func (m *MockSnapshotNotifier) Publish(snapshot shipment.Snapshot) {
	m.Called(snapshot)
}

func (m *MockSnapshotNotifier) SubscriberCount() int {
	return m.Called().Int(0)
}

type MockSubscription struct{ mock.Mock }

func (m *MockSubscription) ID() kernel.UUID {
	return m.Called().Get(0).(kernel.UUID)
}

func (m *MockSubscription) ShipmentID() string {
	return m.Called().String(0)
}

func (m *MockSubscription) Push(snapshot shipment.Snapshot) {
	m.Called(snapshot)
}

func (m *MockSubscription) Done() <-chan struct{} {
	return m.Called().Get(0).(<-chan struct{})
}

type MockUpdateJournal struct{ mock.Mock }

func (m *MockUpdateJournal) Append(ctx context.Context, evt update.Event, acceptedAt int64) error {
	args := m.Called(ctx, evt, acceptedAt)
	return args.Error(0)
}

type MockSink struct{ mock.Mock }

func (m *MockSink) Send(ctx context.Context, payload []byte) error {
	return m.Called(ctx, payload).Error(0)
}
