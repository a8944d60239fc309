package commands_test

import (
	"context"
	"testing"
	"time"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/domain/model/delivery"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDeliveryRepository struct{ mock.Mock }

func (m *MockDeliveryRepository) Add(ctx context.Context, aggregate *delivery.Delivery) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockDeliveryRepository) Update(
	ctx context.Context,
	aggregate *delivery.Delivery,
	loadedStatus delivery.Status,
) error {
	args := m.Called(ctx, aggregate, loadedStatus)
	return args.Error(0)
}

func (m *MockDeliveryRepository) AssignIfPending(ctx context.Context, aggregate *delivery.Delivery) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) GetByTrackingID(
	ctx context.Context,
	trackingID delivery.TrackingID,
) (*delivery.Delivery, error) {
	args := m.Called(ctx, trackingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) FindStalePending(
	ctx context.Context,
	before time.Time,
) ([]*delivery.Delivery, error) {
	args := m.Called(ctx, before)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*delivery.Delivery), args.Error(1)
}

type MockDeliveryUoW struct{ mock.Mock }

func (m *MockDeliveryUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDeliveryUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDeliveryUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDeliveryUoW) DeliveryRepository() ports.DeliveryRepository {
	args := m.Called()
	return args.Get(0).(ports.DeliveryRepository)
}

type MockDeliveryUoWFactory struct{ mock.Mock }

func (m *MockDeliveryUoWFactory) Create() commands.DeliveryUoW {
	args := m.Called()
	return args.Get(0).(commands.DeliveryUoW)
}

type MockAgentDirectory struct{ mock.Mock }

func (m *MockAgentDirectory) IsAgent(ctx context.Context, userID kernel.UUID) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAgentDirectory) ListStaff(ctx context.Context) ([]kernel.UUID, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.UUID), args.Error(1)
}

type MockNotificationSink struct{ mock.Mock }

func (m *MockNotificationSink) Send(ctx context.Context, notification ports.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func mustTestAddress(t *testing.T, text string) kernel.Address {
	t.Helper()
	addr, err := kernel.NewAddress(text, 40.7128, -74.006)
	require.NoError(t, err)
	return addr
}

func newPendingDelivery(t *testing.T, ownerID kernel.UUID) *delivery.Delivery {
	t.Helper()

	trackingID, err := delivery.GenerateTrackingID()
	require.NoError(t, err)

	aggregate, err := delivery.NewDelivery(
		kernel.NewUUID(),
		trackingID,
		ownerID,
		mustTestAddress(t, "1 Warehouse Road, Newark"),
		mustTestAddress(t, "350 Fifth Avenue, New York"),
		"box of books",
		"+12125550100",
		time.Now().Add(48*time.Hour),
		2500,
	)
	require.NoError(t, err)
	return aggregate
}

func mustTestActor(t *testing.T, id kernel.UUID, role delivery.Role) delivery.Actor {
	t.Helper()
	actor, err := delivery.NewActor(id, role)
	require.NoError(t, err)
	return actor
}
