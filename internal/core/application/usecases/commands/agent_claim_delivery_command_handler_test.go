package commands_test

import (
	"testing"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/domain/model/delivery"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/ports"
	"parceltrack/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewAgentClaimDeliveryCommand(t *testing.T) {
	t.Run("valid_input", func(t *testing.T) {
		deliveryID := kernel.NewUUID()
		agentID := kernel.NewUUID()

		cmd, err := commands.NewAgentClaimDeliveryCommand(deliveryID, agentID)

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		require.Equal(t, deliveryID, cmd.DeliveryID())
		require.Equal(t, agentID, cmd.AgentID())
	})

	t.Run("invalid_agent_id", func(t *testing.T) {
		_, err := commands.NewAgentClaimDeliveryCommand(kernel.NewUUID(), kernel.UUID{})
		require.Error(t, err)
	})
}

func TestAgentClaimDeliveryCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	ownerID := kernel.NewUUID()
	aggregate := newPendingDelivery(t, ownerID)
	agentID := kernel.NewUUID()

	cmd, err := commands.NewAgentClaimDeliveryCommand(aggregate.ID(), agentID)
	require.NoError(t, err)

	repo := new(MockDeliveryRepository)
	uow := new(MockDeliveryUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		repo.On("AssignIfPending", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	sink := new(MockNotificationSink)
	// the claiming agent and the owner are both notified
	sink.On("Send", mock.Anything, mock.MatchedBy(func(n ports.Notification) bool {
		return n.RecipientID.IsEqual(agentID)
	})).Return(nil).Once()
	sink.On("Send", mock.Anything, mock.MatchedBy(func(n ports.Notification) bool {
		return n.RecipientID.IsEqual(ownerID)
	})).Return(nil).Once()

	h := commands.NewAgentClaimDeliveryCommandHandler(factory, sink)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.Equal(t, delivery.Assigned, aggregate.Status())
	require.NotNil(t, aggregate.AssignedAgentID())
	require.True(t, aggregate.AssignedAgentID().IsEqual(agentID))
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	sink.AssertExpectations(t)
}

func TestAgentClaimDeliveryCommandHandler_Handle_LoserGetsAlreadyAssigned(t *testing.T) {
	ctx := t.Context()

	aggregate := newPendingDelivery(t, kernel.NewUUID())
	agentID := kernel.NewUUID()

	cmd, err := commands.NewAgentClaimDeliveryCommand(aggregate.ID(), agentID)
	require.NoError(t, err)

	// the loaded copy still looks pending; the store says someone else won
	taken := errs.NewAlreadyAssignedError(aggregate.ID().String())

	repo := new(MockDeliveryRepository)
	uow := new(MockDeliveryUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		repo.On("AssignIfPending", mock.Anything, aggregate).Return(taken).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	sink := new(MockNotificationSink)

	h := commands.NewAgentClaimDeliveryCommandHandler(factory, sink)
	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrAlreadyAssigned)
	sink.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestAgentClaimDeliveryCommandHandler_Handle_NonPendingDelivery(t *testing.T) {
	ctx := t.Context()

	aggregate := newPendingDelivery(t, kernel.NewUUID())
	winner := kernel.NewUUID()
	require.NoError(t, aggregate.Assign(winner, winner))

	cmd, err := commands.NewAgentClaimDeliveryCommand(aggregate.ID(), kernel.NewUUID())
	require.NoError(t, err)

	repo := new(MockDeliveryRepository)
	uow := new(MockDeliveryUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAgentClaimDeliveryCommandHandler(factory, new(MockNotificationSink))
	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrAlreadyAssigned)
	repo.AssertNotCalled(t, "AssignIfPending", mock.Anything, mock.Anything)
}
