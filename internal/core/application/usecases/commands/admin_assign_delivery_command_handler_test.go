package commands_test

import (
	"testing"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/domain/model/delivery"
	"parceltrack/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewAdminAssignDeliveryCommand(t *testing.T) {
	t.Run("valid_input", func(t *testing.T) {
		deliveryID := kernel.NewUUID()
		agentID := kernel.NewUUID()
		adminID := kernel.NewUUID()

		cmd, err := commands.NewAdminAssignDeliveryCommand(deliveryID, agentID, adminID)

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		require.Equal(t, deliveryID, cmd.DeliveryID())
		require.Equal(t, agentID, cmd.AgentID())
		require.Equal(t, adminID, cmd.AdminID())
	})

	t.Run("invalid_ids", func(t *testing.T) {
		_, err := commands.NewAdminAssignDeliveryCommand(kernel.UUID{}, kernel.UUID{}, kernel.UUID{})
		require.Error(t, err)
	})
}

func TestAdminAssignDeliveryCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	ownerID := kernel.NewUUID()
	aggregate := newPendingDelivery(t, ownerID)
	agentID := kernel.NewUUID()
	adminID := kernel.NewUUID()

	cmd, err := commands.NewAdminAssignDeliveryCommand(aggregate.ID(), agentID, adminID)
	require.NoError(t, err)

	agents := new(MockAgentDirectory)
	agents.On("IsAgent", mock.Anything, agentID).Return(true, nil).Once()

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
	// the chosen agent and the owner are both notified
	sink.On("Send", mock.Anything, mock.Anything).Return(nil).Times(2)

	h := commands.NewAdminAssignDeliveryCommandHandler(factory, agents, sink)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.Equal(t, delivery.Assigned, aggregate.Status())
	require.True(t, aggregate.AssignedAgentID().IsEqual(agentID))
	// history records the admin, not the agent
	require.True(t, aggregate.LastHistoryEntry().ActorID().IsEqual(adminID))
	agents.AssertExpectations(t)
	repo.AssertExpectations(t)
	sink.AssertExpectations(t)
}

func TestAdminAssignDeliveryCommandHandler_Handle_NonAgentTargetIsForbidden(t *testing.T) {
	ctx := t.Context()

	aggregate := newPendingDelivery(t, kernel.NewUUID())
	userID := kernel.NewUUID()

	cmd, err := commands.NewAdminAssignDeliveryCommand(aggregate.ID(), userID, kernel.NewUUID())
	require.NoError(t, err)

	agents := new(MockAgentDirectory)
	agents.On("IsAgent", mock.Anything, userID).Return(false, nil).Once()

	factory := new(MockDeliveryUoWFactory)
	sink := new(MockNotificationSink)

	h := commands.NewAdminAssignDeliveryCommandHandler(factory, agents, sink)
	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, delivery.ErrActorForbidden)
	factory.AssertNotCalled(t, "Create")
	sink.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestAdminAssignDeliveryCommandHandler_Handle_NonPendingDelivery(t *testing.T) {
	ctx := t.Context()

	aggregate := newPendingDelivery(t, kernel.NewUUID())
	winner := kernel.NewUUID()
	require.NoError(t, aggregate.Assign(winner, winner))

	agentID := kernel.NewUUID()
	cmd, err := commands.NewAdminAssignDeliveryCommand(aggregate.ID(), agentID, kernel.NewUUID())
	require.NoError(t, err)

	agents := new(MockAgentDirectory)
	agents.On("IsAgent", mock.Anything, agentID).Return(true, nil).Once()

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

	h := commands.NewAdminAssignDeliveryCommandHandler(factory, agents, new(MockNotificationSink))
	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	repo.AssertNotCalled(t, "AssignIfPending", mock.Anything, mock.Anything)
}
