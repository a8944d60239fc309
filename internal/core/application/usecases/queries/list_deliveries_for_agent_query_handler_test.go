package queries_test

import (
	"context"
	"testing"

	"parceltrack/internal/core/application/usecases/queries"
	"parceltrack/internal/core/domain/model/delivery"
	"parceltrack/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/suite"
)

type ListDeliveriesForAgentQueryHandlerTestSuite struct {
	postgresQuerySuite
	handler queries.ListDeliveriesForAgentQueryHandler
}

func (suite *ListDeliveriesForAgentQueryHandlerTestSuite) SetupSuite() {
	suite.postgresQuerySuite.SetupSuite()
	suite.handler = queries.NewListDeliveriesForAgentQueryHandler(suite.db)
}

func (suite *ListDeliveriesForAgentQueryHandlerTestSuite) TestHandle_NoAssignments_ReturnsEmptySlice() {
	suite.newStoredDelivery(kernel.NewUUID())

	query, err := queries.NewListDeliveriesForAgentQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *ListDeliveriesForAgentQueryHandlerTestSuite) TestHandle_ReturnsOnlyOwnWorklist() {
	ownerID := kernel.NewUUID()
	agentID := kernel.NewUUID()
	otherAgentID := kernel.NewUUID()

	mine := suite.newStoredDelivery(ownerID)
	suite.assignStoredDelivery(mine, agentID)
	suite.advanceStoredDelivery(mine, delivery.PickedUp, suite.agentActor(agentID))

	theirs := suite.newStoredDelivery(ownerID)
	suite.assignStoredDelivery(theirs, otherAgentID)

	suite.newStoredDelivery(ownerID)

	query, err := queries.NewListDeliveriesForAgentQuery(agentID)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal(mine.ID(), result[0].ID)
	suite.Equal(mine.TrackingID().String(), result[0].TrackingID)
	suite.Equal(delivery.PickedUp, result[0].Status)
	suite.Equal(mine.Pickup().Text(), result[0].PickupText)
	suite.Equal(mine.Dropoff().Text(), result[0].DropoffText)
	suite.Equal(mine.ContactNumber(), result[0].ContactNumber)
}

func (suite *ListDeliveriesForAgentQueryHandlerTestSuite) TestHandle_KeepsCancelledAssignments() {
	ownerID := kernel.NewUUID()
	agentID := kernel.NewUUID()

	aggregate := suite.newStoredDelivery(ownerID)
	suite.assignStoredDelivery(aggregate, agentID)
	suite.cancelStoredDelivery(aggregate, suite.agentActor(agentID))

	query, err := queries.NewListDeliveriesForAgentQuery(agentID)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal(delivery.Cancelled, result[0].Status)
}

func (suite *ListDeliveriesForAgentQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.ListDeliveriesForAgentQuery{}

	result, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.Contains(err.Error(), "must be created via NewListDeliveriesForAgentQuery constructor")
}

func TestListDeliveriesForAgentQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ListDeliveriesForAgentQueryHandlerTestSuite))
}
