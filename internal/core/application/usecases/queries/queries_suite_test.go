package queries_test

import (
	"context"
	"time"

	"parceltrack/internal/adapters/out/postgres/deliveryrepo"
	"parceltrack/internal/core/domain/model/delivery"
	"parceltrack/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// postgresQuerySuite provides a containerized database and seeding helpers
// shared by the query handler suites. Data is seeded through the write-side
// repository so the read models are exercised against rows produced by the
// real persistence path.
type postgresQuerySuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
}

func (suite *postgresQuerySuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&deliveryrepo.DeliveryDTO{}, &deliveryrepo.HistoryEntryDTO{})
	suite.Require().NoError(err)
}

func (suite *postgresQuerySuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *postgresQuerySuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE deliveries, delivery_status_history").Error
	suite.Require().NoError(err)
}

func (suite *postgresQuerySuite) repo() *deliveryrepo.GormDeliveryRepository {
	return deliveryrepo.NewGormDeliveryRepository(suite.db, &mockAggregateTracker{})
}

// newStoredDelivery creates a pending delivery for the owner and saves it.
// A short pause keeps created_at strictly increasing across calls so that
// ordering assertions are deterministic.
func (suite *postgresQuerySuite) newStoredDelivery(ownerID kernel.UUID) *delivery.Delivery {
	pickup, err := kernel.NewAddress("12 Warehouse Road", 40.7128, -74.0060)
	suite.Require().NoError(err)
	dropoff, err := kernel.NewAddress("7 Harbor View", 40.7580, -73.9855)
	suite.Require().NoError(err)

	trackingID, err := delivery.GenerateTrackingID()
	suite.Require().NoError(err)

	aggregate, err := delivery.NewDelivery(
		kernel.NewUUID(),
		trackingID,
		ownerID,
		pickup,
		dropoff,
		"a box of books",
		"+15550100",
		time.Now().Add(48*time.Hour),
		2500,
	)
	suite.Require().NoError(err)

	err = suite.repo().Add(context.Background(), aggregate)
	suite.Require().NoError(err)

	time.Sleep(5 * time.Millisecond)
	return aggregate
}

// assignStoredDelivery claims the delivery for the agent through the
// conditional assignment path.
func (suite *postgresQuerySuite) assignStoredDelivery(aggregate *delivery.Delivery, agentID kernel.UUID) {
	err := aggregate.Assign(agentID, agentID)
	suite.Require().NoError(err)

	err = suite.repo().AssignIfPending(context.Background(), aggregate)
	suite.Require().NoError(err)
}

// advanceStoredDelivery moves the delivery to the target status and saves the
// transition through the guarded update path.
func (suite *postgresQuerySuite) advanceStoredDelivery(
	aggregate *delivery.Delivery,
	target delivery.Status,
	actor delivery.Actor,
) {
	loadedStatus := aggregate.Status()
	err := aggregate.TransitionTo(target, actor)
	suite.Require().NoError(err)

	err = suite.repo().Update(context.Background(), aggregate, loadedStatus)
	suite.Require().NoError(err)
}

// cancelStoredDelivery cancels the delivery on behalf of the actor.
func (suite *postgresQuerySuite) cancelStoredDelivery(aggregate *delivery.Delivery, actor delivery.Actor) {
	loadedStatus := aggregate.Status()
	err := aggregate.Cancel(actor)
	suite.Require().NoError(err)

	err = suite.repo().Update(context.Background(), aggregate, loadedStatus)
	suite.Require().NoError(err)
}

func (suite *postgresQuerySuite) ownerActor(ownerID kernel.UUID) delivery.Actor {
	actor, err := delivery.NewActor(ownerID, delivery.RoleOwner)
	suite.Require().NoError(err)
	return actor
}

func (suite *postgresQuerySuite) agentActor(agentID kernel.UUID) delivery.Actor {
	actor, err := delivery.NewActor(agentID, delivery.RoleAgent)
	suite.Require().NoError(err)
	return actor
}

// mockAggregateTracker is a no-op tracker; the query suites never commit a
// unit of work, so tracking has nothing to record.
type mockAggregateTracker struct{}

func (m *mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {
}
