package cmd

import (
	"fmt"
	"log/slog"
	"time"

	"parceltrack/internal/adapters/out/directory"
	"parceltrack/internal/adapters/out/postgres"
	"parceltrack/internal/adapters/out/postgres/notificationrepo"
	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/application/usecases/queries"
	"parceltrack/internal/core/ports"
	"parceltrack/internal/jobs"
	"parceltrack/internal/notifications"

	"gorm.io/gorm"
)

const defaultStalePendingAfter = 30 * time.Minute

// CompositionRoot wires adapters, use case handlers, and background jobs.
type CompositionRoot struct {
	gormDB            *gorm.DB
	uowFactory        postgres.GormUnitOfWorkFactory
	agentDirectory    ports.AgentDirectory
	dispatcher        *notifications.Dispatcher
	stalePendingAfter time.Duration
}

// NewCompositionRoot builds the object graph from the configuration. The
// returned root owns the notification dispatcher; call Close on shutdown.
func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	agentIDs, err := directory.ParseIDList(configs.AgentIDs)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("parsing AGENT_IDS: %w", err)
	}

	adminIDs, err := directory.ParseIDList(configs.AdminIDs)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("parsing ADMIN_IDS: %w", err)
	}

	stalePendingAfter := defaultStalePendingAfter
	if configs.StalePendingAfter != "" {
		stalePendingAfter, err = time.ParseDuration(configs.StalePendingAfter)
		if err != nil {
			return CompositionRoot{}, fmt.Errorf("parsing STALE_PENDING_AFTER: %w", err)
		}
	}

	sink := notificationrepo.NewGormNotificationSink(gormDB)

	return CompositionRoot{
		gormDB:            gormDB,
		uowFactory:        *postgres.NewGormUnitOfWorkFactory(gormDB),
		agentDirectory:    directory.NewStaticAgentDirectory(agentIDs, adminIDs),
		dispatcher:        notifications.NewDispatcher(sink, logger),
		stalePendingAfter: stalePendingAfter,
	}, nil
}

// Close drains and stops the notification dispatcher.
func (c *CompositionRoot) Close() {
	c.dispatcher.Close()
}

func (c *CompositionRoot) deliveryUoWFactory() commands.DeliveryUoWFactory {
	return FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateDeliveryCommandHandler() commands.CreateDeliveryCommandHandler {
	return commands.NewCreateDeliveryCommandHandler(c.deliveryUoWFactory(), c.agentDirectory, c.dispatcher)
}

func (c *CompositionRoot) CreateTransitionDeliveryCommandHandler() commands.TransitionDeliveryCommandHandler {
	return commands.NewTransitionDeliveryCommandHandler(c.deliveryUoWFactory(), c.dispatcher)
}

func (c *CompositionRoot) CreateCancelDeliveryCommandHandler() commands.CancelDeliveryCommandHandler {
	return commands.NewCancelDeliveryCommandHandler(c.deliveryUoWFactory(), c.dispatcher)
}

func (c *CompositionRoot) CreateAgentClaimDeliveryCommandHandler() commands.AgentClaimDeliveryCommandHandler {
	return commands.NewAgentClaimDeliveryCommandHandler(c.deliveryUoWFactory(), c.dispatcher)
}

func (c *CompositionRoot) CreateAdminAssignDeliveryCommandHandler() commands.AdminAssignDeliveryCommandHandler {
	return commands.NewAdminAssignDeliveryCommandHandler(c.deliveryUoWFactory(), c.agentDirectory, c.dispatcher)
}

func (c *CompositionRoot) CreateRemindStalePendingCommandHandler() commands.RemindStalePendingCommandHandler {
	return commands.NewRemindStalePendingCommandHandler(c.deliveryUoWFactory(), c.agentDirectory, c.dispatcher)
}

func (c *CompositionRoot) CreateListUnassignedDeliveriesQueryHandler() queries.ListUnassignedDeliveriesQueryHandler {
	return queries.NewListUnassignedDeliveriesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListDeliveriesForOwnerQueryHandler() queries.ListDeliveriesForOwnerQueryHandler {
	return queries.NewListDeliveriesForOwnerQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListDeliveriesForAgentQueryHandler() queries.ListDeliveriesForAgentQueryHandler {
	return queries.NewListDeliveriesForAgentQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateTrackDeliveryQueryHandler() queries.TrackDeliveryQueryHandler {
	return queries.NewTrackDeliveryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager(logger *slog.Logger) *jobs.JobManager {
	return jobs.NewJobManager(c.CreateRemindStalePendingCommandHandler(), c.stalePendingAfter, logger)
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}
