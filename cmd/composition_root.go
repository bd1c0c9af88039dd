package cmd

import (
	"context"
	"fmt"
	"log/slog"

	httpadapter "tracker/internal/adapters/in/http"
	"tracker/internal/adapters/out/fanout"
	"tracker/internal/adapters/out/memory/shipmentrepo"
	"tracker/internal/adapters/out/postgres/journalrepo"
	"tracker/internal/core/application/usecases/commands"
	"tracker/internal/core/application/usecases/queries"
	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/shipment"
	"tracker/internal/core/domain/services"
	"tracker/internal/core/ports"
	"tracker/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot owns the process-lifetime singletons and builds every
// handler from them.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	logger     *slog.Logger
	clock      kernel.Clock
	registry   ports.ShipmentRegistry
	hub        *fanout.Hub
	journal    ports.UpdateJournal
	dispatcher services.UpdateDispatcher
}

// NewCompositionRoot wires the tracker. gormDB may be nil, in which case the
// update journal is disabled.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) *CompositionRoot {
	clock := kernel.NewSystemClock()

	var journal ports.UpdateJournal = journalrepo.NewNopUpdateJournal()
	if gormDB != nil {
		journal = journalrepo.NewGormUpdateJournal(gormDB)
	}

	return &CompositionRoot{
		config:   config,
		gormDB:   gormDB,
		logger:   logger,
		clock:    clock,
		registry: shipmentrepo.NewInMemoryShipmentRepository(shipment.NewFactory(clock)),
		hub: fanout.NewHub(
			httpadapter.NewSnapshotEncoder(),
			logger,
			fanout.WithSendTimeout(config.SubscriberSendTimeout),
			fanout.WithMailboxSize(config.SubscriberMailboxSize),
		),
		journal:    journal,
		dispatcher: services.NewUpdateDispatcher(),
	}
}

func (c *CompositionRoot) CreateCreateShipmentCommandHandler() commands.CreateShipmentCommandHandler {
	return commands.NewCreateShipmentCommandHandler(c.registry, c.clock)
}

func (c *CompositionRoot) CreateProcessUpdateCommandHandler() commands.ProcessUpdateCommandHandler {
	return commands.NewProcessUpdateCommandHandler(c.registry, c.dispatcher, c.hub, c.journal, c.clock, c.logger)
}

func (c *CompositionRoot) CreateSubscribeCommandHandler() commands.SubscribeCommandHandler {
	return commands.NewSubscribeCommandHandler(c.registry, c.hub)
}

func (c *CompositionRoot) CreateUnsubscribeCommandHandler() commands.UnsubscribeCommandHandler {
	return commands.NewUnsubscribeCommandHandler(c.hub)
}

func (c *CompositionRoot) CreateGetShipmentQueryHandler() queries.GetShipmentQueryHandler {
	return queries.NewGetShipmentQueryHandler(c.registry)
}

func (c *CompositionRoot) CreateListShipmentsQueryHandler() queries.ListShipmentsQueryHandler {
	return queries.NewListShipmentsQueryHandler(c.registry)
}

func (c *CompositionRoot) CreateGetUpdateJournalQueryHandler() queries.GetUpdateJournalQueryHandler {
	return queries.NewGetUpdateJournalQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(
		c.CreateCreateShipmentCommandHandler(),
		c.CreateProcessUpdateCommandHandler(),
		c.CreateSubscribeCommandHandler(),
		c.CreateUnsubscribeCommandHandler(),
		c.CreateGetShipmentQueryHandler(),
		c.CreateListShipmentsQueryHandler(),
		c.CreateGetUpdateJournalQueryHandler(),
		c.logger,
	)
}

// CreateJobManager builds the background jobs. The replay job is added only
// when a replay file is configured.
func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	manager := jobs.NewJobManager().
		Add("registry stats", jobs.NewRegistryStatsJob(c.registry, c.hub, c.config.StatsInterval, c.logger))

	if c.config.ReplayEnabled() {
		events, err := jobs.LoadUpdateRecords(c.config.ReplayFile, c.logger)
		if err != nil {
			return nil, fmt.Errorf("load replay records: %w", err)
		}
		manager.Add("update replay", jobs.NewUpdateReplayJob(
			c.CreateProcessUpdateCommandHandler(), events, c.config.ReplayInterval, c.logger))
	}

	return manager, nil
}

// Registry exposes the shipment registry.
func (c *CompositionRoot) Registry() ports.ShipmentRegistry {
	return c.registry
}

// Notifier exposes the snapshot fan-out.
func (c *CompositionRoot) Notifier() ports.SnapshotNotifier {
	return c.hub
}

// Shutdown closes every live subscription and waits for their goroutines.
func (c *CompositionRoot) Shutdown(ctx context.Context) error {
	return c.hub.Shutdown(ctx)
}
