package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"tracker/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// RegistryStatsJob periodically logs how many shipments are tracked and how
// many live subscriptions the notifier holds.
type RegistryStatsJob struct {
	registry ports.ShipmentRegistry
	notifier ports.SnapshotNotifier
	interval time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewRegistryStatsJob creates a stats job running every interval.
func NewRegistryStatsJob(
	registry ports.ShipmentRegistry,
	notifier ports.SnapshotNotifier,
	interval time.Duration,
	logger *slog.Logger,
) *RegistryStatsJob {
	return &RegistryStatsJob{
		registry: registry,
		notifier: notifier,
		interval: interval,
		cron:     cron.New(),
		logger:   logger.With("component", "registry_stats_job"),
	}
}

// Start begins logging stats every interval.
func (j *RegistryStatsJob) Start() error {
	_, err := j.cron.AddFunc(fmt.Sprintf("@every %s", j.interval), func() {
		j.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Registry stats job started", "interval", j.interval.String())
	return nil
}

// RunOnce logs the current counts.
func (j *RegistryStatsJob) RunOnce(ctx context.Context) {
	j.logger.InfoContext(ctx, "Registry stats",
		"shipments", j.registry.Count(ctx),
		"subscribers", j.notifier.SubscriberCount())
}

// Stop stops the stats job.
func (j *RegistryStatsJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Registry stats job stopped")
}
