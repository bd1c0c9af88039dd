package jobs

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"tracker/internal/core/application/usecases/commands"
	"tracker/internal/core/domain/model/update"

	"github.com/robfig/cron/v3"
)

// UpdateReplayJob feeds a recorded list of update records into the tracker,
// one record per tick, through the same use case as POST /updates.
// The job stops its own schedule once every record has been submitted.
type UpdateReplayJob struct {
	handler  commands.ProcessUpdateCommandHandler
	interval time.Duration
	cron     *cron.Cron
	logger   *slog.Logger

	mu      sync.Mutex
	pending []update.Event
	stopped bool
}

// NewUpdateReplayJob creates a replay job over events. Events are submitted in
// timestamp order; events sharing a timestamp keep their input order.
// Intervals below one second are rounded up by the scheduler.
func NewUpdateReplayJob(
	handler commands.ProcessUpdateCommandHandler,
	events []update.Event,
	interval time.Duration,
	logger *slog.Logger,
) *UpdateReplayJob {
	pending := slices.Clone(events)
	slices.SortStableFunc(pending, func(a, b update.Event) int {
		switch {
		case a.Timestamp() < b.Timestamp():
			return -1
		case a.Timestamp() > b.Timestamp():
			return 1
		default:
			return 0
		}
	})

	return &UpdateReplayJob{
		handler:  handler,
		interval: interval,
		cron:     cron.New(),
		logger:   logger.With("component", "update_replay_job"),
		pending:  pending,
	}
}

// Start schedules the replay.
func (j *UpdateReplayJob) Start() error {
	_, err := j.cron.AddFunc(fmt.Sprintf("@every %s", j.interval), func() {
		if !j.RunOnce(context.Background()) {
			j.Stop()
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Update replay job started",
		"records", j.Remaining(),
		"interval", j.interval.String())
	return nil
}

// RunOnce submits the next pending record. It reports whether records remain
// afterwards. Rejected records are logged and skipped.
func (j *UpdateReplayJob) RunOnce(ctx context.Context) bool {
	j.mu.Lock()
	defer j.mu.Unlock()

	if len(j.pending) == 0 {
		return false
	}

	evt := j.pending[0]
	j.pending = j.pending[1:]

	snapshot, err := j.handler.Handle(ctx, commands.NewProcessUpdateCommandFromEvent(evt))
	if err != nil {
		j.logger.WarnContext(ctx, "Replayed update rejected",
			"kind", evt.Kind(),
			"shipment_id", evt.ShipmentID(),
			"error", err)
	} else {
		j.logger.DebugContext(ctx, "Replayed update applied",
			"kind", evt.Kind(),
			"shipment_id", evt.ShipmentID(),
			"status", snapshot.Status.String())
	}

	return len(j.pending) > 0
}

// Remaining returns the number of records not yet submitted.
func (j *UpdateReplayJob) Remaining() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.pending)
}

// Stop stops the replay schedule. Calling Stop more than once is safe.
func (j *UpdateReplayJob) Stop() {
	j.mu.Lock()
	if j.stopped {
		j.mu.Unlock()
		return
	}
	j.stopped = true
	j.mu.Unlock()

	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Update replay job stopped", "remaining", j.Remaining())
}

// ReadUpdateRecords parses one update record per line. Blank lines are
// ignored; lines that fail to parse are logged and skipped.
func ReadUpdateRecords(r io.Reader, logger *slog.Logger) ([]update.Event, error) {
	var events []update.Event

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}

		evt, err := update.Parse(text)
		if err != nil {
			logger.Warn("Skipping invalid update record", "line", line, "error", err)
			continue
		}
		events = append(events, evt)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read update records: %w", err)
	}

	return events, nil
}

// LoadUpdateRecords reads update records from the file at path.
func LoadUpdateRecords(path string, logger *slog.Logger) ([]update.Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open replay file: %w", err)
	}
	defer f.Close()

	return ReadUpdateRecords(f, logger)
}
