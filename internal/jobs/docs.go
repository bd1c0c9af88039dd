// Package jobs provides scheduled background tasks for the tracker.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// with "@every <interval>" schedules.
//
// # Available Jobs
//
// 1. UpdateReplayJob - Submits recorded update records one per tick through the
// ProcessUpdate use case, in timestamp order, then stops itself
// 2. RegistryStatsJob - Logs the number of tracked shipments and live subscriptions
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	events, err := jobs.LoadUpdateRecords(cfg.ReplayFile, logger)
//	if err != nil {
//		return err
//	}
//
//	jobManager := jobs.NewJobManager().
//		Add("update replay", jobs.NewUpdateReplayJob(processUpdateHandler, events, time.Second, logger)).
//		Add("registry stats", jobs.NewRegistryStatsJob(registry, hub, 30*time.Second, logger))
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - Replay logs rejected records and moves on to the next one
// - Unparseable lines in a replay file are skipped while loading
// - Failed job starts will stop any already running jobs
package jobs
