// Package jobs provides scheduled background tasks for the order service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for order lifecycle management.
//
// # Available Jobs
//
// 1. StaleOrderExpiryJob - Runs every minute to cancel orders stuck in
// PENDING_CONFIRMATION past the configured confirmation window.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(expireStaleOrdersHandler, window, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Sweep failures are logged and the next run retries from scratch; orders
// that lose an optimistic-lock race during a sweep are skipped and picked up
// by a later run.
package jobs
