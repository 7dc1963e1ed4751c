// Package jobs provides scheduled background tasks for the tracking system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required by production tracking.
//
// # Available Jobs
//
// 1. ExternalSyncJob - Polls the upstream order system's item feed and
// registers new order items for tracking
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(syncJob)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The sync job logs fetch and ingestion failures and retries on the next
// scheduled run; a failed run never leaves partial state because ingestion is
// idempotent on the external identity pair.
package jobs
