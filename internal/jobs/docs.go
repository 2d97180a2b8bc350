// Package jobs provides scheduled background tasks for the tracker.
//
// Jobs are cron-based (github.com/robfig/cron/v3, seconds precision).
//
// # Available Jobs
//
// TrackingJob runs every TRACKING_INTERVAL (10s by default). While the
// tracker is pending it performs the initial acquisition; once granted it
// acquires a fix, refreshes the open map views and reports the fix.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(jobs.NewTrackingJob(initHandler, trackHandler, trackers, 10*time.Second, logger))
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
//   - ticks without a courier session are skipped silently
//   - other tick failures are logged at debug and never retried
//   - a failed start stops the jobs already running
package jobs
