// Package jobs provides scheduled background tasks for the procurement service.
//
// Jobs are cron-based (github.com/robfig/cron/v3, six-field expressions with seconds)
// and delegate their work to command handlers.
//
// # Available Jobs
//
//   - AdjudicationReminderJob: emits a reminder for every IN_REVIEW order whose bidding
//     window has closed. Runs hourly unless configured otherwise.
//
// # Usage
//
//	reminder := jobs.NewAdjudicationReminderJob(remindersHandler, cfg.ReminderSchedule, logger)
//	jobManager := jobs.NewJobManager(logger, reminder)
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failing pass is logged and retried on the next tick. Overlapping passes are skipped.
package jobs
