package jobs

import (
	"context"
	"time"

	"procurement/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultReminderSchedule runs the reminder at the top of every hour.
const DefaultReminderSchedule = "0 0 * * * *"

const reminderTimeout = 30 * time.Second

// ReminderSender is satisfied by commands.SendAdjudicationRemindersCommandHandler.
type ReminderSender interface {
	Handle(ctx context.Context, cmd commands.SendAdjudicationRemindersCommand) (int, error)
}

// AdjudicationReminderJob periodically reminds administrators of orders whose bidding
// window has closed but which are still IN_REVIEW.
type AdjudicationReminderJob struct {
	sender   ReminderSender
	schedule string
	cron     *cron.Cron
	logger   *zap.Logger
}

// NewAdjudicationReminderJob creates the job. schedule is a six-field cron expression with
// seconds; an empty schedule means DefaultReminderSchedule.
func NewAdjudicationReminderJob(sender ReminderSender, schedule string, logger *zap.Logger) *AdjudicationReminderJob {
	if schedule == "" {
		schedule = DefaultReminderSchedule
	}
	logger = logger.With(zap.String("component", "adjudication_reminder_job"))
	return &AdjudicationReminderJob{
		sender:   sender,
		schedule: schedule,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cronLogger{logger})),
		),
		logger: logger,
	}
}

// Start registers the schedule and starts the cron scheduler.
func (j *AdjudicationReminderJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Adjudication reminder job started", zap.String("schedule", j.schedule))
	return nil
}

// Run performs one reminder pass. Failures are logged; the next tick tries again.
func (j *AdjudicationReminderJob) Run(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, reminderTimeout)
	defer cancel()

	sent, err := j.sender.Handle(ctx, commands.NewSendAdjudicationRemindersCommand())
	if err != nil {
		j.logger.Error("Adjudication reminder job failed", zap.Error(err))
		return
	}
	if sent > 0 {
		j.logger.Info("Adjudication reminders sent", zap.Int("orders", sent))
	}
}

// Stop stops the scheduler and waits for a running pass to finish.
func (j *AdjudicationReminderJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Adjudication reminder job stopped")
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	logger *zap.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Sugar().Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}
