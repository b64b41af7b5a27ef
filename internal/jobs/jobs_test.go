package jobs_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"procurement/internal/core/application/usecases/commands"
	"procurement/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeSender struct {
	sent  int
	err   error
	calls int
}

func (f *fakeSender) Handle(ctx context.Context, cmd commands.SendAdjudicationRemindersCommand) (int, error) {
	f.calls++
	if err := cmd.Validate(); err != nil {
		return 0, err
	}
	if _, ok := ctx.Deadline(); !ok {
		return 0, errors.New("reminder pass without deadline")
	}
	return f.sent, f.err
}

func TestAdjudicationReminderJob_Run(t *testing.T) {
	t.Run("should log how many reminders were sent", func(t *testing.T) {
		core, logs := observer.New(zapcore.InfoLevel)
		sender := &fakeSender{sent: 3}
		job := jobs.NewAdjudicationReminderJob(sender, "", zap.New(core))

		job.Run(t.Context())

		assert.Equal(t, 1, sender.calls)
		entries := logs.FilterMessage("Adjudication reminders sent").All()
		require.Len(t, entries, 1)
		assert.Equal(t, int64(3), entries[0].ContextMap()["orders"])
	})

	t.Run("should stay quiet when nothing is overdue", func(t *testing.T) {
		core, logs := observer.New(zapcore.InfoLevel)
		job := jobs.NewAdjudicationReminderJob(&fakeSender{}, "", zap.New(core))

		job.Run(t.Context())

		assert.Zero(t, logs.Len())
	})

	t.Run("should log failures", func(t *testing.T) {
		core, logs := observer.New(zapcore.InfoLevel)
		job := jobs.NewAdjudicationReminderJob(&fakeSender{err: errors.New("store down")}, "", zap.New(core))

		job.Run(t.Context())

		entries := logs.FilterMessage("Adjudication reminder job failed").All()
		require.Len(t, entries, 1)
		assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	})
}

func TestAdjudicationReminderJob_Start(t *testing.T) {
	t.Run("should reject an invalid schedule", func(t *testing.T) {
		job := jobs.NewAdjudicationReminderJob(&fakeSender{}, "every hour", zap.NewNop())
		assert.Error(t, job.Start())
	})

	t.Run("should start and stop", func(t *testing.T) {
		job := jobs.NewAdjudicationReminderJob(&fakeSender{}, "", zap.NewNop())
		require.NoError(t, job.Start())
		job.Stop()
	})
}

type recordingJob struct {
	name     string
	startErr error
	mu       *sync.Mutex
	trace    *[]string
}

func (j recordingJob) Start() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	*j.trace = append(*j.trace, "start "+j.name)
	return j.startErr
}

func (j recordingJob) Stop() {
	j.mu.Lock()
	defer j.mu.Unlock()
	*j.trace = append(*j.trace, "stop "+j.name)
}

func TestJobManager(t *testing.T) {
	newJobs := func(failSecond bool) ([]jobs.Job, *[]string) {
		var mu sync.Mutex
		trace := &[]string{}
		second := recordingJob{name: "b", mu: &mu, trace: trace}
		if failSecond {
			second.startErr = errors.New("bad schedule")
		}
		return []jobs.Job{recordingJob{name: "a", mu: &mu, trace: trace}, second}, trace
	}

	t.Run("should start in order and stop in reverse", func(t *testing.T) {
		list, trace := newJobs(false)
		jm := jobs.NewJobManager(zap.NewNop(), list...)

		require.NoError(t, jm.StartAll())
		jm.StopAll()

		assert.Equal(t, []string{"start a", "start b", "stop b", "stop a"}, *trace)
	})

	t.Run("should stop started jobs when one fails", func(t *testing.T) {
		list, trace := newJobs(true)
		jm := jobs.NewJobManager(zap.NewNop(), list...)

		err := jm.StartAll()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "bad schedule")
		assert.Equal(t, []string{"start a", "start b", "stop a"}, *trace)
	})
}
