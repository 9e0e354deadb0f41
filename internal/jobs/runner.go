package jobs

import (
	mapset "github.com/deckarep/golang-set/v2"
	cron "github.com/robfig/cron"
	"github.com/sirupsen/logrus"
)

// Task is a named background job with a cron schedule.
type Task interface {
	Name() string
	Schedule() string
	Run()
}

// Runner schedules tasks on a cron. A task whose previous run is still in
// flight is skipped, not queued.
type Runner struct {
	cron    *cron.Cron
	running mapset.Set[string]
}

func NewRunner(tasks ...Task) *Runner {
	r := &Runner{
		cron:    cron.New(),
		running: mapset.NewSet[string](),
	}

	for _, task := range tasks {
		err := r.cron.AddFunc(task.Schedule(), r.guarded(task))
		if err != nil {
			logrus.Errorf("failed to schedule task %s: %v", task.Name(), err)
			panic(err)
		}
	}

	return r
}

// guarded wraps a task run with the overlap check. Set.Add reports whether
// the name was absent, which doubles as the try-lock.
func (r *Runner) guarded(task Task) func() {
	return func() {
		if !r.running.Add(task.Name()) {
			logrus.Warnf("task %s is still running, skipping", task.Name())
			return
		}
		defer r.running.Remove(task.Name())

		task.Run()
	}
}

func (r *Runner) Start() {
	r.cron.Start()
}

func (r *Runner) Stop() {
	logrus.Info("stopping background tasks")
	r.cron.Stop()
}
