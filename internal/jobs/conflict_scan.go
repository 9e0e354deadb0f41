package jobs

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/qtje/comic/internal/service"
)

// ConflictScanTask refreshes the cached set of conflicted alias display
// names. Conflict state only changes when an alias is created or renamed,
// so a periodic scan keeps page reads from recomputing it.
type ConflictScanTask struct {
	aliases *service.AliasService
	cron    string
}

func NewConflictScanTask(interval string, aliases *service.AliasService) *ConflictScanTask {
	return &ConflictScanTask{
		aliases: aliases,
		cron:    interval,
	}
}

func (c *ConflictScanTask) Name() string {
	return "conflict_scan"
}

func (c *ConflictScanTask) Schedule() string {
	return c.cron
}

func (c *ConflictScanTask) Run() {
	if err := c.aliases.RefreshConflicts(context.Background()); err != nil {
		logrus.Errorf("error refreshing alias conflicts: %v", err)
	}
}
