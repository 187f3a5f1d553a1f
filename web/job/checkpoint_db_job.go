package job

import (
	"github.com/kokorindanilll2288-sys/rdss.github.io/database"
	"github.com/kokorindanilll2288-sys/rdss.github.io/logger"
)

// CheckpointDBJob flushes the sqlite WAL back into the main database
// file once a day.
type CheckpointDBJob struct{}

func NewCheckpointDBJob() *CheckpointDBJob {
	return new(CheckpointDBJob)
}

// Here Run is an interface method of the Job interface
func (j *CheckpointDBJob) Run() {
	if err := database.Checkpoint(); err != nil {
		logger.Warning("CheckpointDBJob -- checkpoint failed:", err)
	}
}
