package job

import (
	"github.com/kokorindanilll2288-sys/rdss.github.io/logger"
	"github.com/kokorindanilll2288-sys/rdss.github.io/web/service"
)

// CheckQueueJob periodically logs how many flagged messages are waiting
// for the admin.
type CheckQueueJob struct {
	messageService service.MessageService
}

func NewCheckQueueJob() *CheckQueueJob {
	return new(CheckQueueJob)
}

// Here Run is an interface method of the Job interface
func (j *CheckQueueJob) Run() {
	pending, err := j.messageService.CountPending()
	if err != nil {
		logger.Warning("CheckQueueJob -- count pending messages failed:", err)
		return
	}
	if pending > 0 {
		logger.Infof("moderation queue has %d pending messages", pending)
	}
}
