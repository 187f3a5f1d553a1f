package job

import (
	"github.com/kokorindanilll2288-sys/rdss.github.io/logger"

	"github.com/shirou/gopsutil/v4/mem"
)

const memWarnPercent = 90

// CheckMemJob warns when system memory usage gets close to the limit.
type CheckMemJob struct{}

func NewCheckMemJob() *CheckMemJob {
	return new(CheckMemJob)
}

// Here Run is an interface method of the Job interface
func (j *CheckMemJob) Run() {
	memInfo, err := mem.VirtualMemory()
	if err != nil {
		logger.Error("CheckMemJob -- get virtual memory failed:", err)
		return
	}
	if memInfo.UsedPercent >= memWarnPercent {
		logger.Warningf("memory usage at %.1f%%", memInfo.UsedPercent)
	}
}
