package service

import (
	"time"

	"github.com/kokorindanilll2288-sys/rdss.github.io/config"
	"github.com/kokorindanilll2288-sys/rdss.github.io/logger"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
)

// Status carries the system and panel counters shown on the admin panel.
type Status struct {
	T        time.Time `json:"-"`
	Cpu      float64   `json:"cpu"`
	CpuCores int       `json:"cpuCores"`
	Mem      struct {
		Current uint64 `json:"current"`
		Total   uint64 `json:"total"`
	} `json:"mem"`
	Uptime   uint64 `json:"uptime"`
	Version  string `json:"version"`
	Messages struct {
		Total   int64 `json:"total"`
		Pending int64 `json:"pending"`
	} `json:"messages"`
}

// ServerService collects system status for the admin panel.
type ServerService struct {
	messageService MessageService
}

func (s *ServerService) GetStatus() *Status {
	status := &Status{
		T:       time.Now(),
		Version: config.GetVersion(),
	}

	percents, err := cpu.Percent(0, false)
	if err != nil {
		logger.Warning("get cpu percent failed:", err)
	} else if len(percents) > 0 {
		status.Cpu = percents[0]
	}

	cores, err := cpu.Counts(false)
	if err != nil {
		logger.Warning("get cpu cores count failed:", err)
	} else {
		status.CpuCores = cores
	}

	memInfo, err := mem.VirtualMemory()
	if err != nil {
		logger.Warning("get virtual memory failed:", err)
	} else {
		status.Mem.Current = memInfo.Used
		status.Mem.Total = memInfo.Total
	}

	uptime, err := host.Uptime()
	if err != nil {
		logger.Warning("get uptime failed:", err)
	} else {
		status.Uptime = uptime
	}

	total, err := s.messageService.CountMessages()
	if err != nil {
		logger.Warning("count messages failed:", err)
	} else {
		status.Messages.Total = total
	}
	pending, err := s.messageService.CountPending()
	if err != nil {
		logger.Warning("count pending messages failed:", err)
	} else {
		status.Messages.Pending = pending
	}

	return status
}

// GetLogs returns recent buffered log lines for the admin panel.
func (s *ServerService) GetLogs(count int, level string) []string {
	return logger.GetLogs(count, level)
}
