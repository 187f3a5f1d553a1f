package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetLogsHonorsRequestedCount(t *testing.T) {
	logBuffer = nil
	for i := 0; i < 5; i++ {
		Infof("entry %d", i)
	}

	logs := GetLogs(3, "info")
	assert.Len(t, logs, 3)
	// Newest first.
	assert.Contains(t, logs[0], "entry 4")
	assert.Contains(t, logs[2], "entry 2")
}

func TestGetLogsFiltersByLevel(t *testing.T) {
	logBuffer = nil
	Debug("routine detail")
	Warning("something went wrong")

	logs := GetLogs(10, "warning")
	assert.Len(t, logs, 1)
	assert.Contains(t, logs[0], "something went wrong")
}
