package ports

import "time"

type SchedulerMetrics interface {
	RecordRun(subsystem string, elapsed time.Duration)
	RecordFailure(subsystem string)
}

type EventMetrics interface {
	RecordEvent(kind string)
}
