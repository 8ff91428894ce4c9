package log

const (
	NamespaceKey = "futures"

	TaskIDKey   = NamespaceKey + ".task.id"
	TaskNameKey = NamespaceKey + ".task.name"

	AttemptKey  = NamespaceKey + ".attempt"
	DurationKey = NamespaceKey + ".duration_ms"

	ReasonKey = NamespaceKey + ".reason"
	StateKey  = NamespaceKey + ".future.state"

	PendingTasksKey = NamespaceKey + ".tasks.pending"

	// AtKey is the time at which a timer is scheduled to fire
	AtKey = NamespaceKey + ".timer.at"
)
