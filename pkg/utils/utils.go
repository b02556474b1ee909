package utils

import (
	"fks-execution/pkg/logger"
)

// LogPanic is meant to be deferred. It logs a recovered panic with its stack and, when
// repanic is set, resumes panicking so the process still crashes.
func LogPanic(log *logger.Logger, name string, repanic bool) {
	r := recover()
	if r == nil {
		return
	}

	log.Error("[panic] "+name,
		logger.PanicField(r),
		logger.StackField(),
	)
	_ = log.Sync()

	if repanic {
		panic(r)
	}
}

func ToPointer[T any](value T) *T {
	return &value
}
