package app

import "errors"

// Custom application-level errors for report building
var (
	ErrCompletionNotEnabled = errors.New("completion tracking is not enabled for this course")
	ErrNoActivities         = errors.New("no activities with completion tracking in this course")
	ErrNoCriteria           = errors.New("no course completion criteria have been set")
	ErrUnsupportedFormat    = errors.New("unsupported export format")
)
