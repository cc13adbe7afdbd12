package completion

import "context"

// Repository defines read operations over activity and course completion data.
type Repository interface {
	// ListTrackedActivities returns visible activities with completion
	// tracking, ordered by section number then position in the section.
	ListTrackedActivities(ctx context.Context, courseID int64) ([]Activity, error)
	ListActivityCompletions(ctx context.Context, courseID int64, userIDs []int64) ([]Record, error)

	// ListCriteria returns the course completion criteria in storage order.
	ListCriteria(ctx context.Context, courseID int64) ([]Criterion, error)
	GetAggregationMethods(ctx context.Context, courseID int64) (AggregationMethods, error)
	ListCriteriaCompletions(ctx context.Context, courseID int64, userIDs []int64) ([]CriterionCompletion, error)
	ListCourseCompletions(ctx context.Context, courseID int64, userIDs []int64) ([]CourseCompletion, error)
}
