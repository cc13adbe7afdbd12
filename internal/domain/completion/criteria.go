package completion

import (
	"sort"
	"time"
)

// Criterion is one course completion requirement.
type Criterion struct {
	ID       int64
	Type     CriteriaType
	ModuleID *int64 // set for activity criteria
	Title    string
}

// CriterionCompletion records that a user satisfied a criterion.
type CriterionCompletion struct {
	CriterionID   int64
	UserID        int64
	TimeCompleted time.Time
}

// CourseCompletion records that a user completed the whole course.
type CourseCompletion struct {
	UserID        int64
	TimeCompleted time.Time
}

// AggregationMethods holds the overall course aggregation and the methods
// configured per criteria type. Missing entries default to AggregationAll.
type AggregationMethods struct {
	Overall Aggregation
	ByType  map[CriteriaType]Aggregation
}

// For returns the aggregation method configured for a criteria type.
func (m AggregationMethods) For(t CriteriaType) Aggregation {
	if a, ok := m.ByType[t]; ok {
		return a
	}
	return AggregationAll
}

// OverallMethod returns the course-level method, defaulting to all.
func (m AggregationMethods) OverallMethod() Aggregation {
	if m.Overall == 0 {
		return AggregationAll
	}
	return m.Overall
}

// SortForDisplay orders criteria by report column order, keeping same-type
// criteria together and preserving their relative order.
func SortForDisplay(criteria []Criterion) {
	sort.SliceStable(criteria, func(i, j int) bool {
		ri, rj := criteria[i].Type.displayRank(), criteria[j].Type.displayRank()
		if ri != rj {
			return ri < rj
		}
		if ri == 2 {
			return criteria[i].Type < criteria[j].Type
		}
		return false
	})
}
