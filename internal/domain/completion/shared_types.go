package completion

// State is the completion state of one user on one activity.
type State int16

const (
	StateIncomplete   State = 0
	StateComplete     State = 1
	StateCompletePass State = 2
	StateCompleteFail State = 3
)

// Tracking is how an activity's completion is tracked.
type Tracking int16

const (
	TrackingNone      Tracking = 0
	TrackingManual    Tracking = 1
	TrackingAutomatic Tracking = 2
)

// CriteriaType identifies the kind of a course completion criterion.
type CriteriaType int16

const (
	CriteriaSelf     CriteriaType = 1
	CriteriaDate     CriteriaType = 2
	CriteriaUnenrol  CriteriaType = 3
	CriteriaActivity CriteriaType = 4
	CriteriaDuration CriteriaType = 5
	CriteriaGrade    CriteriaType = 6
	CriteriaRole     CriteriaType = 7
	CriteriaCourse   CriteriaType = 8
)

// Title is the criteria group caption shown in report headers.
func (c CriteriaType) Title() string {
	switch c {
	case CriteriaSelf:
		return "Self completion"
	case CriteriaDate:
		return "Date"
	case CriteriaUnenrol:
		return "Unenrolment"
	case CriteriaActivity:
		return "Activity completion"
	case CriteriaDuration:
		return "Duration"
	case CriteriaGrade:
		return "Course grade"
	case CriteriaRole:
		return "Manual completion by others"
	case CriteriaCourse:
		return "Completion of other courses"
	default:
		return "Unknown"
	}
}

// HasAggregation reports whether criteria of this type carry their own
// all/any aggregation method.
func (c CriteriaType) HasAggregation() bool {
	return c == CriteriaCourse || c == CriteriaActivity || c == CriteriaRole
}

// displayRank orders criteria types the way the completion report lays out
// its columns: other courses, activities, the remaining types, roles last.
func (c CriteriaType) displayRank() int {
	switch c {
	case CriteriaCourse:
		return 0
	case CriteriaActivity:
		return 1
	case CriteriaRole:
		return 3
	default:
		return 2
	}
}

// Aggregation combines several criteria into a single requirement.
type Aggregation int16

const (
	AggregationAll Aggregation = 1
	AggregationAny Aggregation = 2
)

func (a Aggregation) String() string {
	if a == AggregationAny {
		return "Any"
	}
	return "All"
}
