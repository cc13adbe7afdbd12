package completion

import "time"

// Activity is a course module with completion tracking enabled.
type Activity struct {
	ID            int64
	ModName       string // e.g. quiz, forum, assign
	Name          string
	SectionNumber int
	Tracking      Tracking
}

// Record is one user's completion state on one activity.
type Record struct {
	UserID       int64
	ActivityID   int64
	State        State
	OverriddenBy *int64     // user who overrode the state, if any
	TimeModified *time.Time // nil when the state was never recorded
}

// Progress maps activity IDs to a user's completion records.
type Progress map[int64]Record

// ByUser indexes records by user and activity.
func ByUser(records []Record) map[int64]Progress {
	out := make(map[int64]Progress)
	for _, r := range records {
		p, ok := out[r.UserID]
		if !ok {
			p = make(Progress)
			out[r.UserID] = p
		}
		p[r.ActivityID] = r
	}
	return out
}
