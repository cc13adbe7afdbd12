package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"course_completion_report/internal/domain/completion"
	"course_completion_report/internal/domain/course"
	"course_completion_report/internal/domain/report"
)

// Completion descriptions shown in report cells.
const (
	textNotCompleted   = "Not completed"
	textCompleted      = "Completed"
	textCompletedPass  = "Completed (achieved pass grade)"
	textCompletedFail  = "Completed (did not achieve pass grade)"
	textOverrideSuffix = " (set by %s)"
)

// describeState returns the cell description of a completion state. An
// override name is only shown for the plain complete/incomplete states.
func describeState(state completion.State, overriddenBy string) string {
	switch state {
	case completion.StateCompletePass:
		return textCompletedPass
	case completion.StateCompleteFail:
		return textCompletedFail
	}

	text := textNotCompleted
	if state == completion.StateComplete {
		text = textCompleted
	}
	if overriddenBy != "" {
		text += fmt.Sprintf(textOverrideSuffix, overriddenBy)
	}
	return text
}

// cellFormatter resolves completion data into report cells.
type cellFormatter struct {
	layout   string
	location *time.Location
	names    map[int64]string // override user names
}

func (f *cellFormatter) date(t time.Time) string {
	if f.location != nil {
		t = t.In(f.location)
	}
	return t.Format(f.layout)
}

// activityCell resolves one user's completion on one activity. A missing
// record means incomplete, not overridden, with no date.
func (f *cellFormatter) activityCell(rec completion.Record, found bool) report.Cell {
	if !found {
		return report.Cell{Primary: describeState(completion.StateIncomplete, "")}
	}

	var overriddenBy string
	if rec.OverriddenBy != nil {
		overriddenBy = f.names[*rec.OverriddenBy]
	}

	cell := report.Cell{Primary: describeState(rec.State, overriddenBy)}
	if rec.TimeModified != nil {
		cell.Secondary = f.date(*rec.TimeModified)
	}
	return cell
}

// completedCell is used for criteria and course completion, which are either
// done at a point in time or not done.
func (f *cellFormatter) completedCell(at *time.Time) report.Cell {
	if at == nil {
		return report.Cell{Primary: textNotCompleted}
	}
	return report.Cell{Primary: textCompleted, Secondary: f.date(*at)}
}

// overrideNames loads display names of every user who overrode a record.
// Users that no longer exist are shown by id.
func overrideNames(ctx context.Context, repo course.Repository, records []completion.Record) (map[int64]string, error) {
	names := make(map[int64]string)
	for _, rec := range records {
		if rec.OverriddenBy == nil {
			continue
		}
		id := *rec.OverriddenBy
		if _, ok := names[id]; ok {
			continue
		}
		u, err := repo.GetUserByID(ctx, id)
		if err != nil {
			if errors.Is(err, course.ErrUserNotFound) {
				names[id] = fmt.Sprintf("user %d", id)
				continue
			}
			return nil, fmt.Errorf("failed to load overriding user %d: %w", id, err)
		}
		names[id] = u.FullName()
	}
	return names, nil
}
