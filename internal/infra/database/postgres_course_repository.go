package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"course_completion_report/internal/domain/course"
)

type PostgresCourseRepository struct {
	db *sql.DB
}

func NewPostgresCourseRepository(db *sql.DB) *PostgresCourseRepository {
	return &PostgresCourseRepository{db: db}
}

func (r *PostgresCourseRepository) GetByID(ctx context.Context, id int64) (*course.Course, error) {
	query := `SELECT id, fullname, shortname, enable_completion FROM courses WHERE id = $1`
	c := &course.Course{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.FullName, &c.ShortName, &c.CompletionEnabled)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, course.ErrNotFound
		}
		return nil, fmt.Errorf("error getting course by ID: %w", err)
	}
	return c, nil
}

func (r *PostgresCourseRepository) GetUserByID(ctx context.Context, id int64) (*course.User, error) {
	query := `SELECT id, firstname, lastname, email, idnumber FROM users WHERE id = $1`
	u := &course.User{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.IDNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, course.ErrUserNotFound
		}
		return nil, fmt.Errorf("error getting user by ID: %w", err)
	}
	return u, nil
}

func (r *PostgresCourseRepository) ListSections(ctx context.Context, courseID int64) ([]course.Section, error) {
	query := `SELECT id, section, name FROM course_sections WHERE course_id = $1 ORDER BY section`

	rows, err := r.db.QueryContext(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("error listing course sections: %w", err)
	}
	defer rows.Close()

	sections := make([]course.Section, 0)
	for rows.Next() {
		var s course.Section
		if err := rows.Scan(&s.ID, &s.Number, &s.Name); err != nil {
			return nil, fmt.Errorf("error scanning course section: %w", err)
		}
		sections = append(sections, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating course sections: %w", err)
	}
	return sections, nil
}

func (r *PostgresCourseRepository) CountTrackedUsers(ctx context.Context, courseID int64, filter course.UserFilter) (int, error) {
	where, args := trackedUsersWhere(courseID, filter)
	query := `SELECT COUNT(*) FROM users u JOIN course_enrolments e ON e.user_id = u.id WHERE ` + where

	var total int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("error counting tracked users: %w", err)
	}
	return total, nil
}

func (r *PostgresCourseRepository) ListTrackedUsers(ctx context.Context, courseID int64, filter course.UserFilter) ([]course.User, error) {
	where, args := trackedUsersWhere(courseID, filter)

	var query strings.Builder
	query.WriteString(`SELECT u.id, u.firstname, u.lastname, u.email, u.idnumber
               FROM users u JOIN course_enrolments e ON e.user_id = u.id WHERE `)
	query.WriteString(where)
	query.WriteString(" ORDER BY ")
	query.WriteString(orderBy(filter.Sort))
	if filter.Limit > 0 {
		args = append(args, filter.Limit, filter.Offset)
		fmt.Fprintf(&query, " LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	rows, err := r.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("error listing tracked users: %w", err)
	}
	defer rows.Close()

	users := make([]course.User, 0)
	for rows.Next() {
		var u course.User
		if err := rows.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.IDNumber); err != nil {
			return nil, fmt.Errorf("error scanning tracked user: %w", err)
		}
		users = append(users, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tracked users: %w", err)
	}
	return users, nil
}

// trackedUsersWhere builds the shared condition for enrolled, non-deleted
// users whose enrolment window contains the current time.
func trackedUsersWhere(courseID int64, filter course.UserFilter) (string, []interface{}) {
	conds := []string{
		"e.course_id = $1",
		"e.active",
		"NOT u.deleted",
		"(e.time_start IS NULL OR e.time_start <= NOW())",
		"(e.time_end IS NULL OR e.time_end > NOW())",
	}
	args := []interface{}{courseID}

	if filter.FirstInitial != "" {
		args = append(args, likePrefix(filter.FirstInitial))
		conds = append(conds, fmt.Sprintf("u.firstname ILIKE $%d", len(args)))
	}
	if filter.LastInitial != "" {
		args = append(args, likePrefix(filter.LastInitial))
		conds = append(conds, fmt.Sprintf("u.lastname ILIKE $%d", len(args)))
	}
	return strings.Join(conds, " AND "), args
}

func orderBy(sort course.SortField) string {
	if sort == course.SortFirstName {
		return "u.firstname, u.lastname, u.id"
	}
	return "u.lastname, u.firstname, u.id"
}

// likePrefix escapes LIKE wildcards and appends a trailing %.
func likePrefix(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s) + "%"
}
