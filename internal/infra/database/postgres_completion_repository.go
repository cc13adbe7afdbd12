package database

import (
	"context"
	"database/sql"
	"fmt"

	"course_completion_report/internal/domain/completion"

	"github.com/lib/pq" // For pq.Array and driver registration
)

type PostgresCompletionRepository struct {
	db *sql.DB
}

func NewPostgresCompletionRepository(db *sql.DB) *PostgresCompletionRepository {
	return &PostgresCompletionRepository{db: db}
}

// --- Activity completion ---

func (r *PostgresCompletionRepository) ListTrackedActivities(ctx context.Context, courseID int64) ([]completion.Activity, error) {
	query := `SELECT m.id, m.modname, m.name, s.section, m.completion
               FROM course_modules m
               JOIN course_sections s ON s.id = m.section_id
               WHERE m.course_id = $1 AND m.completion <> 0 AND m.visible
               ORDER BY s.section, m.position, m.id`

	rows, err := r.db.QueryContext(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("error listing tracked activities: %w", err)
	}
	defer rows.Close()

	activities := make([]completion.Activity, 0)
	for rows.Next() {
		var a completion.Activity
		if err := rows.Scan(&a.ID, &a.ModName, &a.Name, &a.SectionNumber, &a.Tracking); err != nil {
			return nil, fmt.Errorf("error scanning tracked activity: %w", err)
		}
		activities = append(activities, a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tracked activities: %w", err)
	}
	return activities, nil
}

func (r *PostgresCompletionRepository) ListActivityCompletions(ctx context.Context, courseID int64, userIDs []int64) ([]completion.Record, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	query := `SELECT c.user_id, c.coursemodule_id, c.completionstate, c.overrideby, c.timemodified
               FROM course_modules_completion c
               JOIN course_modules m ON m.id = c.coursemodule_id
               WHERE m.course_id = $1 AND c.user_id = ANY($2::bigint[])`

	rows, err := r.db.QueryContext(ctx, query, courseID, pq.Array(userIDs))
	if err != nil {
		return nil, fmt.Errorf("error querying activity completions: %w", err)
	}
	defer rows.Close()

	records := make([]completion.Record, 0)
	for rows.Next() {
		var (
			rec        completion.Record
			overrideBy sql.NullInt64
			modified   sql.NullTime
		)
		if err := rows.Scan(&rec.UserID, &rec.ActivityID, &rec.State, &overrideBy, &modified); err != nil {
			return nil, fmt.Errorf("error scanning activity completion row: %w", err)
		}
		if overrideBy.Valid {
			id := overrideBy.Int64
			rec.OverriddenBy = &id
		}
		if modified.Valid {
			ts := modified.Time
			rec.TimeModified = &ts
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activity completion rows: %w", err)
	}
	return records, nil
}

// --- Course completion criteria ---

func (r *PostgresCompletionRepository) ListCriteria(ctx context.Context, courseID int64) ([]completion.Criterion, error) {
	query := `SELECT cr.id, cr.criteriatype, cr.module_id, COALESCE(NULLIF(cr.title, ''), m.name, '')
               FROM course_completion_criteria cr
               LEFT JOIN course_modules m ON m.id = cr.module_id
               WHERE cr.course_id = $1
               ORDER BY cr.id`

	rows, err := r.db.QueryContext(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("error listing completion criteria: %w", err)
	}
	defer rows.Close()

	criteria := make([]completion.Criterion, 0)
	for rows.Next() {
		var (
			c        completion.Criterion
			moduleID sql.NullInt64
		)
		if err := rows.Scan(&c.ID, &c.Type, &moduleID, &c.Title); err != nil {
			return nil, fmt.Errorf("error scanning completion criterion: %w", err)
		}
		if moduleID.Valid {
			id := moduleID.Int64
			c.ModuleID = &id
		}
		criteria = append(criteria, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating completion criteria: %w", err)
	}
	return criteria, nil
}

func (r *PostgresCompletionRepository) GetAggregationMethods(ctx context.Context, courseID int64) (completion.AggregationMethods, error) {
	methods := completion.AggregationMethods{
		Overall: completion.AggregationAll,
		ByType:  make(map[completion.CriteriaType]completion.Aggregation),
	}

	query := `SELECT criteriatype, method FROM course_completion_aggr_methd WHERE course_id = $1`
	rows, err := r.db.QueryContext(ctx, query, courseID)
	if err != nil {
		return methods, fmt.Errorf("error querying aggregation methods: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			criteriaType sql.NullInt16
			method       completion.Aggregation
		)
		if err := rows.Scan(&criteriaType, &method); err != nil {
			return methods, fmt.Errorf("error scanning aggregation method: %w", err)
		}
		if !criteriaType.Valid {
			methods.Overall = method
			continue
		}
		methods.ByType[completion.CriteriaType(criteriaType.Int16)] = method
	}
	if err := rows.Err(); err != nil {
		return methods, fmt.Errorf("error iterating aggregation methods: %w", err)
	}
	return methods, nil
}

func (r *PostgresCompletionRepository) ListCriteriaCompletions(ctx context.Context, courseID int64, userIDs []int64) ([]completion.CriterionCompletion, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	query := `SELECT cc.criteria_id, cc.user_id, cc.timecompleted
               FROM course_completion_crit_compl cc
               JOIN course_completion_criteria cr ON cr.id = cc.criteria_id
               WHERE cr.course_id = $1 AND cc.user_id = ANY($2::bigint[])`

	rows, err := r.db.QueryContext(ctx, query, courseID, pq.Array(userIDs))
	if err != nil {
		return nil, fmt.Errorf("error querying criteria completions: %w", err)
	}
	defer rows.Close()

	out := make([]completion.CriterionCompletion, 0)
	for rows.Next() {
		var cc completion.CriterionCompletion
		if err := rows.Scan(&cc.CriterionID, &cc.UserID, &cc.TimeCompleted); err != nil {
			return nil, fmt.Errorf("error scanning criteria completion: %w", err)
		}
		out = append(out, cc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating criteria completions: %w", err)
	}
	return out, nil
}

func (r *PostgresCompletionRepository) ListCourseCompletions(ctx context.Context, courseID int64, userIDs []int64) ([]completion.CourseCompletion, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	query := `SELECT user_id, timecompleted
               FROM course_completions
               WHERE course_id = $1 AND timecompleted IS NOT NULL AND user_id = ANY($2::bigint[])`

	rows, err := r.db.QueryContext(ctx, query, courseID, pq.Array(userIDs))
	if err != nil {
		return nil, fmt.Errorf("error querying course completions: %w", err)
	}
	defer rows.Close()

	out := make([]completion.CourseCompletion, 0)
	for rows.Next() {
		var cc completion.CourseCompletion
		if err := rows.Scan(&cc.UserID, &cc.TimeCompleted); err != nil {
			return nil, fmt.Errorf("error scanning course completion: %w", err)
		}
		out = append(out, cc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating course completions: %w", err)
	}
	return out, nil
}
