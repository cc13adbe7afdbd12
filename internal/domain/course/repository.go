package course

import (
	"context"
	"errors"
)

// Repository defines the read operations on courses and their users.
type Repository interface {
	GetByID(ctx context.Context, id int64) (*Course, error)
	GetUserByID(ctx context.Context, id int64) (*User, error)
	ListSections(ctx context.Context, courseID int64) ([]Section, error)

	// CountTrackedUsers and ListTrackedUsers cover non-deleted users with an
	// active enrolment in the course. Offset and Limit are ignored by Count.
	CountTrackedUsers(ctx context.Context, courseID int64, filter UserFilter) (int, error)
	ListTrackedUsers(ctx context.Context, courseID int64, filter UserFilter) ([]User, error)
}

// Errors returned by Repository implementations.
var (
	ErrNotFound     = errors.New("course not found")
	ErrUserNotFound = errors.New("user not found")
)
