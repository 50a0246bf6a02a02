package attendance

import (
	"context"
	"time"
)

// RecordFilter narrows repository queries. Nil fields impose no constraint.
type RecordFilter struct {
	UserID    *string
	StartDate *time.Time
	EndDate   *time.Time
	Type      *CheckType
	Status    *Status

	// Pagination; zero values mean no paging (full snapshot).
	Page  int
	Limit int
}

// RecordRepository defines data access for attendance records.
type RecordRepository interface {
	// Create inserts a record. On a (user_id, date, type) uniqueness
	// violation it returns the existing authoritative record together with
	// ErrDuplicateSubmission.
	Create(ctx context.Context, rec Record) (Record, error)

	// GetByUserDateType returns the authoritative record for a user, working
	// day and type, or nil when none exists.
	GetByUserDateType(ctx context.Context, userID string, date time.Time, checkType CheckType) (*Record, error)

	// List retrieves records with filters and pagination, newest first.
	List(ctx context.Context, filter RecordFilter) ([]Record, int64, error)

	// Query fetches a point-in-time snapshot for report generation,
	// oldest first, without pagination.
	Query(ctx context.Context, filter RecordFilter) ([]Record, error)
}
