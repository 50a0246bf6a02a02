package attendance

import (
	"context"
	"time"
)

// AttendanceService defines business logic for attendance operations.
type AttendanceService interface {
	// CheckIn classifies and persists a masuk attempt for the
	// authenticated user.
	CheckIn(ctx context.Context, req CheckRequest) (RecordResponse, error)

	// CheckOut classifies and persists a keluar attempt, closing the day's
	// session when a berhasil masuk exists.
	CheckOut(ctx context.Context, req CheckRequest) (RecordResponse, error)

	// MarkAbsent creates a synthetic tidak_hadir record for a working day
	// with no masuk. Invoked by the nightly sweep, never by a live attempt.
	MarkAbsent(ctx context.Context, userID string, date time.Time) (Record, error)

	// GetMyRecords retrieves records for the authenticated user.
	GetMyRecords(ctx context.Context, filter ListFilter) (ListRecordsResponse, error)

	// ListRecords retrieves records across users (kepala/admin).
	ListRecords(ctx context.Context, filter ListFilter) (ListRecordsResponse, error)
}
