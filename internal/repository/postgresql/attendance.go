package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hadirin/absensi-backend-go/internal/domain/attendance"
	"github.com/hadirin/absensi-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.RecordRepository {
	return &attendanceRepository{db: db}
}

const recordColumns = `
	r.id, r.user_id, r.date, r.ts, r.type, r.status,
	r.is_late, r.late_minutes, r.work_hours, r.overtime_hours,
	r.latitude, r.longitude, r.proof_url, r.created_at,
	u.name, u.department
`

func scanRecord(row pgx.Row) (attendance.Record, error) {
	var rec attendance.Record
	err := row.Scan(
		&rec.ID, &rec.UserID, &rec.Date, &rec.Timestamp, &rec.Type, &rec.Status,
		&rec.IsLate, &rec.LateMinutes, &rec.WorkHours, &rec.OvertimeHours,
		&rec.Latitude, &rec.Longitude, &rec.ProofURL, &rec.CreatedAt,
		&rec.UserName, &rec.Department,
	)
	return rec, err
}

// Create implements attendance.RecordRepository. The attendance_records table
// carries UNIQUE (user_id, date, type); a violation means a concurrent or
// retried submission already won, so the prior row is returned with
// ErrDuplicateSubmission.
func (a *attendanceRepository) Create(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}

	query := `
		INSERT INTO attendance_records (
			id, user_id, date, ts, type, status,
			is_late, late_minutes, work_hours, overtime_hours,
			latitude, longitude, proof_url
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
		) RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		rec.ID,
		rec.UserID,
		rec.Date,
		rec.Timestamp,
		rec.Type,
		rec.Status,
		rec.IsLate,
		rec.LateMinutes,
		rec.WorkHours,
		rec.OvertimeHours,
		rec.Latitude,
		rec.Longitude,
		rec.ProofURL,
	).Scan(&rec.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			// A surrounding transaction is aborted after the conflict, so
			// the winning row is read on a fresh pool connection. It was
			// committed earlier by the submission that won.
			existing, getErr := a.getByUserDateTypeOnPool(ctx, rec.UserID, rec.Date, rec.Type)
			if getErr != nil {
				return attendance.Record{}, fmt.Errorf("failed to load existing record after duplicate insert: %w", getErr)
			}
			if existing == nil {
				return attendance.Record{}, fmt.Errorf("duplicate insert but existing record not found: %w", err)
			}
			return *existing, attendance.ErrDuplicateSubmission
		}
		return attendance.Record{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return rec, nil
}

const getByUserDateTypeQuery = `
	SELECT ` + recordColumns + `
	FROM attendance_records r
	JOIN users u ON u.id = r.user_id
	WHERE r.user_id = $1
	  AND r.date = $2
	  AND r.type = $3
	LIMIT 1
`

// GetByUserDateType implements attendance.RecordRepository.
func (a *attendanceRepository) GetByUserDateType(ctx context.Context, userID string, date time.Time, checkType attendance.CheckType) (*attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	rec, err := scanRecord(q.QueryRow(ctx, getByUserDateTypeQuery, userID, date, checkType))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // No record for this user, day and type
		}
		return nil, fmt.Errorf("failed to get attendance record: %w", err)
	}

	return &rec, nil
}

// getByUserDateTypeOnPool bypasses any transaction in the context.
func (a *attendanceRepository) getByUserDateTypeOnPool(ctx context.Context, userID string, date time.Time, checkType attendance.CheckType) (*attendance.Record, error) {
	rec, err := scanRecord(a.db.Pool.QueryRow(ctx, getByUserDateTypeQuery, userID, date, checkType))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance record: %w", err)
	}

	return &rec, nil
}

// buildFilterClauses renders WHERE fragments for a RecordFilter.
func buildFilterClauses(filter attendance.RecordFilter) (string, []interface{}) {
	where := "WHERE 1=1"
	args := []interface{}{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.UserID != nil {
		where += " AND r.user_id = " + arg(*filter.UserID)
	}
	if filter.StartDate != nil {
		where += " AND r.ts >= " + arg(*filter.StartDate)
	}
	if filter.EndDate != nil {
		where += " AND r.ts <= " + arg(*filter.EndDate)
	}
	if filter.Type != nil {
		where += " AND r.type = " + arg(*filter.Type)
	}
	if filter.Status != nil {
		where += " AND r.status = " + arg(*filter.Status)
	}

	return where, args
}

// List implements attendance.RecordRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.RecordFilter) ([]attendance.Record, int64, error) {
	q := GetQuerier(ctx, a.db)

	where, args := buildFilterClauses(filter)

	var total int64
	countQuery := `SELECT COUNT(*) FROM attendance_records r ` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance records: %w", err)
	}

	query := `
		SELECT ` + recordColumns + `
		FROM attendance_records r
		JOIN users u ON u.id = r.user_id
		` + where + `
		ORDER BY r.ts DESC
	`

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", filter.Limit, (filter.Page-1)*filter.Limit)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate attendance records: %w", err)
	}

	return records, total, nil
}

// Query implements attendance.RecordRepository. Report generation reads the
// snapshot oldest first so dedup keeps the first occurrence in input order.
func (a *attendanceRepository) Query(ctx context.Context, filter attendance.RecordFilter) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	where, args := buildFilterClauses(filter)

	query := `
		SELECT ` + recordColumns + `
		FROM attendance_records r
		JOIN users u ON u.id = r.user_id
		` + where + `
		ORDER BY r.ts ASC, r.created_at ASC
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance records: %w", err)
	}

	return records, nil
}
