package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hadirin/absensi-backend-go/internal/domain/attendance"
	"github.com/hadirin/absensi-backend-go/internal/domain/user"
)

// AttendanceJobs holds the nightly absence sweep. The sweep is the only
// producer of tidak_hadir records; live attempts never create them.
type AttendanceJobs struct {
	attendanceSvc attendance.AttendanceService
	records       attendance.RecordRepository
	users         user.UserRepository
	timezone      *time.Location
}

func NewAttendanceJobs(
	attendanceSvc attendance.AttendanceService,
	records attendance.RecordRepository,
	users user.UserRepository,
	timezone *time.Location,
) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceSvc: attendanceSvc,
		records:       records,
		users:         users,
		timezone:      timezone,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("mark_absent_users", 1*time.Hour, j.MarkAbsentUsers)
}

// MarkAbsentUsers creates synthetic absence records for active users with no
// masuk on the previous working day. Saturdays and Sundays are skipped.
// Duplicate-safe: rerunning the sweep returns the existing records.
func (j *AttendanceJobs) MarkAbsentUsers(ctx context.Context) error {
	// Only run at midnight (00:00-00:59 local)
	if time.Now().In(j.timezone).Hour() != 0 {
		return nil
	}

	yesterday := time.Now().In(j.timezone).AddDate(0, 0, -1)
	if yesterday.Weekday() == time.Saturday || yesterday.Weekday() == time.Sunday {
		return nil
	}

	slog.Info("Cron: Starting mark absent users job", "date", yesterday.Format("2006-01-02"))

	users, err := j.users.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to list active users: %w", err)
	}

	day := time.Date(yesterday.Year(), yesterday.Month(), yesterday.Day(), 0, 0, 0, 0, j.timezone)

	marked := 0
	for _, u := range users {
		masuk, err := j.records.GetByUserDateType(ctx, u.ID, day, attendance.TypeMasuk)
		if err != nil {
			slog.Error("Cron: Failed to check masuk record", "user_id", u.ID, "error", err)
			continue
		}
		if masuk != nil {
			// Checked in (even if rejected); the day is accounted for.
			continue
		}

		if _, err := j.attendanceSvc.MarkAbsent(ctx, u.ID, day); err != nil {
			slog.Error("Cron: Failed to mark user absent", "user_id", u.ID, "error", err)
			continue
		}
		marked++
	}

	slog.Info("Cron: Marked absent users", "count", marked)
	return nil
}
