package attendance

import (
	"math"
	"time"

	"github.com/hadirin/absensi-backend-go/internal/domain/attendance"
	"github.com/hadirin/absensi-backend-go/internal/domain/office"
	"github.com/hadirin/absensi-backend-go/internal/domain/shift"
	"github.com/hadirin/absensi-backend-go/internal/pkg/face"
	"github.com/hadirin/absensi-backend-go/internal/pkg/geo"
)

// ClassifyInput is the configuration snapshot a single classification runs
// against. It is read once at the start of the call; a concurrent settings
// update never changes an in-flight outcome.
type ClassifyInput struct {
	Office        office.Location
	Policy        shift.Policy
	FaceThreshold float64
	Timezone      *time.Location
}

// Classify turns a live check attempt into an attendance record. Precedence
// is fixed: face validity before location validity before berhasil, so a
// spoofed or absent face match is reported even when the location is also
// wrong. Rejected attempts still produce records for audit.
//
// Missing coordinates on an otherwise valid attempt are an input error, not
// a compliance outcome: geo.ErrMissingCoordinates is returned and nothing
// should be persisted.
func Classify(attempt attendance.CheckAttempt, in ClassifyInput) (attendance.Record, error) {
	localTime := attempt.OccurredAt.In(in.Timezone)

	rec := attendance.Record{
		UserID:    attempt.UserID,
		Date:      startOfDay(localTime),
		Timestamp: attempt.OccurredAt,
		Type:      attempt.Type,
	}
	if attempt.Coordinates != nil {
		lat, lng := attempt.Coordinates.Latitude, attempt.Coordinates.Longitude
		rec.Latitude = &lat
		rec.Longitude = &lng
	}

	if !face.IsMatch(attempt.FaceConfidence, in.FaceThreshold) {
		rec.Status = attendance.StatusWajahTidakValid
		return rec, nil
	}

	center := geo.Point{Latitude: in.Office.Latitude, Longitude: in.Office.Longitude}
	inside, err := geo.IsWithinRadius(attempt.Coordinates, center, in.Office.RadiusMeters)
	if err != nil {
		return attendance.Record{}, err
	}
	if !inside {
		rec.Status = attendance.StatusLokasiTidakValid
		return rec, nil
	}

	rec.Status = attendance.StatusBerhasil

	if attempt.Type == attendance.TypeMasuk {
		graceLimit := in.Policy.GraceLimitOn(localTime, in.Timezone)
		if localTime.After(graceLimit) {
			rec.IsLate = true
			// Lateness is measured from the scheduled start, not from the
			// end of the grace period.
			diff := localTime.Sub(in.Policy.StartOn(localTime, in.Timezone)).Minutes()
			if diff > 0 {
				rec.LateMinutes = int(math.Floor(diff))
			}
		}
	}

	return rec, nil
}

// NewAbsenceRecord builds the synthetic tidak_hadir record for a working day
// with no masuk. Produced by the nightly sweep, never by a live attempt.
func NewAbsenceRecord(userID string, date time.Time, loc *time.Location) attendance.Record {
	day := startOfDay(date.In(loc))
	return attendance.Record{
		UserID:    userID,
		Date:      day,
		Timestamp: day,
		Type:      attendance.TypeAbsent,
		Status:    attendance.StatusTidakHadir,
	}
}

// startOfDay truncates t to local midnight, keeping its location.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
