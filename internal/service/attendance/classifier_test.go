package attendance

import (
	"testing"
	"time"

	"github.com/hadirin/absensi-backend-go/internal/domain/attendance"
	"github.com/hadirin/absensi-backend-go/internal/domain/office"
	"github.com/hadirin/absensi-backend-go/internal/domain/shift"
	"github.com/hadirin/absensi-backend-go/internal/pkg/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testZone = time.FixedZone("WIB", 7*3600)

func testInput() ClassifyInput {
	return ClassifyInput{
		Office: office.Location{
			Latitude:     -6.200000,
			Longitude:    106.816666,
			Address:      "Jl. Jend. Sudirman No. 1, Jakarta",
			RadiusMeters: 150,
		},
		Policy: shift.Policy{
			StartTime:     time.Date(0, 1, 1, 8, 0, 0, 0, time.UTC),
			GraceMinutes:  10,
			StandardHours: 8,
		},
		FaceThreshold: 0.8,
		Timezone:      testZone,
	}
}

func conf(v float64) *float64 { return &v }

func insideOffice() *geo.Point {
	// ~111m north of the office, inside the 150m radius
	return &geo.Point{Latitude: -6.199000, Longitude: 106.816666}
}

func outsideOffice() *geo.Point {
	// ~333m north of the office
	return &geo.Point{Latitude: -6.197000, Longitude: 106.816666}
}

func attemptAt(hour, minute int, p *geo.Point, confidence *float64) attendance.CheckAttempt {
	return attendance.CheckAttempt{
		UserID:         "user-1",
		OccurredAt:     time.Date(2026, 3, 2, hour, minute, 0, 0, testZone),
		Type:           attendance.TypeMasuk,
		Coordinates:    p,
		FaceConfidence: confidence,
	}
}

func TestClassifySuccessfulOnTime(t *testing.T) {
	rec, err := Classify(attemptAt(8, 5, insideOffice(), conf(0.9)), testInput())
	require.NoError(t, err)

	assert.Equal(t, attendance.StatusBerhasil, rec.Status)
	assert.False(t, rec.IsLate, "08:05 with a 10 minute grace period is on time")
	assert.Equal(t, 0, rec.LateMinutes)
	assert.Equal(t, "2026-03-02", rec.Date.Format("2006-01-02"))
}

func TestClassifyLateAfterGrace(t *testing.T) {
	rec, err := Classify(attemptAt(8, 15, insideOffice(), conf(0.9)), testInput())
	require.NoError(t, err)

	assert.Equal(t, attendance.StatusBerhasil, rec.Status)
	assert.True(t, rec.IsLate)
	// Lateness counts from 08:00, not from the end of the grace period.
	assert.Equal(t, 15, rec.LateMinutes)
}

func TestClassifyExactlyAtGraceLimit(t *testing.T) {
	rec, err := Classify(attemptAt(8, 10, insideOffice(), conf(0.9)), testInput())
	require.NoError(t, err)

	assert.False(t, rec.IsLate, "exactly start+grace is still on time")
	assert.Equal(t, 0, rec.LateMinutes)
}

func TestClassifyInvalidFaceWinsOverInvalidLocation(t *testing.T) {
	rec, err := Classify(attemptAt(8, 0, outsideOffice(), conf(0.5)), testInput())
	require.NoError(t, err)

	assert.Equal(t, attendance.StatusWajahTidakValid, rec.Status)
}

func TestClassifyNilConfidenceFailsClosed(t *testing.T) {
	rec, err := Classify(attemptAt(8, 0, insideOffice(), nil), testInput())
	require.NoError(t, err)

	assert.Equal(t, attendance.StatusWajahTidakValid, rec.Status)
}

func TestClassifyOutsideGeofence(t *testing.T) {
	rec, err := Classify(attemptAt(8, 0, outsideOffice(), conf(0.9)), testInput())
	require.NoError(t, err)

	assert.Equal(t, attendance.StatusLokasiTidakValid, rec.Status)
	assert.False(t, rec.IsLate, "lateness only applies to berhasil masuk")
	require.NotNil(t, rec.Latitude)
	assert.InDelta(t, -6.197000, *rec.Latitude, 1e-9)
}

func TestClassifyMissingCoordinatesWithValidFace(t *testing.T) {
	_, err := Classify(attemptAt(8, 0, nil, conf(0.9)), testInput())
	assert.ErrorIs(t, err, geo.ErrMissingCoordinates)
}

func TestClassifyMissingCoordinatesWithInvalidFace(t *testing.T) {
	// Face rejection takes precedence, so the attempt is still recorded.
	rec, err := Classify(attemptAt(8, 0, nil, conf(0.3)), testInput())
	require.NoError(t, err)

	assert.Equal(t, attendance.StatusWajahTidakValid, rec.Status)
	assert.Nil(t, rec.Latitude)
	assert.Nil(t, rec.Longitude)
}

func TestClassifyKeluarNeverLate(t *testing.T) {
	attempt := attemptAt(17, 30, insideOffice(), conf(0.9))
	attempt.Type = attendance.TypeKeluar

	rec, err := Classify(attempt, testInput())
	require.NoError(t, err)

	assert.Equal(t, attendance.StatusBerhasil, rec.Status)
	assert.False(t, rec.IsLate)
	assert.Equal(t, 0, rec.LateMinutes)
}

func TestNewAbsenceRecord(t *testing.T) {
	date := time.Date(2026, 3, 2, 14, 30, 0, 0, testZone)
	rec := NewAbsenceRecord("user-1", date, testZone)

	assert.Equal(t, attendance.TypeAbsent, rec.Type)
	assert.Equal(t, attendance.StatusTidakHadir, rec.Status)
	assert.Equal(t, "2026-03-02", rec.Date.Format("2006-01-02"))
	assert.True(t, rec.Timestamp.Equal(rec.Date), "synthetic record is anchored at local midnight")
	assert.Nil(t, rec.Latitude)
	assert.Nil(t, rec.Longitude)
}
