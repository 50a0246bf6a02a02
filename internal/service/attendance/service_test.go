package attendance

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"mime/multipart"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/hadirin/absensi-backend-go/internal/domain/attendance"
	"github.com/hadirin/absensi-backend-go/internal/domain/office"
	"github.com/hadirin/absensi-backend-go/internal/domain/shift"
	"github.com/hadirin/absensi-backend-go/internal/pkg/face"
	"github.com/hadirin/absensi-backend-go/internal/pkg/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRecords struct {
	created   []attendance.Record
	existing  *attendance.Record
	masuk     *attendance.Record
	duplicate bool
}

func (f *fakeRecords) Create(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	if f.duplicate {
		return *f.existing, attendance.ErrDuplicateSubmission
	}
	if rec.ID == "" {
		rec.ID = "rec-1"
	}
	rec.CreatedAt = time.Now()
	f.created = append(f.created, rec)
	return rec, nil
}

func (f *fakeRecords) GetByUserDateType(ctx context.Context, userID string, date time.Time, checkType attendance.CheckType) (*attendance.Record, error) {
	if checkType == attendance.TypeMasuk {
		return f.masuk, nil
	}
	return nil, nil
}

func (f *fakeRecords) List(ctx context.Context, filter attendance.RecordFilter) ([]attendance.Record, int64, error) {
	return f.created, int64(len(f.created)), nil
}

func (f *fakeRecords) Query(ctx context.Context, filter attendance.RecordFilter) ([]attendance.Record, error) {
	return f.created, nil
}

type fakeOffices struct{ loc office.Location }

func (f *fakeOffices) Get(ctx context.Context) (office.Location, error) { return f.loc, nil }
func (f *fakeOffices) Upsert(ctx context.Context, loc office.Location) (office.Location, error) {
	return loc, nil
}

type fakeShifts struct{ policy shift.Policy }

func (f *fakeShifts) ResolvePolicy(ctx context.Context, userID string, date time.Time) (shift.Policy, error) {
	return f.policy, nil
}

type fakeRecognizer struct {
	confidence *float64
	calls      int
}

func (f *fakeRecognizer) MatchConfidence(ctx context.Context, userID string, image []byte) (*float64, error) {
	f.calls++
	return f.confidence, nil
}

type fakeFiles struct{}

func (f *fakeFiles) UploadCaptureProof(ctx context.Context, userID string, capturedAt time.Time, file io.Reader, filename string) (string, error) {
	return "captures/" + userID + "/proof.jpg", nil
}

func (f *fakeFiles) ProofURL(ctx context.Context, path string) (string, error) {
	return "http://localhost:8080/uploads/" + path, nil
}

type fakeUpload struct{ *bytes.Reader }

func (fakeUpload) Close() error { return nil }

func photoRequest(lat, lng, confidence *float64) attendance.CheckRequest {
	return attendance.CheckRequest{
		Latitude:       lat,
		Longitude:      lng,
		FaceConfidence: confidence,
		File:           fakeUpload{bytes.NewReader([]byte("jpeg-bytes"))},
		FileHeader:     &multipart.FileHeader{Filename: "selfie.jpg", Size: 1024},
	}
}

func authedContext(t *testing.T, userID string) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"user_id": userID,
		"role":    "karyawan",
		"type":    "access",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func newTestService(records *fakeRecords, recognizer *fakeRecognizer, at time.Time) *attendanceService {
	in := testInput()
	var rec face.Recognizer
	if recognizer != nil {
		rec = recognizer
	}
	svc := NewAttendanceService(
		nil,
		records,
		&fakeOffices{loc: in.Office},
		&fakeShifts{policy: in.Policy},
		rec,
		&fakeFiles{},
		in.FaceThreshold,
		testZone,
		slog.Default(),
	).(*attendanceService)
	svc.now = func() time.Time { return at }
	return svc
}

func TestCheckInSuccess(t *testing.T) {
	records := &fakeRecords{}
	svc := newTestService(records, nil, time.Date(2026, 3, 2, 8, 5, 0, 0, testZone))

	inside := insideOffice()
	resp, err := svc.CheckIn(authedContext(t, "user-1"), photoRequest(&inside.Latitude, &inside.Longitude, conf(0.9)))
	require.NoError(t, err)

	assert.Equal(t, string(attendance.StatusBerhasil), resp.Status)
	assert.Equal(t, string(attendance.TypeMasuk), resp.Type)
	assert.False(t, resp.IsLate)
	assert.Nil(t, resp.Warning)
	require.NotNil(t, resp.ProofURL)
	assert.Equal(t, "captures/user-1/proof.jpg", *resp.ProofURL)
	require.Len(t, records.created, 1)
}

func TestCheckInDuplicateReturnsOriginalWithWarning(t *testing.T) {
	existing := attendance.Record{
		ID:        "original",
		UserID:    "user-1",
		Date:      time.Date(2026, 3, 2, 0, 0, 0, 0, testZone),
		Timestamp: time.Date(2026, 3, 2, 8, 0, 0, 0, testZone),
		Type:      attendance.TypeMasuk,
		Status:    attendance.StatusBerhasil,
	}
	records := &fakeRecords{existing: &existing, duplicate: true}
	svc := newTestService(records, nil, time.Date(2026, 3, 2, 8, 30, 0, 0, testZone))

	inside := insideOffice()
	resp, err := svc.CheckIn(authedContext(t, "user-1"), photoRequest(&inside.Latitude, &inside.Longitude, conf(0.9)))
	require.NoError(t, err, "duplicate submission is recoverable")

	assert.Equal(t, "original", resp.ID)
	require.NotNil(t, resp.Warning)
	assert.Equal(t, warnDuplicate, *resp.Warning)
}

func TestCheckInUsesRecognizerWhenNoConfidenceSupplied(t *testing.T) {
	records := &fakeRecords{}
	recognizer := &fakeRecognizer{confidence: conf(0.92)}
	svc := newTestService(records, recognizer, time.Date(2026, 3, 2, 8, 0, 0, 0, testZone))

	inside := insideOffice()
	resp, err := svc.CheckIn(authedContext(t, "user-1"), photoRequest(&inside.Latitude, &inside.Longitude, nil))
	require.NoError(t, err)

	assert.Equal(t, 1, recognizer.calls)
	assert.Equal(t, string(attendance.StatusBerhasil), resp.Status)
}

func TestCheckInMissingCoordinatesNotPersisted(t *testing.T) {
	records := &fakeRecords{}
	svc := newTestService(records, nil, time.Date(2026, 3, 2, 8, 0, 0, 0, testZone))

	_, err := svc.CheckIn(authedContext(t, "user-1"), photoRequest(nil, nil, conf(0.9)))
	require.Error(t, err)
	assert.ErrorIs(t, err, geo.ErrMissingCoordinates)
	assert.Empty(t, records.created)
}

func TestCheckOutClosesSession(t *testing.T) {
	masuk := attendance.Record{
		ID:        "masuk-1",
		UserID:    "user-1",
		Date:      time.Date(2026, 3, 2, 0, 0, 0, 0, testZone),
		Timestamp: time.Date(2026, 3, 2, 8, 0, 0, 0, testZone),
		Type:      attendance.TypeMasuk,
		Status:    attendance.StatusBerhasil,
	}
	records := &fakeRecords{masuk: &masuk}
	svc := newTestService(records, nil, time.Date(2026, 3, 2, 17, 30, 0, 0, testZone))

	inside := insideOffice()
	resp, err := svc.CheckOut(authedContext(t, "user-1"), photoRequest(&inside.Latitude, &inside.Longitude, conf(0.9)))
	require.NoError(t, err)

	assert.Equal(t, string(attendance.TypeKeluar), resp.Type)
	assert.InDelta(t, 9.5, resp.WorkHours, 1e-9)
	assert.InDelta(t, 1.5, resp.OvertimeHours, 1e-9)
	assert.Nil(t, resp.Warning)
}

func TestCheckOutWithoutMasukIsFlagged(t *testing.T) {
	records := &fakeRecords{}
	svc := newTestService(records, nil, time.Date(2026, 3, 2, 17, 0, 0, 0, testZone))

	inside := insideOffice()
	resp, err := svc.CheckOut(authedContext(t, "user-1"), photoRequest(&inside.Latitude, &inside.Longitude, conf(0.9)))
	require.NoError(t, err, "orphan keluar is persisted, not rejected")

	assert.Zero(t, resp.WorkHours)
	assert.Zero(t, resp.OvertimeHours)
	require.NotNil(t, resp.Warning)
	assert.Equal(t, warnOrphanKeluar, *resp.Warning)
	require.Len(t, records.created, 1)
}

func TestCheckOutIgnoresRejectedMasuk(t *testing.T) {
	rejected := attendance.Record{
		ID:        "masuk-1",
		UserID:    "user-1",
		Date:      time.Date(2026, 3, 2, 0, 0, 0, 0, testZone),
		Timestamp: time.Date(2026, 3, 2, 8, 0, 0, 0, testZone),
		Type:      attendance.TypeMasuk,
		Status:    attendance.StatusWajahTidakValid,
	}
	records := &fakeRecords{masuk: &rejected}
	svc := newTestService(records, nil, time.Date(2026, 3, 2, 17, 0, 0, 0, testZone))

	inside := insideOffice()
	resp, err := svc.CheckOut(authedContext(t, "user-1"), photoRequest(&inside.Latitude, &inside.Longitude, conf(0.9)))
	require.NoError(t, err)

	assert.Zero(t, resp.WorkHours, "only berhasil masuk opens a session")
	require.NotNil(t, resp.Warning)
	assert.Equal(t, warnOrphanKeluar, *resp.Warning)
}

func TestMarkAbsentIdempotent(t *testing.T) {
	existing := attendance.Record{
		ID:     "abs-1",
		UserID: "user-1",
		Type:   attendance.TypeAbsent,
		Status: attendance.StatusTidakHadir,
	}
	records := &fakeRecords{existing: &existing, duplicate: true}
	svc := newTestService(records, nil, time.Date(2026, 3, 3, 0, 10, 0, 0, testZone))

	rec, err := svc.MarkAbsent(context.Background(), "user-1", time.Date(2026, 3, 2, 0, 0, 0, 0, testZone))
	require.NoError(t, err, "rerunning the sweep returns the existing record")
	assert.Equal(t, "abs-1", rec.ID)
}
