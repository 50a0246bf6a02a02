package report

import (
	"context"
	"testing"
	"time"

	"github.com/hadirin/absensi-backend-go/internal/domain/attendance"
	domainreport "github.com/hadirin/absensi-backend-go/internal/domain/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testZone = time.FixedZone("WIB", 7*3600)

type fakeRecordRepo struct {
	records    []attendance.Record
	lastFilter attendance.RecordFilter
}

func (f *fakeRecordRepo) Create(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	return rec, nil
}

func (f *fakeRecordRepo) GetByUserDateType(ctx context.Context, userID string, date time.Time, checkType attendance.CheckType) (*attendance.Record, error) {
	return nil, nil
}

func (f *fakeRecordRepo) List(ctx context.Context, filter attendance.RecordFilter) ([]attendance.Record, int64, error) {
	return f.records, int64(len(f.records)), nil
}

func (f *fakeRecordRepo) Query(ctx context.Context, filter attendance.RecordFilter) ([]attendance.Record, error) {
	f.lastFilter = filter
	return f.records, nil
}

func strPtr(s string) *string   { return &s }
func f64Ptr(v float64) *float64 { return &v }

func absenceAt(ts time.Time) attendance.Record {
	return attendance.Record{
		ID:        "abs-" + ts.Format("20060102"),
		UserID:    "user-1",
		Date:      time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, testZone),
		Timestamp: ts,
		Type:      attendance.TypeAbsent,
		Status:    attendance.StatusTidakHadir,
	}
}

func successAt(ts time.Time) attendance.Record {
	return attendance.Record{
		ID:        "ok-" + ts.Format("20060102150405"),
		UserID:    "user-1",
		Date:      time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, testZone),
		Timestamp: ts,
		Type:      attendance.TypeMasuk,
		Status:    attendance.StatusBerhasil,
		Latitude:  f64Ptr(-6.199),
		Longitude: f64Ptr(106.8167),
	}
}

func TestDedupeAbsencesCollapsesDuplicates(t *testing.T) {
	midnight := time.Date(2026, 3, 2, 0, 0, 0, 0, testZone)
	first := absenceAt(midnight)
	first.ID = "first"
	second := absenceAt(midnight)
	second.ID = "second"

	out := DedupeAbsences([]attendance.Record{first, second})

	require.Len(t, out, 1)
	assert.Equal(t, "first", out[0].ID, "first occurrence in input order wins")
}

func TestDedupeAbsencesIdempotent(t *testing.T) {
	midnight := time.Date(2026, 3, 2, 0, 0, 0, 0, testZone)
	records := []attendance.Record{
		absenceAt(midnight),
		absenceAt(midnight),
		absenceAt(midnight.AddDate(0, 0, 1)),
	}

	once := DedupeAbsences(records)
	twice := DedupeAbsences(once)

	assert.Equal(t, once, twice)
	assert.Len(t, twice, 2)
}

func TestDedupeAbsencesLeavesOtherStatusesAlone(t *testing.T) {
	ts := time.Date(2026, 3, 2, 8, 0, 0, 0, testZone)
	a := successAt(ts)
	b := successAt(ts)

	out := DedupeAbsences([]attendance.Record{a, b})

	assert.Len(t, out, 2, "only tidak_hadir records are deduplicated")
}

func TestDedupeAbsencesKeepsDistinctUsers(t *testing.T) {
	midnight := time.Date(2026, 3, 2, 0, 0, 0, 0, testZone)
	a := absenceAt(midnight)
	b := absenceAt(midnight)
	b.ID = "abs-other"
	b.UserID = "user-2"

	out := DedupeAbsences([]attendance.Record{a, b})

	require.Len(t, out, 2, "absences of two different users must both appear in the report")
	assert.Equal(t, "user-1", out[0].UserID)
	assert.Equal(t, "user-2", out[1].UserID)
}

func TestDedupeAbsencesKeepsDistinctTimestamps(t *testing.T) {
	day1 := absenceAt(time.Date(2026, 3, 2, 0, 0, 0, 0, testZone))
	day2 := absenceAt(time.Date(2026, 3, 3, 0, 0, 0, 0, testZone))

	out := DedupeAbsences([]attendance.Record{day1, day2})

	assert.Len(t, out, 2)
}

func TestBuildFilterInclusiveDayBounds(t *testing.T) {
	criteria := domainreport.Criteria{
		StartDate: "2026-03-02",
		EndDate:   "2026-03-04",
	}

	filter := buildFilter(criteria, testZone)

	require.NotNil(t, filter.StartDate)
	require.NotNil(t, filter.EndDate)

	assert.Equal(t, "2026-03-02 00:00:00", filter.StartDate.Format("2006-01-02 15:04:05"))
	assert.Equal(t, "2026-03-04 23:59:59", filter.EndDate.Format("2006-01-02 15:04:05"))

	// A record at the end date's last moment stays inside the range.
	lastMoment := time.Date(2026, 3, 4, 23, 59, 59, 0, testZone)
	assert.False(t, lastMoment.After(*filter.EndDate))
}

func TestBuildFilterEmptyStringsMeanUnset(t *testing.T) {
	filter := buildFilter(domainreport.Criteria{}, testZone)

	assert.Nil(t, filter.UserID)
	assert.Nil(t, filter.StartDate)
	assert.Nil(t, filter.EndDate)
	assert.Nil(t, filter.Type)
	assert.Nil(t, filter.Status)
}

func TestGenerateAudienceHeaders(t *testing.T) {
	ts := time.Date(2026, 3, 2, 8, 5, 0, 0, testZone)
	rec := successAt(ts)
	rec.UserName = strPtr("Budi Santoso")
	rec.Department = strPtr("Engineering")

	repo := &fakeRecordRepo{records: []attendance.Record{rec}}
	svc := NewReportService(repo, testZone)

	all, err := svc.Generate(context.Background(), domainreport.Criteria{}, domainreport.AudienceAll)
	require.NoError(t, err)
	assert.Contains(t, all.Header, "Nama")
	assert.Contains(t, all.Header, "Departemen")
	require.Len(t, all.Rows, 1)
	assert.Contains(t, all.Rows[0], "Budi Santoso")

	self, err := svc.Generate(context.Background(), domainreport.Criteria{}, domainreport.AudienceSelf)
	require.NoError(t, err)
	assert.NotContains(t, self.Header, "Nama")
	assert.NotContains(t, self.Header, "Departemen")
	require.Len(t, self.Rows, 1)
	assert.Len(t, self.Rows[0], len(self.Header))
}

func TestGenerateIndonesianLabels(t *testing.T) {
	ts := time.Date(2026, 3, 2, 8, 20, 0, 0, testZone)
	rec := successAt(ts)
	rec.IsLate = true
	rec.LateMinutes = 20

	repo := &fakeRecordRepo{records: []attendance.Record{rec}}
	svc := NewReportService(repo, testZone)

	result, err := svc.Generate(context.Background(), domainreport.Criteria{}, domainreport.AudienceSelf)
	require.NoError(t, err)

	require.Len(t, result.Rows, 1)
	row := result.Rows[0]
	assert.Contains(t, row, "Berhasil")
	assert.Contains(t, row, "Masuk")
	assert.Contains(t, row, "Ya")
	assert.Contains(t, row, "20")
}

func TestGenerateRejectsUnknownAudience(t *testing.T) {
	repo := &fakeRecordRepo{}
	svc := NewReportService(repo, testZone)

	_, err := svc.Generate(context.Background(), domainreport.Criteria{}, domainreport.Audience("everyone"))
	assert.ErrorIs(t, err, domainreport.ErrInvalidAudience)
}

func TestGenerateRejectsInvertedDateRange(t *testing.T) {
	repo := &fakeRecordRepo{}
	svc := NewReportService(repo, testZone)

	_, err := svc.Generate(context.Background(), domainreport.Criteria{
		StartDate: "2026-03-04",
		EndDate:   "2026-03-02",
	}, domainreport.AudienceAll)
	assert.ErrorIs(t, err, domainreport.ErrInvalidDateRange)
}

func TestGenerateDedupesFilteredSnapshot(t *testing.T) {
	midnight := time.Date(2026, 3, 2, 0, 0, 0, 0, testZone)
	repo := &fakeRecordRepo{records: []attendance.Record{
		absenceAt(midnight),
		absenceAt(midnight),
		successAt(midnight.Add(8 * time.Hour)),
	}}
	svc := NewReportService(repo, testZone)

	result, err := svc.Generate(context.Background(), domainreport.Criteria{}, domainreport.AudienceAll)
	require.NoError(t, err)

	assert.Equal(t, 2, result.TotalRows)
}
