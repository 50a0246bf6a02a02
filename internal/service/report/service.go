package report

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/hadirin/absensi-backend-go/internal/domain/attendance"
	"github.com/hadirin/absensi-backend-go/internal/domain/report"
)

var statusLabels = map[attendance.Status]string{
	attendance.StatusBerhasil:         "Berhasil",
	attendance.StatusWajahTidakValid:  "Wajah Tidak Valid",
	attendance.StatusLokasiTidakValid: "Lokasi Tidak Valid",
	attendance.StatusTidakHadir:       "Tidak Hadir",
}

var typeLabels = map[attendance.CheckType]string{
	attendance.TypeMasuk:  "Masuk",
	attendance.TypeKeluar: "Keluar",
	attendance.TypeAbsent: "Absen",
}

var (
	headerAll = []string{
		"Tanggal", "Waktu", "Nama", "Departemen", "Tipe", "Status",
		"Terlambat", "Menit Terlambat", "Jam Kerja", "Jam Lembur",
		"Latitude", "Longitude",
	}
	headerSelf = []string{
		"Tanggal", "Waktu", "Tipe", "Status",
		"Terlambat", "Menit Terlambat", "Jam Kerja", "Jam Lembur",
		"Latitude", "Longitude",
	}
)

type reportService struct {
	records  attendance.RecordRepository
	timezone *time.Location
	now      func() time.Time
}

func NewReportService(records attendance.RecordRepository, timezone *time.Location) report.ReportService {
	return &reportService{
		records:  records,
		timezone: timezone,
		now:      time.Now,
	}
}

// Generate implements report.ReportService. Filtering runs before absence
// dedup, so only absences surviving the filter are collapsed.
func (s *reportService) Generate(ctx context.Context, criteria report.Criteria, audience report.Audience) (report.Report, error) {
	if audience != report.AudienceSelf && audience != report.AudienceAll {
		return report.Report{}, report.ErrInvalidAudience
	}
	if err := criteria.Validate(); err != nil {
		return report.Report{}, err
	}

	records, err := s.records.Query(ctx, buildFilter(criteria, s.timezone))
	if err != nil {
		return report.Report{}, err
	}

	records = DedupeAbsences(records)

	header := headerAll
	if audience == report.AudienceSelf {
		header = headerSelf
	}

	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, renderRow(rec, audience, s.timezone))
	}

	return report.Report{
		GeneratedAt: s.now().In(s.timezone).Format(time.RFC3339),
		Audience:    audience,
		Header:      header,
		Rows:        rows,
		TotalRows:   len(rows),
	}, nil
}

// buildFilter translates criteria into repository terms. Date bounds are
// inclusive whole local days: start at local midnight, end just before the
// following midnight.
func buildFilter(criteria report.Criteria, loc *time.Location) attendance.RecordFilter {
	var filter attendance.RecordFilter

	if criteria.EmployeeID != "" {
		employeeID := criteria.EmployeeID
		filter.UserID = &employeeID
	}
	if criteria.StartDate != "" {
		if t, err := time.ParseInLocation("2006-01-02", criteria.StartDate, loc); err == nil {
			filter.StartDate = &t
		}
	}
	if criteria.EndDate != "" {
		if t, err := time.ParseInLocation("2006-01-02", criteria.EndDate, loc); err == nil {
			end := t.Add(24*time.Hour - time.Millisecond)
			filter.EndDate = &end
		}
	}
	if criteria.Type != "" {
		checkType := attendance.CheckType(criteria.Type)
		filter.Type = &checkType
	}
	if criteria.Status != "" {
		status := attendance.Status(criteria.Status)
		filter.Status = &status
	}

	return filter
}

func coordKey(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// DedupeAbsences collapses repeated synthetic tidak_hadir rows that share
// user, timestamp, status and coordinates, keeping the first occurrence in
// input order. A marker belongs to exactly one user, so absences of distinct
// users anchored at the same midnight stay distinct. Other statuses pass
// through untouched; the unique constraint on live submissions already
// guards them, while absences can be re-emitted by overlapping sweep runs.
// Idempotent.
func DedupeAbsences(records []attendance.Record) []attendance.Record {
	seen := make(map[string]struct{}, len(records))
	out := make([]attendance.Record, 0, len(records))

	for _, rec := range records {
		if rec.Status != attendance.StatusTidakHadir {
			out = append(out, rec)
			continue
		}

		key := fmt.Sprintf("%s|%d|%s|%s|%s",
			rec.UserID, rec.Timestamp.UnixNano(), rec.Status,
			coordKey(rec.Latitude), coordKey(rec.Longitude),
		)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, rec)
	}

	return out
}

func renderRow(rec attendance.Record, audience report.Audience, loc *time.Location) []string {
	late := "Tidak"
	if rec.IsLate {
		late = "Ya"
	}

	name, department := "", ""
	if rec.UserName != nil {
		name = *rec.UserName
	}
	if rec.Department != nil {
		department = *rec.Department
	}

	lat, lng := "", ""
	if rec.Latitude != nil {
		lat = strconv.FormatFloat(*rec.Latitude, 'f', 6, 64)
	}
	if rec.Longitude != nil {
		lng = strconv.FormatFloat(*rec.Longitude, 'f', 6, 64)
	}

	tail := []string{
		typeLabels[rec.Type],
		statusLabels[rec.Status],
		late,
		strconv.Itoa(rec.LateMinutes),
		strconv.FormatFloat(rec.WorkHours, 'f', 2, 64),
		strconv.FormatFloat(rec.OvertimeHours, 'f', 2, 64),
		lat,
		lng,
	}

	row := []string{
		rec.Date.Format("2006-01-02"),
		rec.Timestamp.In(loc).Format("15:04:05"),
	}
	if audience == report.AudienceAll {
		row = append(row, name, department)
	}
	return append(row, tail...)
}
