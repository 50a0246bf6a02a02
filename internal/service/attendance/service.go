package attendance

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/hadirin/absensi-backend-go/internal/domain/attendance"
	"github.com/hadirin/absensi-backend-go/internal/domain/office"
	"github.com/hadirin/absensi-backend-go/internal/domain/shift"
	"github.com/hadirin/absensi-backend-go/internal/pkg/database"
	"github.com/hadirin/absensi-backend-go/internal/pkg/face"
	"github.com/hadirin/absensi-backend-go/internal/pkg/geo"
	"github.com/hadirin/absensi-backend-go/internal/pkg/jwt"
	"github.com/hadirin/absensi-backend-go/internal/repository/postgresql"
	"github.com/hadirin/absensi-backend-go/internal/service/file"
	"github.com/jackc/pgx/v5"
)

const (
	warnDuplicate    = "duplicate submission: a record of this type already exists for today, returning the original"
	warnOrphanKeluar = "no successful masuk found for today, work hours not computed"
	warnInconsistent = "keluar precedes masuk for today, work hours not computed"
)

type attendanceService struct {
	db         *database.DB
	records    attendance.RecordRepository
	offices    office.LocationRepository
	shifts     shift.Resolver
	recognizer face.Recognizer
	files      file.Service
	threshold  float64
	timezone   *time.Location
	logger     *slog.Logger
	now        func() time.Time
}

func NewAttendanceService(
	db *database.DB,
	records attendance.RecordRepository,
	offices office.LocationRepository,
	shifts shift.Resolver,
	recognizer face.Recognizer,
	files file.Service,
	threshold float64,
	timezone *time.Location,
	logger *slog.Logger,
) attendance.AttendanceService {
	return &attendanceService{
		db:         db,
		records:    records,
		offices:    offices,
		shifts:     shifts,
		recognizer: recognizer,
		files:      files,
		threshold:  threshold,
		timezone:   timezone,
		logger:     logger,
		now:        time.Now,
	}
}

// CheckIn implements attendance.AttendanceService.
func (s *attendanceService) CheckIn(ctx context.Context, req attendance.CheckRequest) (attendance.RecordResponse, error) {
	return s.check(ctx, req, attendance.TypeMasuk)
}

// CheckOut implements attendance.AttendanceService.
func (s *attendanceService) CheckOut(ctx context.Context, req attendance.CheckRequest) (attendance.RecordResponse, error) {
	return s.check(ctx, req, attendance.TypeKeluar)
}

func (s *attendanceService) check(ctx context.Context, req attendance.CheckRequest, checkType attendance.CheckType) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	userID, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	occurredAt := s.now().In(s.timezone)

	snapshot, err := s.loadSnapshot(ctx, userID, occurredAt)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	photo, err := io.ReadAll(req.File)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to read capture photo: %w", err)
	}

	confidence := req.FaceConfidence
	if confidence == nil && s.recognizer != nil {
		confidence, err = s.recognizer.MatchConfidence(ctx, userID, photo)
		if err != nil {
			// Recognition outages fail closed: the attempt is classified
			// with no confidence and rejected as wajah_tidak_valid.
			s.logger.WarnContext(ctx, "face recognition unavailable",
				slog.String("user_id", userID),
				slog.Any("error", err),
			)
			confidence = nil
		}
	}

	attempt := attendance.CheckAttempt{
		UserID:         userID,
		OccurredAt:     occurredAt,
		Type:           checkType,
		FaceConfidence: confidence,
	}
	attempt.Coordinates = coordinates(req.Latitude, req.Longitude)

	rec, err := Classify(attempt, snapshot)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	proofPath, err := s.files.UploadCaptureProof(ctx, userID, occurredAt, bytes.NewReader(photo), req.FileHeader.Filename)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	rec.ProofURL = &proofPath

	var warning *string
	var created attendance.Record

	// A keluar reads its masuk and writes in the same transaction so the
	// session metrics always match the row they were derived from.
	err = s.inTx(ctx, func(ctx context.Context) error {
		if checkType == attendance.TypeKeluar && rec.Status == attendance.StatusBerhasil {
			warning, err = s.closeSession(ctx, &rec, snapshot.Policy)
			if err != nil {
				return err
			}
		}

		created, err = s.records.Create(ctx, rec)
		return err
	})
	if err != nil {
		if errors.Is(err, attendance.ErrDuplicateSubmission) {
			w := warnDuplicate
			return mapRecordToResponse(created, &w, s.timezone), nil
		}
		return attendance.RecordResponse{}, err
	}

	return mapRecordToResponse(created, warning, s.timezone), nil
}

// inTx runs fn inside a database transaction, carrying it down to the
// repositories through the context. Without a pool (pure in-memory setups)
// fn runs directly.
func (s *attendanceService) inTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.db == nil {
		return fn(ctx)
	}
	return postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		return fn(context.WithValue(ctx, "tx", tx))
	})
}

// closeSession fills work and overtime hours on a successful keluar. Session
// anomalies never block persistence; they surface as a response warning.
func (s *attendanceService) closeSession(ctx context.Context, rec *attendance.Record, policy shift.Policy) (*string, error) {
	masuk, err := s.records.GetByUserDateType(ctx, rec.UserID, rec.Date, attendance.TypeMasuk)
	if err != nil {
		return nil, err
	}

	if masuk == nil || !masuk.IsSessionBoundary() {
		s.logger.InfoContext(ctx, "keluar without matching masuk",
			slog.String("user_id", rec.UserID),
			slog.String("date", rec.Date.Format("2006-01-02")),
			slog.Any("error", attendance.ErrOrphanKeluar),
		)
		w := warnOrphanKeluar
		return &w, nil
	}

	metrics, err := CloseSession(masuk.Timestamp, rec.Timestamp, policy)
	if err != nil {
		if errors.Is(err, attendance.ErrInconsistentSession) {
			w := warnInconsistent
			return &w, nil
		}
		return nil, err
	}

	rec.WorkHours = metrics.WorkHours
	rec.OvertimeHours = metrics.OvertimeHours
	return nil, nil
}

// MarkAbsent implements attendance.AttendanceService. Idempotent: a rerun of
// the sweep returns the existing absence record.
func (s *attendanceService) MarkAbsent(ctx context.Context, userID string, date time.Time) (attendance.Record, error) {
	rec := NewAbsenceRecord(userID, date, s.timezone)

	created, err := s.records.Create(ctx, rec)
	if err != nil {
		if errors.Is(err, attendance.ErrDuplicateSubmission) {
			return created, nil
		}
		return attendance.Record{}, err
	}

	return created, nil
}

// GetMyRecords implements attendance.AttendanceService.
func (s *attendanceService) GetMyRecords(ctx context.Context, filter attendance.ListFilter) (attendance.ListRecordsResponse, error) {
	userID, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		return attendance.ListRecordsResponse{}, err
	}

	filter.UserID = userID
	return s.ListRecords(ctx, filter)
}

// ListRecords implements attendance.AttendanceService.
func (s *attendanceService) ListRecords(ctx context.Context, filter attendance.ListFilter) (attendance.ListRecordsResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListRecordsResponse{}, err
	}

	recordFilter := s.buildRecordFilter(filter)

	records, total, err := s.records.List(ctx, recordFilter)
	if err != nil {
		return attendance.ListRecordsResponse{}, err
	}

	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, mapRecordToResponse(rec, nil, s.timezone))
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))

	return attendance.ListRecordsResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Records:    responses,
	}, nil
}

func (s *attendanceService) loadSnapshot(ctx context.Context, userID string, at time.Time) (ClassifyInput, error) {
	loc, err := s.offices.Get(ctx)
	if err != nil {
		return ClassifyInput{}, err
	}

	policy, err := s.shifts.ResolvePolicy(ctx, userID, at)
	if err != nil {
		return ClassifyInput{}, err
	}

	return ClassifyInput{
		Office:        loc,
		Policy:        policy,
		FaceThreshold: s.threshold,
		Timezone:      s.timezone,
	}, nil
}

// buildRecordFilter translates the transport-level filter into repository
// terms. Date bounds are inclusive whole local days.
func (s *attendanceService) buildRecordFilter(filter attendance.ListFilter) attendance.RecordFilter {
	rf := attendance.RecordFilter{
		Page:  filter.Page,
		Limit: filter.Limit,
	}

	if filter.UserID != "" {
		userID := filter.UserID
		rf.UserID = &userID
	}
	if filter.StartDate != "" {
		if t, err := time.ParseInLocation("2006-01-02", filter.StartDate, s.timezone); err == nil {
			rf.StartDate = &t
		}
	}
	if filter.EndDate != "" {
		if t, err := time.ParseInLocation("2006-01-02", filter.EndDate, s.timezone); err == nil {
			end := t.Add(24*time.Hour - time.Millisecond)
			rf.EndDate = &end
		}
	}
	if filter.Type != "" {
		checkType := attendance.CheckType(filter.Type)
		rf.Type = &checkType
	}
	if filter.Status != "" {
		status := attendance.Status(filter.Status)
		rf.Status = &status
	}

	return rf
}

func coordinates(lat, lng *float64) *geo.Point {
	if lat == nil || lng == nil {
		return nil
	}
	return &geo.Point{Latitude: *lat, Longitude: *lng}
}

func mapRecordToResponse(rec attendance.Record, warning *string, loc *time.Location) attendance.RecordResponse {
	return attendance.RecordResponse{
		ID:            rec.ID,
		UserID:        rec.UserID,
		UserName:      rec.UserName,
		Department:    rec.Department,
		Date:          rec.Date.Format("2006-01-02"),
		Timestamp:     rec.Timestamp.In(loc).Format(time.RFC3339),
		Type:          string(rec.Type),
		Status:        string(rec.Status),
		IsLate:        rec.IsLate,
		LateMinutes:   rec.LateMinutes,
		WorkHours:     rec.WorkHours,
		OvertimeHours: rec.OvertimeHours,
		Latitude:      rec.Latitude,
		Longitude:     rec.Longitude,
		ProofURL:      rec.ProofURL,
		Warning:       warning,
	}
}
