package attendance

import (
	"mime/multipart"
	"strings"

	"github.com/hadirin/absensi-backend-go/internal/pkg/validator"
)

// ========================================
// CHECK DTOs
// ========================================

// CheckRequest carries a live masuk/keluar attempt. Coordinates may be absent
// when the device reports no fix; face_confidence may be supplied by devices
// with an on-device matcher, otherwise the server asks the recognition
// service using the captured photo.
type CheckRequest struct {
	Latitude       *float64              `json:"latitude"`
	Longitude      *float64              `json:"longitude"`
	FaceConfidence *float64              `json:"face_confidence"`
	ProofPhotoURL  *string               `json:"-"`
	File           multipart.File        `json:"-"`
	FileHeader     *multipart.FileHeader `json:"-"`
}

func (r *CheckRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Latitude != nil && !validator.IsValidLatitude(*r.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude != nil && !validator.IsValidLongitude(*r.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if (r.Latitude == nil) != (r.Longitude == nil) {
		errs = append(errs, validator.ValidationError{
			Field:   "coordinates",
			Message: "latitude and longitude must be provided together",
		})
	}

	if r.FaceConfidence != nil && (*r.FaceConfidence < 0 || *r.FaceConfidence > 1) {
		errs = append(errs, validator.ValidationError{
			Field:   "face_confidence",
			Message: "face_confidence must be between 0 and 1",
		})
	}

	if r.FileHeader == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "photo",
			Message: "capture photo is required",
		})
	} else {
		filename := r.FileHeader.Filename
		idx := strings.LastIndex(filename, ".")
		ext := ""
		if idx >= 0 {
			ext = strings.ToLower(filename[idx:])
		}
		if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
			errs = append(errs, validator.ValidationError{
				Field:   "photo",
				Message: "invalid file type: only jpg, jpeg, png allowed",
			})
		} else if r.FileHeader.Size > 10<<20 { // 10MB
			errs = append(errs, validator.ValidationError{
				Field:   "photo",
				Message: "capture photo size must not exceed 10MB",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RecordResponse struct {
	ID            string   `json:"id"`
	UserID        string   `json:"user_id"`
	UserName      *string  `json:"user_name,omitempty"`
	Department    *string  `json:"department,omitempty"`
	Date          string   `json:"date"`
	Timestamp     string   `json:"timestamp"`
	Type          string   `json:"type"`
	Status        string   `json:"status"`
	IsLate        bool     `json:"is_late"`
	LateMinutes   int      `json:"late_minutes"`
	WorkHours     float64  `json:"work_hours"`
	OvertimeHours float64  `json:"overtime_hours"`
	Latitude      *float64 `json:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty"`
	ProofURL      *string  `json:"proof_url,omitempty"`

	// Warning carries non-fatal session anomalies (orphan keluar,
	// inconsistent session, duplicate submission).
	Warning *string `json:"warning,omitempty"`
}

type ListRecordsResponse struct {
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
	Records    []RecordResponse `json:"records"`
}

// ========================================
// LIST FILTER DTOs
// ========================================

var validStatuses = []string{
	string(StatusBerhasil),
	string(StatusWajahTidakValid),
	string(StatusLokasiTidakValid),
	string(StatusTidakHadir),
}

var validTypes = []string{
	string(TypeMasuk),
	string(TypeKeluar),
	string(TypeAbsent),
}

// ListFilter is the admin/kepala record listing filter. Empty strings mean
// "no filter", never a literal match.
type ListFilter struct {
	UserID    string `json:"user_id,omitempty"`
	StartDate string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate   string `json:"end_date,omitempty"`   // YYYY-MM-DD
	Type      string `json:"type,omitempty"`
	Status    string `json:"status,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *ListFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1 // Default page
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20 // Default limit
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if f.Status != "" && !validator.IsInSlice(f.Status, validStatuses) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: berhasil, wajah_tidak_valid, lokasi_tidak_valid, tidak_hadir",
		})
	}

	if f.Type != "" && !validator.IsInSlice(f.Type, validTypes) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: masuk, keluar, absent",
		})
	}

	if f.StartDate != "" {
		if _, valid := validator.IsValidDate(f.StartDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.EndDate != "" {
		if _, valid := validator.IsValidDate(f.EndDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
