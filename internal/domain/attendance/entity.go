package attendance

import (
	"time"

	"github.com/hadirin/absensi-backend-go/internal/pkg/geo"
)

// Status is the closed set of classification outcomes. Exactly one status is
// assigned per record and it never changes after classification.
type Status string

const (
	StatusBerhasil         Status = "berhasil"
	StatusWajahTidakValid  Status = "wajah_tidak_valid"
	StatusLokasiTidakValid Status = "lokasi_tidak_valid"
	StatusTidakHadir       Status = "tidak_hadir"
)

// IsValid reports whether s is a known status.
func (s Status) IsValid() bool {
	switch s {
	case StatusBerhasil, StatusWajahTidakValid, StatusLokasiTidakValid, StatusTidakHadir:
		return true
	}
	return false
}

// CheckType distinguishes opening, closing and synthetic records.
type CheckType string

const (
	TypeMasuk  CheckType = "masuk"
	TypeKeluar CheckType = "keluar"
	// TypeAbsent marks system-generated absence records; never user-submitted.
	TypeAbsent CheckType = "absent"
)

// IsValid reports whether t is a known check type.
func (t CheckType) IsValid() bool {
	switch t {
	case TypeMasuk, TypeKeluar, TypeAbsent:
		return true
	}
	return false
}

// CheckAttempt is the transient classification input. It is never persisted
// as-is; classification turns it into a Record.
type CheckAttempt struct {
	UserID         string
	OccurredAt     time.Time
	Type           CheckType
	Coordinates    *geo.Point
	FaceConfidence *float64
}

// Record is a persisted attendance event. Immutable once created; work and
// overtime hours are only non-zero on keluar records closing a valid session.
type Record struct {
	ID     string
	UserID string
	// Date is the working day (local midnight), not a timestamp.
	Date          time.Time
	Timestamp     time.Time
	Type          CheckType
	Status        Status
	IsLate        bool
	LateMinutes   int
	WorkHours     float64
	OvertimeHours float64
	Latitude      *float64
	Longitude     *float64
	ProofURL      *string
	CreatedAt     time.Time

	// Joined for reporting
	UserName   *string
	Department *string
}

// IsSessionBoundary reports whether the record can open or close a working
// session. Only berhasil records participate in time accounting.
func (r Record) IsSessionBoundary() bool {
	return r.Status == StatusBerhasil && (r.Type == TypeMasuk || r.Type == TypeKeluar)
}
