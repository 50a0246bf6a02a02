package attendance

import "errors"

// Attendance domain errors
var (
	// ErrDuplicateSubmission means the (user, date, type) uniqueness
	// constraint was hit. Recoverable: the prior authoritative record is
	// returned alongside it.
	ErrDuplicateSubmission = errors.New("attendance already recorded for this day")

	// ErrInconsistentSession means a keluar timestamp precedes its matching
	// masuk. The record is kept for audit with zeroed metrics and flagged.
	ErrInconsistentSession = errors.New("keluar precedes matching masuk")

	// ErrOrphanKeluar means no berhasil masuk exists for the day; the keluar
	// is still recorded with zero metrics.
	ErrOrphanKeluar = errors.New("no matching masuk record for this day")
)
