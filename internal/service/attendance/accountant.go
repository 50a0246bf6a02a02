package attendance

import (
	"time"

	"github.com/hadirin/absensi-backend-go/internal/domain/attendance"
	"github.com/hadirin/absensi-backend-go/internal/domain/shift"
)

// SessionMetrics is the time accounting result of closing a working session.
type SessionMetrics struct {
	WorkHours     float64
	OvertimeHours float64
}

// CloseSession computes work and overtime hours for a masuk/keluar pair.
// A keluar earlier than its masuk is an inconsistent session: metrics are
// zero and ErrInconsistentSession is returned so the caller can flag the
// record without discarding it.
func CloseSession(masukAt, keluarAt time.Time, policy shift.Policy) (SessionMetrics, error) {
	if keluarAt.Before(masukAt) {
		return SessionMetrics{}, attendance.ErrInconsistentSession
	}

	work := keluarAt.Sub(masukAt).Hours()
	overtime := work - policy.StandardHours
	if overtime < 0 {
		overtime = 0
	}

	return SessionMetrics{WorkHours: work, OvertimeHours: overtime}, nil
}
