package shift

import "time"

// Policy describes the expected working day. It is loaded once per
// classification call; changing it never rewrites already-persisted records.
type Policy struct {
	// StartTime carries only the wall-clock part (hour/minute/second).
	StartTime     time.Time
	GraceMinutes  int
	StandardHours float64
	UpdatedAt     time.Time
}

// StartOn anchors the policy's start time on the given calendar day in loc.
func (p Policy) StartOn(date time.Time, loc *time.Location) time.Time {
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		p.StartTime.Hour(), p.StartTime.Minute(), p.StartTime.Second(), 0,
		loc,
	)
}

// GraceLimitOn is the last on-time moment of the day: start plus grace period.
func (p Policy) GraceLimitOn(date time.Time, loc *time.Location) time.Time {
	return p.StartOn(date, loc).Add(time.Duration(p.GraceMinutes) * time.Minute)
}
