package report

import "context"

// ReportService builds deduplicated, filtered tabular reports over
// persisted attendance records.
type ReportService interface {
	// Generate fetches a point-in-time snapshot, filters it, collapses
	// duplicate synthetic absences and renders rows for the audience.
	Generate(ctx context.Context, criteria Criteria, audience Audience) (Report, error)
}
