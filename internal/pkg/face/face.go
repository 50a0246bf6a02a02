package face

import "context"

// Recognizer is the external face-recognition capability. It matches a
// captured image against a user's registered template and yields a match
// confidence, or nil when the user has no enrolled template.
type Recognizer interface {
	MatchConfidence(ctx context.Context, userID string, image []byte) (*float64, error)
}

// IsMatch reports whether a recognition confidence passes the configured
// threshold. A nil confidence (capability unavailable or user not enrolled)
// never passes. A confidence exactly at the threshold passes.
func IsMatch(confidence *float64, threshold float64) bool {
	if confidence == nil {
		return false
	}
	return *confidence >= threshold
}
