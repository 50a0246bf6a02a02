package shift

import (
	"context"
	"time"
)

// PolicyRepository stores the global shift policy.
type PolicyRepository interface {
	// Get returns the configured policy, or ErrNotConfigured.
	Get(ctx context.Context) (Policy, error)

	// Upsert creates or replaces the policy.
	Upsert(ctx context.Context, policy Policy) (Policy, error)
}

// Resolver yields the policy governing a user's working day. The classifier
// depends on this interface rather than a constant so per-user or
// per-department policies can be substituted without touching it.
type Resolver interface {
	ResolvePolicy(ctx context.Context, userID string, date time.Time) (Policy, error)
}
