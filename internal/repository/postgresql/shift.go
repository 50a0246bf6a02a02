package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hadirin/absensi-backend-go/internal/domain/shift"
	"github.com/hadirin/absensi-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type shiftPolicyRepository struct {
	db *database.DB
}

// NewShiftPolicyRepository returns the global policy store. It also acts as
// the shift.Resolver: one policy governs every user, so resolution ignores
// userID and date. Per-user policies slot in by swapping the resolver.
func NewShiftPolicyRepository(db *database.DB) interface {
	shift.PolicyRepository
	shift.Resolver
} {
	return &shiftPolicyRepository{db: db}
}

// Get implements shift.PolicyRepository. Single row, id = 1.
func (s *shiftPolicyRepository) Get(ctx context.Context) (shift.Policy, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT start_time, grace_minutes, standard_hours, updated_at
		FROM shift_policies
		WHERE id = 1
	`

	var policy shift.Policy
	err := q.QueryRow(ctx, query).Scan(
		&policy.StartTime, &policy.GraceMinutes, &policy.StandardHours, &policy.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.Policy{}, shift.ErrNotConfigured
		}
		return shift.Policy{}, fmt.Errorf("failed to get shift policy: %w", err)
	}

	return policy, nil
}

// Upsert implements shift.PolicyRepository.
func (s *shiftPolicyRepository) Upsert(ctx context.Context, policy shift.Policy) (shift.Policy, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		INSERT INTO shift_policies (id, start_time, grace_minutes, standard_hours, updated_at)
		VALUES (1, $1, $2, $3, NOW())
		ON CONFLICT (id) DO UPDATE SET
			start_time = EXCLUDED.start_time,
			grace_minutes = EXCLUDED.grace_minutes,
			standard_hours = EXCLUDED.standard_hours,
			updated_at = NOW()
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		policy.StartTime, policy.GraceMinutes, policy.StandardHours,
	).Scan(&policy.UpdatedAt)

	if err != nil {
		return shift.Policy{}, fmt.Errorf("failed to upsert shift policy: %w", err)
	}

	return policy, nil
}

// ResolvePolicy implements shift.Resolver.
func (s *shiftPolicyRepository) ResolvePolicy(ctx context.Context, userID string, date time.Time) (shift.Policy, error) {
	return s.Get(ctx)
}
