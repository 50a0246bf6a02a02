package user

import "context"

// UserRepository defines data access methods for users.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)

	// ListActive returns every active user; consumed by the absence sweep.
	ListActive(ctx context.Context) ([]User, error)
}
