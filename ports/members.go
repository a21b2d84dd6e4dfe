package ports

import (
	"context"

	"github.com/janus-auth/janus/core"
)

// Members is the credential lookup collaborator.
type Members interface {
	// FindByEmail returns the member record for a login email, or
	// core.ErrMemberNotFound.
	FindByEmail(ctx context.Context, email string) (*core.Member, error)

	// ExistsByEmail reports whether an account already uses the email.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// ExistsByNickname reports whether an account already uses the nickname.
	ExistsByNickname(ctx context.Context, nickname string) (bool, error)

	// Create stores a new member record.
	Create(ctx context.Context, member *core.Member) error
}
