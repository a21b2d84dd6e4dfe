package ports

import (
	"context"
	"time"
)

// SessionStore keeps the single authoritative refresh token per subject.
// Records die by TTL or by being overwritten; there is no delete path.
type SessionStore interface {
	// Put unconditionally overwrites the record for subject with a fresh TTL.
	Put(ctx context.Context, subject, token string, ttl time.Duration) error

	// Get returns the current authoritative token, or core.ErrNoSession when
	// no record exists or it has expired.
	Get(ctx context.Context, subject string) (string, error)

	// Replace atomically overwrites the record with next, but only when the
	// stored value exactly equals presented. It fails with core.ErrNoSession
	// or core.ErrSessionMismatch without writing anything. The comparison and
	// the overwrite are a single operation so that two concurrent rotations
	// cannot both succeed with the same presented token.
	Replace(ctx context.Context, subject, presented, next string, ttl time.Duration) error
}
