package ports

import "context"

// EventPublisher notifies other systems about session lifecycle changes.
// Publishing is best-effort: callers log failures and carry on.
type EventPublisher interface {
	PublishLoggedIn(ctx context.Context, subject string) error
	PublishRotated(ctx context.Context, subject string) error
}
