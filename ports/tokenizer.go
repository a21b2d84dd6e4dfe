package ports

import "time"

// Tokenizer issues and verifies compact signed tokens. Implementations hold
// the process signing key and must be safe for concurrent use.
type Tokenizer interface {
	// Issue signs a token asserting subject with expiry = now + validity.
	Issue(subject string, validity time.Duration) (string, error)

	// Verify checks the signature first, then the expiry, and returns the
	// subject on success. A well-signed token past its expiry fails with
	// core.ErrTokenExpired; everything else fails with core.ErrTokenInvalid.
	// The subject is only ever returned from a verified token.
	Verify(token string) (string, error)
}
