package ports

// Hasher hashes and verifies member secrets. Implementations are expected to
// be deliberately slow adaptive hashes.
type Hasher interface {
	Hash(password string) (string, error)

	// Compare returns a non-nil error when password does not match hash.
	Compare(hash, password string) error
}
