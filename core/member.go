package core

// Role determines what an authenticated member may do. Authorization by role
// is decided downstream; the auth pipeline only carries it.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Member is an account record. The email doubles as the token subject and as
// the revocation-store key.
type Member struct {
	ID           string
	Email        string
	PasswordHash string
	Nickname     string
	Role         Role
}
