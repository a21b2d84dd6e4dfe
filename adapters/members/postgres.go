package members

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/janus-auth/janus/adapters/members/migrations"
	"github.com/janus-auth/janus/core"
	"github.com/janus-auth/janus/ports"
	"github.com/pressly/goose/v3"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// PostgresMembers is a PostgreSQL implementation of the Members interface.
type PostgresMembers struct {
	db *sql.DB
}

// NewPostgresMembers opens a pgx-backed connection pool for dsn.
func NewPostgresMembers(dsn string) (*PostgresMembers, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	return &PostgresMembers{db: db}, nil
}

// RunMigrations brings the members schema up to date.
func (r *PostgresMembers) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.UpContext(ctx, r.db, "."); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (r *PostgresMembers) Close() error {
	return r.db.Close()
}

// FindByEmail returns the member record for email.
func (r *PostgresMembers) FindByEmail(ctx context.Context, email string) (*core.Member, error) {
	query :=
		`SELECT id, email, password_hash, nickname, role FROM members
		 WHERE email = $1
		 `

	member := &core.Member{}
	err := r.db.QueryRowContext(ctx, query, email).
		Scan(&member.ID, &member.Email, &member.PasswordHash, &member.Nickname, &member.Role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.ErrMemberNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return member, nil
}

// ExistsByEmail reports whether an account already uses email.
func (r *PostgresMembers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM members WHERE email = $1)`, email)
}

// ExistsByNickname reports whether an account already uses nickname.
func (r *PostgresMembers) ExistsByNickname(ctx context.Context, nickname string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM members WHERE nickname = $1)`, nickname)
}

func (r *PostgresMembers) exists(ctx context.Context, query, arg string) (bool, error) {
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, arg).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

// Create stores a new member record.
func (r *PostgresMembers) Create(ctx context.Context, member *core.Member) error {
	query :=
		`INSERT INTO members (id, email, password_hash, nickname, role)
		 VALUES ($1, $2, $3, $4, $5)
		 `

	_, err := r.db.ExecContext(ctx, query,
		member.ID, member.Email, member.PasswordHash, member.Nickname, member.Role)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

var _ ports.Members = (*PostgresMembers)(nil)
