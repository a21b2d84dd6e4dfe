package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/janus-auth/janus/core"
	"github.com/janus-auth/janus/ports"
)

// AuthService orchestrates login, signup and the refresh-token rotation
// protocol by composing the tokenizer, the session store and the member
// repository. It holds no mutable state of its own, so a single instance is
// shared by all concurrent requests.
type AuthService struct {
	tokenizer ports.Tokenizer
	store     ports.SessionStore
	members   ports.Members
	hasher    ports.Hasher
	events    ports.EventPublisher
	log       *slog.Logger

	accessTTL  time.Duration
	refreshTTL time.Duration
}

// LoginResult is the minimal profile returned on a successful login. The
// password hash and internal identifiers never leave the service.
type LoginResult struct {
	AccessToken string
	Nickname    string
	Role        core.Role
}

// NewAuthService creates a new authentication service. events may be nil when
// no publisher is wired.
func NewAuthService(
	tokenizer ports.Tokenizer,
	store ports.SessionStore,
	members ports.Members,
	hasher ports.Hasher,
	events ports.EventPublisher,
	log *slog.Logger,
	accessTTL, refreshTTL time.Duration,
) *AuthService {
	return &AuthService{
		tokenizer:  tokenizer,
		store:      store,
		members:    members,
		hasher:     hasher,
		events:     events,
		log:        log,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// RefreshTTL exposes the refresh validity window so the transport can scope
// the cookie lifetime to it.
func (s *AuthService) RefreshTTL() time.Duration {
	return s.refreshTTL
}

// Login verifies the credentials, issues a fresh token pair and records the
// refresh token as the single authoritative session for the member. The store
// write happens before Login returns so a reissue can never race an unset
// record.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, string, error) {
	member, err := s.members.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, core.ErrMemberNotFound) {
			return nil, "", core.ErrMemberNotFound
		}
		return nil, "", fmt.Errorf("member lookup failed: %w", err)
	}

	if err := s.hasher.Compare(member.PasswordHash, password); err != nil {
		return nil, "", core.ErrLoginFailure
	}

	accessToken, err := s.tokenizer.Issue(member.Email, s.accessTTL)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue access token: %w", err)
	}

	refreshToken, err := s.tokenizer.Issue(member.Email, s.refreshTTL)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue refresh token: %w", err)
	}

	if err := s.store.Put(ctx, member.Email, refreshToken, s.refreshTTL); err != nil {
		return nil, "", fmt.Errorf("failed to store refresh token: %w", err)
	}

	s.publishLoggedIn(ctx, member.Email)

	result := &LoginResult{
		AccessToken: accessToken,
		Nickname:    member.Nickname,
		Role:        member.Role,
	}
	return result, refreshToken, nil
}

// Reissue exchanges a still-valid refresh token for a new token pair,
// rotating the stored session record in the same step. Expired and tampered
// refresh tokens are deliberately indistinguishable to the caller; both fail
// with the same business error. A refresh token that passes verification but
// is no longer the stored value has been superseded, and replaying it fails
// the same way.
func (s *AuthService) Reissue(ctx context.Context, presented string) (string, string, error) {
	subject, err := s.tokenizer.Verify(presented)
	if err != nil {
		return "", "", core.ErrInvalidToken
	}

	accessToken, err := s.tokenizer.Issue(subject, s.accessTTL)
	if err != nil {
		return "", "", fmt.Errorf("failed to issue access token: %w", err)
	}

	refreshToken, err := s.tokenizer.Issue(subject, s.refreshTTL)
	if err != nil {
		return "", "", fmt.Errorf("failed to issue refresh token: %w", err)
	}

	// One atomic lookup-compare-overwrite; this is what invalidates the
	// presented token for any future reissue.
	if err := s.store.Replace(ctx, subject, presented, refreshToken, s.refreshTTL); err != nil {
		if errors.Is(err, core.ErrNoSession) || errors.Is(err, core.ErrSessionMismatch) {
			return "", "", core.ErrInvalidToken
		}
		return "", "", fmt.Errorf("failed to rotate refresh token: %w", err)
	}

	s.publishRotated(ctx, subject)

	return accessToken, refreshToken, nil
}

// Authenticate verifies an access token and returns its subject. Outcomes
// keep expired and invalid distinct for the middleware.
func (s *AuthService) Authenticate(token string) (string, error) {
	return s.tokenizer.Verify(token)
}

// Signup registers a new member. Uniqueness is checked email first, then
// nickname; the first failure wins.
func (s *AuthService) Signup(ctx context.Context, email, password, nickname string) error {
	taken, err := s.members.ExistsByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("email check failed: %w", err)
	}
	if taken {
		return core.ErrEmailDuplication
	}

	taken, err = s.members.ExistsByNickname(ctx, nickname)
	if err != nil {
		return fmt.Errorf("nickname check failed: %w", err)
	}
	if taken {
		return core.ErrNicknameDuplication
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	member := &core.Member{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		Nickname:     nickname,
		Role:         core.RoleUser,
	}

	if err := s.members.Create(ctx, member); err != nil {
		return fmt.Errorf("failed to create member: %w", err)
	}

	return nil
}

// IsEmailTaken reports whether email is already registered.
func (s *AuthService) IsEmailTaken(ctx context.Context, email string) (bool, error) {
	return s.members.ExistsByEmail(ctx, email)
}

// IsNicknameTaken reports whether nickname is already registered.
func (s *AuthService) IsNicknameTaken(ctx context.Context, nickname string) (bool, error) {
	return s.members.ExistsByNickname(ctx, nickname)
}

func (s *AuthService) publishLoggedIn(ctx context.Context, subject string) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishLoggedIn(ctx, subject); err != nil {
		s.log.Warn("failed to publish login event", "subject", subject, "error", err)
	}
}

func (s *AuthService) publishRotated(ctx context.Context, subject string) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishRotated(ctx, subject); err != nil {
		s.log.Warn("failed to publish rotation event", "subject", subject, "error", err)
	}
}
