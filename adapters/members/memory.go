package members

import (
	"context"
	"sync"

	"github.com/janus-auth/janus/core"
	"github.com/janus-auth/janus/ports"
)

// MemoryMembers is an in-memory implementation of the Members interface for
// tests and single-node development.
type MemoryMembers struct {
	byEmail map[string]*core.Member
	mu      sync.RWMutex
}

// NewMemoryMembers creates an empty in-memory member repository.
func NewMemoryMembers() *MemoryMembers {
	return &MemoryMembers{byEmail: make(map[string]*core.Member)}
}

func (r *MemoryMembers) FindByEmail(ctx context.Context, email string) (*core.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	member, ok := r.byEmail[email]
	if !ok {
		return nil, core.ErrMemberNotFound
	}
	copied := *member
	return &copied, nil
}

func (r *MemoryMembers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byEmail[email]
	return ok, nil
}

func (r *MemoryMembers) ExistsByNickname(ctx context.Context, nickname string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, member := range r.byEmail {
		if member.Nickname == nickname {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryMembers) Create(ctx context.Context, member *core.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *member
	r.byEmail[member.Email] = &copied
	return nil
}

var _ ports.Members = (*MemoryMembers)(nil)
