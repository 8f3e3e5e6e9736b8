package service

import (
	"context"
	"sync"
	"time"

	"github.com/datapulse/identity-api/internal/core/domain"
)

type stubTeammateStore struct {
	teammates map[string]*domain.Teammate
}

func newStubTeammateStore() *stubTeammateStore {
	return &stubTeammateStore{teammates: make(map[string]*domain.Teammate)}
}

func cloneTeammate(t *domain.Teammate) *domain.Teammate {
	if t == nil {
		return nil
	}
	clone := *t
	return &clone
}

func (s *stubTeammateStore) add(t *domain.Teammate) {
	s.teammates[t.ID] = cloneTeammate(t)
}

func (s *stubTeammateStore) FindByEmail(_ context.Context, email string) (*domain.Teammate, error) {
	for _, t := range s.teammates {
		if t.Email == email {
			return cloneTeammate(t), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *stubTeammateStore) FindByID(_ context.Context, id string) (*domain.Teammate, error) {
	if t, ok := s.teammates[id]; ok {
		return cloneTeammate(t), nil
	}
	return nil, domain.ErrUserNotFound
}

func (s *stubTeammateStore) Create(_ context.Context, t *domain.Teammate) (*domain.Teammate, error) {
	for _, existing := range s.teammates {
		if existing.Email == t.Email {
			return nil, domain.ErrUserExists
		}
	}
	copy := cloneTeammate(t)
	if copy.ID == "" {
		copy.ID = "tm_" + t.Email
	}
	s.teammates[copy.ID] = cloneTeammate(copy)
	return copy, nil
}

type stubClientStore struct {
	users map[string]*domain.ClientUser
}

func newStubClientStore() *stubClientStore {
	return &stubClientStore{users: make(map[string]*domain.ClientUser)}
}

func cloneClientUser(u *domain.ClientUser) *domain.ClientUser {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (s *stubClientStore) add(u *domain.ClientUser) {
	s.users[u.ID] = cloneClientUser(u)
}

func (s *stubClientStore) FindByEmail(_ context.Context, email string) (*domain.ClientUser, error) {
	for _, u := range s.users {
		if u.Email == email {
			return cloneClientUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *stubClientStore) FindByID(_ context.Context, id string) (*domain.ClientUser, error) {
	if u, ok := s.users[id]; ok {
		return cloneClientUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (s *stubClientStore) ListByStatus(_ context.Context, status string) ([]domain.ClientUser, error) {
	var out []domain.ClientUser
	for _, u := range s.users {
		if u.Status == status {
			out = append(out, *cloneClientUser(u))
		}
	}
	return out, nil
}

func (s *stubClientStore) Create(_ context.Context, u *domain.ClientUser) (*domain.ClientUser, error) {
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return nil, domain.ErrUserExists
		}
	}
	copy := cloneClientUser(u)
	if copy.ID == "" {
		copy.ID = "cu_" + u.Email
	}
	s.users[copy.ID] = cloneClientUser(copy)
	return copy, nil
}

func (s *stubClientStore) UpdateProfile(_ context.Context, u *domain.ClientUser) error {
	if _, ok := s.users[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	s.users[u.ID] = cloneClientUser(u)
	return nil
}

func (s *stubClientStore) UpdateSecretHash(_ context.Context, id, secretHash string) error {
	u, ok := s.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.SecretHash = secretHash
	return nil
}

func (s *stubClientStore) UpdateStatus(_ context.Context, id, status string) error {
	u, ok := s.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Status = status
	return nil
}

func (s *stubClientStore) UpdateLastLogin(_ context.Context, id string, at time.Time) error {
	u, ok := s.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.LastLoginAt = &at
	return nil
}

type stubLimiter struct {
	mu       sync.Mutex
	allowed  bool
	failures int
	resets   int
}

func (l *stubLimiter) Allow(context.Context, string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.allowed, nil
}

func (l *stubLimiter) RecordFailure(context.Context, string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.failures++
	return nil
}

func (l *stubLimiter) Reset(context.Context, string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.resets++
	return nil
}

type stubAudit struct {
	mu     sync.Mutex
	events []domain.AuditEvent
}

func (a *stubAudit) Record(event domain.AuditEvent) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, event)
}
