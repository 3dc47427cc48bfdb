package profile

import (
	"context"
	"sync"

	"dotaznik/pkg/apperrors"
)

// ErrNotFound is returned when no profile exists for a user yet.
var ErrNotFound = apperrors.New(apperrors.CodeNotFound, "profile not found")

type Store interface {
	SaveProfile(ctx context.Context, profile UserProfile) error
	FindProfile(ctx context.Context, userID string) (UserProfile, error)
	SaveRole(ctx context.Context, userID string, role Role) error
	FindRole(ctx context.Context, userID string) (Role, bool, error)
}

type InMemoryStore struct {
	mu       sync.RWMutex
	profiles map[string]UserProfile
	roles    map[string]Role
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		profiles: make(map[string]UserProfile),
		roles:    make(map[string]Role),
	}
}

func (s *InMemoryStore) SaveProfile(_ context.Context, profile UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[profile.UserID] = profile
	return nil
}

func (s *InMemoryStore) FindProfile(_ context.Context, userID string) (UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if profile, ok := s.profiles[userID]; ok {
		return profile, nil
	}
	return UserProfile{}, ErrNotFound
}

func (s *InMemoryStore) SaveRole(_ context.Context, userID string, role Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roles[userID] = role
	return nil
}

func (s *InMemoryStore) FindRole(_ context.Context, userID string) (Role, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	role, ok := s.roles[userID]
	return role, ok, nil
}
