package forms

import (
	"context"
	"sort"
	"sync"

	"dotaznik/internal/domain"
)

// InMemoryStore keeps the development setup lightweight and testable.
// It intentionally favors clarity over performance.
type InMemoryStore struct {
	mu    sync.RWMutex
	forms map[string]domain.Form
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{forms: make(map[string]domain.Form)}
}

func (s *InMemoryStore) Save(_ context.Context, form domain.Form) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.forms[form.ID]; exists {
		return ErrDuplicateID
	}
	s.forms[form.ID] = form
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id string) (domain.Form, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if form, ok := s.forms[id]; ok {
		return form, nil
	}
	return domain.Form{}, ErrNotFound
}

func (s *InMemoryStore) List(_ context.Context) ([]domain.Form, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Form, 0, len(s.forms))
	for _, form := range s.forms {
		out = append(out, form)
	}
	sortNewestFirst(out)
	return out, nil
}

func (s *InMemoryStore) ListByStatus(_ context.Context, status domain.FormStatus) ([]domain.Form, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Form, 0)
	for _, form := range s.forms {
		if form.Status == status {
			out = append(out, form)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (s *InMemoryStore) Update(_ context.Context, form domain.Form) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.forms[form.ID]; !ok {
		return ErrNotFound
	}
	s.forms[form.ID] = form
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.forms[id]; !ok {
		return ErrNotFound
	}
	delete(s.forms, id)
	return nil
}

func (s *InMemoryStore) CountUnviewed(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, form := range s.forms {
		if !form.ViewedByAdmin {
			count++
		}
	}
	return count, nil
}

func (s *InMemoryStore) MarkAllViewed(_ context.Context, updatedAt int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, form := range s.forms {
		if form.ViewedByAdmin {
			continue
		}
		form.ViewedByAdmin = true
		form.UpdatedAt = updatedAt
		s.forms[id] = form
	}
	return nil
}

func sortNewestFirst(forms []domain.Form) {
	sort.Slice(forms, func(i, j int) bool {
		if forms[i].CreatedAt != forms[j].CreatedAt {
			return forms[i].CreatedAt > forms[j].CreatedAt
		}
		return forms[i].ID > forms[j].ID
	})
}
