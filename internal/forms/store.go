// Package forms is the persistence service for submitted intake forms:
// storage, the service layer and the HTTP surface the intake client and
// the admin dashboard talk to.
package forms

import (
	"context"

	"dotaznik/internal/domain"
	"dotaznik/pkg/apperrors"
)

// ErrNotFound keeps storage-specific 404s consistent across in-memory
// and Postgres implementations.
var ErrNotFound = apperrors.New(apperrors.CodeNotFound, "form not found")

// ErrDuplicateID rejects a second insert under an already stored ID.
var ErrDuplicateID = apperrors.New(apperrors.CodeBadRequest, "form id already exists")

// Store is interface-driven to keep the domain logic testable and to
// allow swapping in-memory and Postgres persistence without rewiring
// business code.
type Store interface {
	Save(ctx context.Context, form domain.Form) error
	FindByID(ctx context.Context, id string) (domain.Form, error)
	// List returns all forms ordered newest first by CreatedAt.
	List(ctx context.Context) ([]domain.Form, error)
	ListByStatus(ctx context.Context, status domain.FormStatus) ([]domain.Form, error)
	Update(ctx context.Context, form domain.Form) error
	Delete(ctx context.Context, id string) error
	CountUnviewed(ctx context.Context) (int, error)
	// MarkAllViewed flips ViewedByAdmin on every record and stamps
	// UpdatedAt with the given UnixNano timestamp.
	MarkAllViewed(ctx context.Context, updatedAt int64) error
}
