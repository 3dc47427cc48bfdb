package forms

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"dotaznik/internal/audit"
	"dotaznik/internal/domain"
	"dotaznik/internal/platform/metrics"
	"dotaznik/internal/platform/middleware"
	"dotaznik/pkg/apperrors"
)

// Service orchestrates form persistence. It keeps handlers thin and the
// store swap-friendly.
type Service struct {
	store   Store
	cache   CountCache
	metrics *metrics.Metrics
	auditor *audit.Service
	tracer  trace.Tracer
	clock   func() time.Time
}

func NewService(store Store, cache CountCache, m *metrics.Metrics, auditor *audit.Service) *Service {
	return &Service{
		store:   store,
		cache:   cache,
		metrics: m,
		auditor: auditor,
		tracer:  otel.Tracer("dotaznik/forms"),
		clock:   time.Now,
	}
}

// WithClock overrides the time source, used by tests.
func (s *Service) WithClock(clock func() time.Time) *Service {
	s.clock = clock
	return s
}

// Create persists a finalized submission. The record arrives fully
// formed from the intake client, the service only guards the storage
// contract.
func (s *Service) Create(ctx context.Context, form domain.Form) error {
	ctx, span := s.tracer.Start(ctx, "forms.Create",
		trace.WithAttributes(attribute.String("form.id", form.ID)))
	defer span.End()

	if form.ID == "" {
		return apperrors.New(apperrors.CodeBadRequest, "form id is required")
	}
	if form.Status != domain.StatusCompleted {
		return apperrors.New(apperrors.CodeBadRequest, "only completed forms are accepted")
	}
	if !form.PaymentFrequency.Valid() {
		return apperrors.New(apperrors.CodeBadRequest, "unknown payment frequency")
	}

	if err := s.store.Save(ctx, form); err != nil {
		span.RecordError(err)
		return err
	}

	s.invalidateCount(ctx)
	if s.metrics != nil {
		s.metrics.FormsCreated.Inc()
	}
	s.auditor.Emit(ctx, audit.Event{
		Action:    audit.ActionFormCreated,
		FormID:    form.ID,
		RequestID: middleware.GetRequestID(ctx),
	})
	return nil
}

// GetAll returns every stored form, newest first.
func (s *Service) GetAll(ctx context.Context) ([]domain.Form, error) {
	ctx, span := s.tracer.Start(ctx, "forms.GetAll")
	defer span.End()
	return s.store.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Form, error) {
	ctx, span := s.tracer.Start(ctx, "forms.GetByID",
		trace.WithAttributes(attribute.String("form.id", id)))
	defer span.End()
	return s.store.FindByID(ctx, id)
}

func (s *Service) GetByStatus(ctx context.Context, status domain.FormStatus) ([]domain.Form, error) {
	ctx, span := s.tracer.Start(ctx, "forms.GetByStatus",
		trace.WithAttributes(attribute.String("form.status", string(status))))
	defer span.End()

	if status != domain.StatusDraft && status != domain.StatusCompleted {
		return nil, apperrors.New(apperrors.CodeBadRequest, "unknown form status")
	}
	return s.store.ListByStatus(ctx, status)
}

// Update replaces a stored form and stamps UpdatedAt. CreatedAt and the
// identifier are immutable.
func (s *Service) Update(ctx context.Context, form domain.Form) (domain.Form, error) {
	ctx, span := s.tracer.Start(ctx, "forms.Update",
		trace.WithAttributes(attribute.String("form.id", form.ID)))
	defer span.End()

	current, err := s.store.FindByID(ctx, form.ID)
	if err != nil {
		return domain.Form{}, err
	}
	form.CreatedAt = current.CreatedAt
	form.UpdatedAt = s.clock().UnixNano()

	if err := s.store.Update(ctx, form); err != nil {
		span.RecordError(err)
		return domain.Form{}, err
	}

	s.invalidateCount(ctx)
	s.auditor.Emit(ctx, audit.Event{
		Action:    audit.ActionFormUpdated,
		FormID:    form.ID,
		Actor:     middleware.GetUserID(ctx),
		RequestID: middleware.GetRequestID(ctx),
	})
	return form, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "forms.Delete",
		trace.WithAttributes(attribute.String("form.id", id)))
	defer span.End()

	if err := s.store.Delete(ctx, id); err != nil {
		span.RecordError(err)
		return err
	}

	s.invalidateCount(ctx)
	if s.metrics != nil {
		s.metrics.FormsDeleted.Inc()
	}
	s.auditor.Emit(ctx, audit.Event{
		Action:    audit.ActionFormDeleted,
		FormID:    id,
		Actor:     middleware.GetUserID(ctx),
		RequestID: middleware.GetRequestID(ctx),
	})
	return nil
}

// NewCount returns the number of forms not yet seen by an admin. The
// count is served from cache when fresh.
func (s *Service) NewCount(ctx context.Context) (int, error) {
	ctx, span := s.tracer.Start(ctx, "forms.NewCount")
	defer span.End()

	if s.cache != nil {
		if count, ok := s.cache.Get(ctx); ok {
			return count, nil
		}
	}
	count, err := s.store.CountUnviewed(ctx)
	if err != nil {
		span.RecordError(err)
		return 0, err
	}
	if s.cache != nil {
		s.cache.Set(ctx, count)
	}
	return count, nil
}

// MarkAllViewed clears the unread badge for every form.
func (s *Service) MarkAllViewed(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "forms.MarkAllViewed")
	defer span.End()

	if err := s.store.MarkAllViewed(ctx, s.clock().UnixNano()); err != nil {
		span.RecordError(err)
		return err
	}

	s.invalidateCount(ctx)
	s.auditor.Emit(ctx, audit.Event{
		Action:    audit.ActionFormsViewed,
		Actor:     middleware.GetUserID(ctx),
		RequestID: middleware.GetRequestID(ctx),
	})
	return nil
}

func (s *Service) invalidateCount(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
}
