package forms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"dotaznik/internal/domain"
)

// PostgresStore persists forms in PostgreSQL. The query-relevant scalars
// live in their own columns; the nested record payload is stored as
// JSONB so the schema does not chase every form field.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgres constructs a PostgreSQL-backed form store.
func NewPostgres(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// payload is the JSONB body: everything on domain.Form that is not a
// dedicated column.
type payload struct {
	Operator             domain.Party            `json:"operator"`
	PolicyHolder         domain.Party            `json:"policyHolder"`
	Owner                domain.Party            `json:"owner"`
	Vehicle              domain.Vehicle          `json:"vehicle"`
	InsuranceOptions     domain.InsuranceOptions `json:"insuranceOptions"`
	PaymentFrequency     domain.PaymentFrequency `json:"paymentFrequency"`
	Mileage              string                  `json:"mileage,omitempty"`
	Notes                string                  `json:"notes"`
	OperatorAppliesToAll bool                    `json:"operatorAppliesToAll"`
	SubmitterName        string                  `json:"submitterName"`
	SubmitterEmail       string                  `json:"submitterEmail"`
}

func encodePayload(form domain.Form) ([]byte, error) {
	return json.Marshal(payload{
		Operator:             form.Operator,
		PolicyHolder:         form.PolicyHolder,
		Owner:                form.Owner,
		Vehicle:              form.Vehicle,
		InsuranceOptions:     form.InsuranceOptions,
		PaymentFrequency:     form.PaymentFrequency,
		Mileage:              form.Mileage,
		Notes:                form.Notes,
		OperatorAppliesToAll: form.OperatorAppliesToAll,
		SubmitterName:        form.SubmitterName,
		SubmitterEmail:       form.SubmitterEmail,
	})
}

func decodeRow(id string, status string, createdAt, updatedAt int64, viewed bool, body []byte) (domain.Form, error) {
	var p payload
	if err := json.Unmarshal(body, &p); err != nil {
		return domain.Form{}, fmt.Errorf("decode form payload: %w", err)
	}
	return domain.Form{
		ID:                   id,
		Status:               domain.FormStatus(status),
		Operator:             p.Operator,
		PolicyHolder:         p.PolicyHolder,
		Owner:                p.Owner,
		Vehicle:              p.Vehicle,
		InsuranceOptions:     p.InsuranceOptions,
		PaymentFrequency:     p.PaymentFrequency,
		Mileage:              p.Mileage,
		Notes:                p.Notes,
		OperatorAppliesToAll: p.OperatorAppliesToAll,
		CreatedAt:            createdAt,
		UpdatedAt:            updatedAt,
		ViewedByAdmin:        viewed,
		SubmitterName:        p.SubmitterName,
		SubmitterEmail:       p.SubmitterEmail,
	}, nil
}

func (s *PostgresStore) Save(ctx context.Context, form domain.Form) error {
	body, err := encodePayload(form)
	if err != nil {
		return fmt.Errorf("marshal form payload: %w", err)
	}
	tag, err := s.pool.Exec(ctx, `
		INSERT INTO forms (id, status, created_at, updated_at, viewed_by_admin, payload)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING`,
		form.ID, string(form.Status), form.CreatedAt, form.UpdatedAt, form.ViewedByAdmin, body,
	)
	if err != nil {
		return fmt.Errorf("save form: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrDuplicateID
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id string) (domain.Form, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, status, created_at, updated_at, viewed_by_admin, payload
		FROM forms WHERE id = $1`, id)
	form, err := scanForm(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Form{}, ErrNotFound
		}
		return domain.Form{}, fmt.Errorf("find form by id: %w", err)
	}
	return form, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]domain.Form, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, status, created_at, updated_at, viewed_by_admin, payload
		FROM forms ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list forms: %w", err)
	}
	defer rows.Close()
	return collectForms(rows)
}

func (s *PostgresStore) ListByStatus(ctx context.Context, status domain.FormStatus) ([]domain.Form, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, status, created_at, updated_at, viewed_by_admin, payload
		FROM forms WHERE status = $1 ORDER BY created_at DESC, id DESC`, string(status))
	if err != nil {
		return nil, fmt.Errorf("list forms by status: %w", err)
	}
	defer rows.Close()
	return collectForms(rows)
}

func (s *PostgresStore) Update(ctx context.Context, form domain.Form) error {
	body, err := encodePayload(form)
	if err != nil {
		return fmt.Errorf("marshal form payload: %w", err)
	}
	tag, err := s.pool.Exec(ctx, `
		UPDATE forms
		SET status = $2, updated_at = $3, viewed_by_admin = $4, payload = $5
		WHERE id = $1`,
		form.ID, string(form.Status), form.UpdatedAt, form.ViewedByAdmin, body,
	)
	if err != nil {
		return fmt.Errorf("update form: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM forms WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete form: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) CountUnviewed(ctx context.Context) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM forms WHERE NOT viewed_by_admin`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count unviewed forms: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) MarkAllViewed(ctx context.Context, updatedAt int64) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE forms SET viewed_by_admin = TRUE, updated_at = $1
		WHERE NOT viewed_by_admin`, updatedAt)
	if err != nil {
		return fmt.Errorf("mark forms viewed: %w", err)
	}
	return nil
}

func scanForm(row pgx.Row) (domain.Form, error) {
	var (
		id, status           string
		createdAt, updatedAt int64
		viewed               bool
		body                 []byte
	)
	if err := row.Scan(&id, &status, &createdAt, &updatedAt, &viewed, &body); err != nil {
		return domain.Form{}, err
	}
	return decodeRow(id, status, createdAt, updatedAt, viewed, body)
}

func collectForms(rows pgx.Rows) ([]domain.Form, error) {
	out := make([]domain.Form, 0)
	for rows.Next() {
		form, err := scanForm(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, form)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate forms: %w", err)
	}
	return out, nil
}
