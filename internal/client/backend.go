// Package client is the HTTP collaborator the intake form and the
// admin dashboard use to reach the persistence service. Reads go
// through a resource-keyed cache; every mutation invalidates the keys
// it can affect.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"dotaznik/internal/domain"
	"dotaznik/internal/profile"
	"dotaznik/pkg/apperrors"
)

// Backend talks to the persistence service.
type Backend struct {
	baseURL string
	client  *http.Client
	cache   *Cache

	mu    sync.RWMutex
	token string
}

func NewBackend(baseURL string) *Backend {
	return &Backend{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
		cache:   NewCache(),
	}
}

// Cache exposes the response cache, mainly for tests and the list
// controller's invalidation on logout.
func (b *Backend) Cache() *Cache {
	return b.cache
}

// SetToken stores the access token for authenticated calls and drops
// identity-scoped cache entries.
func (b *Backend) SetToken(token string) {
	b.mu.Lock()
	b.token = token
	b.mu.Unlock()
	b.cache.Invalidate(CacheProfile, CacheUserRole, CacheIsAdmin)
}

func (b *Backend) bearer() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.token
}

// CreateForm submits a finalized form. Satisfies the intake
// controller's backend dependency.
func (b *Backend) CreateForm(ctx context.Context, form domain.Form) error {
	if err := b.do(ctx, http.MethodPost, "/forms", form, nil); err != nil {
		return err
	}
	b.cache.Invalidate(CacheForms, CacheNewCount)
	return nil
}

// GetForms lists all stored forms, newest first.
func (b *Backend) GetForms(ctx context.Context) ([]domain.Form, error) {
	if cached, ok := b.cache.Get(CacheForms); ok {
		return cached.([]domain.Form), nil
	}
	var forms []domain.Form
	if err := b.do(ctx, http.MethodGet, "/admin/forms", nil, &forms); err != nil {
		return nil, err
	}
	b.cache.Set(CacheForms, forms)
	return forms, nil
}

// GetForm fetches a single form by ID. Not cached, detail views are
// rare compared to the list.
func (b *Backend) GetForm(ctx context.Context, id string) (domain.Form, error) {
	var form domain.Form
	if err := b.do(ctx, http.MethodGet, "/admin/forms/"+url.PathEscape(id), nil, &form); err != nil {
		return domain.Form{}, err
	}
	return form, nil
}

func (b *Backend) GetFormsByStatus(ctx context.Context, status domain.FormStatus) ([]domain.Form, error) {
	var forms []domain.Form
	path := "/admin/forms?status=" + string(status)
	if err := b.do(ctx, http.MethodGet, path, nil, &forms); err != nil {
		return nil, err
	}
	return forms, nil
}

func (b *Backend) UpdateForm(ctx context.Context, form domain.Form) (domain.Form, error) {
	var updated domain.Form
	if err := b.do(ctx, http.MethodPut, "/admin/forms/"+url.PathEscape(form.ID), form, &updated); err != nil {
		return domain.Form{}, err
	}
	b.cache.Invalidate(CacheForms, CacheNewCount)
	return updated, nil
}

func (b *Backend) DeleteForm(ctx context.Context, id string) error {
	if err := b.do(ctx, http.MethodDelete, "/admin/forms/"+url.PathEscape(id), nil, nil); err != nil {
		return err
	}
	b.cache.Invalidate(CacheForms, CacheNewCount)
	return nil
}

// NewCount returns the unread badge count.
func (b *Backend) NewCount(ctx context.Context) (int, error) {
	if cached, ok := b.cache.Get(CacheNewCount); ok {
		return cached.(int), nil
	}
	var resp map[string]int
	if err := b.do(ctx, http.MethodGet, "/admin/forms/new-count", nil, &resp); err != nil {
		return 0, err
	}
	count := resp["count"]
	b.cache.Set(CacheNewCount, count)
	return count, nil
}

func (b *Backend) MarkAllViewed(ctx context.Context) error {
	if err := b.do(ctx, http.MethodPost, "/admin/forms/mark-viewed", nil, nil); err != nil {
		return err
	}
	b.cache.Invalidate(CacheForms, CacheNewCount)
	return nil
}

// Login exchanges credentials for an access token and installs it.
func (b *Backend) Login(ctx context.Context, username, password string) error {
	payload := map[string]string{"username": username, "password": password}
	var resp map[string]string
	if err := b.do(ctx, http.MethodPost, "/auth/login", payload, &resp); err != nil {
		return err
	}
	b.SetToken(resp["accessToken"])
	return nil
}

func (b *Backend) GetProfile(ctx context.Context) (profile.UserProfile, error) {
	if cached, ok := b.cache.Get(CacheProfile); ok {
		return cached.(profile.UserProfile), nil
	}
	var prof profile.UserProfile
	if err := b.do(ctx, http.MethodGet, "/me/profile", nil, &prof); err != nil {
		return profile.UserProfile{}, err
	}
	b.cache.Set(CacheProfile, prof)
	return prof, nil
}

func (b *Backend) SaveProfile(ctx context.Context, prof profile.UserProfile) (profile.UserProfile, error) {
	var saved profile.UserProfile
	if err := b.do(ctx, http.MethodPut, "/me/profile", prof, &saved); err != nil {
		return profile.UserProfile{}, err
	}
	b.cache.Invalidate(CacheProfile)
	return saved, nil
}

func (b *Backend) Role(ctx context.Context) (profile.Role, error) {
	if cached, ok := b.cache.Get(CacheUserRole); ok {
		return cached.(profile.Role), nil
	}
	var resp map[string]string
	if err := b.do(ctx, http.MethodGet, "/me/role", nil, &resp); err != nil {
		return "", err
	}
	role := profile.Role(resp["role"])
	b.cache.Set(CacheUserRole, role)
	return role, nil
}

func (b *Backend) IsAdmin(ctx context.Context) (bool, error) {
	if cached, ok := b.cache.Get(CacheIsAdmin); ok {
		return cached.(bool), nil
	}
	var resp map[string]bool
	if err := b.do(ctx, http.MethodGet, "/me/is-admin", nil, &resp); err != nil {
		return false, err
	}
	isAdmin := resp["isAdmin"]
	b.cache.Set(CacheIsAdmin, isAdmin)
	return isAdmin, nil
}

func (b *Backend) do(ctx context.Context, method, path string, payload, target any) error {
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return apperrors.Wrap(apperrors.CodeInternal, "encode request", err)
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, b.baseURL+path, body)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeInternal, "build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := b.bearer(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeUnavailable, "služba je nedostupná", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}
	if target != nil {
		if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
			return apperrors.Wrap(apperrors.CodeInternal, "decode response", err)
		}
	}
	return nil
}

func decodeError(resp *http.Response) error {
	var body struct {
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.Error == "" {
		return apperrors.New(apperrors.CodeInternal,
			fmt.Sprintf("služba vrátila stav %d", resp.StatusCode))
	}
	message := body.ErrorDescription
	if message == "" {
		message = body.Error
	}
	return apperrors.New(apperrors.Code(body.Error), message)
}
