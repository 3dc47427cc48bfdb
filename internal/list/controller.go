// Package list drives the admin dashboard's form overview: loading the
// collection, per-row expansion, the unread badge actions and the
// CSV/JSON downloads.
package list

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"dotaznik/internal/client"
	"dotaznik/internal/domain"
	"dotaznik/internal/export"
)

// noticeLoadFailed is shown instead of an error page when the service
// is down; the dashboard renders an empty list and stays usable.
const noticeLoadFailed = "Formuláře se nepodařilo načíst"

// Controller holds the dashboard list state. Expansion is purely
// client-side and survives reloads of the collection but not deletion
// of the row.
type Controller struct {
	backend *client.Backend
	logger  *slog.Logger
	clock   func() time.Time

	mu       sync.Mutex
	expanded map[string]bool
	notice   string
}

func NewController(backend *client.Backend, logger *slog.Logger) *Controller {
	return &Controller{
		backend:  backend,
		logger:   logger,
		clock:    time.Now,
		expanded: make(map[string]bool),
	}
}

// WithClock overrides the time source, used by tests.
func (c *Controller) WithClock(clock func() time.Time) *Controller {
	c.clock = clock
	return c
}

// Load fetches the collection. A failed read degrades to an empty list
// with a notice instead of an error so the dashboard keeps rendering.
func (c *Controller) Load(ctx context.Context) []domain.Form {
	forms, err := c.backend.GetForms(ctx)
	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.logger.WarnContext(ctx, "loading forms failed", "error", err.Error())
		c.notice = noticeLoadFailed
		return []domain.Form{}
	}
	c.notice = ""
	return forms
}

// Notice returns the current user-facing notice, empty when the last
// load succeeded.
func (c *Controller) Notice() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.notice
}

// ToggleExpanded flips a row's detail view.
func (c *Controller) ToggleExpanded(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.expanded[id] = !c.expanded[id]
}

func (c *Controller) IsExpanded(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.expanded[id]
}

// MarkAllViewed clears the unread badge. The backend invalidates its
// list and count caches as part of the call.
func (c *Controller) MarkAllViewed(ctx context.Context) error {
	return c.backend.MarkAllViewed(ctx)
}

// Delete removes a form and drops its expansion state.
func (c *Controller) Delete(ctx context.Context, id string) error {
	if err := c.backend.DeleteForm(ctx, id); err != nil {
		return err
	}
	c.mu.Lock()
	delete(c.expanded, id)
	c.mu.Unlock()
	return nil
}

// ExportCSV renders the current collection as a CSV download.
func (c *Controller) ExportCSV(ctx context.Context) (string, []byte, error) {
	forms, err := c.backend.GetForms(ctx)
	if err != nil {
		return "", nil, err
	}
	data, err := export.CSV(forms)
	if err != nil {
		return "", nil, err
	}
	return export.FileName("csv", c.clock()), data, nil
}

// ExportJSON renders the current collection as a JSON download.
func (c *Controller) ExportJSON(ctx context.Context) (string, []byte, error) {
	forms, err := c.backend.GetForms(ctx)
	if err != nil {
		return "", nil, err
	}
	data, err := export.JSON(forms)
	if err != nil {
		return "", nil, err
	}
	return export.FileName("json", c.clock()), data, nil
}
