package suggest

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type deliveries struct {
	mu      sync.Mutex
	queries []string
	results [][]string
}

func (d *deliveries) deliver(query string, results []string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.queries = append(d.queries, query)
	d.results = append(d.results, results)
}

func (d *deliveries) snapshot() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string{}, d.queries...)
}

func TestDebouncerCoalescesRapidTyping(t *testing.T) {
	var calls []string
	var mu sync.Mutex
	got := &deliveries{}

	d := NewDebouncer(20*time.Millisecond, func(_ context.Context, q string) []string {
		mu.Lock()
		calls = append(calls, q)
		mu.Unlock()
		return []string{q + " 1, Praha"}
	}, got.deliver)

	ctx := context.Background()
	d.Query(ctx, "Dlo")
	d.Query(ctx, "Dlou")
	d.Query(ctx, "Dlouhá")

	require.Eventually(t, func() bool {
		return len(got.snapshot()) == 1
	}, time.Second, 5*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"Dlouhá"}, calls, "only the final query hits the providers")
	assert.Equal(t, []string{"Dlouhá"}, got.snapshot())
}

func TestDebouncerDiscardsStaleResponses(t *testing.T) {
	got := &deliveries{}
	release := make(chan struct{})

	d := NewDebouncer(5*time.Millisecond, func(_ context.Context, q string) []string {
		if q == "slow" {
			<-release
		}
		return []string{q}
	}, got.deliver)

	ctx := context.Background()
	d.Query(ctx, "slow")
	// Let the slow lookup start, then supersede it.
	time.Sleep(20 * time.Millisecond)
	d.Query(ctx, "fast")

	require.Eventually(t, func() bool {
		return len(got.snapshot()) == 1
	}, time.Second, 5*time.Millisecond)

	// The slow response lands after the fast one and must be dropped.
	close(release)
	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, []string{"fast"}, got.snapshot())
}

func TestDebouncerCancel(t *testing.T) {
	got := &deliveries{}
	d := NewDebouncer(10*time.Millisecond, func(_ context.Context, q string) []string {
		return []string{q}
	}, got.deliver)

	d.Query(context.Background(), "Dlouhá")
	d.Cancel()

	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, got.snapshot())
}
