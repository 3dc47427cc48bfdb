// Package suggest provides typeahead data for the intake form: street
// addresses from two external providers and the static vehicle catalog.
package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/sync/errgroup"

	"dotaznik/internal/platform/config"
	"dotaznik/internal/platform/metrics"
)

const (
	// MinQueryLength is the shortest query worth sending upstream.
	MinQueryLength = 3

	// maxSuggestions caps the merged result list.
	maxSuggestions = 10

	// secondaryThreshold is the primary result count below which the
	// secondary provider may top the list up.
	secondaryThreshold = 5
)

// Provider returns address suggestions for a query.
type Provider interface {
	Search(ctx context.Context, query string) ([]string, error)
	Name() string
}

// AddressService merges suggestions from a primary and a secondary
// provider. The primary's results always win; the secondary tops the
// list up only when the primary returned fewer than 5. Provider
// failures are isolated, one provider going down degrades the list
// instead of failing it.
type AddressService struct {
	primary   Provider
	secondary Provider
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

func NewAddressService(primary, secondary Provider, m *metrics.Metrics, logger *slog.Logger) *AddressService {
	return &AddressService{primary: primary, secondary: secondary, metrics: m, logger: logger}
}

// Suggest returns up to 10 deduplicated addresses for the query.
// Queries under 3 characters return nothing without calling upstream.
func (s *AddressService) Suggest(ctx context.Context, query string) []string {
	query = strings.TrimSpace(query)
	if len([]rune(query)) < MinQueryLength {
		return nil
	}

	var primary, secondary []string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		primary = s.search(gctx, s.primary, query)
		return nil
	})
	g.Go(func() error {
		secondary = s.search(gctx, s.secondary, query)
		return nil
	})
	_ = g.Wait()

	return merge(primary, secondary)
}

func (s *AddressService) search(ctx context.Context, p Provider, query string) []string {
	results, err := p.Search(ctx, query)
	outcome := "ok"
	if err != nil {
		outcome = "error"
		s.logger.WarnContext(ctx, "address provider failed",
			"provider", p.Name(),
			"error", err.Error(),
		)
		results = nil
	}
	if s.metrics != nil {
		s.metrics.SuggestRequests.WithLabelValues(p.Name(), outcome).Inc()
	}
	return results
}

// merge deduplicates case-insensitively. Primary results fill the list
// first; when they number fewer than 5 the secondary ones are appended
// up to the cap of 10. The gate is checked once against the primary
// contribution, a short primary list opens the full remaining capacity
// to the secondary provider.
func merge(primary, secondary []string) []string {
	seen := make(map[string]struct{}, maxSuggestions)
	merged := make([]string, 0, maxSuggestions)

	add := func(addr string) bool {
		addr = strings.TrimSpace(addr)
		if addr == "" {
			return false
		}
		key := strings.ToLower(addr)
		if _, dup := seen[key]; dup {
			return false
		}
		seen[key] = struct{}{}
		merged = append(merged, addr)
		return true
	}

	for _, addr := range primary {
		if len(merged) >= maxSuggestions {
			break
		}
		add(addr)
	}
	if len(merged) >= secondaryThreshold {
		return merged
	}
	for _, addr := range secondary {
		if len(merged) >= maxSuggestions {
			break
		}
		add(addr)
	}
	return merged
}

// MapyClient queries the Mapy.cz suggest API.
type MapyClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewMapyClient(cfg config.SuggestConfig) *MapyClient {
	return &MapyClient{
		baseURL: cfg.MapyURL,
		apiKey:  cfg.MapyAPIKey,
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *MapyClient) Name() string { return "mapy" }

type mapyResponse struct {
	Items []struct {
		Name     string `json:"name"`
		Location string `json:"location"`
	} `json:"items"`
}

func (c *MapyClient) Search(ctx context.Context, query string) ([]string, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("lang", "cs")
	params.Set("limit", "10")
	params.Set("type", "regional.address")
	params.Set("apikey", c.apiKey)

	var resp mapyResponse
	if err := getJSON(ctx, c.client, c.baseURL+"?"+params.Encode(), &resp); err != nil {
		return nil, err
	}

	out := make([]string, 0, len(resp.Items))
	for _, item := range resp.Items {
		out = append(out, assembleAddress(item.Name, item.Location))
	}
	return out, nil
}

// assembleAddress joins the suggestion name with the location parts the
// name does not already contain, so "Dlouhá 1, Praha" with location
// "Praha" does not become "Dlouhá 1, Praha, Praha".
func assembleAddress(name, location string) string {
	full := name
	for _, part := range strings.Split(location, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if strings.Contains(strings.ToLower(full), strings.ToLower(part)) {
			continue
		}
		full += ", " + part
	}
	return full
}

// NominatimClient queries the OpenStreetMap Nominatim search API.
type NominatimClient struct {
	baseURL string
	client  *http.Client
}

func NewNominatimClient(cfg config.SuggestConfig) *NominatimClient {
	return &NominatimClient{
		baseURL: cfg.NominatimURL,
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *NominatimClient) Name() string { return "nominatim" }

type nominatimResult struct {
	DisplayName string `json:"display_name"`
}

func (c *NominatimClient) Search(ctx context.Context, query string) ([]string, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("countrycodes", "cz")
	params.Set("limit", "10")

	var results []nominatimResult
	if err := getJSON(ctx, c.client, c.baseURL+"?"+params.Encode(), &results); err != nil {
		return nil, err
	}

	out := make([]string, 0, len(results))
	for _, r := range results {
		out = append(out, r.DisplayName)
	}
	return out, nil
}

func getJSON(ctx context.Context, client *http.Client, rawURL string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("call provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("provider returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("decode provider response: %w", err)
	}
	return nil
}
