package suggest

import (
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dotaznik/pkg/testutil"
)

func newSuggestRouter(primary, secondary Provider) *chi.Mux {
	handler := NewHandler(newService(primary, secondary), testLogger())
	r := chi.NewRouter()
	handler.Register(r)
	return r
}

func TestAddressEndpoint(t *testing.T) {
	r := newSuggestRouter(
		&staticProvider{name: "mapy", results: []string{"Dlouhá 1, Praha"}},
		&staticProvider{name: "nominatim"},
	)

	req := testutil.NewRequest(t, http.MethodGet, "/suggest/address?q=Dlouh%C3%A1")
	rr := testutil.DoRequest(r, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var got []string
	testutil.DecodeJSON(t, rr, &got)
	assert.Equal(t, []string{"Dlouhá 1, Praha"}, got)
}

func TestAddressEndpointShortQueryReturnsEmptyList(t *testing.T) {
	primary := &staticProvider{name: "mapy", results: []string{"Dlouhá 1, Praha"}}
	r := newSuggestRouter(primary, &staticProvider{name: "nominatim"})

	req := testutil.NewRequest(t, http.MethodGet, "/suggest/address?q=Dl")
	rr := testutil.DoRequest(r, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var got []string
	testutil.DecodeJSON(t, rr, &got)
	assert.Empty(t, got)
	assert.Zero(t, primary.calls)
}

func TestBrandAndModelEndpoints(t *testing.T) {
	r := newSuggestRouter(&staticProvider{name: "mapy"}, &staticProvider{name: "nominatim"})

	req := testutil.NewRequest(t, http.MethodGet, "/suggest/brands?q=te")
	rr := testutil.DoRequest(r, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var brands []string
	testutil.DecodeJSON(t, rr, &brands)
	assert.Contains(t, brands, "Tesla")

	req = testutil.NewRequest(t, http.MethodGet, "/suggest/models?brand=Tesla&q=model")
	rr = testutil.DoRequest(r, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var models []string
	testutil.DecodeJSON(t, rr, &models)
	assert.Equal(t, []string{"Model 3", "Model S", "Model X", "Model Y"}, models)

	// Unknown brand suggests nothing.
	req = testutil.NewRequest(t, http.MethodGet, "/suggest/models?q=model")
	rr = testutil.DoRequest(r, req)
	require.Equal(t, http.StatusOK, rr.Code)
	testutil.DecodeJSON(t, rr, &models)
	assert.Empty(t, models)
}
