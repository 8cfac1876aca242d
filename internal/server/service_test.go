package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/roombudget/internal/catalog"
	"github.com/theirongolddev/roombudget/internal/model"
	"github.com/theirongolddev/roombudget/internal/store"
)

func newTestServer(t *testing.T, history *store.History) (*Service, *httptest.Server) {
	t.Helper()
	svc := New(Config{
		Catalog:       catalog.Default(),
		DefaultAddOns: model.DefaultAddOns(),
		History:       history,
	})
	ts := httptest.NewServer(svc.Handler())
	t.Cleanup(ts.Close)
	return svc, ts
}

func post(t *testing.T, url, body string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func TestHealthz(t *testing.T) {
	_, ts := newTestServer(t, nil)
	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok\n", string(body))
}

func TestCatalog(t *testing.T) {
	_, ts := newTestServer(t, nil)
	resp, err := http.Get(ts.URL + "/v1/catalog")
	require.NoError(t, err)
	defer resp.Body.Close()

	var cat catalog.Catalog
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&cat))
	assert.Equal(t, []string{"living", "bedroom", "dining", "office"}, cat.RoomKeys())
	assert.Len(t, cat.Brands, 3)
}

func TestEstimateLivingExample(t *testing.T) {
	svc, ts := newTestServer(t, nil)

	off := `{"enabled": false}`
	body := `{
		"brand": "jossMain", "room": "living", "tier": "better",
		"selection": {"accentChair": ` + off + `, "sideTable": ` + off + `, "rug": ` + off + `, "lighting": ` + off + `},
		"add_ons": {"delivery_pct": 0, "tax_pct": 0, "contingency_pct": 0}
	}`
	resp, data := post(t, ts.URL+"/v1/estimate", body)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))

	var out EstimateResponse
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, model.TierBlended, out.Tier)
	require.Len(t, out.Lines, 2)
	assert.Equal(t, 2129.0, out.Totals.Merchandise)
	assert.Equal(t, 2129.0, out.Totals.Total)
	assert.Empty(t, out.QuoteID)

	assert.Equal(t, int64(1), svc.snapshotStatus().Estimates)
}

func TestEstimateDefaultsAndCustomZero(t *testing.T) {
	_, ts := newTestServer(t, nil)

	body := `{"brand": "allModern", "room": "office", "tier": "custom",
		"selection": {"desk": {"custom_price": 0}}}`
	resp, data := post(t, ts.URL+"/v1/estimate", body)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))

	var out EstimateResponse
	require.NoError(t, json.Unmarshal(data, &out))
	require.NotEmpty(t, out.Lines)
	assert.Equal(t, "desk", out.Lines[0].Key)
	assert.Zero(t, out.Lines[0].UnitPrice)
	assert.Equal(t, model.DefaultAddOns(), out.AddOns)
}

func TestEstimateRejectsBadInput(t *testing.T) {
	_, ts := newTestServer(t, nil)

	tests := []struct {
		name string
		body string
		want string
	}{
		{"missing brand", `{"room": "living"}`, "validation failed"},
		{"unknown brand", `{"brand": "ikea", "room": "living"}`, "unknown brand"},
		{"unknown room", `{"brand": "jossMain", "room": "garage"}`, "unknown room"},
		{"bad tier", `{"brand": "jossMain", "room": "living", "tier": "luxury"}`, "validation failed"},
		{"negative qty", `{"brand": "jossMain", "room": "living", "selection": {"sofa": {"quantity": -1}}}`, "validation failed"},
		{"negative price", `{"brand": "jossMain", "room": "living", "selection": {"sofa": {"custom_price": -5}}}`, "validation failed"},
		{"negative tax", `{"brand": "jossMain", "room": "living", "add_ons": {"tax_pct": -1}}`, "validation failed"},
		{"unknown item", `{"brand": "jossMain", "room": "living", "selection": {"bed": {"quantity": 1}}}`, "unknown item"},
		{"unknown field", `{"brand": "jossMain", "room": "living", "colour": "red"}`, "invalid request body"},
		{"not json", `nope`, "invalid request body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, data := post(t, ts.URL+"/v1/estimate", tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			var e errorResponse
			require.NoError(t, json.Unmarshal(data, &e))
			assert.Contains(t, e.Error, tt.want)
		})
	}
}

func TestEstimateSaveToHistory(t *testing.T) {
	h, err := store.Open(filepath.Join(t.TempDir(), "quotes.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = h.Close() })
	_, ts := newTestServer(t, h)

	resp, data := post(t, ts.URL+"/v1/estimate", `{"brand": "birchLane", "room": "dining", "save": true}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))

	var out EstimateResponse
	require.NoError(t, json.Unmarshal(data, &out))
	require.NotEmpty(t, out.QuoteID)

	q, err := h.GetQuote(out.QuoteID)
	require.NoError(t, err)
	assert.Equal(t, out.Totals, q.Estimate.Totals)
}

func TestEstimateSaveWithoutHistory(t *testing.T) {
	_, ts := newTestServer(t, nil)
	resp, _ := post(t, ts.URL+"/v1/estimate", `{"brand": "birchLane", "room": "dining", "save": true}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestScope(t *testing.T) {
	_, ts := newTestServer(t, nil)

	resp, data := post(t, ts.URL+"/v1/scope", `{"brand": "jossMain", "rooms": [{"room": "bedroom", "count": 3}]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))

	var st model.ScopeTotals
	require.NoError(t, json.Unmarshal(data, &st))
	assert.Equal(t, 3*890.0, st.Lowest)
	require.Len(t, st.Rooms, 1)
	assert.Equal(t, 3, st.Rooms[0].Count)

	resp, _ = post(t, ts.URL+"/v1/scope", `{"brand": "jossMain", "rooms": [{"room": "bedroom", "count": -1}]}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = post(t, ts.URL+"/v1/scope", `{"brand": "jossMain", "rooms": [{"room": "attic", "count": 1}]}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = post(t, ts.URL+"/v1/scope", `{"brand": "jossMain", "rooms": []}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestEventsAndMetrics(t *testing.T) {
	_, ts := newTestServer(t, nil)
	post(t, ts.URL+"/v1/estimate", `{"brand": "jossMain", "room": "living"}`)
	post(t, ts.URL+"/v1/scope", `{"brand": "jossMain", "rooms": [{"room": "living", "count": 1}]}`)

	resp, err := http.Get(ts.URL + "/v1/events")
	require.NoError(t, err)
	var events []Event
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&events))
	resp.Body.Close()
	require.Len(t, events, 2)
	assert.Equal(t, "estimate", events[0].Type)
	assert.Equal(t, "scope", events[1].Type)
	assert.Equal(t, int64(2), events[1].ID)

	resp, err = http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	metrics, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Contains(t, string(metrics), `roombudget_http_requests_total{method="POST",route="POST /v1/estimate",status="200"}`)
}

func TestPublishEventRingBuffer(t *testing.T) {
	s := New(Config{Catalog: catalog.Default(), EventsBuffer: 2})

	s.publishEvent(Event{Type: "estimate"})
	s.publishEvent(Event{Type: "estimate"})
	s.publishEvent(Event{Type: "scope"})

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.events) != 2 {
		t.Fatalf("events len = %d, want 2", len(s.events))
	}
	if s.events[0].ID != 2 || s.events[1].ID != 3 {
		t.Fatalf("events ring contains IDs [%d, %d], want [2, 3]", s.events[0].ID, s.events[1].ID)
	}
}

func TestWriteSSE(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSSE(rec, Event{ID: 7, Type: "scope", Brand: "jossMain", Total: 10})
	out := rec.Body.String()
	assert.True(t, strings.HasPrefix(out, "event: scope\ndata: {"))
	assert.True(t, bytes.HasSuffix(rec.Body.Bytes(), []byte("}\n\n")))
}
