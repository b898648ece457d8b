package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kailas-cloud/mediadex/internal/domain/cache"
	"github.com/kailas-cloud/mediadex/internal/domain/medium"
	"github.com/kailas-cloud/mediadex/internal/domain/search/term"
	"github.com/kailas-cloud/mediadex/internal/repository/tier"
	"github.com/kailas-cloud/mediadex/internal/usecase/fast"
	healthuc "github.com/kailas-cloud/mediadex/internal/usecase/health"
	searchuc "github.com/kailas-cloud/mediadex/internal/usecase/search"
)

// --- fakes ---

type fakeStack struct {
	shared fast.Tier
	calls  int
}

func (s *fakeStack) Tiers() []fast.Tier {
	s.calls++
	return []fast.Tier{tier.NewLocal(), s.shared, tier.Null{}}
}

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(context.Context) error { return m.err }

// failingTier fails every read.
type failingTier struct {
	tier.Null
	err error
}

func (f failingTier) Get(context.Context, cache.Query) (any, bool, error) { return nil, false, f.err }

func (f failingTier) GetMany(context.Context, []cache.Query) (map[cache.Query]any, error) {
	return nil, f.err
}

func full(id int64, r medium.Rating, tags ...string) medium.Full {
	return medium.Full{
		Tiny: medium.Tiny{
			ID:             id,
			Hash:           "hash" + string(rune('0'+id)),
			Rating:         r,
			Width:          10,
			Height:         10,
			InsertDate:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			InnateTags:     medium.NewTagSet(tags...),
			SearchableTags: medium.NewTagSet(tags...),
			AbsentTags:     medium.NewTagSet(),
		},
		MimeType: "image/png",
	}
}

func seededStack(t *testing.T) *fakeStack {
	t.Helper()
	shared := tier.NewLocal()
	docs := []medium.Full{full(1, medium.Safe, "cat"), full(2, medium.Explicit, "cat"), full(3, medium.Safe, "dog")}

	entries := map[cache.Query]any{cache.Searchable(): []string{"cat", "dog"}}
	var tiny []medium.Tiny
	for _, d := range docs {
		entries[cache.Document(d.ID)] = d
		entries[cache.Tiny(d.ID)] = d.ToTiny()
		tiny = append(tiny, d.ToTiny())
	}
	entries[cache.AllTiny()] = tiny
	if err := shared.SetMany(context.Background(), entries); err != nil {
		t.Fatal(err)
	}
	return &fakeStack{shared: shared}
}

func newTestRouter(stack TierStack, health error, vis VisibilityFunc) http.Handler {
	search := searchuc.New(&term.Parser{}, zap.NewNop())
	srv := NewServer(stack, search, healthuc.New(&mockPinger{err: health}, nil), vis, zap.NewNop())
	r := chi.NewRouter()
	srv.Routes(r)
	return r
}

func do(t *testing.T, h http.Handler, target string, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("GET", target, http.NoBody)
	if len(header) == 2 {
		req.Header.Set(header[0], header[1])
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

// --- tests ---

func TestGetMedium(t *testing.T) {
	h := newTestRouter(seededStack(t), nil, BearerVisibility([]string{"admin"}))

	tests := []struct {
		name   string
		target string
		header []string
		want   int
	}{
		{"found", "/media/1", nil, http.StatusOK},
		{"missing", "/media/9", nil, http.StatusNotFound},
		{"bad id", "/media/abc", nil, http.StatusBadRequest},
		{"zero id", "/media/0", nil, http.StatusBadRequest},
		{"hidden from restricted caller", "/media/2", nil, http.StatusNotFound},
		{"visible to admin", "/media/2", []string{"Authorization", "Bearer admin"}, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, h, tt.target, tt.header...)
			if rr.Code != tt.want {
				t.Errorf("got %d, want %d: %s", rr.Code, tt.want, rr.Body.String())
			}
		})
	}
}

func TestGetMedium_Body(t *testing.T) {
	rr := do(t, newTestRouter(seededStack(t), nil, nil), "/media/3")
	var v mediumView
	if err := json.NewDecoder(rr.Body).Decode(&v); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if v.ID != 3 || v.Rating != "s" || v.MimeType != "image/png" || len(v.InnateTags) != 1 || v.InnateTags[0] != "dog" {
		t.Errorf("unexpected body %+v", v)
	}
}

func TestSearchableTags(t *testing.T) {
	rr := do(t, newTestRouter(seededStack(t), nil, nil), "/tags/searchable")
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d", rr.Code)
	}
	var body map[string][]string
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body["tags"]) != 2 {
		t.Errorf("unexpected body %v", body)
	}
}

func TestSearchableTags_ColdCache(t *testing.T) {
	rr := do(t, newTestRouter(&fakeStack{shared: tier.NewLocal()}, nil, nil), "/tags/searchable")
	if rr.Code != http.StatusOK || rr.Body.String() != "{\"tags\":[]}\n" {
		t.Errorf("got %d %q", rr.Code, rr.Body.String())
	}
}

func TestSearch(t *testing.T) {
	h := newTestRouter(seededStack(t), nil, BearerVisibility([]string{"admin"}))

	decode := func(rr *httptest.ResponseRecorder) pageView {
		t.Helper()
		var p pageView
		if err := json.NewDecoder(rr.Body).Decode(&p); err != nil {
			t.Fatalf("decode: %v", err)
		}
		return p
	}

	p := decode(do(t, h, "/search?q=cat"))
	if len(p.Items) != 1 || p.Items[0].ID != 1 {
		t.Errorf("restricted caller: unexpected items %+v", p.Items)
	}

	p = decode(do(t, h, "/search?q=cat&pageNumber=5&pageSize=50", "Authorization", "Bearer admin"))
	if len(p.Items) != 2 || p.PageNumber != 1 || p.PageSize != 50 || p.PageCount != 1 {
		t.Errorf("admin: unexpected page %+v", p)
	}

	p = decode(do(t, h, "/search?q="))
	if len(p.Items) != 0 || p.PageCount != 0 || p.PageNumber != 1 || p.PageSize != 1 {
		t.Errorf("empty query: unexpected page %+v", p)
	}
}

func TestSearch_BadParams(t *testing.T) {
	h := newTestRouter(seededStack(t), nil, nil)
	for _, target := range []string{"/search?q=cat&pageNumber=x", "/search?q=cat&pageSize=1.5"} {
		if rr := do(t, h, target); rr.Code != http.StatusBadRequest {
			t.Errorf("%s: got %d", target, rr.Code)
		}
	}
}

func TestSearch_TierFailure(t *testing.T) {
	stack := &fakeStack{shared: failingTier{err: errors.New("connection reset")}}
	rr := do(t, newTestRouter(stack, nil, nil), "/search?q=cat")
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("got %d", rr.Code)
	}
	var e ErrorResponse
	_ = json.NewDecoder(rr.Body).Decode(&e)
	if e.Code != codeInternalError || e.Message != "internal error" {
		t.Errorf("internal details leaked: %+v", e)
	}
}

func TestFastMiddleware_FreshPerRequest(t *testing.T) {
	stack := seededStack(t)
	h := newTestRouter(stack, nil, nil)
	do(t, h, "/media/1")
	do(t, h, "/media/1")
	do(t, h, "/healthz")
	if stack.calls != 2 {
		t.Errorf("expected one tier stack per cache request, got %d", stack.calls)
	}
}

func TestHealthCheck(t *testing.T) {
	if rr := do(t, newTestRouter(seededStack(t), nil, nil), "/healthz"); rr.Code != http.StatusOK {
		t.Errorf("healthy: got %d", rr.Code)
	}
	if rr := do(t, newTestRouter(seededStack(t), errors.New("down"), nil), "/healthz"); rr.Code != http.StatusServiceUnavailable {
		t.Errorf("unhealthy: got %d", rr.Code)
	}
}

func TestMissingOrchestrator(t *testing.T) {
	srv := NewServer(seededStack(t), searchuc.New(&term.Parser{}, zap.NewNop()), nil, nil, zap.NewNop())
	rr := httptest.NewRecorder()
	srv.SearchableTags(rr, httptest.NewRequest("GET", "/tags/searchable", http.NoBody))
	if rr.Code != http.StatusInternalServerError {
		t.Errorf("got %d", rr.Code)
	}
}
