package fast

import (
	"context"
	"errors"
	"sort"

	"github.com/kailas-cloud/mediadex/internal/domain/cache"
	"github.com/kailas-cloud/mediadex/internal/domain/medium"
)

// memTier is a map-backed tier that records traffic and can be told to fail.
type memTier struct {
	name    string
	data    map[cache.Query]any
	gets    int
	setErr  error
	getErr  error
	delErr  error
	history *[]string
}

func newMemTier(name string, history *[]string) *memTier {
	return &memTier{name: name, data: map[cache.Query]any{}, history: history}
}

func (m *memTier) record(op string) {
	if m.history != nil {
		*m.history = append(*m.history, m.name+":"+op)
	}
}

func (m *memTier) Name() string { return m.name }

func (m *memTier) Get(_ context.Context, q cache.Query) (any, bool, error) {
	m.gets++
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	v, ok := m.data[q]
	return v, ok, nil
}

func (m *memTier) GetMany(_ context.Context, qs []cache.Query) (map[cache.Query]any, error) {
	m.gets++
	if m.getErr != nil {
		return nil, m.getErr
	}
	out := map[cache.Query]any{}
	for _, q := range qs {
		if v, ok := m.data[q]; ok {
			out[q] = v
		}
	}
	return out, nil
}

func (m *memTier) Set(_ context.Context, q cache.Query, v any) error {
	m.record("set")
	if m.setErr != nil {
		return m.setErr
	}
	m.data[q] = v
	return nil
}

func (m *memTier) SetMany(_ context.Context, entries map[cache.Query]any) error {
	m.record("set")
	if m.setErr != nil {
		return m.setErr
	}
	for q, v := range entries {
		m.data[q] = v
	}
	return nil
}

func (m *memTier) Delete(_ context.Context, qs ...cache.Query) (int, error) {
	m.record("delete")
	if m.delErr != nil {
		return 0, m.delErr
	}
	n := 0
	for _, q := range qs {
		if _, ok := m.data[q]; ok {
			delete(m.data, q)
			n++
		}
	}
	return n, nil
}

// nullTier always misses.
type nullTier struct{}

func (nullTier) Name() string { return "null" }
func (nullTier) Get(context.Context, cache.Query) (any, bool, error) {
	return nil, false, nil
}
func (nullTier) GetMany(context.Context, []cache.Query) (map[cache.Query]any, error) {
	return map[cache.Query]any{}, nil
}
func (nullTier) Set(context.Context, cache.Query, any) error         { return nil }
func (nullTier) SetMany(context.Context, map[cache.Query]any) error  { return nil }
func (nullTier) Delete(context.Context, ...cache.Query) (int, error) { return 0, nil }

// mockMaterializer serves documents from a fixed set.
type mockMaterializer struct {
	docs      map[int64]medium.Full
	names     []string
	err       error
	manyCalls int
}

func (m *mockMaterializer) All(context.Context) ([]medium.Full, error) {
	if m.err != nil {
		return nil, m.err
	}
	ids := make([]int64, 0, len(m.docs))
	for id := range m.docs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]medium.Full, 0, len(ids))
	for _, id := range ids {
		out = append(out, m.docs[id])
	}
	return out, nil
}

func (m *mockMaterializer) Many(_ context.Context, ids []int64) ([]medium.Full, error) {
	m.manyCalls++
	if m.err != nil {
		return nil, m.err
	}
	var out []medium.Full
	for _, id := range ids {
		if d, ok := m.docs[id]; ok {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *mockMaterializer) SearchableNames(context.Context) ([]string, error) {
	return m.names, m.err
}

var errBoom = errors.New("boom")

func doc(id int64, hash string, rating medium.Rating, tags ...string) medium.Full {
	return medium.Full{
		Tiny: medium.Tiny{
			ID:             id,
			Hash:           hash,
			Rating:         rating,
			InnateTags:     medium.NewTagSet(tags...),
			SearchableTags: medium.NewTagSet(tags...),
			AbsentTags:     medium.NewTagSet(),
		},
		MimeType: "image/png",
	}
}
