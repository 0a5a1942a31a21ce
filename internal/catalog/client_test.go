package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"inmomax/internal/filters"
	"inmomax/internal/mockdata"
	"inmomax/internal/model"
)

type recorder struct {
	mu      sync.Mutex
	queries []url.Values
	paths   []string
}

func (r *recorder) record(req *http.Request) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queries = append(r.queries, req.URL.Query())
	r.paths = append(r.paths, req.URL.Path)
}

func (r *recorder) last() (string, url.Values) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.paths[len(r.paths)-1], r.queries[len(r.queries)-1]
}

func newAPI(t *testing.T, rec *recorder, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.record(r)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", 2*time.Second)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func TestClient_List(t *testing.T) {
	rec := &recorder{}
	c := newAPI(t, rec, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, model.PropertyListResponse{Properties: mockdata.Properties()[:2], Total: 2, Page: 1, Limit: 12, TotalPages: 1})
	})

	f := filters.Default()
	f.Location = "Centro"
	f.Amenities.Pool = true

	res, err := c.List(context.Background(), f, 2, 12)
	require.NoError(t, err)
	assert.Len(t, res.Properties, 2)
	assert.Equal(t, 2, res.Total)

	path, q := rec.last()
	assert.Equal(t, "/api/propiedades", path)
	assert.Equal(t, url.Values{
		"ubicacion": {"Centro"},
		"piscina":   {"true"},
		"pagina":    {"2"},
		"limite":    {"12"},
	}, q)
}

func TestClient_FeaturedAndGet(t *testing.T) {
	rec := &recorder{}
	c := newAPI(t, rec, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/propiedades/4" {
			writeJSON(w, mockdata.Properties()[3])
			return
		}
		writeJSON(w, model.PropertyListResponse{Properties: mockdata.Properties()[:1], Total: 1})
	})

	props, err := c.Featured(context.Background(), 3)
	require.NoError(t, err)
	assert.Len(t, props, 1)
	_, q := rec.last()
	assert.Equal(t, url.Values{"featured": {"true"}, "limit": {"3"}}, q)

	p, err := c.Get(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, int64(4), p.ID)
}

func TestClient_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		status  int
	}{
		{
			name: "non 2xx",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "down", http.StatusServiceUnavailable)
			},
			status: http.StatusServiceUnavailable,
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("<html>"))
			},
			status: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newAPI(t, &recorder{}, tt.handler)

			_, err := c.List(context.Background(), filters.Default(), 1, 12)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrFetch)

			var fe *FetchError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, "list", fe.Op)
			assert.Equal(t, tt.status, fe.StatusCode)
		})
	}
}

func TestClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	_, err := NewClient(base, time.Second).Get(context.Background(), 1)
	assert.ErrorIs(t, err, ErrFetch)
}

func TestFallbackClient_MasksErrors(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	c := newAPI(t, &recorder{}, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	fc := NewFallbackClient(c, zap.New(core))

	res, err := fc.List(context.Background(), filters.Default(), 1, 12)
	require.NoError(t, err)
	assert.Equal(t, mockdata.Properties(), res.Properties)
	assert.Equal(t, 6, res.Total)

	featured, err := fc.Featured(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, featured, 3)
	for _, p := range featured {
		assert.True(t, p.Featured)
	}

	p, err := fc.Get(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), p.ID)

	p, err = fc.Get(context.Background(), 999)
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.ID)

	assert.Equal(t, 4, logs.Len())
}

func TestFallbackClient_PassesThrough(t *testing.T) {
	c := newAPI(t, &recorder{}, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, model.PropertyListResponse{Total: 42})
	})

	res, err := NewFallbackClient(c, nil).List(context.Background(), filters.Default(), 1, 12)
	require.NoError(t, err)
	assert.Equal(t, 42, res.Total)
}

type historyNavigator struct{ pushed []url.Values }

func (n *historyNavigator) Push(_ context.Context, q url.Values) error {
	n.pushed = append(n.pushed, q)
	return nil
}

func TestSynchronizer_ApplySendsOnlySetFilters(t *testing.T) {
	rec := &recorder{}
	c := newAPI(t, rec, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, model.PropertyListResponse{})
	})
	s := filters.NewSynchronizer(nil, &historyNavigator{}, NewFallbackClient(c, nil))

	require.NoError(t, s.Edit(filters.FieldOperation, "alquiler"))
	require.NoError(t, s.Edit(filters.FieldType, "casa"))
	_, err := s.Apply(context.Background())
	require.NoError(t, err)

	_, q := rec.last()
	filterKeys := url.Values{}
	for k, v := range q {
		if k != "pagina" && k != "limite" {
			filterKeys[k] = v
		}
	}
	assert.Equal(t, "operacion=alquiler&tipo=casa", filterKeys.Encode())
	assert.Equal(t, "1", q.Get("pagina"))
}
