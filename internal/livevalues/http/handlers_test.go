package http

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/livecanvas/dashboard-backend/internal/livevalues/domain"
)

type memStore struct {
	values map[string]string
}

func (m *memStore) List(context.Context) ([]domain.LiveValue, error) {
	out := []domain.LiveValue{}
	for k, v := range m.values {
		out = append(out, domain.LiveValue{Code: k, Value: v})
	}
	return out, nil
}

func (m *memStore) Get(_ context.Context, code string) (*domain.LiveValue, error) {
	v, ok := m.values[code]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &domain.LiveValue{Code: code, Value: v}, nil
}

func (m *memStore) Upsert(_ context.Context, code, value string) (*domain.LiveValue, error) {
	m.values[code] = value
	return &domain.LiveValue{Code: code, Value: value}, nil
}

type staticSnapshot map[string]string

func (s staticSnapshot) Snapshot() map[string]string { return s }
func (s staticSnapshot) RefreshedAt() time.Time      { return time.Unix(0, 0).UTC() }

func setupRouter(store *memStore, guard ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := New(store, staticSnapshot{"A": "1"})
	h.Register(r.Group("/live-values"))
	h.RegisterIngest(r.Group("/live-values"), guard...)
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUpsertStringifiesValue(t *testing.T) {
	store := &memStore{values: map[string]string{}}
	r := setupRouter(store)

	tests := []struct {
		body string
		want string
	}{
		{`{"code":"T1","value":23.5}`, "23.5"},
		{`{"code":"T1","value":"23.5"}`, "23.5"},
		{`{"code":"T1","value":true}`, "true"},
		{`{"code":"T1","value":0}`, "0"},
	}
	for _, tt := range tests {
		w := do(r, http.MethodPost, "/live-values", tt.body)
		require.Equal(t, http.StatusOK, w.Code, tt.body)
		assert.Equal(t, tt.want, store.values["T1"])
	}

	w := do(r, http.MethodPost, "/live-values", `{"code":"T1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpsertGuard(t *testing.T) {
	store := &memStore{values: map[string]string{}}
	deny := func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false})
	}
	r := setupRouter(store, deny)

	w := do(r, http.MethodPost, "/live-values", `{"code":"T1","value":1}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, store.values)

	w = do(r, http.MethodGet, "/live-values", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetByCode(t *testing.T) {
	r := setupRouter(&memStore{values: map[string]string{"TEMP_001": "23.5"}})

	w := do(r, http.MethodGet, "/live-values?code=TEMP_001", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"value":"23.5"`)

	w = do(r, http.MethodGet, "/live-values?code=NOPE", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"value":null`)
}

func TestSnapshot(t *testing.T) {
	r := setupRouter(&memStore{values: map[string]string{}})

	w := do(r, http.MethodGet, "/live-values/snapshot", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"values":{"A":"1"}`)
}
