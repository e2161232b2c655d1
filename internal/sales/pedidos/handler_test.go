package pedidos

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felipegscont/movix-sub001/internal/shared"
)

type mockIdempotencyStore struct {
	keys        map[string]bool
	checkCalls  int
	deleteCalls int
}

func newMockIdempotencyStore() *mockIdempotencyStore {
	return &mockIdempotencyStore{keys: make(map[string]bool)}
}

func (m *mockIdempotencyStore) CheckAndInsert(ctx context.Context, key, module string) error {
	m.checkCalls++
	if m.keys[key] {
		return shared.ErrIdempotencyConflict
	}
	m.keys[key] = true
	return nil
}

func (m *mockIdempotencyStore) Delete(ctx context.Context, key string) error {
	m.deleteCalls++
	delete(m.keys, key)
	return nil
}

func newTestRouter(svc *Service, store IdempotencyStore) http.Handler {
	h := NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), svc, store)
	r := chi.NewRouter()
	r.Route("/pedidos", h.MountRoutes)
	return r
}

func postPedido(t *testing.T, router http.Handler, req CreatePedidoRequest, idemKey string) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(req)
	require.NoError(t, err)

	httpReq := httptest.NewRequest(http.MethodPost, "/pedidos", bytes.NewReader(body))
	if idemKey != "" {
		httpReq.Header.Set("Idempotency-Key", idemKey)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httpReq)
	return rec
}

func TestCreatePedidoIdempotencyKeyReplay(t *testing.T) {
	repo := newMockRepository()
	store := newMockIdempotencyStore()
	router := newTestRouter(newTestService(repo), store)

	first := postPedido(t, router, validCreateRequest(), "pedido-2026-03-10-c10")
	require.Equal(t, http.StatusCreated, first.Code)

	replay := postPedido(t, router, validCreateRequest(), "pedido-2026-03-10-c10")
	assert.Equal(t, http.StatusConflict, replay.Code)
	assert.Equal(t, "application/problem+json", replay.Header().Get("Content-Type"))

	var problem struct {
		Detail string `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(replay.Body.Bytes(), &problem))
	assert.Contains(t, problem.Detail, "já processada")

	assert.Len(t, repo.pedidos, 1)
	assert.Equal(t, 2, store.checkCalls)
}

func TestCreatePedidoIdempotencyKeyReleasedAfterFailure(t *testing.T) {
	repo := newMockRepository()
	store := newMockIdempotencyStore()
	router := newTestRouter(newTestService(repo), store)

	bad := validCreateRequest()
	bad.ClienteID = 999
	failed := postPedido(t, router, bad, "pedido-retry")
	require.Equal(t, http.StatusNotFound, failed.Code)
	assert.Equal(t, 1, store.deleteCalls)
	assert.Empty(t, repo.pedidos)

	retry := postPedido(t, router, validCreateRequest(), "pedido-retry")
	assert.Equal(t, http.StatusCreated, retry.Code)
	assert.Len(t, repo.pedidos, 1)
}

func TestCreatePedidoWithoutKeyAllowsDuplicates(t *testing.T) {
	repo := newMockRepository()
	store := newMockIdempotencyStore()
	router := newTestRouter(newTestService(repo), store)

	first := postPedido(t, router, validCreateRequest(), "")
	second := postPedido(t, router, validCreateRequest(), "")

	assert.Equal(t, http.StatusCreated, first.Code)
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Len(t, repo.pedidos, 2)
	assert.Equal(t, 0, store.checkCalls)
}
