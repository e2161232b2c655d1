package orcamentos

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(svc *Service) http.Handler {
	h := NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), svc)
	r := chi.NewRouter()
	r.Route("/orcamentos", h.MountRoutes)
	return r
}

func TestConverterEndpointSuccess(t *testing.T) {
	repo := newMockRepository()
	creator := &mockPedidoCreator{}
	svc := newTestService(repo, creator)
	svc.now = func() time.Time { return time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC) }
	seedQuote(repo, OrcamentoStatusEmAberto, time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC))

	router := newTestRouter(svc)
	req := httptest.NewRequest(http.MethodPost, "/orcamentos/1/converter-em-pedido", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Orcamento struct {
			Status   string `json:"status"`
			PedidoID *int64 `json:"pedidoId"`
		} `json:"orcamento"`
		Pedido struct {
			ID     int64  `json:"id"`
			Status string `json:"status"`
		} `json:"pedido"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "APROVADO", body.Orcamento.Status)
	require.NotNil(t, body.Orcamento.PedidoID)
	assert.Equal(t, body.Pedido.ID, *body.Orcamento.PedidoID)
	assert.Equal(t, "ABERTO", body.Pedido.Status)
}

func TestConverterEndpointNotFound(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo, &mockPedidoCreator{})

	router := newTestRouter(svc)
	req := httptest.NewRequest(http.MethodPost, "/orcamentos/99/converter-em-pedido", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
}

func TestConverterEndpointCancelledQuote(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo, &mockPedidoCreator{})
	seedQuote(repo, OrcamentoStatusCancelado, time.Now().AddDate(0, 1, 0))

	router := newTestRouter(svc)
	req := httptest.NewRequest(http.MethodPost, "/orcamentos/1/converter-em-pedido", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var problem struct {
		Detail string `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	assert.Contains(t, problem.Detail, "cancelado")
}

func TestConverterEndpointInvalidID(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo, &mockPedidoCreator{})

	router := newTestRouter(svc)
	req := httptest.NewRequest(http.MethodPost, "/orcamentos/abc/converter-em-pedido", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
