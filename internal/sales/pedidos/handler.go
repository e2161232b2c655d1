package pedidos

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/felipegscont/movix-sub001/internal/platform/httpx"
	"github.com/felipegscont/movix-sub001/internal/shared"
)

// IdempotencyStore guards order creation retries that carry an
// Idempotency-Key header. Satisfied by shared.IdempotencyStore.
type IdempotencyStore interface {
	CheckAndInsert(ctx context.Context, key, module string) error
	Delete(ctx context.Context, key string) error
}

// Handler wires HTTP endpoints for sales orders.
type Handler struct {
	logger      *slog.Logger
	service     *Service
	validator   *validator.Validate
	idempotency IdempotencyStore
}

// NewHandler constructs a Handler. idempotency may be nil, which disables
// Idempotency-Key support on POST.
func NewHandler(logger *slog.Logger, service *Service, idempotency IdempotencyStore) *Handler {
	return &Handler{
		logger:      logger,
		service:     service,
		validator:   validator.New(),
		idempotency: idempotency,
	}
}

// MountRoutes registers order routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/proximo-numero", h.nextNumero)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Post("/{id}/faturar", h.faturar)
	r.Post("/{id}/cancelar", h.cancelar)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	page, perPage := shared.ParsePagination(r, 100)

	req := ListPedidosRequest{
		Limit:  perPage,
		Offset: shared.Offset(page, perPage),
	}
	if v := r.URL.Query().Get("clienteId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			httpx.RespondError(w, fmt.Errorf("%w: clienteId inválido", httpx.ErrValidation))
			return
		}
		req.ClienteID = &id
	}
	if v := r.URL.Query().Get("status"); v != "" {
		status := PedidoStatus(v)
		req.Status = &status
	}
	if v := r.URL.Query().Get("dataDe"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			httpx.RespondError(w, fmt.Errorf("%w: dataDe inválida", httpx.ErrValidation))
			return
		}
		req.DataDe = &t
	}
	if v := r.URL.Query().Get("dataAte"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			httpx.RespondError(w, fmt.Errorf("%w: dataAte inválida", httpx.ErrValidation))
			return
		}
		req.DataAte = &t
	}

	result, total, err := h.service.List(r.Context(), req)
	if err != nil {
		h.logger.Error("list pedidos", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, map[string]any{
		"data":       result,
		"pagination": shared.NewPagination(page, perPage, total),
	})
}

func (h *Handler) nextNumero(w http.ResponseWriter, r *http.Request) {
	numero, err := h.service.NextNumero(r.Context())
	if err != nil {
		h.logger.Error("next numero pedido", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"numero": numero})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: id inválido", httpx.ErrValidation))
		return
	}

	p, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreatePedidoRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: corpo da requisição inválido", httpx.ErrValidation))
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrValidation, err))
		return
	}

	idemKey := r.Header.Get("Idempotency-Key")
	if idemKey != "" && h.idempotency != nil {
		if err := h.idempotency.CheckAndInsert(r.Context(), idemKey, "pedidos"); err != nil {
			if errors.Is(err, shared.ErrIdempotencyConflict) {
				httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrConflict, err))
				return
			}
			httpx.RespondError(w, err)
			return
		}
	}

	p, err := h.service.Create(r.Context(), req)
	if err != nil {
		if idemKey != "" && h.idempotency != nil {
			_ = h.idempotency.Delete(r.Context(), idemKey)
		}
		h.logger.Error("create pedido", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, p)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: id inválido", httpx.ErrValidation))
		return
	}

	var req UpdatePedidoRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: corpo da requisição inválido", httpx.ErrValidation))
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrValidation, err))
		return
	}

	p, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		h.logger.Error("update pedido", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

func (h *Handler) faturar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: id inválido", httpx.ErrValidation))
		return
	}

	p, err := h.service.Faturar(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

func (h *Handler) cancelar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: id inválido", httpx.ErrValidation))
		return
	}

	p, err := h.service.Cancelar(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: id inválido", httpx.ErrValidation))
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
