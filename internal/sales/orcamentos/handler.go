package orcamentos

import (
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

// Handler wires HTTP endpoints for quotes.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		validator: validator.New(),
	}
}

// MountRoutes registers quote routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/proximo-numero", h.nextNumero)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Post("/{id}/cancelar", h.cancelar)
	r.Post("/{id}/converter-em-pedido", h.converterEmPedido)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	page, perPage := shared.ParsePagination(r, 100)

	req := ListOrcamentosRequest{
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
		status := OrcamentoStatus(v)
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
		h.logger.Error("list orcamentos", slog.Any("error", err))
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
		h.logger.Error("next numero orcamento", slog.Any("error", err))
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

	o, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, o)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateOrcamentoRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: corpo da requisição inválido", httpx.ErrValidation))
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrValidation, err))
		return
	}

	o, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.logger.Error("create orcamento", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, o)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: id inválido", httpx.ErrValidation))
		return
	}

	var req UpdateOrcamentoRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: corpo da requisição inválido", httpx.ErrValidation))
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrValidation, err))
		return
	}

	o, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		h.logger.Error("update orcamento", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, o)
}

func (h *Handler) cancelar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: id inválido", httpx.ErrValidation))
		return
	}

	o, err := h.service.Cancelar(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, o)
}

func (h *Handler) converterEmPedido(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: id inválido", httpx.ErrValidation))
		return
	}

	result, err := h.service.ConvertToOrder(r.Context(), id)
	if err != nil {
		h.logger.Error("converter orcamento", slog.Int64("orcamento_id", id), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, result)
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
