package matriz

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/felipegscont/movix-sub001/internal/platform/httpx"
	"github.com/felipegscont/movix-sub001/internal/shared"
)

// Handler wires HTTP endpoints for the tax matrix.
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

// MountRoutes registers tax matrix routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/resolver", h.resolver)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	page, perPage := shared.ParsePagination(r, 200)

	req := ListMatrizesRequest{
		Limit:  perPage,
		Offset: shared.Offset(page, perPage),
	}
	if v := r.URL.Query().Get("natureza"); v != "" {
		req.Natureza = &v
	}
	if v := r.URL.Query().Get("ativo"); v != "" {
		b := v == "true"
		req.Ativo = &b
	}

	result, total, err := h.service.List(r.Context(), req)
	if err != nil {
		h.logger.Error("list matrizes", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, map[string]any{
		"data":       result,
		"pagination": shared.NewPagination(page, perPage, total),
	})
}

func (h *Handler) resolver(w http.ResponseWriter, r *http.Request) {
	natureza := r.URL.Query().Get("natureza")
	if natureza == "" {
		httpx.RespondError(w, fmt.Errorf("%w: parâmetro natureza é obrigatório", httpx.ErrValidation))
		return
	}
	uf := r.URL.Query().Get("uf")

	m, err := h.service.Resolve(r.Context(), natureza, uf)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, m)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: id inválido", httpx.ErrValidation))
		return
	}

	m, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, m)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateMatrizRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: corpo da requisição inválido", httpx.ErrValidation))
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrValidation, err))
		return
	}

	m, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.logger.Error("create matriz", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, m)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: id inválido", httpx.ErrValidation))
		return
	}

	var req UpdateMatrizRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: corpo da requisição inválido", httpx.ErrValidation))
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrValidation, err))
		return
	}

	m, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		h.logger.Error("update matriz", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, m)
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
