package fornecedores

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

// Handler wires HTTP endpoints for supplier management.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		validator: validator.New(),
	}
}

// MountRoutes registers supplier routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	page, perPage := shared.ParsePagination(r, 200)

	req := ListFornecedoresRequest{
		Limit:  perPage,
		Offset: shared.Offset(page, perPage),
	}
	if busca := r.URL.Query().Get("busca"); busca != "" {
		req.Busca = &busca
	}
	if ativo := r.URL.Query().Get("ativo"); ativo != "" {
		v := ativo == "true"
		req.Ativo = &v
	}

	result, total, err := h.service.List(r.Context(), req)
	if err != nil {
		h.logger.Error("list fornecedores", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, map[string]any{
		"data":       result,
		"pagination": shared.NewPagination(page, perPage, total),
	})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: id inválido", httpx.ErrValidation))
		return
	}

	f, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, f)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateFornecedorRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: corpo da requisição inválido", httpx.ErrValidation))
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrValidation, err))
		return
	}

	f, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.logger.Error("create fornecedor", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, f)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: id inválido", httpx.ErrValidation))
		return
	}

	var req UpdateFornecedorRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: corpo da requisição inválido", httpx.ErrValidation))
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrValidation, err))
		return
	}

	f, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		h.logger.Error("update fornecedor", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, f)
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
