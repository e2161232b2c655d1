package nfe

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/felipegscont/movix-sub001/internal/platform/httpx"
)

// Handler wires HTTP endpoints for NF-e settings.
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

// MountRoutes registers NF-e settings routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/configuracao", h.get)
	r.Put("/configuracao", h.save)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Get(r.Context())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, view)
}

func (h *Handler) save(w http.ResponseWriter, r *http.Request) {
	var req SaveConfiguracaoRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: corpo da requisição inválido", httpx.ErrValidation))
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrValidation, err))
		return
	}

	view, err := h.service.Save(r.Context(), req)
	if err != nil {
		h.logger.Error("save configuracao nfe", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, view)
}
