package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/felipegscont/movix-sub001/internal/fiscal/matriz"
	"github.com/felipegscont/movix-sub001/internal/fiscal/nfe"
	"github.com/felipegscont/movix-sub001/internal/masterdata/fornecedores"
	"github.com/felipegscont/movix-sub001/internal/masterdata/produtos"
	"github.com/felipegscont/movix-sub001/internal/sales/clientes"
	"github.com/felipegscont/movix-sub001/internal/sales/orcamentos"
	"github.com/felipegscont/movix-sub001/internal/sales/pedidos"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger              *slog.Logger
	Config              *Config
	ClientesHandler     *clientes.Handler
	FornecedoresHandler *fornecedores.Handler
	ProdutosHandler     *produtos.Handler
	MatrizHandler       *matriz.Handler
	NfeHandler          *nfe.Handler
	OrcamentosHandler   *orcamentos.Handler
	PedidosHandler      *pedidos.Handler
}

// NewRouter constructs the chi.Router with movix defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/clientes", params.ClientesHandler.MountRoutes)
	r.Route("/fornecedores", params.FornecedoresHandler.MountRoutes)
	r.Route("/produtos", params.ProdutosHandler.MountRoutes)
	r.Route("/orcamentos", params.OrcamentosHandler.MountRoutes)
	r.Route("/pedidos", params.PedidosHandler.MountRoutes)
	r.Route("/fiscal", func(r chi.Router) {
		r.Route("/matrizes", params.MatrizHandler.MountRoutes)
		r.Route("/nfe", params.NfeHandler.MountRoutes)
	})

	return r
}
