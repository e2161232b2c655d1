package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/felipegscont/movix-sub001/internal/app"
	"github.com/felipegscont/movix-sub001/internal/fiscal/matriz"
	"github.com/felipegscont/movix-sub001/internal/fiscal/nfe"
	"github.com/felipegscont/movix-sub001/internal/masterdata/fornecedores"
	"github.com/felipegscont/movix-sub001/internal/masterdata/produtos"
	"github.com/felipegscont/movix-sub001/internal/platform/cache"
	"github.com/felipegscont/movix-sub001/internal/platform/db"
	"github.com/felipegscont/movix-sub001/internal/sales/clientes"
	"github.com/felipegscont/movix-sub001/internal/sales/orcamentos"
	"github.com/felipegscont/movix-sub001/internal/sales/pedidos"
	"github.com/felipegscont/movix-sub001/internal/shared"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable, matriz cache disabled", slog.Any("error", err))
		redisClient = nil
	}
	defer func() {
		if redisClient != nil {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}
	}()

	auditLogger := shared.NewAuditLogger(pool)
	idempotencyStore := shared.NewIdempotencyStore(pool)

	clientesRepo := clientes.NewRepository(pool)
	clientesService := clientes.NewService(clientesRepo)
	clientesHandler := clientes.NewHandler(logger, clientesService)

	fornecedoresRepo := fornecedores.NewRepository(pool)
	fornecedoresService := fornecedores.NewService(fornecedoresRepo)
	fornecedoresHandler := fornecedores.NewHandler(logger, fornecedoresService)

	produtosRepo := produtos.NewRepository(pool)
	produtosService := produtos.NewService(produtosRepo)
	produtosHandler := produtos.NewHandler(logger, produtosService)

	matrizRepo := matriz.NewRepository(pool)
	matrizCache := matriz.NewResolverCache(redisClient, matrizRepo, cfg.CacheTTL)
	matrizService := matriz.NewService(logger, matrizRepo, matrizCache)
	matrizHandler := matriz.NewHandler(logger, matrizService)

	var fiscalKey [32]byte
	copy(fiscalKey[:], cfg.FiscalSecret)
	nfeRepo := nfe.NewRepository(pool)
	nfeService := nfe.NewService(nfeRepo, &fiscalKey)
	nfeHandler := nfe.NewHandler(logger, nfeService)

	pedidosRepo := pedidos.NewRepository(pool)
	pedidosService := pedidos.NewService(logger, pedidosRepo, clientesRepo, produtosRepo, auditLogger)
	pedidosHandler := pedidos.NewHandler(logger, pedidosService, idempotencyStore)

	orcamentosRepo := orcamentos.NewRepository(pool)
	orcamentosService := orcamentos.NewService(logger, orcamentosRepo, pedidosService, clientesRepo, produtosRepo, auditLogger)
	orcamentosHandler := orcamentos.NewHandler(logger, orcamentosService)

	router := app.NewRouter(app.RouterParams{
		Logger:              logger,
		Config:              cfg,
		ClientesHandler:     clientesHandler,
		FornecedoresHandler: fornecedoresHandler,
		ProdutosHandler:     produtosHandler,
		MatrizHandler:       matrizHandler,
		NfeHandler:          nfeHandler,
		OrcamentosHandler:   orcamentosHandler,
		PedidosHandler:      pedidosHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
