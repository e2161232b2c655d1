package matriz

import (
	"context"
	"fmt"
	"log/slog"
)

// Service provides business logic for the tax matrix.
type Service struct {
	logger *slog.Logger
	repo   Repository
	cache  *ResolverCache
}

// NewService constructs a Service.
func NewService(logger *slog.Logger, repo Repository, cache *ResolverCache) *Service {
	return &Service{logger: logger, repo: repo, cache: cache}
}

func (s *Service) Get(ctx context.Context, id int64) (*MatrizFiscal, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, req ListMatrizesRequest) ([]MatrizFiscal, int, error) {
	return s.repo.List(ctx, req)
}

func (s *Service) Create(ctx context.Context, req CreateMatrizRequest) (*MatrizFiscal, error) {
	m := MatrizFiscal{
		Descricao:        req.Descricao,
		NaturezaOperacao: req.NaturezaOperacao,
		UFDestino:        req.UFDestino,
		CFOP:             req.CFOP,
		CstIcms:          req.CstIcms,
		AliquotaIcms:     req.AliquotaIcms,
		CstPis:           req.CstPis,
		AliquotaPis:      req.AliquotaPis,
		CstCofins:        req.CstCofins,
		AliquotaCofins:   req.AliquotaCofins,
		Ativo:            true,
	}

	id, err := s.repo.Create(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("create matriz fiscal: %w", err)
	}
	s.invalidateCache(ctx)
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateMatrizRequest) (*MatrizFiscal, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Descricao != nil {
		existing.Descricao = *req.Descricao
	}
	if req.NaturezaOperacao != nil {
		existing.NaturezaOperacao = *req.NaturezaOperacao
	}
	if req.UFDestino != nil {
		existing.UFDestino = req.UFDestino
	}
	if req.CFOP != nil {
		existing.CFOP = *req.CFOP
	}
	if req.CstIcms != nil {
		existing.CstIcms = *req.CstIcms
	}
	if req.AliquotaIcms != nil {
		existing.AliquotaIcms = *req.AliquotaIcms
	}
	if req.CstPis != nil {
		existing.CstPis = *req.CstPis
	}
	if req.AliquotaPis != nil {
		existing.AliquotaPis = *req.AliquotaPis
	}
	if req.CstCofins != nil {
		existing.CstCofins = *req.CstCofins
	}
	if req.AliquotaCofins != nil {
		existing.AliquotaCofins = *req.AliquotaCofins
	}
	if req.Ativo != nil {
		existing.Ativo = *req.Ativo
	}

	if err := s.repo.Update(ctx, id, *existing); err != nil {
		return nil, fmt.Errorf("update matriz fiscal: %w", err)
	}
	s.invalidateCache(ctx)
	return s.repo.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateCache(ctx)
	return nil
}

// Resolve looks up the matrix for a nature of operation and destination UF,
// through the redis cache when one is configured.
func (s *Service) Resolve(ctx context.Context, natureza, uf string) (*MatrizFiscal, error) {
	if s.cache != nil {
		return s.cache.Resolve(ctx, natureza, uf)
	}
	return s.repo.Resolve(ctx, natureza, uf)
}

func (s *Service) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("invalidate matriz cache", slog.Any("error", err))
	}
}
