package produtos

import (
	"context"
	"fmt"
)

// Service provides business logic for product operations.
type Service struct {
	repo Repository
}

// NewService constructs a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context, id int64) (*Produto, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, req ListProdutosRequest) ([]Produto, int, error) {
	return s.repo.List(ctx, req)
}

func (s *Service) Create(ctx context.Context, req CreateProdutoRequest) (*Produto, error) {
	p := Produto{
		Codigo:     req.Codigo,
		Descricao:  req.Descricao,
		Unidade:    req.Unidade,
		NCM:        req.NCM,
		PrecoVenda: req.PrecoVenda,
		Custo:      req.Custo,
		Ativo:      true,
	}

	id, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("create produto: %w", err)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateProdutoRequest) (*Produto, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Codigo != nil {
		existing.Codigo = *req.Codigo
	}
	if req.Descricao != nil {
		existing.Descricao = *req.Descricao
	}
	if req.Unidade != nil {
		existing.Unidade = *req.Unidade
	}
	if req.NCM != nil {
		existing.NCM = req.NCM
	}
	if req.PrecoVenda != nil {
		existing.PrecoVenda = *req.PrecoVenda
	}
	if req.Custo != nil {
		existing.Custo = req.Custo
	}
	if req.Ativo != nil {
		existing.Ativo = *req.Ativo
	}

	if err := s.repo.Update(ctx, id, *existing); err != nil {
		return nil, fmt.Errorf("update produto: %w", err)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
