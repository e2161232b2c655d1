package fornecedores

import (
	"context"
	"fmt"
)

// Service provides business logic for supplier operations.
type Service struct {
	repo Repository
}

// NewService constructs a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context, id int64) (*Fornecedor, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, req ListFornecedoresRequest) ([]Fornecedor, int, error) {
	return s.repo.List(ctx, req)
}

func (s *Service) Create(ctx context.Context, req CreateFornecedorRequest) (*Fornecedor, error) {
	f := Fornecedor{
		Nome:              req.Nome,
		NomeFantasia:      req.NomeFantasia,
		Cnpj:              req.Cnpj,
		InscricaoEstadual: req.InscricaoEstadual,
		Email:             req.Email,
		Telefone:          req.Telefone,
		Municipio:         req.Municipio,
		UF:                req.UF,
		CEP:               req.CEP,
		Ativo:             true,
	}

	id, err := s.repo.Create(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("create fornecedor: %w", err)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateFornecedorRequest) (*Fornecedor, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Nome != nil {
		existing.Nome = *req.Nome
	}
	if req.NomeFantasia != nil {
		existing.NomeFantasia = req.NomeFantasia
	}
	if req.Cnpj != nil {
		existing.Cnpj = req.Cnpj
	}
	if req.InscricaoEstadual != nil {
		existing.InscricaoEstadual = req.InscricaoEstadual
	}
	if req.Email != nil {
		existing.Email = req.Email
	}
	if req.Telefone != nil {
		existing.Telefone = req.Telefone
	}
	if req.Municipio != nil {
		existing.Municipio = req.Municipio
	}
	if req.UF != nil {
		existing.UF = req.UF
	}
	if req.CEP != nil {
		existing.CEP = req.CEP
	}
	if req.Ativo != nil {
		existing.Ativo = *req.Ativo
	}

	if err := s.repo.Update(ctx, id, *existing); err != nil {
		return nil, fmt.Errorf("update fornecedor: %w", err)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
