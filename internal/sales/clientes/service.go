package clientes

import (
	"context"
	"fmt"
)

// Service provides business logic for customer operations.
type Service struct {
	repo Repository
}

// NewService constructs a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context, id int64) (*Cliente, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, req ListClientesRequest) ([]Cliente, int, error) {
	return s.repo.List(ctx, req)
}

func (s *Service) Create(ctx context.Context, req CreateClienteRequest) (*Cliente, error) {
	c := Cliente{
		Nome:              req.Nome,
		NomeFantasia:      req.NomeFantasia,
		CnpjCpf:           req.CnpjCpf,
		InscricaoEstadual: req.InscricaoEstadual,
		Email:             req.Email,
		Telefone:          req.Telefone,
		Logradouro:        req.Logradouro,
		Numero:            req.Numero,
		Complemento:       req.Complemento,
		Bairro:            req.Bairro,
		Municipio:         req.Municipio,
		UF:                req.UF,
		CEP:               req.CEP,
		Ativo:             true,
	}

	id, err := s.repo.Create(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("create cliente: %w", err)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateClienteRequest) (*Cliente, error) {
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
	if req.CnpjCpf != nil {
		existing.CnpjCpf = req.CnpjCpf
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
	if req.Logradouro != nil {
		existing.Logradouro = req.Logradouro
	}
	if req.Numero != nil {
		existing.Numero = req.Numero
	}
	if req.Complemento != nil {
		existing.Complemento = req.Complemento
	}
	if req.Bairro != nil {
		existing.Bairro = req.Bairro
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
		return nil, fmt.Errorf("update cliente: %w", err)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
