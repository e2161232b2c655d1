package fornecedores

import "time"

// Fornecedor represents a supplier.
type Fornecedor struct {
	ID                int64     `json:"id"`
	Nome              string    `json:"nome"`
	NomeFantasia      *string   `json:"nomeFantasia,omitempty"`
	Cnpj              *string   `json:"cnpj,omitempty"`
	InscricaoEstadual *string   `json:"inscricaoEstadual,omitempty"`
	Email             *string   `json:"email,omitempty"`
	Telefone          *string   `json:"telefone,omitempty"`
	Municipio         *string   `json:"municipio,omitempty"`
	UF                *string   `json:"uf,omitempty"`
	CEP               *string   `json:"cep,omitempty"`
	Ativo             bool      `json:"ativo"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// CreateFornecedorRequest carries the payload for creating a supplier.
type CreateFornecedorRequest struct {
	Nome              string  `json:"nome" validate:"required,max=200"`
	NomeFantasia      *string `json:"nomeFantasia,omitempty" validate:"omitempty,max=200"`
	Cnpj              *string `json:"cnpj,omitempty" validate:"omitempty,max=18"`
	InscricaoEstadual *string `json:"inscricaoEstadual,omitempty" validate:"omitempty,max=20"`
	Email             *string `json:"email,omitempty" validate:"omitempty,email"`
	Telefone          *string `json:"telefone,omitempty" validate:"omitempty,max=20"`
	Municipio         *string `json:"municipio,omitempty" validate:"omitempty,max=100"`
	UF                *string `json:"uf,omitempty" validate:"omitempty,len=2"`
	CEP               *string `json:"cep,omitempty" validate:"omitempty,max=9"`
}

// UpdateFornecedorRequest carries a partial update.
type UpdateFornecedorRequest struct {
	Nome              *string `json:"nome,omitempty" validate:"omitempty,max=200"`
	NomeFantasia      *string `json:"nomeFantasia,omitempty" validate:"omitempty,max=200"`
	Cnpj              *string `json:"cnpj,omitempty" validate:"omitempty,max=18"`
	InscricaoEstadual *string `json:"inscricaoEstadual,omitempty" validate:"omitempty,max=20"`
	Email             *string `json:"email,omitempty" validate:"omitempty,email"`
	Telefone          *string `json:"telefone,omitempty" validate:"omitempty,max=20"`
	Municipio         *string `json:"municipio,omitempty" validate:"omitempty,max=100"`
	UF                *string `json:"uf,omitempty" validate:"omitempty,len=2"`
	CEP               *string `json:"cep,omitempty" validate:"omitempty,max=9"`
	Ativo             *bool   `json:"ativo,omitempty"`
}

// ListFornecedoresRequest filters supplier listings.
type ListFornecedoresRequest struct {
	Busca  *string
	Ativo  *bool
	Limit  int
	Offset int
}
