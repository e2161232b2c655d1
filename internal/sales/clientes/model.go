package clientes

import "time"

// Cliente represents a customer referenced by orçamentos and pedidos.
type Cliente struct {
	ID                int64     `json:"id"`
	Nome              string    `json:"nome"`
	NomeFantasia      *string   `json:"nomeFantasia,omitempty"`
	CnpjCpf           *string   `json:"cnpjCpf,omitempty"`
	InscricaoEstadual *string   `json:"inscricaoEstadual,omitempty"`
	Email             *string   `json:"email,omitempty"`
	Telefone          *string   `json:"telefone,omitempty"`
	Logradouro        *string   `json:"logradouro,omitempty"`
	Numero            *string   `json:"numero,omitempty"`
	Complemento       *string   `json:"complemento,omitempty"`
	Bairro            *string   `json:"bairro,omitempty"`
	Municipio         *string   `json:"municipio,omitempty"`
	UF                *string   `json:"uf,omitempty"`
	CEP               *string   `json:"cep,omitempty"`
	Ativo             bool      `json:"ativo"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}
