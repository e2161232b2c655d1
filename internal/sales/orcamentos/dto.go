package orcamentos

import "time"

// CreateOrcamentoRequest carries the payload for creating a quote. Numero is
// optional: when absent the next sequential number is minted.
type CreateOrcamentoRequest struct {
	Numero         *int64                       `json:"numero,omitempty" validate:"omitempty,gt=0"`
	ClienteID      int64                        `json:"clienteId" validate:"required,gt=0"`
	DataEmissao    time.Time                    `json:"dataEmissao" validate:"required"`
	DataValidade   time.Time                    `json:"dataValidade" validate:"required"`
	Vendedor       *string                      `json:"vendedor,omitempty" validate:"omitempty,max=100"`
	Subtotal       float64                      `json:"subtotal" validate:"gte=0"`
	Desconto       float64                      `json:"desconto" validate:"gte=0"`
	Frete          float64                      `json:"frete" validate:"gte=0"`
	OutrasDespesas float64                      `json:"outrasDespesas" validate:"gte=0"`
	Total          float64                      `json:"total" validate:"gte=0"`
	Observacoes    *string                      `json:"observacoes,omitempty"`
	Itens          []CreateOrcamentoItemRequest `json:"itens" validate:"required,min=1,dive"`
}

// CreateOrcamentoItemRequest describes one quote line. The product snapshot
// fields are optional; when empty they are filled from the product record.
// ValorTotal is kept as sent when provided.
type CreateOrcamentoItemRequest struct {
	NumeroItem    int      `json:"numeroItem" validate:"gte=0"`
	ProdutoID     int64    `json:"produtoId" validate:"required,gt=0"`
	Codigo        string   `json:"codigo,omitempty" validate:"omitempty,max=50"`
	Descricao     string   `json:"descricao,omitempty" validate:"omitempty,max=300"`
	Unidade       string   `json:"unidade,omitempty" validate:"omitempty,max=10"`
	Quantidade    float64  `json:"quantidade" validate:"required,gt=0"`
	ValorUnitario float64  `json:"valorUnitario" validate:"gte=0"`
	Desconto      float64  `json:"desconto" validate:"gte=0"`
	ValorTotal    *float64 `json:"valorTotal,omitempty" validate:"omitempty,gte=0"`
	Observacoes   *string  `json:"observacoes,omitempty"`
}

// UpdateOrcamentoRequest carries a partial update. When Itens is non-nil all
// existing items are replaced.
type UpdateOrcamentoRequest struct {
	DataEmissao    *time.Time                    `json:"dataEmissao,omitempty"`
	DataValidade   *time.Time                    `json:"dataValidade,omitempty"`
	Vendedor       *string                       `json:"vendedor,omitempty" validate:"omitempty,max=100"`
	Subtotal       *float64                      `json:"subtotal,omitempty" validate:"omitempty,gte=0"`
	Desconto       *float64                      `json:"desconto,omitempty" validate:"omitempty,gte=0"`
	Frete          *float64                      `json:"frete,omitempty" validate:"omitempty,gte=0"`
	OutrasDespesas *float64                      `json:"outrasDespesas,omitempty" validate:"omitempty,gte=0"`
	Total          *float64                      `json:"total,omitempty" validate:"omitempty,gte=0"`
	Observacoes    *string                       `json:"observacoes,omitempty"`
	Itens          *[]CreateOrcamentoItemRequest `json:"itens,omitempty" validate:"omitempty,min=1,dive"`
}

// ListOrcamentosRequest filters quote listings.
type ListOrcamentosRequest struct {
	ClienteID *int64
	Status    *OrcamentoStatus
	DataDe    *time.Time
	DataAte   *time.Time
	Limit     int
	Offset    int
}
