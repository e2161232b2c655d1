package pedidos

import "time"

// CreatePedidoRequest carries the payload for creating an order. Numero is
// optional: when absent the next sequential number is minted.
type CreatePedidoRequest struct {
	Numero         *int64                     `json:"numero,omitempty" validate:"omitempty,gt=0"`
	ClienteID      int64                      `json:"clienteId" validate:"required,gt=0"`
	DataEmissao    time.Time                  `json:"dataEmissao" validate:"required"`
	DataEntrega    *time.Time                 `json:"dataEntrega,omitempty"`
	Vendedor       *string                    `json:"vendedor,omitempty" validate:"omitempty,max=100"`
	Subtotal       float64                    `json:"subtotal" validate:"gte=0"`
	Desconto       float64                    `json:"desconto" validate:"gte=0"`
	Frete          float64                    `json:"frete" validate:"gte=0"`
	OutrasDespesas float64                    `json:"outrasDespesas" validate:"gte=0"`
	Total          float64                    `json:"total" validate:"gte=0"`
	Observacoes    *string                    `json:"observacoes,omitempty"`
	OrcamentoID    *int64                     `json:"orcamentoId,omitempty" validate:"omitempty,gt=0"`
	Itens          []CreatePedidoItemRequest  `json:"itens" validate:"required,min=1,dive"`
	Parcelas       []CreateParcelaRequest     `json:"parcelas,omitempty" validate:"omitempty,dive"`
}

// CreatePedidoItemRequest describes one order line. The product snapshot
// fields (codigo/descricao/unidade) are optional; when empty they are filled
// from the product record. ValorTotal is copied verbatim when provided and
// computed from quantidade/valorUnitario/desconto otherwise.
type CreatePedidoItemRequest struct {
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

// CreateParcelaRequest describes one payment-schedule entry.
type CreateParcelaRequest struct {
	NumeroParcela  int       `json:"numeroParcela" validate:"gte=0"`
	DataVencimento time.Time `json:"dataVencimento" validate:"required"`
	Valor          float64   `json:"valor" validate:"required,gt=0"`
	FormaPagamento *string   `json:"formaPagamento,omitempty" validate:"omitempty,max=50"`
}

// UpdatePedidoRequest carries a partial update. When Itens is non-nil, all
// existing items are replaced. Same for Parcelas.
type UpdatePedidoRequest struct {
	DataEmissao    *time.Time                 `json:"dataEmissao,omitempty"`
	DataEntrega    *time.Time                 `json:"dataEntrega,omitempty"`
	Vendedor       *string                    `json:"vendedor,omitempty" validate:"omitempty,max=100"`
	Subtotal       *float64                   `json:"subtotal,omitempty" validate:"omitempty,gte=0"`
	Desconto       *float64                   `json:"desconto,omitempty" validate:"omitempty,gte=0"`
	Frete          *float64                   `json:"frete,omitempty" validate:"omitempty,gte=0"`
	OutrasDespesas *float64                   `json:"outrasDespesas,omitempty" validate:"omitempty,gte=0"`
	Total          *float64                   `json:"total,omitempty" validate:"omitempty,gte=0"`
	Observacoes    *string                    `json:"observacoes,omitempty"`
	Itens          *[]CreatePedidoItemRequest `json:"itens,omitempty" validate:"omitempty,min=1,dive"`
	Parcelas       *[]CreateParcelaRequest    `json:"parcelas,omitempty" validate:"omitempty,dive"`
}

// ListPedidosRequest filters order listings.
type ListPedidosRequest struct {
	ClienteID *int64
	Status    *PedidoStatus
	DataDe    *time.Time
	DataAte   *time.Time
	Limit     int
	Offset    int
}
