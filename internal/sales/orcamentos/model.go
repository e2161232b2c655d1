package orcamentos

import "time"

// OrcamentoStatus enumerates the quote lifecycle.
type OrcamentoStatus string

const (
	OrcamentoStatusEmAberto  OrcamentoStatus = "EM_ABERTO"
	OrcamentoStatusAprovado  OrcamentoStatus = "APROVADO"
	OrcamentoStatusCancelado OrcamentoStatus = "CANCELADO"
)

// Orcamento is a sales quote. A converted quote carries the resulting order
// id in PedidoID and becomes immutable.
type Orcamento struct {
	ID             int64           `json:"id"`
	Numero         int64           `json:"numero"`
	DataEmissao    time.Time       `json:"dataEmissao"`
	DataValidade   time.Time       `json:"dataValidade"`
	Status         OrcamentoStatus `json:"status"`
	ClienteID      int64           `json:"clienteId"`
	Vendedor       *string         `json:"vendedor,omitempty"`
	Subtotal       float64         `json:"subtotal"`
	Desconto       float64         `json:"desconto"`
	Frete          float64         `json:"frete"`
	OutrasDespesas float64         `json:"outrasDespesas"`
	Total          float64         `json:"total"`
	Observacoes    *string         `json:"observacoes,omitempty"`
	PedidoID       *int64          `json:"pedidoId,omitempty"`
	DataConversao  *time.Time      `json:"dataConversao,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
	Itens          []OrcamentoItem `json:"itens,omitempty"`
}

// OrcamentoItem is one product/quantity/price row within a quote. Codigo,
// descricao and unidade are snapshots taken when the line was added.
type OrcamentoItem struct {
	ID            int64   `json:"id"`
	OrcamentoID   int64   `json:"orcamentoId"`
	NumeroItem    int     `json:"numeroItem"`
	ProdutoID     int64   `json:"produtoId"`
	Codigo        string  `json:"codigo"`
	Descricao     string  `json:"descricao"`
	Unidade       string  `json:"unidade"`
	Quantidade    float64 `json:"quantidade"`
	ValorUnitario float64 `json:"valorUnitario"`
	Desconto      float64 `json:"desconto"`
	ValorTotal    float64 `json:"valorTotal"`
	Observacoes   *string `json:"observacoes,omitempty"`
}

// OrcamentoResumo is the listing projection, joined with the customer name.
type OrcamentoResumo struct {
	Orcamento
	ClienteNome string `json:"clienteNome"`
}
