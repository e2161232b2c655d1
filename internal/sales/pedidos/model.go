package pedidos

import "time"

// PedidoStatus enumerates the sales order lifecycle.
type PedidoStatus string

const (
	PedidoStatusAberto    PedidoStatus = "ABERTO"
	PedidoStatusFaturado  PedidoStatus = "FATURADO"
	PedidoStatusCancelado PedidoStatus = "CANCELADO"
)

// Pedido represents a confirmed sale.
type Pedido struct {
	ID             int64           `json:"id"`
	Numero         int64           `json:"numero"`
	DataEmissao    time.Time       `json:"dataEmissao"`
	DataEntrega    *time.Time      `json:"dataEntrega,omitempty"`
	Status         PedidoStatus    `json:"status"`
	ClienteID      int64           `json:"clienteId"`
	Vendedor       *string         `json:"vendedor,omitempty"`
	Subtotal       float64         `json:"subtotal"`
	Desconto       float64         `json:"desconto"`
	Frete          float64         `json:"frete"`
	OutrasDespesas float64         `json:"outrasDespesas"`
	Total          float64         `json:"total"`
	Observacoes    *string         `json:"observacoes,omitempty"`
	OrcamentoID    *int64          `json:"orcamentoId,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
	Itens          []PedidoItem    `json:"itens,omitempty"`
	Parcelas       []PedidoParcela `json:"parcelas,omitempty"`
}

// PedidoItem is one product/quantity/price row within an order. Codigo,
// descricao and unidade are snapshots taken at quoting/ordering time.
type PedidoItem struct {
	ID            int64   `json:"id"`
	PedidoID      int64   `json:"pedidoId"`
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

// PedidoParcela is one entry of the payment schedule.
type PedidoParcela struct {
	ID             int64     `json:"id"`
	PedidoID       int64     `json:"pedidoId"`
	NumeroParcela  int       `json:"numeroParcela"`
	DataVencimento time.Time `json:"dataVencimento"`
	Valor          float64   `json:"valor"`
	FormaPagamento *string   `json:"formaPagamento,omitempty"`
}

// PedidoResumo is the listing projection, joined with the customer name.
type PedidoResumo struct {
	Pedido
	ClienteNome string `json:"clienteNome"`
}
