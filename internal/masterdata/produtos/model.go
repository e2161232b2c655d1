package produtos

import "time"

// Produto represents a sellable product. Codigo, descricao and unidade are
// snapshotted onto quote and order items at the time of quoting.
type Produto struct {
	ID         int64     `json:"id"`
	Codigo     string    `json:"codigo"`
	Descricao  string    `json:"descricao"`
	Unidade    string    `json:"unidade"`
	NCM        *string   `json:"ncm,omitempty"`
	PrecoVenda float64   `json:"precoVenda"`
	Custo      *float64  `json:"custo,omitempty"`
	Ativo      bool      `json:"ativo"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// CreateProdutoRequest carries the payload for creating a product.
type CreateProdutoRequest struct {
	Codigo     string   `json:"codigo" validate:"required,max=50"`
	Descricao  string   `json:"descricao" validate:"required,max=300"`
	Unidade    string   `json:"unidade" validate:"required,max=10"`
	NCM        *string  `json:"ncm,omitempty" validate:"omitempty,len=8"`
	PrecoVenda float64  `json:"precoVenda" validate:"gte=0"`
	Custo      *float64 `json:"custo,omitempty" validate:"omitempty,gte=0"`
}

// UpdateProdutoRequest carries a partial update.
type UpdateProdutoRequest struct {
	Codigo     *string  `json:"codigo,omitempty" validate:"omitempty,max=50"`
	Descricao  *string  `json:"descricao,omitempty" validate:"omitempty,max=300"`
	Unidade    *string  `json:"unidade,omitempty" validate:"omitempty,max=10"`
	NCM        *string  `json:"ncm,omitempty" validate:"omitempty,len=8"`
	PrecoVenda *float64 `json:"precoVenda,omitempty" validate:"omitempty,gte=0"`
	Custo      *float64 `json:"custo,omitempty" validate:"omitempty,gte=0"`
	Ativo      *bool    `json:"ativo,omitempty"`
}

// ListProdutosRequest filters product listings.
type ListProdutosRequest struct {
	Busca  *string
	Ativo  *bool
	Limit  int
	Offset int
}
