package matriz

import "time"

// MatrizFiscal maps a nature of operation (optionally per destination UF) to
// the tax codes and rates applied on order items.
type MatrizFiscal struct {
	ID               int64     `json:"id"`
	Descricao        string    `json:"descricao"`
	NaturezaOperacao string    `json:"naturezaOperacao"`
	UFDestino        *string   `json:"ufDestino,omitempty"`
	CFOP             string    `json:"cfop"`
	CstIcms          string    `json:"cstIcms"`
	AliquotaIcms     float64   `json:"aliquotaIcms"`
	CstPis           string    `json:"cstPis"`
	AliquotaPis      float64   `json:"aliquotaPis"`
	CstCofins        string    `json:"cstCofins"`
	AliquotaCofins   float64   `json:"aliquotaCofins"`
	Ativo            bool      `json:"ativo"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// CreateMatrizRequest carries the payload for creating a tax matrix entry.
type CreateMatrizRequest struct {
	Descricao        string  `json:"descricao" validate:"required,max=200"`
	NaturezaOperacao string  `json:"naturezaOperacao" validate:"required,max=100"`
	UFDestino        *string `json:"ufDestino,omitempty" validate:"omitempty,len=2"`
	CFOP             string  `json:"cfop" validate:"required,len=4,numeric"`
	CstIcms          string  `json:"cstIcms" validate:"required,max=3"`
	AliquotaIcms     float64 `json:"aliquotaIcms" validate:"gte=0,lte=100"`
	CstPis           string  `json:"cstPis" validate:"required,max=2"`
	AliquotaPis      float64 `json:"aliquotaPis" validate:"gte=0,lte=100"`
	CstCofins        string  `json:"cstCofins" validate:"required,max=2"`
	AliquotaCofins   float64 `json:"aliquotaCofins" validate:"gte=0,lte=100"`
}

// UpdateMatrizRequest carries a partial update.
type UpdateMatrizRequest struct {
	Descricao        *string  `json:"descricao,omitempty" validate:"omitempty,max=200"`
	NaturezaOperacao *string  `json:"naturezaOperacao,omitempty" validate:"omitempty,max=100"`
	UFDestino        *string  `json:"ufDestino,omitempty" validate:"omitempty,len=2"`
	CFOP             *string  `json:"cfop,omitempty" validate:"omitempty,len=4,numeric"`
	CstIcms          *string  `json:"cstIcms,omitempty" validate:"omitempty,max=3"`
	AliquotaIcms     *float64 `json:"aliquotaIcms,omitempty" validate:"omitempty,gte=0,lte=100"`
	CstPis           *string  `json:"cstPis,omitempty" validate:"omitempty,max=2"`
	AliquotaPis      *float64 `json:"aliquotaPis,omitempty" validate:"omitempty,gte=0,lte=100"`
	CstCofins        *string  `json:"cstCofins,omitempty" validate:"omitempty,max=2"`
	AliquotaCofins   *float64 `json:"aliquotaCofins,omitempty" validate:"omitempty,gte=0,lte=100"`
	Ativo            *bool    `json:"ativo,omitempty"`
}

// ListMatrizesRequest filters matrix listings.
type ListMatrizesRequest struct {
	Natureza *string
	Ativo    *bool
	Limit    int
	Offset   int
}
