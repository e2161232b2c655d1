package clientes

// CreateClienteRequest carries the payload for creating a customer.
type CreateClienteRequest struct {
	Nome              string  `json:"nome" validate:"required,max=200"`
	NomeFantasia      *string `json:"nomeFantasia,omitempty" validate:"omitempty,max=200"`
	CnpjCpf           *string `json:"cnpjCpf,omitempty" validate:"omitempty,max=18"`
	InscricaoEstadual *string `json:"inscricaoEstadual,omitempty" validate:"omitempty,max=20"`
	Email             *string `json:"email,omitempty" validate:"omitempty,email"`
	Telefone          *string `json:"telefone,omitempty" validate:"omitempty,max=20"`
	Logradouro        *string `json:"logradouro,omitempty" validate:"omitempty,max=200"`
	Numero            *string `json:"numero,omitempty" validate:"omitempty,max=20"`
	Complemento       *string `json:"complemento,omitempty" validate:"omitempty,max=100"`
	Bairro            *string `json:"bairro,omitempty" validate:"omitempty,max=100"`
	Municipio         *string `json:"municipio,omitempty" validate:"omitempty,max=100"`
	UF                *string `json:"uf,omitempty" validate:"omitempty,len=2"`
	CEP               *string `json:"cep,omitempty" validate:"omitempty,max=9"`
}

// UpdateClienteRequest carries a partial update; nil fields are left untouched.
type UpdateClienteRequest struct {
	Nome              *string `json:"nome,omitempty" validate:"omitempty,max=200"`
	NomeFantasia      *string `json:"nomeFantasia,omitempty" validate:"omitempty,max=200"`
	CnpjCpf           *string `json:"cnpjCpf,omitempty" validate:"omitempty,max=18"`
	InscricaoEstadual *string `json:"inscricaoEstadual,omitempty" validate:"omitempty,max=20"`
	Email             *string `json:"email,omitempty" validate:"omitempty,email"`
	Telefone          *string `json:"telefone,omitempty" validate:"omitempty,max=20"`
	Logradouro        *string `json:"logradouro,omitempty" validate:"omitempty,max=200"`
	Numero            *string `json:"numero,omitempty" validate:"omitempty,max=20"`
	Complemento       *string `json:"complemento,omitempty" validate:"omitempty,max=100"`
	Bairro            *string `json:"bairro,omitempty" validate:"omitempty,max=100"`
	Municipio         *string `json:"municipio,omitempty" validate:"omitempty,max=100"`
	UF                *string `json:"uf,omitempty" validate:"omitempty,len=2"`
	CEP               *string `json:"cep,omitempty" validate:"omitempty,max=9"`
	Ativo             *bool   `json:"ativo,omitempty"`
}

// ListClientesRequest filters customer listings.
type ListClientesRequest struct {
	Busca  *string
	Ativo  *bool
	Limit  int
	Offset int
}
