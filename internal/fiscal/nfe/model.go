package nfe

import "time"

// Ambiente values follow the SEFAZ convention.
const (
	AmbienteProducao    = 1
	AmbienteHomologacao = 2
)

// ConfiguracaoNfe holds the single-row NF-e issuance settings. CertSenha is
// stored encrypted and never serialized back to clients.
type ConfiguracaoNfe struct {
	ID                int64     `json:"-"`
	Serie             int       `json:"serie"`
	ProximoNumero     int64     `json:"proximoNumero"`
	Ambiente          int       `json:"ambiente"`
	CscID             string    `json:"cscId"`
	CscToken          string    `json:"-"`
	CertSenha         string    `json:"-"`
	RazaoSocial       string    `json:"razaoSocial"`
	Cnpj              string    `json:"cnpj"`
	InscricaoEstadual string    `json:"inscricaoEstadual"`
	Logradouro        string    `json:"logradouro"`
	Numero            string    `json:"numero"`
	Bairro            string    `json:"bairro"`
	Municipio         string    `json:"municipio"`
	UF                string    `json:"uf"`
	CEP               string    `json:"cep"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// ConfiguracaoView is the read projection: secrets are reported as set/unset
// flags only.
type ConfiguracaoView struct {
	ConfiguracaoNfe
	CscTokenDefinido  bool `json:"cscTokenDefinido"`
	CertSenhaDefinida bool `json:"certSenhaDefinida"`
}

// SaveConfiguracaoRequest carries the PUT payload. CscToken and CertSenha are
// write-only: when omitted the stored values are kept.
type SaveConfiguracaoRequest struct {
	Serie             int     `json:"serie" validate:"required,gte=1,lte=999"`
	ProximoNumero     int64   `json:"proximoNumero" validate:"required,gte=1"`
	Ambiente          int     `json:"ambiente" validate:"required,oneof=1 2"`
	CscToken          *string `json:"cscToken,omitempty" validate:"omitempty,min=8"`
	CertSenha         *string `json:"certSenha,omitempty" validate:"omitempty,min=4"`
	RazaoSocial       string  `json:"razaoSocial" validate:"required,max=200"`
	Cnpj              string  `json:"cnpj" validate:"required,len=14,numeric"`
	InscricaoEstadual string  `json:"inscricaoEstadual" validate:"required,max=20"`
	Logradouro        string  `json:"logradouro" validate:"required,max=200"`
	Numero            string  `json:"numero" validate:"required,max=20"`
	Bairro            string  `json:"bairro" validate:"required,max=100"`
	Municipio         string  `json:"municipio" validate:"required,max=100"`
	UF                string  `json:"uf" validate:"required,len=2"`
	CEP               string  `json:"cep" validate:"required,len=8,numeric"`
}
