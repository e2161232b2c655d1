package nfe

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/felipegscont/movix-sub001/internal/platform/httpx"
)

// Service manages NF-e issuance settings. Secrets are encrypted with the
// fiscal key before they touch the database.
type Service struct {
	repo Repository
	key  *[32]byte
}

// NewService constructs a Service. key is the 32-byte fiscal secret from
// configuration.
func NewService(repo Repository, key *[32]byte) *Service {
	return &Service{repo: repo, key: key}
}

// Get returns the settings as a view with set/unset flags for the secrets.
func (s *Service) Get(ctx context.Context) (*ConfiguracaoView, error) {
	c, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	return s.view(c), nil
}

// Save upserts the settings. Omitted secrets keep their stored values; a new
// CSC token mints a fresh CSC id.
func (s *Service) Save(ctx context.Context, req SaveConfiguracaoRequest) (*ConfiguracaoView, error) {
	existing, err := s.repo.Get(ctx)
	if err != nil && !errors.Is(err, httpx.ErrNotFound) {
		return nil, err
	}

	c := ConfiguracaoNfe{
		Serie:             req.Serie,
		ProximoNumero:     req.ProximoNumero,
		Ambiente:          req.Ambiente,
		RazaoSocial:       req.RazaoSocial,
		Cnpj:              req.Cnpj,
		InscricaoEstadual: req.InscricaoEstadual,
		Logradouro:        req.Logradouro,
		Numero:            req.Numero,
		Bairro:            req.Bairro,
		Municipio:         req.Municipio,
		UF:                req.UF,
		CEP:               req.CEP,
	}
	if existing != nil {
		c.CscID = existing.CscID
		c.CscToken = existing.CscToken
		c.CertSenha = existing.CertSenha
	}

	if req.CscToken != nil {
		sealed, err := sealSecret(s.key, *req.CscToken)
		if err != nil {
			return nil, fmt.Errorf("proteger CSC token: %w", err)
		}
		c.CscToken = sealed
		c.CscID = uuid.NewString()
	}
	if req.CertSenha != nil {
		sealed, err := sealSecret(s.key, *req.CertSenha)
		if err != nil {
			return nil, fmt.Errorf("proteger senha do certificado: %w", err)
		}
		c.CertSenha = sealed
	}

	if err := s.repo.Save(ctx, c); err != nil {
		return nil, fmt.Errorf("salvar configuração de NF-e: %w", err)
	}

	saved, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	return s.view(saved), nil
}

// CertSenha decrypts the stored certificate password for signing use.
func (s *Service) CertSenha(ctx context.Context) (string, error) {
	c, err := s.repo.Get(ctx)
	if err != nil {
		return "", err
	}
	if c.CertSenha == "" {
		return "", fmt.Errorf("%w: senha do certificado não definida", httpx.ErrNotFound)
	}
	return openSecret(s.key, c.CertSenha)
}

func (s *Service) view(c *ConfiguracaoNfe) *ConfiguracaoView {
	return &ConfiguracaoView{
		ConfiguracaoNfe:   *c,
		CscTokenDefinido:  c.CscToken != "",
		CertSenhaDefinida: c.CertSenha != "",
	}
}
