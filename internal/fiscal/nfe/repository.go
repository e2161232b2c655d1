package nfe

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/felipegscont/movix-sub001/internal/platform/httpx"
)

// Repository persists the single-row NF-e configuration.
type Repository interface {
	Get(ctx context.Context) (*ConfiguracaoNfe, error)
	Save(ctx context.Context, c ConfiguracaoNfe) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository builds a pgx-backed Repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) Get(ctx context.Context) (*ConfiguracaoNfe, error) {
	var c ConfiguracaoNfe
	err := r.pool.QueryRow(ctx, `
		SELECT id, serie, proximo_numero, ambiente, csc_id, csc_token, cert_senha,
		       razao_social, cnpj, inscricao_estadual, logradouro, numero, bairro,
		       municipio, uf, cep, updated_at
		FROM configuracao_nfe
		WHERE id = 1
	`).Scan(&c.ID, &c.Serie, &c.ProximoNumero, &c.Ambiente, &c.CscID, &c.CscToken, &c.CertSenha,
		&c.RazaoSocial, &c.Cnpj, &c.InscricaoEstadual, &c.Logradouro, &c.Numero, &c.Bairro,
		&c.Municipio, &c.UF, &c.CEP, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: configuração de NF-e não definida", httpx.ErrNotFound)
		}
		return nil, err
	}
	return &c, nil
}

func (r *repository) Save(ctx context.Context, c ConfiguracaoNfe) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO configuracao_nfe (id, serie, proximo_numero, ambiente, csc_id, csc_token, cert_senha,
			razao_social, cnpj, inscricao_estadual, logradouro, numero, bairro, municipio, uf, cep, updated_at)
		VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, NOW())
		ON CONFLICT (id) DO UPDATE SET
			serie = EXCLUDED.serie,
			proximo_numero = EXCLUDED.proximo_numero,
			ambiente = EXCLUDED.ambiente,
			csc_id = EXCLUDED.csc_id,
			csc_token = EXCLUDED.csc_token,
			cert_senha = EXCLUDED.cert_senha,
			razao_social = EXCLUDED.razao_social,
			cnpj = EXCLUDED.cnpj,
			inscricao_estadual = EXCLUDED.inscricao_estadual,
			logradouro = EXCLUDED.logradouro,
			numero = EXCLUDED.numero,
			bairro = EXCLUDED.bairro,
			municipio = EXCLUDED.municipio,
			uf = EXCLUDED.uf,
			cep = EXCLUDED.cep,
			updated_at = NOW()
	`, c.Serie, c.ProximoNumero, c.Ambiente, c.CscID, c.CscToken, c.CertSenha,
		c.RazaoSocial, c.Cnpj, c.InscricaoEstadual, c.Logradouro, c.Numero, c.Bairro,
		c.Municipio, c.UF, c.CEP)
	return err
}
