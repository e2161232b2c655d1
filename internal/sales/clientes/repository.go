package clientes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/felipegscont/movix-sub001/internal/platform/httpx"
)

const clienteColumns = `id, nome, nome_fantasia, cnpj_cpf, inscricao_estadual, email, telefone,
	logradouro, numero, complemento, bairro, municipio, uf, cep, ativo, created_at, updated_at`

// Repository persists clientes.
type Repository interface {
	Get(ctx context.Context, id int64) (*Cliente, error)
	List(ctx context.Context, req ListClientesRequest) ([]Cliente, int, error)
	Create(ctx context.Context, c Cliente) (int64, error)
	Update(ctx context.Context, id int64, c Cliente) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository builds a pgx-backed Repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) Get(ctx context.Context, id int64) (*Cliente, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+clienteColumns+` FROM clientes WHERE id = $1`, id)
	c, err := scanCliente(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: cliente não encontrado", httpx.ErrNotFound)
		}
		return nil, err
	}
	return c, nil
}

func (r *repository) List(ctx context.Context, req ListClientesRequest) ([]Cliente, int, error) {
	where := "WHERE 1=1"
	var args []interface{}
	argPos := 1

	if req.Busca != nil && *req.Busca != "" {
		where += fmt.Sprintf(" AND (nome ILIKE $%d OR nome_fantasia ILIKE $%d OR cnpj_cpf ILIKE $%d)", argPos, argPos, argPos)
		args = append(args, "%"+*req.Busca+"%")
		argPos++
	}
	if req.Ativo != nil {
		where += fmt.Sprintf(" AND ativo = $%d", argPos)
		args = append(args, *req.Ativo)
		argPos++
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM clientes "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf("SELECT %s FROM clientes %s ORDER BY nome LIMIT $%d OFFSET $%d",
		clienteColumns, where, argPos, argPos+1)
	args = append(args, req.Limit, req.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []Cliente
	for rows.Next() {
		c, err := scanCliente(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, *c)
	}
	return result, total, rows.Err()
}

func (r *repository) Create(ctx context.Context, c Cliente) (int64, error) {
	var id int64
	now := time.Now()
	err := r.pool.QueryRow(ctx, `
		INSERT INTO clientes (nome, nome_fantasia, cnpj_cpf, inscricao_estadual, email, telefone,
			logradouro, numero, complemento, bairro, municipio, uf, cep, ativo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $15)
		RETURNING id
	`, c.Nome, c.NomeFantasia, c.CnpjCpf, c.InscricaoEstadual, c.Email, c.Telefone,
		c.Logradouro, c.Numero, c.Complemento, c.Bairro, c.Municipio, c.UF, c.CEP, c.Ativo, now).Scan(&id)
	return id, err
}

func (r *repository) Update(ctx context.Context, id int64, c Cliente) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE clientes SET nome = $1, nome_fantasia = $2, cnpj_cpf = $3, inscricao_estadual = $4,
			email = $5, telefone = $6, logradouro = $7, numero = $8, complemento = $9,
			bairro = $10, municipio = $11, uf = $12, cep = $13, ativo = $14, updated_at = NOW()
		WHERE id = $15
	`, c.Nome, c.NomeFantasia, c.CnpjCpf, c.InscricaoEstadual, c.Email, c.Telefone,
		c.Logradouro, c.Numero, c.Complemento, c.Bairro, c.Municipio, c.UF, c.CEP, c.Ativo, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: cliente não encontrado", httpx.ErrNotFound)
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM clientes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: cliente não encontrado", httpx.ErrNotFound)
	}
	return nil
}

func scanCliente(row pgx.Row) (*Cliente, error) {
	var c Cliente
	err := row.Scan(&c.ID, &c.Nome, &c.NomeFantasia, &c.CnpjCpf, &c.InscricaoEstadual, &c.Email,
		&c.Telefone, &c.Logradouro, &c.Numero, &c.Complemento, &c.Bairro, &c.Municipio, &c.UF,
		&c.CEP, &c.Ativo, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
