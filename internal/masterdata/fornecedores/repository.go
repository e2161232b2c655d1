package fornecedores

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/felipegscont/movix-sub001/internal/platform/httpx"
)

const fornecedorColumns = `id, nome, nome_fantasia, cnpj, inscricao_estadual, email, telefone,
	municipio, uf, cep, ativo, created_at, updated_at`

// Repository persists fornecedores.
type Repository interface {
	Get(ctx context.Context, id int64) (*Fornecedor, error)
	List(ctx context.Context, req ListFornecedoresRequest) ([]Fornecedor, int, error)
	Create(ctx context.Context, f Fornecedor) (int64, error)
	Update(ctx context.Context, id int64, f Fornecedor) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository builds a pgx-backed Repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) Get(ctx context.Context, id int64) (*Fornecedor, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+fornecedorColumns+` FROM fornecedores WHERE id = $1`, id)
	f, err := scanFornecedor(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: fornecedor não encontrado", httpx.ErrNotFound)
		}
		return nil, err
	}
	return f, nil
}

func (r *repository) List(ctx context.Context, req ListFornecedoresRequest) ([]Fornecedor, int, error) {
	where := "WHERE 1=1"
	var args []interface{}
	argPos := 1

	if req.Busca != nil && *req.Busca != "" {
		where += fmt.Sprintf(" AND (nome ILIKE $%d OR nome_fantasia ILIKE $%d OR cnpj ILIKE $%d)", argPos, argPos, argPos)
		args = append(args, "%"+*req.Busca+"%")
		argPos++
	}
	if req.Ativo != nil {
		where += fmt.Sprintf(" AND ativo = $%d", argPos)
		args = append(args, *req.Ativo)
		argPos++
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM fornecedores "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf("SELECT %s FROM fornecedores %s ORDER BY nome LIMIT $%d OFFSET $%d",
		fornecedorColumns, where, argPos, argPos+1)
	args = append(args, req.Limit, req.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []Fornecedor
	for rows.Next() {
		f, err := scanFornecedor(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, *f)
	}
	return result, total, rows.Err()
}

func (r *repository) Create(ctx context.Context, f Fornecedor) (int64, error) {
	var id int64
	now := time.Now()
	err := r.pool.QueryRow(ctx, `
		INSERT INTO fornecedores (nome, nome_fantasia, cnpj, inscricao_estadual, email, telefone,
			municipio, uf, cep, ativo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)
		RETURNING id
	`, f.Nome, f.NomeFantasia, f.Cnpj, f.InscricaoEstadual, f.Email, f.Telefone,
		f.Municipio, f.UF, f.CEP, f.Ativo, now).Scan(&id)
	return id, err
}

func (r *repository) Update(ctx context.Context, id int64, f Fornecedor) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE fornecedores SET nome = $1, nome_fantasia = $2, cnpj = $3, inscricao_estadual = $4,
			email = $5, telefone = $6, municipio = $7, uf = $8, cep = $9, ativo = $10, updated_at = NOW()
		WHERE id = $11
	`, f.Nome, f.NomeFantasia, f.Cnpj, f.InscricaoEstadual, f.Email, f.Telefone,
		f.Municipio, f.UF, f.CEP, f.Ativo, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: fornecedor não encontrado", httpx.ErrNotFound)
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM fornecedores WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: fornecedor não encontrado", httpx.ErrNotFound)
	}
	return nil
}

func scanFornecedor(row pgx.Row) (*Fornecedor, error) {
	var f Fornecedor
	err := row.Scan(&f.ID, &f.Nome, &f.NomeFantasia, &f.Cnpj, &f.InscricaoEstadual, &f.Email,
		&f.Telefone, &f.Municipio, &f.UF, &f.CEP, &f.Ativo, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &f, nil
}
