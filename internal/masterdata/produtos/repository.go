package produtos

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/felipegscont/movix-sub001/internal/platform/db"
	"github.com/felipegscont/movix-sub001/internal/platform/httpx"
)

const produtoColumns = `id, codigo, descricao, unidade, ncm, preco_venda, custo, ativo, created_at, updated_at`

// Repository persists produtos.
type Repository interface {
	Get(ctx context.Context, id int64) (*Produto, error)
	GetByCodigo(ctx context.Context, codigo string) (*Produto, error)
	List(ctx context.Context, req ListProdutosRequest) ([]Produto, int, error)
	Create(ctx context.Context, p Produto) (int64, error)
	Update(ctx context.Context, id int64, p Produto) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository builds a pgx-backed Repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) Get(ctx context.Context, id int64) (*Produto, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+produtoColumns+` FROM produtos WHERE id = $1`, id)
	p, err := scanProduto(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: produto não encontrado", httpx.ErrNotFound)
		}
		return nil, err
	}
	return p, nil
}

func (r *repository) GetByCodigo(ctx context.Context, codigo string) (*Produto, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+produtoColumns+` FROM produtos WHERE codigo = $1`, codigo)
	p, err := scanProduto(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: produto não encontrado", httpx.ErrNotFound)
		}
		return nil, err
	}
	return p, nil
}

func (r *repository) List(ctx context.Context, req ListProdutosRequest) ([]Produto, int, error) {
	where := "WHERE 1=1"
	var args []interface{}
	argPos := 1

	if req.Busca != nil && *req.Busca != "" {
		term := "%" + FoldSearchTerm(*req.Busca) + "%"
		where += fmt.Sprintf(" AND (codigo ILIKE $%d OR unaccent(descricao) ILIKE $%d)", argPos, argPos)
		args = append(args, term)
		argPos++
	}
	if req.Ativo != nil {
		where += fmt.Sprintf(" AND ativo = $%d", argPos)
		args = append(args, *req.Ativo)
		argPos++
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM produtos "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf("SELECT %s FROM produtos %s ORDER BY codigo LIMIT $%d OFFSET $%d",
		produtoColumns, where, argPos, argPos+1)
	args = append(args, req.Limit, req.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []Produto
	for rows.Next() {
		p, err := scanProduto(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, *p)
	}
	return result, total, rows.Err()
}

func (r *repository) Create(ctx context.Context, p Produto) (int64, error) {
	var id int64
	now := time.Now()
	err := r.pool.QueryRow(ctx, `
		INSERT INTO produtos (codigo, descricao, unidade, ncm, preco_venda, custo, ativo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		RETURNING id
	`, p.Codigo, p.Descricao, p.Unidade, p.NCM, p.PrecoVenda, p.Custo, p.Ativo, now).Scan(&id)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return 0, fmt.Errorf("%w: já existe um produto com este código", httpx.ErrConflict)
		}
		return 0, err
	}
	return id, nil
}

func (r *repository) Update(ctx context.Context, id int64, p Produto) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE produtos SET codigo = $1, descricao = $2, unidade = $3, ncm = $4,
			preco_venda = $5, custo = $6, ativo = $7, updated_at = NOW()
		WHERE id = $8
	`, p.Codigo, p.Descricao, p.Unidade, p.NCM, p.PrecoVenda, p.Custo, p.Ativo, id)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return fmt.Errorf("%w: já existe um produto com este código", httpx.ErrConflict)
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: produto não encontrado", httpx.ErrNotFound)
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM produtos WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: produto não encontrado", httpx.ErrNotFound)
	}
	return nil
}

func scanProduto(row pgx.Row) (*Produto, error) {
	var p Produto
	err := row.Scan(&p.ID, &p.Codigo, &p.Descricao, &p.Unidade, &p.NCM, &p.PrecoVenda, &p.Custo,
		&p.Ativo, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
