package matriz

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/felipegscont/movix-sub001/internal/platform/httpx"
)

const matrizColumns = `id, descricao, natureza_operacao, uf_destino, cfop, cst_icms, aliquota_icms,
	cst_pis, aliquota_pis, cst_cofins, aliquota_cofins, ativo, created_at, updated_at`

// Repository persists tax matrix entries.
type Repository interface {
	Get(ctx context.Context, id int64) (*MatrizFiscal, error)
	List(ctx context.Context, req ListMatrizesRequest) ([]MatrizFiscal, int, error)
	Create(ctx context.Context, m MatrizFiscal) (int64, error)
	Update(ctx context.Context, id int64, m MatrizFiscal) error
	Delete(ctx context.Context, id int64) error
	Resolve(ctx context.Context, natureza, uf string) (*MatrizFiscal, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository builds a pgx-backed Repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) Get(ctx context.Context, id int64) (*MatrizFiscal, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+matrizColumns+` FROM matrizes_fiscais WHERE id = $1`, id)
	m, err := scanMatriz(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: matriz fiscal não encontrada", httpx.ErrNotFound)
		}
		return nil, err
	}
	return m, nil
}

func (r *repository) List(ctx context.Context, req ListMatrizesRequest) ([]MatrizFiscal, int, error) {
	where := "WHERE 1=1"
	var args []interface{}
	argPos := 1

	if req.Natureza != nil {
		where += fmt.Sprintf(" AND natureza_operacao ILIKE $%d", argPos)
		args = append(args, "%"+*req.Natureza+"%")
		argPos++
	}
	if req.Ativo != nil {
		where += fmt.Sprintf(" AND ativo = $%d", argPos)
		args = append(args, *req.Ativo)
		argPos++
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM matrizes_fiscais "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM matrizes_fiscais %s ORDER BY natureza_operacao, uf_destino NULLS LAST LIMIT $%d OFFSET $%d`,
		matrizColumns, where, argPos, argPos+1)
	args = append(args, req.Limit, req.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []MatrizFiscal
	for rows.Next() {
		m, err := scanMatriz(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, *m)
	}
	return result, total, rows.Err()
}

func (r *repository) Create(ctx context.Context, m MatrizFiscal) (int64, error) {
	var id int64
	now := time.Now()
	err := r.pool.QueryRow(ctx, `
		INSERT INTO matrizes_fiscais (descricao, natureza_operacao, uf_destino, cfop, cst_icms, aliquota_icms,
			cst_pis, aliquota_pis, cst_cofins, aliquota_cofins, ativo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $12)
		RETURNING id
	`, m.Descricao, m.NaturezaOperacao, m.UFDestino, m.CFOP, m.CstIcms, m.AliquotaIcms,
		m.CstPis, m.AliquotaPis, m.CstCofins, m.AliquotaCofins, m.Ativo, now).Scan(&id)
	return id, err
}

func (r *repository) Update(ctx context.Context, id int64, m MatrizFiscal) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE matrizes_fiscais
		SET descricao = $1, natureza_operacao = $2, uf_destino = $3, cfop = $4, cst_icms = $5,
		    aliquota_icms = $6, cst_pis = $7, aliquota_pis = $8, cst_cofins = $9,
		    aliquota_cofins = $10, ativo = $11, updated_at = NOW()
		WHERE id = $12
	`, m.Descricao, m.NaturezaOperacao, m.UFDestino, m.CFOP, m.CstIcms, m.AliquotaIcms,
		m.CstPis, m.AliquotaPis, m.CstCofins, m.AliquotaCofins, m.Ativo, id)
	return err
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM matrizes_fiscais WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: matriz fiscal não encontrada", httpx.ErrNotFound)
	}
	return nil
}

// Resolve picks the matrix for a nature of operation and destination UF. An
// entry scoped to the UF wins over a generic one (null uf_destino).
func (r *repository) Resolve(ctx context.Context, natureza, uf string) (*MatrizFiscal, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+matrizColumns+`
		FROM matrizes_fiscais
		WHERE natureza_operacao = $1
		  AND ativo
		  AND (uf_destino = $2 OR uf_destino IS NULL)
		ORDER BY uf_destino NULLS LAST
		LIMIT 1
	`, natureza, uf)
	m, err := scanMatriz(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: nenhuma matriz fiscal para esta operação", httpx.ErrNotFound)
		}
		return nil, err
	}
	return m, nil
}

func scanMatriz(row pgx.Row) (*MatrizFiscal, error) {
	var m MatrizFiscal
	err := row.Scan(&m.ID, &m.Descricao, &m.NaturezaOperacao, &m.UFDestino, &m.CFOP, &m.CstIcms,
		&m.AliquotaIcms, &m.CstPis, &m.AliquotaPis, &m.CstCofins, &m.AliquotaCofins,
		&m.Ativo, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
