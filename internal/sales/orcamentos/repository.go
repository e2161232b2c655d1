package orcamentos

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/felipegscont/movix-sub001/internal/platform/db"
	"github.com/felipegscont/movix-sub001/internal/platform/httpx"
)

const orcamentoColumns = `id, numero, data_emissao, data_validade, status, cliente_id, vendedor,
	subtotal, desconto, frete, outras_despesas, total, observacoes, pedido_id, data_conversao, created_at, updated_at`

// Repository persists orçamentos.
type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error
	Get(ctx context.Context, id int64) (*Orcamento, error)
	List(ctx context.Context, req ListOrcamentosRequest) ([]OrcamentoResumo, int, error)
	NextNumero(ctx context.Context) (int64, error)
	Create(ctx context.Context, o Orcamento) (int64, error)
	InsertItem(ctx context.Context, item OrcamentoItem) (int64, error)
	Update(ctx context.Context, id int64, updates map[string]interface{}) error
	MarkConverted(ctx context.Context, id, pedidoID int64, convertedAt time.Time) error
	UpdateStatus(ctx context.Context, id int64, status OrcamentoStatus) error
	DeleteItens(ctx context.Context, orcamentoID int64) error
	Delete(ctx context.Context, id int64) error
	ListVencidos(ctx context.Context, ref time.Time) ([]Orcamento, error)
}

type dbtx interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

type repository struct {
	db   dbtx
	pool *pgxpool.Pool
}

// NewRepository builds a pgx-backed Repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool, pool: pool}
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &repository{db: tx, pool: r.pool})
	})
}

func (r *repository) Get(ctx context.Context, id int64) (*Orcamento, error) {
	row := r.db.QueryRow(ctx, `SELECT `+orcamentoColumns+` FROM orcamentos WHERE id = $1`, id)
	o, err := scanOrcamento(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: orçamento não encontrado", httpx.ErrNotFound)
		}
		return nil, err
	}

	itens, err := r.loadItens(ctx, id)
	if err != nil {
		return nil, err
	}
	o.Itens = itens
	return o, nil
}

func (r *repository) List(ctx context.Context, req ListOrcamentosRequest) ([]OrcamentoResumo, int, error) {
	where := "WHERE 1=1"
	var args []interface{}
	argPos := 1

	if req.ClienteID != nil {
		where += fmt.Sprintf(" AND o.cliente_id = $%d", argPos)
		args = append(args, *req.ClienteID)
		argPos++
	}
	if req.Status != nil {
		where += fmt.Sprintf(" AND o.status = $%d", argPos)
		args = append(args, *req.Status)
		argPos++
	}
	if req.DataDe != nil {
		where += fmt.Sprintf(" AND o.data_emissao >= $%d", argPos)
		args = append(args, *req.DataDe)
		argPos++
	}
	if req.DataAte != nil {
		where += fmt.Sprintf(" AND o.data_emissao <= $%d", argPos)
		args = append(args, *req.DataAte)
		argPos++
	}

	var total int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM orcamentos o "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT o.id, o.numero, o.data_emissao, o.data_validade, o.status, o.cliente_id, o.vendedor,
		       o.subtotal, o.desconto, o.frete, o.outras_despesas, o.total, o.observacoes,
		       o.pedido_id, o.data_conversao, o.created_at, o.updated_at, c.nome AS cliente_nome
		FROM orcamentos o
		JOIN clientes c ON o.cliente_id = c.id
		%s
		ORDER BY o.numero DESC
		LIMIT $%d OFFSET $%d
	`, where, argPos, argPos+1)
	args = append(args, req.Limit, req.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []OrcamentoResumo
	for rows.Next() {
		var o OrcamentoResumo
		err := rows.Scan(&o.ID, &o.Numero, &o.DataEmissao, &o.DataValidade, &o.Status, &o.ClienteID,
			&o.Vendedor, &o.Subtotal, &o.Desconto, &o.Frete, &o.OutrasDespesas, &o.Total,
			&o.Observacoes, &o.PedidoID, &o.DataConversao, &o.CreatedAt, &o.UpdatedAt, &o.ClienteNome)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, o)
	}
	return result, total, rows.Err()
}

// NextNumero computes the next sequential quote number as max+1. The value is
// not reserved; concurrent callers can collide on the numero unique constraint.
func (r *repository) NextNumero(ctx context.Context) (int64, error) {
	var next int64
	err := r.db.QueryRow(ctx, `SELECT COALESCE(MAX(numero), 0) + 1 FROM orcamentos`).Scan(&next)
	return next, err
}

func (r *repository) Create(ctx context.Context, o Orcamento) (int64, error) {
	var id int64
	now := time.Now()
	err := r.db.QueryRow(ctx, `
		INSERT INTO orcamentos (numero, data_emissao, data_validade, status, cliente_id, vendedor,
			subtotal, desconto, frete, outras_despesas, total, observacoes, pedido_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $14)
		RETURNING id
	`, o.Numero, o.DataEmissao, o.DataValidade, o.Status, o.ClienteID, o.Vendedor,
		o.Subtotal, o.Desconto, o.Frete, o.OutrasDespesas, o.Total, o.Observacoes, o.PedidoID, now).Scan(&id)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return 0, fmt.Errorf("%w: já existe um orçamento com este número", httpx.ErrConflict)
		}
		return 0, err
	}
	return id, nil
}

func (r *repository) InsertItem(ctx context.Context, item OrcamentoItem) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO orcamento_itens (orcamento_id, numero_item, produto_id, codigo, descricao, unidade,
			quantidade, valor_unitario, desconto, valor_total, observacoes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`, item.OrcamentoID, item.NumeroItem, item.ProdutoID, item.Codigo, item.Descricao, item.Unidade,
		item.Quantidade, item.ValorUnitario, item.Desconto, item.ValorTotal, item.Observacoes).Scan(&id)
	return id, err
}

func (r *repository) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	query := "UPDATE orcamentos SET updated_at = NOW()"
	var args []interface{}
	argPos := 1

	for _, col := range []string{"data_emissao", "data_validade", "vendedor", "subtotal", "desconto",
		"frete", "outras_despesas", "total", "observacoes"} {
		if v, ok := updates[col]; ok {
			query += fmt.Sprintf(", %s = $%d", col, argPos)
			args = append(args, v)
			argPos++
		}
	}

	query += fmt.Sprintf(" WHERE id = $%d", argPos)
	args = append(args, id)

	_, err := r.db.Exec(ctx, query, args...)
	return err
}

// MarkConverted stamps the quote as approved and links the generated order.
func (r *repository) MarkConverted(ctx context.Context, id, pedidoID int64, convertedAt time.Time) error {
	_, err := r.db.Exec(ctx, `
		UPDATE orcamentos SET status = $1, pedido_id = $2, data_conversao = $3, updated_at = NOW() WHERE id = $4
	`, OrcamentoStatusAprovado, pedidoID, convertedAt, id)
	return err
}

func (r *repository) UpdateStatus(ctx context.Context, id int64, status OrcamentoStatus) error {
	_, err := r.db.Exec(ctx, `UPDATE orcamentos SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	return err
}

func (r *repository) DeleteItens(ctx context.Context, orcamentoID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM orcamento_itens WHERE orcamento_id = $1`, orcamentoID)
	return err
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM orcamentos WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: orçamento não encontrado", httpx.ErrNotFound)
	}
	return nil
}

// ListVencidos returns open quotes whose validity date already passed.
func (r *repository) ListVencidos(ctx context.Context, ref time.Time) ([]Orcamento, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+orcamentoColumns+`
		FROM orcamentos
		WHERE status = $1 AND data_validade < $2
		ORDER BY data_validade
	`, OrcamentoStatusEmAberto, ref)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Orcamento
	for rows.Next() {
		var o Orcamento
		err := rows.Scan(&o.ID, &o.Numero, &o.DataEmissao, &o.DataValidade, &o.Status, &o.ClienteID,
			&o.Vendedor, &o.Subtotal, &o.Desconto, &o.Frete, &o.OutrasDespesas, &o.Total,
			&o.Observacoes, &o.PedidoID, &o.DataConversao, &o.CreatedAt, &o.UpdatedAt)
		if err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	return result, rows.Err()
}

func (r *repository) loadItens(ctx context.Context, orcamentoID int64) ([]OrcamentoItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, orcamento_id, numero_item, produto_id, codigo, descricao, unidade,
		       quantidade, valor_unitario, desconto, valor_total, observacoes
		FROM orcamento_itens
		WHERE orcamento_id = $1
		ORDER BY numero_item
	`, orcamentoID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var itens []OrcamentoItem
	for rows.Next() {
		var it OrcamentoItem
		err := rows.Scan(&it.ID, &it.OrcamentoID, &it.NumeroItem, &it.ProdutoID, &it.Codigo, &it.Descricao,
			&it.Unidade, &it.Quantidade, &it.ValorUnitario, &it.Desconto, &it.ValorTotal, &it.Observacoes)
		if err != nil {
			return nil, err
		}
		itens = append(itens, it)
	}
	return itens, rows.Err()
}

func scanOrcamento(row pgx.Row) (*Orcamento, error) {
	var o Orcamento
	err := row.Scan(&o.ID, &o.Numero, &o.DataEmissao, &o.DataValidade, &o.Status, &o.ClienteID,
		&o.Vendedor, &o.Subtotal, &o.Desconto, &o.Frete, &o.OutrasDespesas, &o.Total,
		&o.Observacoes, &o.PedidoID, &o.DataConversao, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
