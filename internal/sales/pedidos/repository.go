package pedidos

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

const pedidoColumns = `id, numero, data_emissao, data_entrega, status, cliente_id, vendedor,
	subtotal, desconto, frete, outras_despesas, total, observacoes, orcamento_id, created_at, updated_at`

// Repository persists pedidos.
type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error
	Get(ctx context.Context, id int64) (*Pedido, error)
	List(ctx context.Context, req ListPedidosRequest) ([]PedidoResumo, int, error)
	NextNumero(ctx context.Context) (int64, error)
	Create(ctx context.Context, p Pedido) (int64, error)
	InsertItem(ctx context.Context, item PedidoItem) (int64, error)
	InsertParcela(ctx context.Context, parcela PedidoParcela) (int64, error)
	Update(ctx context.Context, id int64, updates map[string]interface{}) error
	UpdateStatus(ctx context.Context, id int64, status PedidoStatus) error
	DeleteItens(ctx context.Context, pedidoID int64) error
	DeleteParcelas(ctx context.Context, pedidoID int64) error
	Delete(ctx context.Context, id int64) error
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

func (r *repository) Get(ctx context.Context, id int64) (*Pedido, error) {
	row := r.db.QueryRow(ctx, `SELECT `+pedidoColumns+` FROM pedidos WHERE id = $1`, id)
	p, err := scanPedido(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: pedido não encontrado", httpx.ErrNotFound)
		}
		return nil, err
	}

	itens, err := r.loadItens(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Itens = itens

	parcelas, err := r.loadParcelas(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Parcelas = parcelas

	return p, nil
}

func (r *repository) List(ctx context.Context, req ListPedidosRequest) ([]PedidoResumo, int, error) {
	where := "WHERE 1=1"
	var args []interface{}
	argPos := 1

	if req.ClienteID != nil {
		where += fmt.Sprintf(" AND p.cliente_id = $%d", argPos)
		args = append(args, *req.ClienteID)
		argPos++
	}
	if req.Status != nil {
		where += fmt.Sprintf(" AND p.status = $%d", argPos)
		args = append(args, *req.Status)
		argPos++
	}
	if req.DataDe != nil {
		where += fmt.Sprintf(" AND p.data_emissao >= $%d", argPos)
		args = append(args, *req.DataDe)
		argPos++
	}
	if req.DataAte != nil {
		where += fmt.Sprintf(" AND p.data_emissao <= $%d", argPos)
		args = append(args, *req.DataAte)
		argPos++
	}

	var total int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM pedidos p "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT p.id, p.numero, p.data_emissao, p.data_entrega, p.status, p.cliente_id, p.vendedor,
		       p.subtotal, p.desconto, p.frete, p.outras_despesas, p.total, p.observacoes,
		       p.orcamento_id, p.created_at, p.updated_at, c.nome AS cliente_nome
		FROM pedidos p
		JOIN clientes c ON p.cliente_id = c.id
		%s
		ORDER BY p.numero DESC
		LIMIT $%d OFFSET $%d
	`, where, argPos, argPos+1)
	args = append(args, req.Limit, req.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []PedidoResumo
	for rows.Next() {
		var p PedidoResumo
		err := rows.Scan(&p.ID, &p.Numero, &p.DataEmissao, &p.DataEntrega, &p.Status, &p.ClienteID,
			&p.Vendedor, &p.Subtotal, &p.Desconto, &p.Frete, &p.OutrasDespesas, &p.Total,
			&p.Observacoes, &p.OrcamentoID, &p.CreatedAt, &p.UpdatedAt, &p.ClienteNome)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, p)
	}
	return result, total, rows.Err()
}

// NextNumero computes the next sequential order number as max+1. There is no
// reservation between read and insert; concurrent callers can obtain the same
// number and the later insert fails on the numero unique constraint.
func (r *repository) NextNumero(ctx context.Context) (int64, error) {
	var next int64
	err := r.db.QueryRow(ctx, `SELECT COALESCE(MAX(numero), 0) + 1 FROM pedidos`).Scan(&next)
	return next, err
}

func (r *repository) Create(ctx context.Context, p Pedido) (int64, error) {
	var id int64
	now := time.Now()
	err := r.db.QueryRow(ctx, `
		INSERT INTO pedidos (numero, data_emissao, data_entrega, status, cliente_id, vendedor,
			subtotal, desconto, frete, outras_despesas, total, observacoes, orcamento_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $14)
		RETURNING id
	`, p.Numero, p.DataEmissao, p.DataEntrega, p.Status, p.ClienteID, p.Vendedor,
		p.Subtotal, p.Desconto, p.Frete, p.OutrasDespesas, p.Total, p.Observacoes, p.OrcamentoID, now).Scan(&id)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return 0, fmt.Errorf("%w: já existe um pedido com este número", httpx.ErrConflict)
		}
		return 0, err
	}
	return id, nil
}

func (r *repository) InsertItem(ctx context.Context, item PedidoItem) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO pedido_itens (pedido_id, numero_item, produto_id, codigo, descricao, unidade,
			quantidade, valor_unitario, desconto, valor_total, observacoes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`, item.PedidoID, item.NumeroItem, item.ProdutoID, item.Codigo, item.Descricao, item.Unidade,
		item.Quantidade, item.ValorUnitario, item.Desconto, item.ValorTotal, item.Observacoes).Scan(&id)
	return id, err
}

func (r *repository) InsertParcela(ctx context.Context, parcela PedidoParcela) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO pedido_parcelas (pedido_id, numero_parcela, data_vencimento, valor, forma_pagamento)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, parcela.PedidoID, parcela.NumeroParcela, parcela.DataVencimento, parcela.Valor, parcela.FormaPagamento).Scan(&id)
	return id, err
}

func (r *repository) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	query := "UPDATE pedidos SET updated_at = NOW()"
	var args []interface{}
	argPos := 1

	for _, col := range []string{"data_emissao", "data_entrega", "vendedor", "subtotal", "desconto",
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

func (r *repository) UpdateStatus(ctx context.Context, id int64, status PedidoStatus) error {
	_, err := r.db.Exec(ctx, `UPDATE pedidos SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	return err
}

func (r *repository) DeleteItens(ctx context.Context, pedidoID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM pedido_itens WHERE pedido_id = $1`, pedidoID)
	return err
}

func (r *repository) DeleteParcelas(ctx context.Context, pedidoID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM pedido_parcelas WHERE pedido_id = $1`, pedidoID)
	return err
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM pedidos WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: pedido não encontrado", httpx.ErrNotFound)
	}
	return nil
}

func (r *repository) loadItens(ctx context.Context, pedidoID int64) ([]PedidoItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, pedido_id, numero_item, produto_id, codigo, descricao, unidade,
		       quantidade, valor_unitario, desconto, valor_total, observacoes
		FROM pedido_itens
		WHERE pedido_id = $1
		ORDER BY numero_item
	`, pedidoID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var itens []PedidoItem
	for rows.Next() {
		var it PedidoItem
		err := rows.Scan(&it.ID, &it.PedidoID, &it.NumeroItem, &it.ProdutoID, &it.Codigo, &it.Descricao,
			&it.Unidade, &it.Quantidade, &it.ValorUnitario, &it.Desconto, &it.ValorTotal, &it.Observacoes)
		if err != nil {
			return nil, err
		}
		itens = append(itens, it)
	}
	return itens, rows.Err()
}

func (r *repository) loadParcelas(ctx context.Context, pedidoID int64) ([]PedidoParcela, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, pedido_id, numero_parcela, data_vencimento, valor, forma_pagamento
		FROM pedido_parcelas
		WHERE pedido_id = $1
		ORDER BY numero_parcela
	`, pedidoID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var parcelas []PedidoParcela
	for rows.Next() {
		var p PedidoParcela
		err := rows.Scan(&p.ID, &p.PedidoID, &p.NumeroParcela, &p.DataVencimento, &p.Valor, &p.FormaPagamento)
		if err != nil {
			return nil, err
		}
		parcelas = append(parcelas, p)
	}
	return parcelas, rows.Err()
}

func scanPedido(row pgx.Row) (*Pedido, error) {
	var p Pedido
	err := row.Scan(&p.ID, &p.Numero, &p.DataEmissao, &p.DataEntrega, &p.Status, &p.ClienteID,
		&p.Vendedor, &p.Subtotal, &p.Desconto, &p.Frete, &p.OutrasDespesas, &p.Total,
		&p.Observacoes, &p.OrcamentoID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
