package pedidos

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felipegscont/movix-sub001/internal/masterdata/produtos"
	"github.com/felipegscont/movix-sub001/internal/platform/httpx"
	"github.com/felipegscont/movix-sub001/internal/sales/clientes"
	"github.com/felipegscont/movix-sub001/internal/shared"
)

// ============================================================================
// MOCKS
// ============================================================================

type mockRepository struct {
	pedidos  map[int64]*Pedido
	itens    map[int64][]PedidoItem
	parcelas map[int64][]PedidoParcela
	nextID   int64

	deleteItensCalls    int
	deleteParcelasCalls int
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		pedidos:  make(map[int64]*Pedido),
		itens:    make(map[int64][]PedidoItem),
		parcelas: make(map[int64][]PedidoParcela),
		nextID:   1,
	}
}

func (m *mockRepository) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return fn(ctx, m)
}

func (m *mockRepository) Get(ctx context.Context, id int64) (*Pedido, error) {
	p, ok := m.pedidos[id]
	if !ok {
		return nil, fmt.Errorf("%w: pedido não encontrado", httpx.ErrNotFound)
	}
	cp := *p
	cp.Itens = append([]PedidoItem(nil), m.itens[id]...)
	cp.Parcelas = append([]PedidoParcela(nil), m.parcelas[id]...)
	return &cp, nil
}

func (m *mockRepository) List(ctx context.Context, req ListPedidosRequest) ([]PedidoResumo, int, error) {
	var result []PedidoResumo
	for _, p := range m.pedidos {
		result = append(result, PedidoResumo{Pedido: *p})
	}
	return result, len(result), nil
}

func (m *mockRepository) NextNumero(ctx context.Context) (int64, error) {
	max := int64(0)
	for _, p := range m.pedidos {
		if p.Numero > max {
			max = p.Numero
		}
	}
	return max + 1, nil
}

func (m *mockRepository) Create(ctx context.Context, p Pedido) (int64, error) {
	for _, existing := range m.pedidos {
		if existing.Numero == p.Numero {
			return 0, fmt.Errorf("%w: já existe um pedido com este número", httpx.ErrConflict)
		}
	}
	id := m.nextID
	m.nextID++
	p.ID = id
	m.pedidos[id] = &p
	return id, nil
}

func (m *mockRepository) InsertItem(ctx context.Context, item PedidoItem) (int64, error) {
	item.ID = int64(len(m.itens[item.PedidoID]) + 1)
	m.itens[item.PedidoID] = append(m.itens[item.PedidoID], item)
	return item.ID, nil
}

func (m *mockRepository) InsertParcela(ctx context.Context, parcela PedidoParcela) (int64, error) {
	parcela.ID = int64(len(m.parcelas[parcela.PedidoID]) + 1)
	m.parcelas[parcela.PedidoID] = append(m.parcelas[parcela.PedidoID], parcela)
	return parcela.ID, nil
}

func (m *mockRepository) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	p := m.pedidos[id]
	if v, ok := updates["total"]; ok {
		p.Total = v.(float64)
	}
	if v, ok := updates["observacoes"]; ok {
		s := v.(string)
		p.Observacoes = &s
	}
	return nil
}

func (m *mockRepository) UpdateStatus(ctx context.Context, id int64, status PedidoStatus) error {
	m.pedidos[id].Status = status
	return nil
}

func (m *mockRepository) DeleteItens(ctx context.Context, pedidoID int64) error {
	m.deleteItensCalls++
	delete(m.itens, pedidoID)
	return nil
}

func (m *mockRepository) DeleteParcelas(ctx context.Context, pedidoID int64) error {
	m.deleteParcelasCalls++
	delete(m.parcelas, pedidoID)
	return nil
}

func (m *mockRepository) Delete(ctx context.Context, id int64) error {
	delete(m.pedidos, id)
	return nil
}

type mockAuditRecorder struct {
	recordError error
	records     []shared.AuditLog
}

func (m *mockAuditRecorder) Record(ctx context.Context, log shared.AuditLog) error {
	if m.recordError != nil {
		return m.recordError
	}
	m.records = append(m.records, log)
	return nil
}

type mockClienteReader struct {
	clientes map[int64]*clientes.Cliente
}

func (m *mockClienteReader) Get(ctx context.Context, id int64) (*clientes.Cliente, error) {
	c, ok := m.clientes[id]
	if !ok {
		return nil, fmt.Errorf("%w: cliente não encontrado", httpx.ErrNotFound)
	}
	return c, nil
}

type mockProdutoReader struct {
	produtos map[int64]*produtos.Produto
}

func (m *mockProdutoReader) Get(ctx context.Context, id int64) (*produtos.Produto, error) {
	p, ok := m.produtos[id]
	if !ok {
		return nil, fmt.Errorf("%w: produto não encontrado", httpx.ErrNotFound)
	}
	return p, nil
}

func newTestService(repo *mockRepository) *Service {
	return newTestServiceWithAudit(repo, nil)
}

func newTestServiceWithAudit(repo *mockRepository, audit AuditRecorder) *Service {
	clienteReader := &mockClienteReader{clientes: map[int64]*clientes.Cliente{
		10: {ID: 10, Nome: "Cliente Teste"},
	}}
	produtoReader := &mockProdutoReader{produtos: map[int64]*produtos.Produto{
		100: {ID: 100, Codigo: "P-100", Descricao: "Parafuso", Unidade: "UN"},
	}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(logger, repo, clienteReader, produtoReader, audit)
}

func validCreateRequest() CreatePedidoRequest {
	return CreatePedidoRequest{
		ClienteID:   10,
		DataEmissao: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		Subtotal:    100,
		Total:       100,
		Itens: []CreatePedidoItemRequest{
			{ProdutoID: 100, Quantidade: 10, ValorUnitario: 10},
		},
	}
}

// ============================================================================
// CREATE
// ============================================================================

func TestCreatePedidoMintsSequentialNumero(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)

	p1, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(1), p1.Numero)

	p2, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(2), p2.Numero)
}

func TestCreatePedidoExplicitNumeroConflict(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)

	numero := int64(7)
	req := validCreateRequest()
	req.Numero = &numero
	_, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	req2 := validCreateRequest()
	req2.Numero = &numero
	_, err = svc.Create(context.Background(), req2)
	require.Error(t, err)
	assert.ErrorIs(t, err, httpx.ErrConflict)
}

func TestCreatePedidoUnknownClienteFails(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)

	req := validCreateRequest()
	req.ClienteID = 999
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.ErrorIs(t, err, httpx.ErrNotFound)
	assert.Empty(t, repo.pedidos)
}

func TestCreatePedidoFillsSnapshotsAndComputesLineTotal(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)

	req := validCreateRequest()
	req.Itens = []CreatePedidoItemRequest{
		{ProdutoID: 100, Quantidade: 3, ValorUnitario: 10, Desconto: 5},
	}
	p, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, p.Itens, 1)
	it := p.Itens[0]
	assert.Equal(t, 1, it.NumeroItem)
	assert.Equal(t, "P-100", it.Codigo)
	assert.Equal(t, "Parafuso", it.Descricao)
	assert.Equal(t, "UN", it.Unidade)
	assert.Equal(t, 25.0, it.ValorTotal)
}

func TestCreatePedidoKeepsProvidedLineTotal(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)

	verbatim := 999.99
	req := validCreateRequest()
	req.Itens = []CreatePedidoItemRequest{
		{ProdutoID: 100, Quantidade: 1, ValorUnitario: 10, ValorTotal: &verbatim},
	}
	p, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, p.Itens, 1)
	assert.Equal(t, verbatim, p.Itens[0].ValorTotal)
}

func TestCreatePedidoWithParcelas(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)

	pix := "PIX"
	req := validCreateRequest()
	req.Parcelas = []CreateParcelaRequest{
		{DataVencimento: time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC), Valor: 50, FormaPagamento: &pix},
		{DataVencimento: time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC), Valor: 50},
	}
	p, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, p.Parcelas, 2)
	assert.Equal(t, 1, p.Parcelas[0].NumeroParcela)
	assert.Equal(t, 2, p.Parcelas[1].NumeroParcela)
	assert.Equal(t, 50.0, p.Parcelas[0].Valor)
}

// ============================================================================
// STATE MACHINE
// ============================================================================

func TestFaturarOpenPedido(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)

	p, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	faturado, err := svc.Faturar(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, PedidoStatusFaturado, faturado.Status)
}

func TestFaturarTwiceFails(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)

	p, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	_, err = svc.Faturar(context.Background(), p.ID)
	require.NoError(t, err)
	_, err = svc.Faturar(context.Background(), p.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, httpx.ErrInvalidState)
}

func TestCancelarFaturadoFails(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)

	p, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)
	_, err = svc.Faturar(context.Background(), p.ID)
	require.NoError(t, err)

	_, err = svc.Cancelar(context.Background(), p.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, httpx.ErrInvalidState)
}

func TestUpdateReplacesItems(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)

	p, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	novos := []CreatePedidoItemRequest{
		{ProdutoID: 100, Quantidade: 2, ValorUnitario: 30},
		{ProdutoID: 100, Quantidade: 1, ValorUnitario: 40},
	}
	updated, err := svc.Update(context.Background(), p.ID, UpdatePedidoRequest{Itens: &novos})
	require.NoError(t, err)

	assert.Equal(t, 1, repo.deleteItensCalls)
	require.Len(t, updated.Itens, 2)
	assert.Equal(t, 60.0, updated.Itens[0].ValorTotal)
	assert.Equal(t, 40.0, updated.Itens[1].ValorTotal)
}

func TestUpdateCancelledPedidoFails(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)

	p, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)
	_, err = svc.Cancelar(context.Background(), p.ID)
	require.NoError(t, err)

	total := 500.0
	_, err = svc.Update(context.Background(), p.ID, UpdatePedidoRequest{Total: &total})
	require.Error(t, err)
	assert.ErrorIs(t, err, httpx.ErrInvalidState)
}

func TestFaturarSucceedsWhenAuditFails(t *testing.T) {
	repo := newMockRepository()
	audit := &mockAuditRecorder{recordError: errors.New("audit_logs indisponível")}
	svc := newTestServiceWithAudit(repo, audit)

	p, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	faturado, err := svc.Faturar(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, PedidoStatusFaturado, faturado.Status)
}

func TestDeleteFaturadoFails(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)

	p, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)
	_, err = svc.Faturar(context.Background(), p.ID)
	require.NoError(t, err)

	err = svc.Delete(context.Background(), p.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, httpx.ErrInvalidState)
}
