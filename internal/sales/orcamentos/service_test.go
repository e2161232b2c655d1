package orcamentos

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felipegscont/movix-sub001/internal/masterdata/produtos"
	"github.com/felipegscont/movix-sub001/internal/platform/httpx"
	"github.com/felipegscont/movix-sub001/internal/sales/clientes"
	"github.com/felipegscont/movix-sub001/internal/sales/pedidos"
)

// ============================================================================
// MOCKS
// ============================================================================

type mockRepository struct {
	orcamentos map[int64]*Orcamento
	itens      map[int64][]OrcamentoItem
	nextID     int64
	numeroSeq  int64

	markConvertedCalls int
	updateCalls        int
	deleteCalls        int

	getError           error
	createError        error
	markConvertedError error
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		orcamentos: make(map[int64]*Orcamento),
		itens:      make(map[int64][]OrcamentoItem),
		nextID:     1,
	}
}

func (m *mockRepository) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return fn(ctx, m)
}

func (m *mockRepository) Get(ctx context.Context, id int64) (*Orcamento, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	o, ok := m.orcamentos[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	cp := *o
	cp.Itens = append([]OrcamentoItem(nil), m.itens[id]...)
	return &cp, nil
}

func (m *mockRepository) List(ctx context.Context, req ListOrcamentosRequest) ([]OrcamentoResumo, int, error) {
	var result []OrcamentoResumo
	for _, o := range m.orcamentos {
		result = append(result, OrcamentoResumo{Orcamento: *o})
	}
	return result, len(result), nil
}

func (m *mockRepository) NextNumero(ctx context.Context) (int64, error) {
	m.numeroSeq++
	return m.numeroSeq, nil
}

func (m *mockRepository) Create(ctx context.Context, o Orcamento) (int64, error) {
	if m.createError != nil {
		return 0, m.createError
	}
	id := m.nextID
	m.nextID++
	o.ID = id
	m.orcamentos[id] = &o
	return id, nil
}

func (m *mockRepository) InsertItem(ctx context.Context, item OrcamentoItem) (int64, error) {
	item.ID = int64(len(m.itens[item.OrcamentoID]) + 1)
	m.itens[item.OrcamentoID] = append(m.itens[item.OrcamentoID], item)
	return item.ID, nil
}

func (m *mockRepository) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	m.updateCalls++
	return nil
}

func (m *mockRepository) MarkConverted(ctx context.Context, id, pedidoID int64, convertedAt time.Time) error {
	if m.markConvertedError != nil {
		return m.markConvertedError
	}
	m.markConvertedCalls++
	o := m.orcamentos[id]
	o.Status = OrcamentoStatusAprovado
	o.PedidoID = &pedidoID
	o.DataConversao = &convertedAt
	return nil
}

func (m *mockRepository) UpdateStatus(ctx context.Context, id int64, status OrcamentoStatus) error {
	m.orcamentos[id].Status = status
	return nil
}

func (m *mockRepository) DeleteItens(ctx context.Context, orcamentoID int64) error {
	delete(m.itens, orcamentoID)
	return nil
}

func (m *mockRepository) Delete(ctx context.Context, id int64) error {
	m.deleteCalls++
	delete(m.orcamentos, id)
	return nil
}

func (m *mockRepository) ListVencidos(ctx context.Context, ref time.Time) ([]Orcamento, error) {
	var result []Orcamento
	for _, o := range m.orcamentos {
		if o.Status == OrcamentoStatusEmAberto && o.DataValidade.Before(ref) {
			result = append(result, *o)
		}
	}
	return result, nil
}

type mockPedidoCreator struct {
	createCalls int
	lastRequest pedidos.CreatePedidoRequest
	createError error
	nextID      int64
	nextNumero  int64
}

func (m *mockPedidoCreator) Create(ctx context.Context, req pedidos.CreatePedidoRequest) (*pedidos.Pedido, error) {
	m.createCalls++
	m.lastRequest = req
	if m.createError != nil {
		return nil, m.createError
	}
	m.nextID++
	m.nextNumero++
	itens := make([]pedidos.PedidoItem, 0, len(req.Itens))
	for _, it := range req.Itens {
		item := pedidos.PedidoItem{
			PedidoID:      m.nextID,
			NumeroItem:    it.NumeroItem,
			ProdutoID:     it.ProdutoID,
			Codigo:        it.Codigo,
			Descricao:     it.Descricao,
			Unidade:       it.Unidade,
			Quantidade:    it.Quantidade,
			ValorUnitario: it.ValorUnitario,
			Desconto:      it.Desconto,
			Observacoes:   it.Observacoes,
		}
		if it.ValorTotal != nil {
			item.ValorTotal = *it.ValorTotal
		}
		itens = append(itens, item)
	}
	return &pedidos.Pedido{
		ID:             m.nextID,
		Numero:         m.nextNumero,
		DataEmissao:    req.DataEmissao,
		DataEntrega:    req.DataEntrega,
		Status:         pedidos.PedidoStatusAberto,
		ClienteID:      req.ClienteID,
		Vendedor:       req.Vendedor,
		Subtotal:       req.Subtotal,
		Desconto:       req.Desconto,
		Frete:          req.Frete,
		OutrasDespesas: req.OutrasDespesas,
		Total:          req.Total,
		Observacoes:    req.Observacoes,
		OrcamentoID:    req.OrcamentoID,
		Itens:          itens,
	}, nil
}

type mockClienteReader struct {
	clientes map[int64]*clientes.Cliente
}

func (m *mockClienteReader) Get(ctx context.Context, id int64) (*clientes.Cliente, error) {
	c, ok := m.clientes[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	return c, nil
}

type mockProdutoReader struct {
	produtos map[int64]*produtos.Produto
}

func (m *mockProdutoReader) Get(ctx context.Context, id int64) (*produtos.Produto, error) {
	p, ok := m.produtos[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	return p, nil
}

// ============================================================================
// HELPERS
// ============================================================================

func newTestService(repo *mockRepository, creator *mockPedidoCreator) *Service {
	clienteReader := &mockClienteReader{clientes: map[int64]*clientes.Cliente{
		10: {ID: 10, Nome: "Cliente Teste"},
	}}
	produtoReader := &mockProdutoReader{produtos: map[int64]*produtos.Produto{
		100: {ID: 100, Codigo: "P-100", Descricao: "Parafuso", Unidade: "UN"},
	}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(logger, repo, creator, clienteReader, produtoReader, nil)
}

func seedQuote(repo *mockRepository, status OrcamentoStatus, validade time.Time) *Orcamento {
	obs := "entrega na obra"
	o := &Orcamento{
		ID:             1,
		Numero:         42,
		DataEmissao:    validade.AddDate(0, 0, -10),
		DataValidade:   validade,
		Status:         status,
		ClienteID:      10,
		Subtotal:       150,
		Desconto:       10,
		Frete:          20,
		OutrasDespesas: 5,
		Total:          165,
		Observacoes:    &obs,
	}
	repo.orcamentos[1] = o
	repo.itens[1] = []OrcamentoItem{
		{ID: 1, OrcamentoID: 1, NumeroItem: 1, ProdutoID: 100, Codigo: "P-100", Descricao: "Parafuso", Unidade: "UN", Quantidade: 10, ValorUnitario: 10, Desconto: 5, ValorTotal: 95},
		{ID: 2, OrcamentoID: 1, NumeroItem: 2, ProdutoID: 100, Codigo: "P-100", Descricao: "Parafuso", Unidade: "UN", Quantidade: 5, ValorUnitario: 11, Desconto: 0, ValorTotal: 55},
	}
	repo.nextID = 2
	repo.numeroSeq = 42
	return o
}

// ============================================================================
// CONVERSION
// ============================================================================

func TestConvertToOrderSuccess(t *testing.T) {
	repo := newMockRepository()
	creator := &mockPedidoCreator{}
	svc := newTestService(repo, creator)

	agora := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return agora }
	validade := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	seedQuote(repo, OrcamentoStatusEmAberto, validade)

	result, err := svc.ConvertToOrder(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, result.Pedido)
	require.NotNil(t, result.Orcamento)

	assert.Equal(t, OrcamentoStatusAprovado, result.Orcamento.Status)
	require.NotNil(t, result.Orcamento.PedidoID)
	assert.Equal(t, result.Pedido.ID, *result.Orcamento.PedidoID)
	require.NotNil(t, result.Orcamento.DataConversao)
	assert.Equal(t, agora, *result.Orcamento.DataConversao)

	require.NotNil(t, result.Pedido.DataEntrega)
	assert.Equal(t, validade, *result.Pedido.DataEntrega)
	assert.Equal(t, agora, result.Pedido.DataEmissao)
	assert.Equal(t, 1, repo.markConvertedCalls)
}

func TestConvertToOrderValidUntilTodaySucceeds(t *testing.T) {
	repo := newMockRepository()
	creator := &mockPedidoCreator{}
	svc := newTestService(repo, creator)

	agora := time.Date(2026, 3, 10, 23, 30, 0, 0, time.UTC)
	svc.now = func() time.Time { return agora }
	seedQuote(repo, OrcamentoStatusEmAberto, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC))

	_, err := svc.ConvertToOrder(context.Background(), 1)
	require.NoError(t, err)
}

func TestConvertToOrderCancelledQuote(t *testing.T) {
	repo := newMockRepository()
	creator := &mockPedidoCreator{}
	svc := newTestService(repo, creator)

	seedQuote(repo, OrcamentoStatusCancelado, time.Now().AddDate(0, 1, 0))

	_, err := svc.ConvertToOrder(context.Background(), 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, httpx.ErrInvalidState)
	assert.Contains(t, err.Error(), "cancelado")
	assert.Zero(t, creator.createCalls)
	assert.Zero(t, repo.markConvertedCalls)
}

func TestConvertToOrderAlreadyConverted(t *testing.T) {
	repo := newMockRepository()
	creator := &mockPedidoCreator{}
	svc := newTestService(repo, creator)

	o := seedQuote(repo, OrcamentoStatusAprovado, time.Now().AddDate(0, 1, 0))
	pedidoID := int64(77)
	o.PedidoID = &pedidoID

	_, err := svc.ConvertToOrder(context.Background(), 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, httpx.ErrInvalidState)
	assert.Contains(t, err.Error(), "já convertido")
	assert.Zero(t, creator.createCalls)
	assert.Zero(t, repo.markConvertedCalls)
}

func TestConvertToOrderExpiredQuote(t *testing.T) {
	repo := newMockRepository()
	creator := &mockPedidoCreator{}
	svc := newTestService(repo, creator)

	agora := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return agora }
	seedQuote(repo, OrcamentoStatusEmAberto, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC))

	_, err := svc.ConvertToOrder(context.Background(), 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, httpx.ErrInvalidState)
	assert.Contains(t, err.Error(), "vencido")
	assert.Zero(t, creator.createCalls)
	assert.Zero(t, repo.markConvertedCalls)
}

func TestConvertToOrderNotFound(t *testing.T) {
	repo := newMockRepository()
	creator := &mockPedidoCreator{}
	svc := newTestService(repo, creator)

	_, err := svc.ConvertToOrder(context.Background(), 999)
	require.Error(t, err)
	assert.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestConvertToOrderCopiesItemsVerbatim(t *testing.T) {
	repo := newMockRepository()
	creator := &mockPedidoCreator{}
	svc := newTestService(repo, creator)

	svc.now = func() time.Time { return time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC) }
	seedQuote(repo, OrcamentoStatusEmAberto, time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC))

	_, err := svc.ConvertToOrder(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, creator.lastRequest.Itens, 2)
	for i, src := range repo.itens[1] {
		got := creator.lastRequest.Itens[i]
		assert.Equal(t, src.NumeroItem, got.NumeroItem)
		assert.Equal(t, src.ProdutoID, got.ProdutoID)
		assert.Equal(t, src.Codigo, got.Codigo)
		assert.Equal(t, src.Descricao, got.Descricao)
		assert.Equal(t, src.Unidade, got.Unidade)
		assert.Equal(t, src.Quantidade, got.Quantidade)
		assert.Equal(t, src.ValorUnitario, got.ValorUnitario)
		assert.Equal(t, src.Desconto, got.Desconto)
		require.NotNil(t, got.ValorTotal)
		assert.Equal(t, src.ValorTotal, *got.ValorTotal)
	}
	assert.Empty(t, creator.lastRequest.Parcelas)

	// Totals are carried over verbatim, not recomputed from lines.
	assert.Equal(t, 150.0, creator.lastRequest.Subtotal)
	assert.Equal(t, 10.0, creator.lastRequest.Desconto)
	assert.Equal(t, 20.0, creator.lastRequest.Frete)
	assert.Equal(t, 5.0, creator.lastRequest.OutrasDespesas)
	assert.Equal(t, 165.0, creator.lastRequest.Total)
}

func TestConvertToOrderNotesWithQuoteNotes(t *testing.T) {
	repo := newMockRepository()
	creator := &mockPedidoCreator{}
	svc := newTestService(repo, creator)

	svc.now = func() time.Time { return time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC) }
	seedQuote(repo, OrcamentoStatusEmAberto, time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC))

	_, err := svc.ConvertToOrder(context.Background(), 1)
	require.NoError(t, err)

	require.NotNil(t, creator.lastRequest.Observacoes)
	assert.Equal(t, "Convertido do Orçamento #42\n\nentrega na obra", *creator.lastRequest.Observacoes)
}

func TestConvertToOrderNotesWithoutQuoteNotes(t *testing.T) {
	repo := newMockRepository()
	creator := &mockPedidoCreator{}
	svc := newTestService(repo, creator)

	svc.now = func() time.Time { return time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC) }
	o := seedQuote(repo, OrcamentoStatusEmAberto, time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC))
	o.Observacoes = nil

	_, err := svc.ConvertToOrder(context.Background(), 1)
	require.NoError(t, err)

	require.NotNil(t, creator.lastRequest.Observacoes)
	assert.Equal(t, "Convertido do Orçamento #42", *creator.lastRequest.Observacoes)
}

func TestConvertToOrderCreatorErrorLeavesQuoteUntouched(t *testing.T) {
	repo := newMockRepository()
	creator := &mockPedidoCreator{createError: httpx.ErrConflict}
	svc := newTestService(repo, creator)

	svc.now = func() time.Time { return time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC) }
	seedQuote(repo, OrcamentoStatusEmAberto, time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC))

	_, err := svc.ConvertToOrder(context.Background(), 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, httpx.ErrConflict)
	assert.Zero(t, repo.markConvertedCalls)

	o, err := repo.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, OrcamentoStatusEmAberto, o.Status)
	assert.Nil(t, o.PedidoID)
}

// Documents the partial-failure window: the order write succeeded, the quote
// link failed, and there is no rollback of the created order.
func TestConvertToOrderLinkFailureAfterOrderCreated(t *testing.T) {
	repo := newMockRepository()
	repo.markConvertedError = errors.New("connection reset")
	creator := &mockPedidoCreator{}
	svc := newTestService(repo, creator)

	svc.now = func() time.Time { return time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC) }
	seedQuote(repo, OrcamentoStatusEmAberto, time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC))

	_, err := svc.ConvertToOrder(context.Background(), 1)
	require.Error(t, err)
	assert.Equal(t, 1, creator.createCalls)

	o, getErr := repo.Get(context.Background(), 1)
	require.NoError(t, getErr)
	assert.Equal(t, OrcamentoStatusEmAberto, o.Status)
	assert.Nil(t, o.PedidoID)
}

// ============================================================================
// STATE MACHINE
// ============================================================================

func TestCancelarOpenQuote(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo, &mockPedidoCreator{})
	seedQuote(repo, OrcamentoStatusEmAberto, time.Now().AddDate(0, 1, 0))

	o, err := svc.Cancelar(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, OrcamentoStatusCancelado, o.Status)
}

func TestCancelarTwiceFails(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo, &mockPedidoCreator{})
	seedQuote(repo, OrcamentoStatusCancelado, time.Now().AddDate(0, 1, 0))

	_, err := svc.Cancelar(context.Background(), 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, httpx.ErrInvalidState)
}

func TestCancelarConvertedQuoteFails(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo, &mockPedidoCreator{})
	o := seedQuote(repo, OrcamentoStatusAprovado, time.Now().AddDate(0, 1, 0))
	pedidoID := int64(5)
	o.PedidoID = &pedidoID

	_, err := svc.Cancelar(context.Background(), 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, httpx.ErrInvalidState)
}

func TestUpdateConvertedQuoteFails(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo, &mockPedidoCreator{})
	o := seedQuote(repo, OrcamentoStatusAprovado, time.Now().AddDate(0, 1, 0))
	pedidoID := int64(5)
	o.PedidoID = &pedidoID

	novo := 200.0
	_, err := svc.Update(context.Background(), 1, UpdateOrcamentoRequest{Total: &novo})
	require.Error(t, err)
	assert.ErrorIs(t, err, httpx.ErrInvalidState)
	assert.Zero(t, repo.updateCalls)
}

func TestDeleteConvertedQuoteFails(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo, &mockPedidoCreator{})
	o := seedQuote(repo, OrcamentoStatusAprovado, time.Now().AddDate(0, 1, 0))
	pedidoID := int64(5)
	o.PedidoID = &pedidoID

	err := svc.Delete(context.Background(), 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, httpx.ErrInvalidState)
	assert.Zero(t, repo.deleteCalls)
}

// ============================================================================
// CREATE
// ============================================================================

func TestCreateMintsNumeroAndFillsSnapshots(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo, &mockPedidoCreator{})

	o, err := svc.Create(context.Background(), CreateOrcamentoRequest{
		ClienteID:    10,
		DataEmissao:  time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		DataValidade: time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		Subtotal:     100,
		Total:        100,
		Itens: []CreateOrcamentoItemRequest{
			{ProdutoID: 100, Quantidade: 10, ValorUnitario: 10},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), o.Numero)
	assert.Equal(t, OrcamentoStatusEmAberto, o.Status)

	require.Len(t, o.Itens, 1)
	assert.Equal(t, 1, o.Itens[0].NumeroItem)
	assert.Equal(t, "P-100", o.Itens[0].Codigo)
	assert.Equal(t, "Parafuso", o.Itens[0].Descricao)
	assert.Equal(t, "UN", o.Itens[0].Unidade)
	assert.Equal(t, 100.0, o.Itens[0].ValorTotal)
}

func TestCreateUnknownClienteFails(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo, &mockPedidoCreator{})

	_, err := svc.Create(context.Background(), CreateOrcamentoRequest{
		ClienteID:    999,
		DataEmissao:  time.Now(),
		DataValidade: time.Now().AddDate(0, 1, 0),
		Itens:        []CreateOrcamentoItemRequest{{ProdutoID: 100, Quantidade: 1, ValorUnitario: 1}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, httpx.ErrNotFound)
}
