package orcamentos

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/felipegscont/movix-sub001/internal/masterdata/produtos"
	"github.com/felipegscont/movix-sub001/internal/platform/httpx"
	"github.com/felipegscont/movix-sub001/internal/sales/clientes"
	"github.com/felipegscont/movix-sub001/internal/sales/pedidos"
	"github.com/felipegscont/movix-sub001/internal/shared"
)

// PedidoCreator is the order creation collaborator used by the conversion
// routine. Satisfied by pedidos.Service.
type PedidoCreator interface {
	Create(ctx context.Context, req pedidos.CreatePedidoRequest) (*pedidos.Pedido, error)
}

// ClienteReader resolves customers referenced by quotes.
type ClienteReader interface {
	Get(ctx context.Context, id int64) (*clientes.Cliente, error)
}

// ProdutoReader resolves products for line-item snapshots.
type ProdutoReader interface {
	Get(ctx context.Context, id int64) (*produtos.Produto, error)
}

// AuditRecorder persists audit trail entries.
type AuditRecorder interface {
	Record(ctx context.Context, log shared.AuditLog) error
}

// ConversionResult is returned by ConvertToOrder: the reloaded quote and the
// order created from it.
type ConversionResult struct {
	Orcamento *Orcamento      `json:"orcamento"`
	Pedido    *pedidos.Pedido `json:"pedido"`
}

// Service implements quote business logic, including the conversion routine.
type Service struct {
	logger   *slog.Logger
	repo     Repository
	pedidos  PedidoCreator
	clientes ClienteReader
	produtos ProdutoReader
	audit    AuditRecorder
	now      func() time.Time
}

// NewService constructs a Service.
func NewService(logger *slog.Logger, repo Repository, pedidoCreator PedidoCreator, clientesRepo ClienteReader, produtosRepo ProdutoReader, audit AuditRecorder) *Service {
	return &Service{
		logger:   logger,
		repo:     repo,
		pedidos:  pedidoCreator,
		clientes: clientesRepo,
		produtos: produtosRepo,
		audit:    audit,
		now:      time.Now,
	}
}

func (s *Service) Get(ctx context.Context, id int64) (*Orcamento, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, req ListOrcamentosRequest) ([]OrcamentoResumo, int, error) {
	return s.repo.List(ctx, req)
}

// NextNumero previews the next quote number. The value is not reserved.
func (s *Service) NextNumero(ctx context.Context) (int64, error) {
	return s.repo.NextNumero(ctx)
}

// Create persists a new quote with its items.
func (s *Service) Create(ctx context.Context, req CreateOrcamentoRequest) (*Orcamento, error) {
	if _, err := s.clientes.Get(ctx, req.ClienteID); err != nil {
		return nil, err
	}

	numero := int64(0)
	if req.Numero != nil {
		numero = *req.Numero
	} else {
		next, err := s.repo.NextNumero(ctx)
		if err != nil {
			return nil, fmt.Errorf("gerar número do orçamento: %w", err)
		}
		numero = next
	}

	itens, err := s.buildItens(ctx, req.Itens)
	if err != nil {
		return nil, err
	}

	orcamento := Orcamento{
		Numero:         numero,
		DataEmissao:    req.DataEmissao,
		DataValidade:   req.DataValidade,
		Status:         OrcamentoStatusEmAberto,
		ClienteID:      req.ClienteID,
		Vendedor:       req.Vendedor,
		Subtotal:       req.Subtotal,
		Desconto:       req.Desconto,
		Frete:          req.Frete,
		OutrasDespesas: req.OutrasDespesas,
		Total:          req.Total,
		Observacoes:    req.Observacoes,
	}

	var orcamentoID int64
	err = s.repo.WithTx(ctx, func(ctx context.Context, tx Repository) error {
		id, err := tx.Create(ctx, orcamento)
		if err != nil {
			return err
		}
		orcamentoID = id

		for i := range itens {
			itens[i].OrcamentoID = id
			if _, err := tx.InsertItem(ctx, itens[i]); err != nil {
				return fmt.Errorf("inserir item %d: %w", itens[i].NumeroItem, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recordAudit(ctx, "orcamento.criado", orcamentoID, map[string]any{"numero": numero})
	return s.repo.Get(ctx, orcamentoID)
}

// Update applies a partial update. Only open, unconverted quotes can change;
// when itens is present the existing rows are replaced wholesale.
func (s *Service) Update(ctx context.Context, id int64, req UpdateOrcamentoRequest) (*Orcamento, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkEditable(existing); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.DataEmissao != nil {
		updates["data_emissao"] = *req.DataEmissao
	}
	if req.DataValidade != nil {
		updates["data_validade"] = *req.DataValidade
	}
	if req.Vendedor != nil {
		updates["vendedor"] = *req.Vendedor
	}
	if req.Subtotal != nil {
		updates["subtotal"] = *req.Subtotal
	}
	if req.Desconto != nil {
		updates["desconto"] = *req.Desconto
	}
	if req.Frete != nil {
		updates["frete"] = *req.Frete
	}
	if req.OutrasDespesas != nil {
		updates["outras_despesas"] = *req.OutrasDespesas
	}
	if req.Total != nil {
		updates["total"] = *req.Total
	}
	if req.Observacoes != nil {
		updates["observacoes"] = *req.Observacoes
	}

	var itens []OrcamentoItem
	if req.Itens != nil {
		itens, err = s.buildItens(ctx, *req.Itens)
		if err != nil {
			return nil, err
		}
	}

	err = s.repo.WithTx(ctx, func(ctx context.Context, tx Repository) error {
		if len(updates) > 0 {
			if err := tx.Update(ctx, id, updates); err != nil {
				return err
			}
		}
		if req.Itens != nil {
			if err := tx.DeleteItens(ctx, id); err != nil {
				return err
			}
			for i := range itens {
				itens[i].OrcamentoID = id
				if _, err := tx.InsertItem(ctx, itens[i]); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recordAudit(ctx, "orcamento.alterado", id, nil)
	return s.repo.Get(ctx, id)
}

// Cancelar moves an open quote to its terminal cancelled state. Cancelling a
// cancelled quote or a converted one is rejected.
func (s *Service) Cancelar(ctx context.Context, id int64) (*Orcamento, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.Status == OrcamentoStatusCancelado {
		return nil, fmt.Errorf("%w: orçamento já está cancelado", httpx.ErrInvalidState)
	}
	if existing.Status == OrcamentoStatusAprovado && existing.PedidoID != nil {
		return nil, fmt.Errorf("%w: orçamento já convertido em pedido", httpx.ErrInvalidState)
	}

	if err := s.repo.UpdateStatus(ctx, id, OrcamentoStatusCancelado); err != nil {
		return nil, err
	}
	s.recordAudit(ctx, "orcamento.cancelado", id, nil)
	return s.repo.Get(ctx, id)
}

// Delete removes an open, unconverted quote and its items.
func (s *Service) Delete(ctx context.Context, id int64) error {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.checkEditable(existing); err != nil {
		return err
	}

	err = s.repo.WithTx(ctx, func(ctx context.Context, tx Repository) error {
		if err := tx.DeleteItens(ctx, id); err != nil {
			return err
		}
		return tx.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.recordAudit(ctx, "orcamento.excluido", id, nil)
	return nil
}

// ConvertToOrder turns an open quote into a linked sales order.
//
// The order creation and the quote update are two independent writes, not one
// transaction: a crash after the order insert leaves the quote unlinked and
// still convertible. Monetary totals are carried over verbatim, with no
// recomputation from line items.
func (s *Service) ConvertToOrder(ctx context.Context, id int64) (*ConversionResult, error) {
	orcamento, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if orcamento.Status == OrcamentoStatusCancelado {
		return nil, fmt.Errorf("%w: não é possível converter um orçamento cancelado", httpx.ErrInvalidState)
	}
	if orcamento.Status == OrcamentoStatusAprovado && orcamento.PedidoID != nil {
		return nil, fmt.Errorf("%w: orçamento já convertido em pedido", httpx.ErrInvalidState)
	}

	agora := s.now()
	if vencido(orcamento.DataValidade, agora) {
		return nil, fmt.Errorf("%w: orçamento vencido; atualize a data de validade antes de converter", httpx.ErrInvalidState)
	}

	observacoes := fmt.Sprintf("Convertido do Orçamento #%d", orcamento.Numero)
	if orcamento.Observacoes != nil && *orcamento.Observacoes != "" {
		observacoes = observacoes + "\n\n" + *orcamento.Observacoes
	}

	itens := make([]pedidos.CreatePedidoItemRequest, 0, len(orcamento.Itens))
	for _, it := range orcamento.Itens {
		valorTotal := it.ValorTotal
		itens = append(itens, pedidos.CreatePedidoItemRequest{
			NumeroItem:    it.NumeroItem,
			ProdutoID:     it.ProdutoID,
			Codigo:        it.Codigo,
			Descricao:     it.Descricao,
			Unidade:       it.Unidade,
			Quantidade:    it.Quantidade,
			ValorUnitario: it.ValorUnitario,
			Desconto:      it.Desconto,
			ValorTotal:    &valorTotal,
			Observacoes:   it.Observacoes,
		})
	}

	dataEntrega := orcamento.DataValidade
	pedido, err := s.pedidos.Create(ctx, pedidos.CreatePedidoRequest{
		ClienteID:      orcamento.ClienteID,
		DataEmissao:    agora,
		DataEntrega:    &dataEntrega,
		Vendedor:       orcamento.Vendedor,
		Subtotal:       orcamento.Subtotal,
		Desconto:       orcamento.Desconto,
		Frete:          orcamento.Frete,
		OutrasDespesas: orcamento.OutrasDespesas,
		Total:          orcamento.Total,
		Observacoes:    &observacoes,
		OrcamentoID:    &orcamento.ID,
		Itens:          itens,
	})
	if err != nil {
		return nil, err
	}

	if err := s.repo.MarkConverted(ctx, orcamento.ID, pedido.ID, agora); err != nil {
		return nil, fmt.Errorf("vincular pedido ao orçamento: %w", err)
	}

	s.recordAudit(ctx, "orcamento.convertido", orcamento.ID, map[string]any{
		"pedidoId":     pedido.ID,
		"pedidoNumero": pedido.Numero,
	})

	atualizado, err := s.repo.Get(ctx, orcamento.ID)
	if err != nil {
		return nil, err
	}
	return &ConversionResult{Orcamento: atualizado, Pedido: pedido}, nil
}

// checkEditable rejects edits to cancelled or converted quotes.
func (s *Service) checkEditable(o *Orcamento) error {
	if o.Status == OrcamentoStatusCancelado {
		return fmt.Errorf("%w: orçamento cancelado não pode ser alterado", httpx.ErrInvalidState)
	}
	if o.Status == OrcamentoStatusAprovado && o.PedidoID != nil {
		return fmt.Errorf("%w: orçamento já convertido em pedido", httpx.ErrInvalidState)
	}
	return nil
}

// vencido reports whether the validity date falls strictly before the
// reference day. Comparison is at day granularity: a quote valid until today
// still converts.
func vencido(dataValidade, ref time.Time) bool {
	vy, vm, vd := dataValidade.Date()
	ry, rm, rd := ref.Date()
	validade := time.Date(vy, vm, vd, 0, 0, 0, 0, time.UTC)
	hoje := time.Date(ry, rm, rd, 0, 0, 0, 0, time.UTC)
	return validade.Before(hoje)
}

// buildItens completes quote lines with product snapshots and line totals.
func (s *Service) buildItens(ctx context.Context, reqs []CreateOrcamentoItemRequest) ([]OrcamentoItem, error) {
	itens := make([]OrcamentoItem, 0, len(reqs))
	for i, it := range reqs {
		item := OrcamentoItem{
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
		if item.NumeroItem == 0 {
			item.NumeroItem = i + 1
		}
		if item.Codigo == "" || item.Descricao == "" || item.Unidade == "" {
			produto, err := s.produtos.Get(ctx, it.ProdutoID)
			if err != nil {
				return nil, fmt.Errorf("item %d: %w", item.NumeroItem, err)
			}
			if item.Codigo == "" {
				item.Codigo = produto.Codigo
			}
			if item.Descricao == "" {
				item.Descricao = produto.Descricao
			}
			if item.Unidade == "" {
				item.Unidade = produto.Unidade
			}
		}
		if it.ValorTotal != nil {
			item.ValorTotal = *it.ValorTotal
		} else {
			item.ValorTotal = it.Quantidade*it.ValorUnitario - it.Desconto
		}
		itens = append(itens, item)
	}
	return itens, nil
}

func (s *Service) recordAudit(ctx context.Context, action string, id int64, meta map[string]any) {
	if s.audit == nil {
		return
	}
	err := s.audit.Record(ctx, shared.AuditLog{
		Action:   action,
		Entity:   "orcamento",
		EntityID: strconv.FormatInt(id, 10),
		Meta:     meta,
	})
	if err != nil {
		s.logger.Warn("record audit", slog.String("action", action), slog.Any("error", err))
	}
}
