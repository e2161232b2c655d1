package pedidos

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/felipegscont/movix-sub001/internal/masterdata/produtos"
	"github.com/felipegscont/movix-sub001/internal/platform/httpx"
	"github.com/felipegscont/movix-sub001/internal/sales/clientes"
	"github.com/felipegscont/movix-sub001/internal/shared"
)

// ClienteReader resolves customers referenced by orders.
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

// Service implements sales order business logic.
type Service struct {
	logger   *slog.Logger
	repo     Repository
	clientes ClienteReader
	produtos ProdutoReader
	audit    AuditRecorder
}

// NewService constructs a Service.
func NewService(logger *slog.Logger, repo Repository, clientesRepo ClienteReader, produtosRepo ProdutoReader, audit AuditRecorder) *Service {
	return &Service{logger: logger, repo: repo, clientes: clientesRepo, produtos: produtosRepo, audit: audit}
}

func (s *Service) Get(ctx context.Context, id int64) (*Pedido, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, req ListPedidosRequest) ([]PedidoResumo, int, error) {
	return s.repo.List(ctx, req)
}

// NextNumero previews the next order number. The value is not reserved.
func (s *Service) NextNumero(ctx context.Context) (int64, error) {
	return s.repo.NextNumero(ctx)
}

// Create persists a new order with its items and payment schedule. Monetary
// header fields are stored as sent; no recomputation happens here.
func (s *Service) Create(ctx context.Context, req CreatePedidoRequest) (*Pedido, error) {
	if _, err := s.clientes.Get(ctx, req.ClienteID); err != nil {
		return nil, err
	}

	numero := int64(0)
	if req.Numero != nil {
		numero = *req.Numero
	} else {
		next, err := s.repo.NextNumero(ctx)
		if err != nil {
			return nil, fmt.Errorf("gerar número do pedido: %w", err)
		}
		numero = next
	}

	itens, err := s.buildItens(ctx, req.Itens)
	if err != nil {
		return nil, err
	}

	pedido := Pedido{
		Numero:         numero,
		DataEmissao:    req.DataEmissao,
		DataEntrega:    req.DataEntrega,
		Status:         PedidoStatusAberto,
		ClienteID:      req.ClienteID,
		Vendedor:       req.Vendedor,
		Subtotal:       req.Subtotal,
		Desconto:       req.Desconto,
		Frete:          req.Frete,
		OutrasDespesas: req.OutrasDespesas,
		Total:          req.Total,
		Observacoes:    req.Observacoes,
		OrcamentoID:    req.OrcamentoID,
	}

	var pedidoID int64
	err = s.repo.WithTx(ctx, func(ctx context.Context, tx Repository) error {
		id, err := tx.Create(ctx, pedido)
		if err != nil {
			return err
		}
		pedidoID = id

		for i := range itens {
			itens[i].PedidoID = id
			if _, err := tx.InsertItem(ctx, itens[i]); err != nil {
				return fmt.Errorf("inserir item %d: %w", itens[i].NumeroItem, err)
			}
		}
		for i, p := range req.Parcelas {
			parcela := PedidoParcela{
				PedidoID:       id,
				NumeroParcela:  p.NumeroParcela,
				DataVencimento: p.DataVencimento,
				Valor:          p.Valor,
				FormaPagamento: p.FormaPagamento,
			}
			if parcela.NumeroParcela == 0 {
				parcela.NumeroParcela = i + 1
			}
			if _, err := tx.InsertParcela(ctx, parcela); err != nil {
				return fmt.Errorf("inserir parcela %d: %w", parcela.NumeroParcela, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recordAudit(ctx, "pedido.criado", pedidoID, map[string]any{"numero": numero})
	return s.repo.Get(ctx, pedidoID)
}

// Update applies a partial update. Only open orders can change; when itens or
// parcelas are present the existing rows are replaced wholesale.
func (s *Service) Update(ctx context.Context, id int64, req UpdatePedidoRequest) (*Pedido, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.Status != PedidoStatusAberto {
		return nil, fmt.Errorf("%w: não é possível alterar um pedido %s", httpx.ErrInvalidState, existing.Status)
	}

	updates := map[string]interface{}{}
	if req.DataEmissao != nil {
		updates["data_emissao"] = *req.DataEmissao
	}
	if req.DataEntrega != nil {
		updates["data_entrega"] = *req.DataEntrega
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

	var itens []PedidoItem
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
				itens[i].PedidoID = id
				if _, err := tx.InsertItem(ctx, itens[i]); err != nil {
					return err
				}
			}
		}
		if req.Parcelas != nil {
			if err := tx.DeleteParcelas(ctx, id); err != nil {
				return err
			}
			for i, p := range *req.Parcelas {
				parcela := PedidoParcela{
					PedidoID:       id,
					NumeroParcela:  p.NumeroParcela,
					DataVencimento: p.DataVencimento,
					Valor:          p.Valor,
					FormaPagamento: p.FormaPagamento,
				}
				if parcela.NumeroParcela == 0 {
					parcela.NumeroParcela = i + 1
				}
				if _, err := tx.InsertParcela(ctx, parcela); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recordAudit(ctx, "pedido.alterado", id, nil)
	return s.repo.Get(ctx, id)
}

// Faturar marks an open order as invoiced.
func (s *Service) Faturar(ctx context.Context, id int64) (*Pedido, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.Status != PedidoStatusAberto {
		return nil, fmt.Errorf("%w: apenas pedidos em aberto podem ser faturados", httpx.ErrInvalidState)
	}
	if err := s.repo.UpdateStatus(ctx, id, PedidoStatusFaturado); err != nil {
		return nil, err
	}
	s.recordAudit(ctx, "pedido.faturado", id, nil)
	return s.repo.Get(ctx, id)
}

// Cancelar cancels an open order.
func (s *Service) Cancelar(ctx context.Context, id int64) (*Pedido, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.Status != PedidoStatusAberto {
		return nil, fmt.Errorf("%w: apenas pedidos em aberto podem ser cancelados", httpx.ErrInvalidState)
	}
	if err := s.repo.UpdateStatus(ctx, id, PedidoStatusCancelado); err != nil {
		return nil, err
	}
	s.recordAudit(ctx, "pedido.cancelado", id, nil)
	return s.repo.Get(ctx, id)
}

// Delete removes an open order and its children.
func (s *Service) Delete(ctx context.Context, id int64) error {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if existing.Status != PedidoStatusAberto {
		return fmt.Errorf("%w: apenas pedidos em aberto podem ser excluídos", httpx.ErrInvalidState)
	}

	err = s.repo.WithTx(ctx, func(ctx context.Context, tx Repository) error {
		if err := tx.DeleteItens(ctx, id); err != nil {
			return err
		}
		if err := tx.DeleteParcelas(ctx, id); err != nil {
			return err
		}
		return tx.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.recordAudit(ctx, "pedido.excluido", id, nil)
	return nil
}

// buildItens completes line items with product snapshots and line totals.
// A caller-supplied valorTotal is kept as sent.
func (s *Service) buildItens(ctx context.Context, reqs []CreatePedidoItemRequest) ([]PedidoItem, error) {
	itens := make([]PedidoItem, 0, len(reqs))
	for i, it := range reqs {
		item := PedidoItem{
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
		Entity:   "pedido",
		EntityID: strconv.FormatInt(id, 10),
		Meta:     meta,
	})
	if err != nil {
		s.logger.Warn("record audit", slog.String("action", action), slog.Any("error", err))
	}
}
