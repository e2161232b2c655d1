package jobs

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/hibiken/asynq"

	"github.com/felipegscont/movix-sub001/internal/sales/orcamentos"
	"github.com/felipegscont/movix-sub001/internal/shared"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskOrcamentosVencidos sweeps open quotes past their validity date.
	TaskOrcamentosVencidos = "orcamentos:vencidos"
)

// NewOrcamentosVencidosTask constructs the sweep task. It carries no payload;
// the handler works off the current date.
func NewOrcamentosVencidosTask() *asynq.Task {
	return asynq.NewTask(TaskOrcamentosVencidos, nil)
}

// NewOrcamentosVencidosHandler returns the handler for the nightly sweep.
// Quotes still EM_ABERTO past validity get an audit entry so the sales team
// can chase or cancel them; the quote itself is not touched.
func NewOrcamentosVencidosHandler(repo orcamentos.Repository, audit *shared.AuditLogger, logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		vencidos, err := repo.ListVencidos(ctx, time.Now())
		if err != nil {
			return err
		}
		for _, o := range vencidos {
			err := audit.Record(ctx, shared.AuditLog{
				Action:   "orcamento.vencido",
				Entity:   "orcamento",
				EntityID: strconv.FormatInt(o.ID, 10),
				Meta: map[string]any{
					"numero":       o.Numero,
					"dataValidade": o.DataValidade.Format("2006-01-02"),
				},
			})
			if err != nil {
				logger.Warn("registrar orcamento vencido", slog.Int64("orcamento_id", o.ID), slog.Any("error", err))
			}
		}
		logger.Info("varredura de orçamentos vencidos", slog.Int("total", len(vencidos)))
		return nil
	}
}
