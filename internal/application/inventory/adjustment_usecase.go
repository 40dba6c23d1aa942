package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bersacloud/consumo-api/internal/domain"
	"github.com/bersacloud/consumo-api/internal/domain/entity"
	"github.com/bersacloud/consumo-api/internal/domain/repository"
)

// CountEntry conteo de un artículo enviado por el operador.
// La cantidad puede venir ya con signo (negativa = reducción).
type CountEntry struct {
	ArticleCode string
	Quantity    decimal.Decimal
}

// AdjustmentUseCase confirma lotes de movimientos de inventario de forma atómica.
// Dos modos, nunca mezclados en un mismo lote:
//   - delta: el sistema recalcula las diferencias no nulas del almacén dentro de
//     la misma transacción y las envía como movimientos CONSUMO_REAL.
//   - conteo directo: un movimiento CONTEO_FISICO por cada entrada del operador,
//     tal cual llegó.
//
// No hay idempotencia entre envíos repetidos: cada llamada agrega movimientos nuevos.
type AdjustmentUseCase struct {
	tx TxRunner
}

// NewAdjustmentUseCase construye el caso de uso.
func NewAdjustmentUseCase(tx TxRunner) *AdjustmentUseCase {
	return &AdjustmentUseCase{tx: tx}
}

// CommitDeltas recalcula las diferencias del almacén y las persiste como movimientos.
// Todo dentro de una transacción: un fallo en cualquier inserción revierte el lote completo.
func (uc *AdjustmentUseCase) CommitDeltas(ctx context.Context, warehouseKey, operatorEmail string) error {
	if warehouseKey == "" {
		return domain.ErrInvalidInput
	}
	return uc.tx.Run(ctx, func(movRepo repository.MovementRepository, reconRepo repository.ReconciliationRepository) error {
		// Las diferencias se leen dentro de la tx para que el lote refleje
		// exactamente lo que se va a ajustar.
		diffs, err := reconRepo.NonZeroDifferences(ctx, warehouseKey)
		if err != nil {
			return fmt.Errorf("recalcular diferencias: %w", err)
		}
		now := time.Now()
		for _, d := range diffs {
			record := &entity.MovementRecord{
				Origin:        entity.OriginComputedDelta,
				WarehouseKey:  warehouseKey,
				ArticleCode:   d.ArticleCode,
				Quantity:      d.Difference,
				OperatorEmail: operatorEmail,
				CreatedAt:     now,
			}
			if err := movRepo.Create(ctx, record); err != nil {
				return fmt.Errorf("movimiento %s: %w", d.ArticleCode, err)
			}
		}
		return nil
	})
}

// CommitCounts persiste los conteos del operador tal cual, un movimiento por entrada,
// en el orden recibido. Lote vacío es entrada inválida.
func (uc *AdjustmentUseCase) CommitCounts(ctx context.Context, warehouseKey, operatorEmail string, entries []CountEntry) error {
	if warehouseKey == "" || len(entries) == 0 {
		return domain.ErrInvalidInput
	}
	return uc.tx.Run(ctx, func(movRepo repository.MovementRepository, _ repository.ReconciliationRepository) error {
		now := time.Now()
		for _, e := range entries {
			record := &entity.MovementRecord{
				Origin:        entity.OriginPhysicalCount,
				WarehouseKey:  warehouseKey,
				ArticleCode:   e.ArticleCode,
				Quantity:      e.Quantity,
				OperatorEmail: operatorEmail,
				CreatedAt:     now,
			}
			if err := movRepo.Create(ctx, record); err != nil {
				return fmt.Errorf("movimiento %s: %w", e.ArticleCode, err)
			}
		}
		return nil
	})
}
