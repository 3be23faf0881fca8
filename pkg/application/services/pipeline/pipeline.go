// Package pipeline coordinates the full availability run: demand and supply
// preparation, the two allocation passes, and the order-level rollup.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ygroup/backlog/pkg/application/dto"
	"github.com/ygroup/backlog/pkg/application/services/allocation"
	"github.com/ygroup/backlog/pkg/application/services/demand"
	"github.com/ygroup/backlog/pkg/application/services/orders"
	"github.com/ygroup/backlog/pkg/application/services/supply"
	"github.com/ygroup/backlog/pkg/domain/entities"
)

// Inputs bundles the six canonical tables a run consumes.
type Inputs struct {
	Backlog     []entities.BacklogRow
	SalesUOM    []entities.UOMCounterRow
	Controllers []entities.ControllerTypeRow
	Schedule    []entities.ScheduleLineRow
	PurchaseUOM []entities.PurchaseUOMRow
	Kits        []entities.KitComponent
	Restricted  []entities.RestrictedComponent
}

// Runner executes availability runs.
type Runner struct {
	logger *slog.Logger
}

// NewRunner creates a runner logging through the given logger. A nil logger
// falls back to slog's default.
func NewRunner(logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{logger: logger}
}

// Run executes a complete availability run over the given inputs and
// returns the resolved lines, order classifications and summary counts.
func (r *Runner) Run(ctx context.Context, inputs Inputs) (*dto.RunResult, error) {
	runID := uuid.New()
	started := time.Now()
	log := r.logger.With("run_id", runID.String())

	log.Info("starting availability run",
		"backlog_rows", len(inputs.Backlog),
		"schedule_rows", len(inputs.Schedule))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lines, err := demand.Prepare(inputs.Backlog, inputs.SalesUOM, inputs.Controllers)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare demand: %w", err)
	}
	log.Info("demand prepared", "lines", len(lines))

	deliveries := supply.Prepare(inputs.Schedule, inputs.PurchaseUOM)
	log.Info("supply prepared", "deliveries", len(deliveries))

	kits := entities.NewKitBOM(inputs.Kits)
	restricted := entities.NewRestrictedComponentMap(inputs.Restricted)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := allocation.ResolveInitial(lines, deliveries, kits, restricted); err != nil {
		return nil, fmt.Errorf("failed to resolve initial availability: %w", err)
	}
	log.Info("initial pass complete")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := allocation.ResolveForward(lines, deliveries, kits, restricted); err != nil {
		return nil, fmt.Errorf("failed to resolve forward availability: %w", err)
	}
	log.Info("forward pass complete")

	classified := orders.Classify(lines)

	result := &dto.RunResult{
		RunID:      runID,
		Lines:      lines,
		Deliveries: deliveries,
		Orders:     classified,
		Elapsed:    time.Since(started),
		Summary:    dto.Summarize(lines, classified),
	}

	log.Info("availability run complete",
		"orders", len(classified),
		"elapsed", result.Elapsed)

	return result, nil
}
