package colony

import (
	"context"
	"errors"
	"fmt"

	"github.com/andrescamacho/colonybot/internal/application/common"
	economyCommands "github.com/andrescamacho/colonybot/internal/application/economy/commands"
	spawningCommands "github.com/andrescamacho/colonybot/internal/application/spawning/commands"
	"github.com/andrescamacho/colonybot/internal/domain/shared"
	"github.com/andrescamacho/colonybot/internal/domain/spawning"
)

// NodeIncome is a delivery from an outpost node during the cycle
type NodeIncome struct {
	OutpostName string
	NodeIndex   int
	Amount      float64
}

// RunCycleCommand runs one full economy cycle for a colony
type RunCycleCommand struct {
	ColonyName string
	Income     []NodeIncome
}

// RunCycleResponse summarizes the cycle
type RunCycleResponse struct {
	Tick       int
	Processed  int
	Removed    []string
	Abandoned  []string
	Propagated []string
	Failures   []economyCommands.OutpostFailure
	Requests   []*spawning.ProductionRequest
}

// Err joins the per-outpost failures of the prepare pass
func (r *RunCycleResponse) Err() error {
	if len(r.Failures) == 0 {
		return nil
	}
	errs := make([]error, len(r.Failures))
	for i, f := range r.Failures {
		errs[i] = f.Err
	}
	return errors.Join(errs...)
}

// RunCycleHandler orchestrates prepare, income, settle and allocation. The
// passes are sent through the mediator so each is measured on its own.
type RunCycleHandler struct {
	mediator         common.Mediator
	ticks            shared.TickSource
	reserverBaseline int
	threshold        float64
}

// NewRunCycleHandler creates a new cycle handler
func NewRunCycleHandler(
	mediator common.Mediator,
	ticks shared.TickSource,
	reserverBaseline int,
	threshold float64,
) *RunCycleHandler {
	return &RunCycleHandler{
		mediator:         mediator,
		ticks:            ticks,
		reserverBaseline: reserverBaseline,
		threshold:        threshold,
	}
}

// Handle executes one cycle
func (h *RunCycleHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*RunCycleCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *RunCycleCommand")
	}

	logger := common.WithFields(common.LoggerFromContext(ctx), map[string]interface{}{
		"colony": cmd.ColonyName,
		"tick":   h.ticks.CurrentTick(),
	})
	ctx = common.WithLogger(ctx, logger)

	response := &RunCycleResponse{Tick: h.ticks.CurrentTick()}

	prepared, err := h.prepare(ctx, cmd.ColonyName)
	if err != nil {
		return nil, err
	}
	response.Processed = len(prepared.Processed)
	response.Removed = prepared.Removed
	response.Abandoned = prepared.Abandoned
	response.Propagated = prepared.Propagated
	response.Failures = prepared.Failures

	if err := h.applyIncome(ctx, cmd); err != nil {
		return nil, err
	}

	settled, err := h.settle(ctx, cmd.ColonyName)
	if err != nil {
		return nil, err
	}

	for _, req := range settled.Requirements {
		for _, opts := range RemoteRoleOpts(req, h.reserverBaseline, h.threshold) {
			resp, err := h.mediator.Send(ctx, &spawningCommands.ConstructSpawnRequestsCommand{Opts: opts})
			if err != nil {
				return nil, fmt.Errorf("failed to construct %s requests for %s: %w", opts.Role, req.OutpostName, err)
			}
			response.Requests = append(response.Requests, resp.(*spawningCommands.ConstructSpawnRequestsResponse).Requests...)
		}
	}

	logger.Log("INFO", "Cycle complete", map[string]interface{}{
		"processed":  response.Processed,
		"removed":    len(response.Removed),
		"abandoned":  len(response.Abandoned),
		"propagated": len(response.Propagated),
		"failures":   len(response.Failures),
		"requests":   len(response.Requests),
	})

	return response, nil
}

func (h *RunCycleHandler) prepare(ctx context.Context, colonyName string) (*economyCommands.PrepareOutpostsResponse, error) {
	resp, err := h.mediator.Send(ctx, &economyCommands.PrepareOutpostsCommand{ColonyName: colonyName})
	if err != nil {
		return nil, fmt.Errorf("prepare pass failed: %w", err)
	}
	return resp.(*economyCommands.PrepareOutpostsResponse), nil
}

// applyIncome credits the cycle's deliveries. Deliveries from outposts that
// left the ledger this cycle are dropped.
func (h *RunCycleHandler) applyIncome(ctx context.Context, cmd *RunCycleCommand) error {
	logger := common.LoggerFromContext(ctx)

	for _, income := range cmd.Income {
		_, err := h.mediator.Send(ctx, &economyCommands.RecordNodeIncomeCommand{
			ColonyName:  cmd.ColonyName,
			OutpostName: income.OutpostName,
			NodeIndex:   income.NodeIndex,
			Amount:      income.Amount,
		})

		var notFound *shared.OutpostNotFoundError
		if errors.As(err, &notFound) {
			logger.Log("WARNING", "Income for unknown outpost dropped", map[string]interface{}{
				"outpost": income.OutpostName,
				"amount":  income.Amount,
			})
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to record income for %s: %w", income.OutpostName, err)
		}
	}
	return nil
}

func (h *RunCycleHandler) settle(ctx context.Context, colonyName string) (*economyCommands.SettleOutpostsResponse, error) {
	resp, err := h.mediator.Send(ctx, &economyCommands.SettleOutpostsCommand{ColonyName: colonyName})
	if err != nil {
		return nil, fmt.Errorf("settle pass failed: %w", err)
	}
	return resp.(*economyCommands.SettleOutpostsResponse), nil
}
