package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/colonybot/internal/adapters/metrics"
	"github.com/andrescamacho/colonybot/internal/application/common"
	"github.com/andrescamacho/colonybot/internal/domain/economy"
	"github.com/andrescamacho/colonybot/internal/domain/shared"
)

// AbandonOutpostCommand puts an outpost into abandonment for Ticks cycles
type AbandonOutpostCommand struct {
	ColonyName  string
	OutpostName string
	Ticks       int
}

// AbandonOutpostResponse reports the resulting countdown
type AbandonOutpostResponse struct {
	Countdown int
	Raised    bool
}

// AbandonOutpostHandler starts or extends an outpost's abandonment. The
// next prepare pass propagates it to dependent outposts.
type AbandonOutpostHandler struct {
	ledgerRepo economy.LedgerRepository
}

// NewAbandonOutpostHandler creates a new abandon outpost handler
func NewAbandonOutpostHandler(ledgerRepo economy.LedgerRepository) *AbandonOutpostHandler {
	return &AbandonOutpostHandler{ledgerRepo: ledgerRepo}
}

// Handle executes the abandon outpost command
func (h *AbandonOutpostHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*AbandonOutpostCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *AbandonOutpostCommand")
	}

	if cmd.Ticks < 1 {
		return nil, shared.NewValidationError("ticks", "abandonment must last at least one tick")
	}

	ledger, err := h.ledgerRepo.Load(ctx, cmd.ColonyName)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}

	outpost, ok := ledger.Outpost(cmd.OutpostName)
	if !ok {
		return nil, shared.NewOutpostNotFoundError(cmd.ColonyName, cmd.OutpostName)
	}

	raised := outpost.Abandon(cmd.Ticks)
	if raised {
		if err := h.ledgerRepo.Save(ctx, ledger); err != nil {
			return nil, fmt.Errorf("failed to save ledger: %w", err)
		}
		metrics.RecordOutpostAbandoned(cmd.ColonyName, "manual")
	}

	logger := common.LoggerFromContext(ctx)
	logger.Log("INFO", "Outpost abandonment requested", map[string]interface{}{
		"colony":    cmd.ColonyName,
		"outpost":   cmd.OutpostName,
		"ticks":     cmd.Ticks,
		"countdown": outpost.AbandonCountdown(),
		"raised":    raised,
	})

	return &AbandonOutpostResponse{
		Countdown: outpost.AbandonCountdown(),
		Raised:    raised,
	}, nil
}
