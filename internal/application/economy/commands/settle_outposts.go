package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/colonybot/internal/adapters/metrics"
	"github.com/andrescamacho/colonybot/internal/application/common"
	"github.com/andrescamacho/colonybot/internal/domain/economy"
)

// SettleOutpostsCommand runs the settle pass once the cycle's income is known
type SettleOutpostsCommand struct {
	ColonyName string
}

// SettleOutpostsResponse carries the requirements derived by the pass
type SettleOutpostsResponse struct {
	Requirements []economy.OutpostRequirement
}

// SettleOutpostsHandler relaxes idle credit and derives hauling and
// harvesting needs
type SettleOutpostsHandler struct {
	ledgerRepo economy.LedgerRepository
	tuning     economy.Tuning
}

// NewSettleOutpostsHandler creates a new settle pass handler
func NewSettleOutpostsHandler(ledgerRepo economy.LedgerRepository, tuning economy.Tuning) *SettleOutpostsHandler {
	return &SettleOutpostsHandler{
		ledgerRepo: ledgerRepo,
		tuning:     tuning,
	}
}

// Handle executes the settle pass
func (h *SettleOutpostsHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*SettleOutpostsCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *SettleOutpostsCommand")
	}

	ledger, err := h.ledgerRepo.Load(ctx, cmd.ColonyName)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}

	logger := common.LoggerFromContext(ctx)
	response := &SettleOutpostsResponse{}

	for _, outpost := range ledger.Outposts() {
		outpost.Settle(h.tuning)

		req := outpost.Requirement()
		response.Requirements = append(response.Requirements, req)

		for _, n := range outpost.Nodes() {
			metrics.RecordNodeLedger(cmd.ColonyName, outpost.Name(), n.Index(), n.Credit(), n.MaxIncome())
		}
		metrics.RecordOutpostNeeds(cmd.ColonyName, outpost.Name(), req.TotalHauler(), totalHarvester(req), req.Reserver)

		logger.Log("DEBUG", "Outpost settled", map[string]interface{}{
			"colony":    cmd.ColonyName,
			"outpost":   outpost.Name(),
			"abandoned": req.Abandoned,
			"blocked":   req.Blocked,
			"hauler":    req.TotalHauler(),
			"reserver":  req.Reserver,
		})
	}

	if err := h.ledgerRepo.Save(ctx, ledger); err != nil {
		return nil, fmt.Errorf("failed to save ledger: %w", err)
	}

	return response, nil
}

func totalHarvester(req economy.OutpostRequirement) int {
	total := 0
	for _, n := range req.Nodes {
		total += n.Harvester
	}
	return total
}
