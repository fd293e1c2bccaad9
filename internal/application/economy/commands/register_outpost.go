package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/colonybot/internal/application/common"
	"github.com/andrescamacho/colonybot/internal/domain/economy"
	"github.com/andrescamacho/colonybot/internal/domain/shared"
)

// RegisterOutpostCommand adds an outpost to a colony's ledger
type RegisterOutpostCommand struct {
	ColonyName   string
	OutpostName  string
	NodeCount    int
	PathLength   int
	PathsThrough []string
}

// RegisterOutpostResponse reports whether the outpost was new
type RegisterOutpostResponse struct {
	Outpost *economy.OutpostData
	Created bool
}

// RegisterOutpostHandler creates outpost records. Registering a known outpost
// only refreshes its route.
type RegisterOutpostHandler struct {
	ledgerRepo economy.LedgerRepository
}

// NewRegisterOutpostHandler creates a new register outpost handler
func NewRegisterOutpostHandler(ledgerRepo economy.LedgerRepository) *RegisterOutpostHandler {
	return &RegisterOutpostHandler{ledgerRepo: ledgerRepo}
}

// Handle executes the register outpost command
func (h *RegisterOutpostHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*RegisterOutpostCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *RegisterOutpostCommand")
	}

	if err := validateRegistration(cmd); err != nil {
		return nil, err
	}

	ledger, err := h.ledgerRepo.Load(ctx, cmd.ColonyName)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}

	outpost, exists := ledger.Outpost(cmd.OutpostName)
	if exists {
		outpost.UpdateRoute(cmd.PathLength, cmd.PathsThrough)
	} else {
		outpost = economy.NewOutpost(cmd.OutpostName, cmd.ColonyName, cmd.NodeCount, cmd.PathLength, cmd.PathsThrough)
		ledger.Add(outpost)
	}

	if err := h.ledgerRepo.Save(ctx, ledger); err != nil {
		return nil, fmt.Errorf("failed to save ledger: %w", err)
	}

	logger := common.LoggerFromContext(ctx)
	logger.Log("INFO", "Outpost registered", map[string]interface{}{
		"colony":        cmd.ColonyName,
		"outpost":       cmd.OutpostName,
		"nodes":         len(outpost.Nodes()),
		"path_length":   cmd.PathLength,
		"paths_through": cmd.PathsThrough,
		"created":       !exists,
	})

	return &RegisterOutpostResponse{
		Outpost: outpost.ToData(),
		Created: !exists,
	}, nil
}

func validateRegistration(cmd *RegisterOutpostCommand) error {
	if cmd.ColonyName == "" {
		return shared.NewValidationError("colony", "colony name is required")
	}
	if cmd.OutpostName == "" {
		return shared.NewValidationError("outpost", "outpost name is required")
	}
	if cmd.OutpostName == cmd.ColonyName {
		return shared.NewValidationError("outpost", "a colony cannot be its own outpost")
	}
	if cmd.NodeCount < 1 {
		return shared.NewValidationError("nodes", "an outpost needs at least one node")
	}
	if cmd.PathLength < 0 {
		return shared.NewValidationError("path_length", "path length cannot be negative")
	}
	return nil
}
