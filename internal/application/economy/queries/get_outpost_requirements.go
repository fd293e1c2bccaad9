package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/colonybot/internal/application/common"
	"github.com/andrescamacho/colonybot/internal/domain/economy"
)

// GetOutpostRequirementsQuery reads the demand derived by the last settle pass
type GetOutpostRequirementsQuery struct {
	ColonyName string
	// Empty selects every outpost
	OutpostName string
}

// GetOutpostRequirementsResponse lists one requirement per outpost
type GetOutpostRequirementsResponse struct {
	Requirements []economy.OutpostRequirement
}

// GetOutpostRequirementsHandler handles the requirements query
type GetOutpostRequirementsHandler struct {
	ledgerRepo economy.LedgerRepository
}

// NewGetOutpostRequirementsHandler creates a new requirements query handler
func NewGetOutpostRequirementsHandler(ledgerRepo economy.LedgerRepository) *GetOutpostRequirementsHandler {
	return &GetOutpostRequirementsHandler{ledgerRepo: ledgerRepo}
}

// Handle executes the requirements query
func (h *GetOutpostRequirementsHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*GetOutpostRequirementsQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetOutpostRequirementsQuery")
	}

	ledger, err := h.ledgerRepo.Load(ctx, query.ColonyName)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}

	response := &GetOutpostRequirementsResponse{}
	for _, outpost := range ledger.Outposts() {
		if query.OutpostName != "" && outpost.Name() != query.OutpostName {
			continue
		}
		response.Requirements = append(response.Requirements, outpost.Requirement())
	}

	return response, nil
}
