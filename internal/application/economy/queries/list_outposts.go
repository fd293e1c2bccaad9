package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/colonybot/internal/application/common"
	"github.com/andrescamacho/colonybot/internal/domain/economy"
)

// ListOutpostsQuery returns the raw ledger records of a colony
type ListOutpostsQuery struct {
	ColonyName string
}

type ListOutpostsResponse struct {
	Outposts []*economy.OutpostData
}

type ListOutpostsHandler struct {
	ledgerRepo economy.LedgerRepository
}

func NewListOutpostsHandler(ledgerRepo economy.LedgerRepository) *ListOutpostsHandler {
	return &ListOutpostsHandler{ledgerRepo: ledgerRepo}
}

func (h *ListOutpostsHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*ListOutpostsQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListOutpostsQuery")
	}

	ledger, err := h.ledgerRepo.Load(ctx, query.ColonyName)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}

	outposts := ledger.Outposts()
	response := &ListOutpostsResponse{Outposts: make([]*economy.OutpostData, 0, len(outposts))}
	for _, outpost := range outposts {
		response.Outposts = append(response.Outposts, outpost.ToData())
	}
	return response, nil
}
