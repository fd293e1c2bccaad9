package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/colonybot/internal/application/common"
	"github.com/andrescamacho/colonybot/internal/domain/economy"
	"github.com/andrescamacho/colonybot/internal/domain/shared"
)

// RecordNodeIncomeCommand credits resources delivered from a node
type RecordNodeIncomeCommand struct {
	ColonyName  string
	OutpostName string
	NodeIndex   int
	Amount      float64
}

// RecordNodeIncomeResponse carries the node's ledger after the credit
type RecordNodeIncomeResponse struct {
	Credit       float64
	CreditChange float64
}

// RecordNodeIncomeHandler handles income events between the two passes
type RecordNodeIncomeHandler struct {
	ledgerRepo economy.LedgerRepository
}

// NewRecordNodeIncomeHandler creates a new record node income handler
func NewRecordNodeIncomeHandler(ledgerRepo economy.LedgerRepository) *RecordNodeIncomeHandler {
	return &RecordNodeIncomeHandler{ledgerRepo: ledgerRepo}
}

// Handle executes the record node income command
func (h *RecordNodeIncomeHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*RecordNodeIncomeCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *RecordNodeIncomeCommand")
	}

	ledger, err := h.ledgerRepo.Load(ctx, cmd.ColonyName)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}

	outpost, ok := ledger.Outpost(cmd.OutpostName)
	if !ok {
		return nil, shared.NewOutpostNotFoundError(cmd.ColonyName, cmd.OutpostName)
	}

	if err := outpost.RecordIncome(cmd.NodeIndex, cmd.Amount); err != nil {
		return nil, fmt.Errorf("failed to record income: %w", err)
	}

	if err := h.ledgerRepo.Save(ctx, ledger); err != nil {
		return nil, fmt.Errorf("failed to save ledger: %w", err)
	}

	node, _ := outpost.Node(cmd.NodeIndex)
	return &RecordNodeIncomeResponse{
		Credit:       node.Credit(),
		CreditChange: node.CreditChange(),
	}, nil
}
