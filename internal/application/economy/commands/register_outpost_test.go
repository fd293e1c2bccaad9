package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/colonybot/internal/application/economy/commands"
	"github.com/andrescamacho/colonybot/internal/domain/economy"
	"github.com/andrescamacho/colonybot/internal/domain/shared"
	"github.com/andrescamacho/colonybot/test/helpers"
)

func TestRegisterOutpost_CreatesRecord(t *testing.T) {
	// Arrange
	repo := helpers.NewMockLedgerRepository()
	handler := commands.NewRegisterOutpostHandler(repo)

	// Act
	resp, err := handler.Handle(context.Background(), &commands.RegisterOutpostCommand{
		ColonyName:   "W1N1",
		OutpostName:  "W1N2",
		NodeCount:    2,
		PathLength:   40,
		PathsThrough: []string{"W1N3"},
	})

	// Assert
	require.NoError(t, err)
	result := resp.(*commands.RegisterOutpostResponse)
	assert.True(t, result.Created)
	assert.Len(t, result.Outpost.Nodes, 2)

	stored, ok := repo.Outpost("W1N1", "W1N2")
	require.True(t, ok)
	assert.Equal(t, []string{"W1N3"}, stored.PathsThrough())
}

func TestRegisterOutpost_KnownOutpostRefreshesRouteOnly(t *testing.T) {
	// Arrange
	repo := helpers.NewMockLedgerRepository()
	existing := economy.NewOutpost("W1N2", "W1N1", 2, 40, nil)
	require.NoError(t, existing.RecordIncome(1, 75))
	repo.AddOutpost(existing)
	handler := commands.NewRegisterOutpostHandler(repo)

	// Act
	resp, err := handler.Handle(context.Background(), &commands.RegisterOutpostCommand{
		ColonyName:  "W1N1",
		OutpostName: "W1N2",
		NodeCount:   4,
		PathLength:  25,
	})

	// Assert
	require.NoError(t, err)
	assert.False(t, resp.(*commands.RegisterOutpostResponse).Created)
	stored, _ := repo.Outpost("W1N1", "W1N2")
	assert.Len(t, stored.Nodes(), 2)
	assert.Equal(t, 25, stored.PathLength())
	assert.Equal(t, 75.0, stored.Nodes()[1].Credit())
}

func TestRegisterOutpost_Validation(t *testing.T) {
	tests := []struct {
		name  string
		cmd   commands.RegisterOutpostCommand
		field string
	}{
		{"missing colony", commands.RegisterOutpostCommand{OutpostName: "W1N2", NodeCount: 1}, "colony"},
		{"missing outpost", commands.RegisterOutpostCommand{ColonyName: "W1N1", NodeCount: 1}, "outpost"},
		{"colony as its own outpost", commands.RegisterOutpostCommand{ColonyName: "W1N1", OutpostName: "W1N1", NodeCount: 1}, "outpost"},
		{"no nodes", commands.RegisterOutpostCommand{ColonyName: "W1N1", OutpostName: "W1N2"}, "nodes"},
		{"negative path", commands.RegisterOutpostCommand{ColonyName: "W1N1", OutpostName: "W1N2", NodeCount: 1, PathLength: -1}, "path_length"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			repo := helpers.NewMockLedgerRepository()
			handler := commands.NewRegisterOutpostHandler(repo)
			cmd := tt.cmd

			// Act
			_, err := handler.Handle(context.Background(), &cmd)

			// Assert
			var validationErr *shared.ValidationError
			require.True(t, errors.As(err, &validationErr))
			assert.Equal(t, tt.field, validationErr.Field)
			assert.Equal(t, 0, repo.SaveCount)
		})
	}
}
