package persistence_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/colonybot/internal/adapters/persistence"
	"github.com/andrescamacho/colonybot/internal/domain/economy"
	"github.com/andrescamacho/colonybot/test/helpers"
)

func TestLedgerRepository_SaveAndLoad(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormLedgerRepository(db)
	ctx := context.Background()

	outpost := economy.NewOutpost("W1N2", "W1N1", 2, 40, []string{"W1N3"})
	outpost.SeedIncome([]float64{10, 10}, 0, 5)
	require.NoError(t, outpost.RecordIncome(1, 42.5))
	outpost.Abandon(90)
	outpost.MarkDanger(1090)

	ledger := economy.NewLedger("W1N1")
	ledger.Add(outpost)

	// Act
	err := repo.Save(ctx, ledger)
	require.NoError(t, err)
	loaded, err := repo.Load(ctx, "W1N1")

	// Assert
	require.NoError(t, err)
	found, ok := loaded.Outpost("W1N2")
	require.True(t, ok)
	assert.Equal(t, 40, found.PathLength())
	assert.Equal(t, []string{"W1N3"}, found.PathsThrough())
	assert.Equal(t, 90, found.AbandonCountdown())
	assert.Equal(t, 1090, found.DangerUntil())
	assert.Equal(t, 5, found.ReserverNeed())
	require.Len(t, found.Nodes(), 2)
	assert.Equal(t, 42.5, found.Nodes()[1].Credit())
	assert.Equal(t, 10.0, found.Nodes()[0].MaxIncome())
}

func TestLedgerRepository_SaveOverwritesAndDeletesRemoved(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormLedgerRepository(db)
	ctx := context.Background()

	ledger := economy.NewLedger("W1N1")
	ledger.Add(economy.NewOutpost("W1N2", "W1N1", 1, 40, nil))
	ledger.Add(economy.NewOutpost("W1N3", "W1N1", 1, 50, nil))
	require.NoError(t, repo.Save(ctx, ledger))

	ledger.Remove("W1N3")
	kept, _ := ledger.Outpost("W1N2")
	require.NoError(t, kept.RecordIncome(0, 7))

	// Act
	err := repo.Save(ctx, ledger)

	// Assert
	require.NoError(t, err)
	loaded, err := repo.Load(ctx, "W1N1")
	require.NoError(t, err)
	assert.Equal(t, []string{"W1N2"}, loaded.Names())
	found, _ := loaded.Outpost("W1N2")
	assert.Equal(t, 7.0, found.Nodes()[0].Credit())

	var nodeCount int64
	require.NoError(t, db.Model(&persistence.ResourceNodeModel{}).Count(&nodeCount).Error)
	assert.Equal(t, int64(1), nodeCount)
}

func TestLedgerRepository_ColoniesAreIsolated(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormLedgerRepository(db)
	ctx := context.Background()

	first := economy.NewLedger("W1N1")
	first.Add(economy.NewOutpost("W1N2", "W1N1", 1, 40, nil))
	second := economy.NewLedger("W5N5")
	second.Add(economy.NewOutpost("W5N6", "W5N5", 1, 30, nil))
	require.NoError(t, repo.Save(ctx, first))
	require.NoError(t, repo.Save(ctx, second))

	// Act
	require.NoError(t, repo.Save(ctx, economy.NewLedger("W5N5")))
	loadedFirst, err := repo.Load(ctx, "W1N1")
	require.NoError(t, err)
	loadedSecond, err := repo.Load(ctx, "W5N5")
	require.NoError(t, err)

	// Assert
	assert.Equal(t, 1, loadedFirst.Len())
	assert.Equal(t, 0, loadedSecond.Len())
}

func TestLedgerRepository_UnknownColonyLoadsEmpty(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormLedgerRepository(db)

	// Act
	ledger, err := repo.Load(context.Background(), "W9N9")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "W9N9", ledger.ColonyName())
	assert.Equal(t, 0, ledger.Len())
}

func TestLedgerRepository_NodeTableHoldsOnlyLedgerColumns(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	migrator := db.Migrator()

	// Act
	hasCredit := migrator.HasColumn(&persistence.ResourceNodeModel{}, "credit")
	hasReservation := migrator.HasColumn(&persistence.ResourceNodeModel{}, "credit_reservation")

	// Assert
	assert.True(t, hasCredit)
	assert.False(t, hasReservation)
}
