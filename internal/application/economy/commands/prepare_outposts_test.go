package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/colonybot/internal/adapters/world"
	"github.com/andrescamacho/colonybot/internal/application/common"
	"github.com/andrescamacho/colonybot/internal/application/economy/commands"
	"github.com/andrescamacho/colonybot/internal/domain/economy"
	"github.com/andrescamacho/colonybot/internal/domain/shared"
	"github.com/andrescamacho/colonybot/test/helpers"
)

type prepareFixture struct {
	world   *helpers.MockWorld
	repo    *helpers.MockLedgerRepository
	random  *shared.MockRandom
	logger  *helpers.CaptureLogger
	handler *commands.PrepareOutpostsHandler
}

func newPrepareFixture(energyCapacity int) *prepareFixture {
	f := &prepareFixture{
		world:  helpers.NewMockWorld("W1N1", 300, energyCapacity),
		repo:   helpers.NewMockLedgerRepository(),
		random: &shared.MockRandom{},
		logger: helpers.NewCaptureLogger(),
	}
	f.handler = commands.NewPrepareOutpostsHandler(
		f.repo, f.world, shared.NewMockTicks(1000), f.random, economy.DefaultTuning(),
	)
	return f
}

func (f *prepareFixture) addOutpost(name string, nodes int, pathsThrough []string) *economy.Outpost {
	f.world.PutRoom(helpers.RemoteRoom(name, "W1N1", nodes, 40))
	outpost := economy.NewOutpost(name, "W1N1", nodes, 40, pathsThrough)
	f.repo.AddOutpost(outpost)
	return outpost
}

func (f *prepareFixture) prepare(t *testing.T) *commands.PrepareOutpostsResponse {
	t.Helper()
	ctx := common.WithLogger(context.Background(), f.logger)
	resp, err := f.handler.Handle(ctx, &commands.PrepareOutpostsCommand{ColonyName: "W1N1"})
	require.NoError(t, err)
	return resp.(*commands.PrepareOutpostsResponse)
}

func (f *prepareFixture) stored(t *testing.T, name string) *economy.Outpost {
	t.Helper()
	outpost, ok := f.repo.Outpost("W1N1", name)
	require.True(t, ok, "outpost %s should be stored", name)
	return outpost
}

func TestPrepareOutposts_SeedsReservedIncome(t *testing.T) {
	// Arrange
	f := newPrepareFixture(800)
	f.addOutpost("W1N2", 2, nil)

	// Act
	resp := f.prepare(t)

	// Assert
	assert.Equal(t, []string{"W1N2"}, resp.Processed)
	assert.NoError(t, resp.Err())
	outpost := f.stored(t, "W1N2")
	for _, n := range outpost.Nodes() {
		assert.Equal(t, 10.0, n.MaxIncome())
	}
	assert.Equal(t, 5, outpost.ReserverNeed())
	assert.Equal(t, 1, f.repo.SaveCount)
}

func TestPrepareOutposts_KeepsBaselineBelowReservationThreshold(t *testing.T) {
	// Arrange
	f := newPrepareFixture(600)
	f.addOutpost("W1N2", 1, nil)

	// Act
	f.prepare(t)

	// Assert
	assert.Equal(t, 5.0, f.stored(t, "W1N2").Nodes()[0].MaxIncome())
}

func TestPrepareOutposts_RemovesReclassifiedOutposts(t *testing.T) {
	tests := []struct {
		name   string
		edit   func(r *world.RoomSnapshot)
		reason string
	}{
		{"room became enemy", func(r *world.RoomSnapshot) { r.Type = string(economy.RoomTypeEnemy) }, "reclassified"},
		{"room owned by another colony", func(r *world.RoomSnapshot) { r.Owner = "W5N5" }, "reclassified"},
		{"room in another zone", func(r *world.RoomSnapshot) { r.MapStatus = "novice" }, "cross_status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			f := newPrepareFixture(800)
			f.addOutpost("W1N2", 1, nil)
			room, _ := f.world.Room("W1N2")
			tt.edit(room)

			// Act
			resp := f.prepare(t)

			// Assert
			assert.Equal(t, []string{"W1N2"}, resp.Removed)
			_, ok := f.repo.Outpost("W1N1", "W1N2")
			assert.False(t, ok)

			entries := f.logger.Entries("INFO")
			require.NotEmpty(t, entries)
			assert.Equal(t, tt.reason, entries[0].Metadata["reason"])
		})
	}
}

func TestPrepareOutposts_HostilesAbandonAndPropagate(t *testing.T) {
	// Arrange
	f := newPrepareFixture(800)
	f.random.Offset = 10
	f.addOutpost("W1N2", 1, []string{"W1N3"})
	f.addOutpost("W1N3", 1, nil)
	room, _ := f.world.Room("W1N2")
	room.Hostiles = []world.HostileSnapshot{{Lifetime: 400}, {Lifetime: 120, Invader: true}}

	// Act
	resp := f.prepare(t)

	// Assert
	assert.Equal(t, []string{"W1N2"}, resp.Abandoned)
	assert.Equal(t, []string{"W1N3"}, resp.Propagated)

	origin := f.stored(t, "W1N2")
	assert.Equal(t, 130, origin.AbandonCountdown())
	assert.Equal(t, 1130, origin.DangerUntil())
	assert.True(t, origin.RecursedAbandon())

	dependent := f.stored(t, "W1N3")
	assert.Equal(t, 129, dependent.AbandonCountdown(), "dependent ticks down when reached later in the pass")
	assert.True(t, f.logger.HasMessage("Outpost abandoned"))
}

func TestPrepareOutposts_AbandonedOutpostOnlyTicksDown(t *testing.T) {
	// Arrange
	f := newPrepareFixture(800)
	outpost := f.addOutpost("W1N2", 2, nil)
	outpost.Abandon(5)
	f.repo.AddOutpost(outpost)

	// Act
	resp := f.prepare(t)

	// Assert
	assert.Empty(t, f.world.NodeCalls)
	assert.Empty(t, resp.Processed)
	assert.Equal(t, 4, f.stored(t, "W1N2").AbandonCountdown())
}

func TestPrepareOutposts_MissingAnchorFailsOutpost(t *testing.T) {
	// Arrange
	f := newPrepareFixture(800)
	noAnchor := false
	f.world.PutColony(world.ColonySnapshot{
		Name:            "W1N1",
		MapStatus:       "normal",
		EnergyAvailable: 300,
		EnergyCapacity:  800,
		HasAnchor:       &noAnchor,
	})
	f.addOutpost("W1N2", 1, nil)

	// Act
	resp := f.prepare(t)

	// Assert
	require.Len(t, resp.Failures, 1)
	assert.Equal(t, "W1N2", resp.Failures[0].Outpost)
	var anchorErr *shared.MissingAnchorError
	assert.True(t, errors.As(resp.Err(), &anchorErr))
	assert.Len(t, f.logger.Entries("ERROR"), 1)
}

func TestPrepareOutposts_WorldErrorFailsOnlyThatOutpost(t *testing.T) {
	// Arrange
	f := newPrepareFixture(800)
	f.addOutpost("W1N2", 1, nil)
	f.addOutpost("W1N3", 1, nil)
	f.world.NodeErr["W1N2"] = errors.New("node lookup failed")

	// Act
	resp := f.prepare(t)

	// Assert
	require.Len(t, resp.Failures, 1)
	assert.Equal(t, "W1N2", resp.Failures[0].Outpost)
	assert.Equal(t, []string{"W1N3"}, resp.Processed)
	assert.Equal(t, 1, f.repo.SaveCount, "the ledger is saved despite failures")
}

func TestPrepareOutposts_UnobservedOutpostKeepsCachedState(t *testing.T) {
	// Arrange
	f := newPrepareFixture(800)
	outpost := f.addOutpost("W1N2", 1, nil)
	outpost.Observe(economy.Observation{DismantleTargets: 2}, economy.DefaultTuning())
	f.repo.AddOutpost(outpost)
	room, _ := f.world.Room("W1N2")
	room.Visible = false

	// Act
	resp := f.prepare(t)

	// Assert
	assert.Equal(t, []string{"W1N2"}, resp.Unobserved)
	stored := f.stored(t, "W1N2")
	assert.Equal(t, 2, stored.DismantlerNeed())
	assert.True(t, stored.IsBlocked())
	assert.Equal(t, 0.0, stored.Nodes()[0].MaxIncome(), "cached block still zeroes income")
	assert.Equal(t, 0, stored.ReserverNeed())
}

func TestPrepareOutposts_UnobservedUnblockedOutpostKeepsIncome(t *testing.T) {
	// Arrange
	f := newPrepareFixture(800)
	f.addOutpost("W1N2", 1, nil)
	room, _ := f.world.Room("W1N2")
	room.Visible = false

	// Act
	resp := f.prepare(t)

	// Assert
	assert.Equal(t, []string{"W1N2"}, resp.Unobserved)
	stored := f.stored(t, "W1N2")
	assert.False(t, stored.IsBlocked())
	assert.Equal(t, 10.0, stored.Nodes()[0].MaxIncome())
}

func TestPrepareOutposts_PathCheck(t *testing.T) {
	t.Run("route through enemy room disables cache", func(t *testing.T) {
		// Arrange
		f := newPrepareFixture(800)
		f.random.Hit = true
		f.addOutpost("W1N2", 1, nil)
		f.world.PutRoom(world.RoomSnapshot{Name: "W2N2", Type: string(economy.RoomTypeEnemy)})
		room, _ := f.world.Room("W1N2")
		room.Path = []string{"W1N1", "W2N2"}

		// Act
		f.prepare(t)

		// Assert
		assert.True(t, f.stored(t, "W1N2").PathCacheDisabled())
	})

	t.Run("route through abandoned outpost disables cache", func(t *testing.T) {
		// Arrange
		f := newPrepareFixture(800)
		f.random.Hit = true
		f.addOutpost("W1N2", 1, nil)
		blocker := f.addOutpost("W1N3", 1, nil)
		blocker.Abandon(50)
		f.repo.AddOutpost(blocker)
		room, _ := f.world.Room("W1N2")
		room.Path = []string{"W1N3"}

		// Act
		f.prepare(t)

		// Assert
		assert.True(t, f.stored(t, "W1N2").PathCacheDisabled())
	})

	t.Run("safe route keeps cache", func(t *testing.T) {
		// Arrange
		f := newPrepareFixture(800)
		f.random.Hit = true
		f.addOutpost("W1N2", 1, nil)
		room, _ := f.world.Room("W1N2")
		room.Path = []string{"W1N1", "W2N1"}

		// Act
		f.prepare(t)

		// Assert
		assert.False(t, f.stored(t, "W1N2").PathCacheDisabled())
	})
}

func TestPrepareOutposts_UnknownColonyFails(t *testing.T) {
	// Arrange
	f := newPrepareFixture(800)

	// Act
	_, err := f.handler.Handle(context.Background(), &commands.PrepareOutpostsCommand{ColonyName: "W9N9"})

	// Assert
	assert.Error(t, err)
}

func TestPrepareOutposts_RejectsWrongRequestType(t *testing.T) {
	// Arrange
	f := newPrepareFixture(800)

	// Act
	_, err := f.handler.Handle(context.Background(), &commands.SettleOutpostsCommand{})

	// Assert
	assert.EqualError(t, err, "invalid request type: expected *PrepareOutpostsCommand")
}
