package spawning_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/colonybot/internal/domain/spawning"
)

func validOpts() *spawning.SpawnRequestOpts {
	node := 1
	return &spawning.SpawnRequestOpts{
		Role:            spawning.RoleRemoteHarvester,
		ColonyName:      "W1N1",
		OutpostName:     "W1N2",
		NodeIndex:       &node,
		DefaultParts:    []spawning.BodyPart{spawning.PartMove},
		ExtraParts:      []spawning.BodyPart{spawning.PartWork, spawning.PartMove},
		PartsMultiplier: 5,
		MinCost:         200,
		Priority:        1,
	}
}

func TestSpawnRequestOpts_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, validOpts().Validate())
	})

	t.Run("missing role", func(t *testing.T) {
		opts := validOpts()
		opts.Role = ""
		err := opts.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Role")
	})

	t.Run("unknown part", func(t *testing.T) {
		opts := validOpts()
		opts.ExtraParts = []spawning.BodyPart{"laser"}
		err := opts.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bodypart")
	})

	t.Run("threshold above one", func(t *testing.T) {
		opts := validOpts()
		opts.Threshold = 1.5
		assert.Error(t, opts.Validate())
	})
}

func TestSpawnRequestOpts_Mode(t *testing.T) {
	opts := validOpts()
	assert.False(t, opts.Individually())
	assert.Equal(t, spawning.DefaultThreshold, opts.EffectiveThreshold())

	opts.MinCreeps = 1
	opts.Threshold = 0.5
	assert.True(t, opts.Individually())
	assert.Equal(t, 0.5, opts.EffectiveThreshold())
}

func TestSpawnRequestOpts_FilterAndMemory(t *testing.T) {
	// Arrange
	opts := validOpts()
	filter := opts.Filter()

	// Act & Assert
	assert.True(t, filter.Matches(spawning.Unit{Role: spawning.RoleRemoteHarvester, OutpostName: "W1N2", NodeIndex: 1}))
	assert.False(t, filter.Matches(spawning.Unit{Role: spawning.RoleRemoteHarvester, OutpostName: "W1N2", NodeIndex: 0}))
	assert.False(t, filter.Matches(spawning.Unit{Role: spawning.RoleRemoteHauler, OutpostName: "W1N2", NodeIndex: 1}))
	assert.Equal(t, map[string]string{
		"role":    spawning.RoleRemoteHarvester,
		"colony":  "W1N1",
		"outpost": "W1N2",
		"node":    "1",
	}, opts.Memory())
}

func TestNewProductionRequest_NameCarriesRoleAndTier(t *testing.T) {
	// Arrange
	opts := validOpts()
	built := spawning.BuiltBody{
		Body: spawning.Body{spawning.PartMove, spawning.PartWork, spawning.PartMove},
		Tier: 2,
		Cost: 200,
	}

	// Act
	req := spawning.NewProductionRequest(opts, built)

	// Assert
	assert.Regexp(t, regexp.MustCompile(`^remoteSourceHarvester, T2, [0-9a-f]{8}$`), req.Name)
	assert.Len(t, req.ID, 8)
	assert.Equal(t, 200, req.Cost)
	assert.Equal(t, "W1N1", req.ColonyName)
	assert.Equal(t, "W1N2", req.Memory["outpost"])
}
