package spawning_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/colonybot/internal/domain/spawning"
)

func TestBody_Cost(t *testing.T) {
	body := spawning.Body{spawning.PartClaim, spawning.PartMove}
	assert.Equal(t, 650, body.Cost())
	assert.Equal(t, 1, body.Count(spawning.PartClaim))
}

func TestParseBodyPart(t *testing.T) {
	part, ok := spawning.ParseBodyPart(" WORK ")
	assert.True(t, ok)
	assert.Equal(t, spawning.PartWork, part)

	_, ok = spawning.ParseBodyPart("laser")
	assert.False(t, ok)
}

func TestBodyFromStrings_SkipsUnknownParts(t *testing.T) {
	body := spawning.BodyFromStrings([]string{"work", "laser", "move"})
	assert.Equal(t, spawning.Body{spawning.PartWork, spawning.PartMove}, body)
	assert.Equal(t, []string{"work", "move"}, body.Strings())
}
