package spawning

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// DefaultThreshold is the share of a full body the unassigned pool must reach
// before a group spawn is worth it
const DefaultThreshold = 0.25

// SpawnRequestOpts describes a capability requirement for the allocator.
// MinCreeps > 0 selects individual mode; otherwise requests are built by group.
type SpawnRequestOpts struct {
	Role        string `validate:"required"`
	ColonyName  string `validate:"required"`
	OutpostName string
	NodeIndex   *int

	DefaultParts    []BodyPart `validate:"dive,bodypart"`
	ExtraParts      []BodyPart `validate:"dive,bodypart"`
	PartsMultiplier float64    `validate:"min=0"`

	MinCreeps int `validate:"min=0"`
	// 0 leaves the group unbounded; only the part pool limits it
	MaxCreeps int `validate:"min=0"`

	MinCost int `validate:"min=0"`
	// 0 means no caller ceiling
	MaxCostPerCreep int `validate:"min=0"`

	Priority float64
	// 0 means DefaultThreshold
	Threshold float64 `validate:"min=0,max=1"`
}

// Individually reports whether requests are built one per missing worker
func (o *SpawnRequestOpts) Individually() bool {
	return o.MinCreeps > 0
}

// EffectiveThreshold resolves the group threshold default
func (o *SpawnRequestOpts) EffectiveThreshold() float64 {
	if o.Threshold <= 0 {
		return DefaultThreshold
	}
	return o.Threshold
}

// Filter selects the existing workers that count toward this requirement
func (o *SpawnRequestOpts) Filter() UnitFilter {
	return UnitFilter{Role: o.Role, OutpostName: o.OutpostName, NodeIndex: o.NodeIndex}
}

// Memory is the tag carried by emitted requests
func (o *SpawnRequestOpts) Memory() map[string]string {
	m := map[string]string{
		"role":   o.Role,
		"colony": o.ColonyName,
	}
	if o.OutpostName != "" {
		m["outpost"] = o.OutpostName
	}
	if o.NodeIndex != nil {
		m["node"] = fmt.Sprintf("%d", *o.NodeIndex)
	}
	return m
}

var optsValidator = newOptsValidator()

func newOptsValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("bodypart", func(fl validator.FieldLevel) bool {
		return BodyPart(fl.Field().String()).IsValid()
	})
	return v
}

// Validate checks the descriptor's tags
func (o *SpawnRequestOpts) Validate() error {
	if err := optsValidator.Struct(o); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			var messages []string
			for _, e := range verrs {
				messages = append(messages, fmt.Sprintf("%s failed %s", e.Namespace(), e.Tag()))
			}
			return fmt.Errorf("invalid spawn request opts: %s", strings.Join(messages, "; "))
		}
		return err
	}
	return nil
}
