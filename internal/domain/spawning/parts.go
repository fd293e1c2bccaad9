package spawning

import "strings"

// BodyPart is an atomic capability unit of a worker
type BodyPart string

const (
	PartMove         BodyPart = "move"
	PartWork         BodyPart = "work"
	PartCarry        BodyPart = "carry"
	PartAttack       BodyPart = "attack"
	PartRangedAttack BodyPart = "ranged_attack"
	PartHeal         BodyPart = "heal"
	PartClaim        BodyPart = "claim"
	PartTough        BodyPart = "tough"
)

// MaxBodySize is the host's limit on parts per worker
const MaxBodySize = 50

// partCosts is the energy cost of each part
var partCosts = map[BodyPart]int{
	PartMove:         50,
	PartWork:         100,
	PartCarry:        50,
	PartAttack:       80,
	PartRangedAttack: 150,
	PartHeal:         250,
	PartClaim:        600,
	PartTough:        10,
}

// Cost returns the energy cost of the part, 0 for unknown parts
func (p BodyPart) Cost() int {
	return partCosts[p]
}

// IsValid reports whether the part is known to the host
func (p BodyPart) IsValid() bool {
	_, ok := partCosts[p]
	return ok
}

// ParseBodyPart converts a string to a BodyPart
func ParseBodyPart(s string) (BodyPart, bool) {
	p := BodyPart(strings.ToLower(strings.TrimSpace(s)))
	return p, p.IsValid()
}

// Body is an ordered list of parts
type Body []BodyPart

// Cost sums the cost of every part
func (b Body) Cost() int {
	total := 0
	for _, p := range b {
		total += p.Cost()
	}
	return total
}

// Count returns how many parts of the given kind the body has
func (b Body) Count(part BodyPart) int {
	n := 0
	for _, p := range b {
		if p == part {
			n++
		}
	}
	return n
}

func (b Body) Strings() []string {
	out := make([]string, len(b))
	for i, p := range b {
		out[i] = string(p)
	}
	return out
}

// BodyFromStrings converts stored part names back into a Body, skipping
// unknown names
func BodyFromStrings(parts []string) Body {
	body := make(Body, 0, len(parts))
	for _, s := range parts {
		if p, ok := ParseBodyPart(s); ok {
			body = append(body, p)
		}
	}
	return body
}
