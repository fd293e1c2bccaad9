package spawning

// BodySpec bounds a single body build
type BodySpec struct {
	DefaultParts []BodyPart
	ExtraParts   []BodyPart

	// Extra parts this body may take
	MaxExtraParts int

	CostCeiling int
	MinCost     int

	// 0 means MaxBodySize
	MaxBodySize int
}

// BuiltBody is the result of a successful build
type BuiltBody struct {
	Body       Body
	Tier       int
	Cost       int
	ExtraCount int
}

// BuildBody packs the default parts once, then whole groups of extra parts
// until the cost ceiling or the extra allotment is reached, and trims from the
// end on overshoot. It returns false when no body satisfies
// MinCost <= cost <= CostCeiling with at least one extra part.
func BuildBody(spec BodySpec) (BuiltBody, bool) {
	maxSize := spec.MaxBodySize
	if maxSize <= 0 || maxSize > MaxBodySize {
		maxSize = MaxBodySize
	}

	body := make(Body, 0, maxSize)
	cost := 0
	tier := 0

	if len(spec.DefaultParts) > 0 {
		defaults := Body(spec.DefaultParts)
		if len(defaults) > maxSize || defaults.Cost() > spec.CostCeiling {
			return BuiltBody{}, false
		}
		body = append(body, defaults...)
		cost = defaults.Cost()
		tier = 1
	}

	if len(spec.ExtraParts) == 0 {
		if len(body) == 0 || cost < spec.MinCost {
			return BuiltBody{}, false
		}
		return BuiltBody{Body: body, Tier: tier, Cost: cost}, true
	}

	allowed := spec.MaxExtraParts
	if room := maxSize - len(spec.DefaultParts); allowed > room {
		allowed = room
	}
	if allowed <= 0 {
		return BuiltBody{}, false
	}

	group := Body(spec.ExtraParts)
	groupCost := group.Cost()
	if cost+groupCost > spec.CostCeiling {
		return BuiltBody{}, false
	}

	extra := 0
	for cost < spec.CostCeiling && extra < allowed {
		body = append(body, group...)
		cost += groupCost
		extra += len(group)
	}

	for (cost > spec.CostCeiling || extra > allowed) && extra > 0 {
		last := body[len(body)-1]
		if cost-last.Cost() < spec.MinCost {
			break
		}
		body = body[:len(body)-1]
		cost -= last.Cost()
		extra--
	}

	if cost > spec.CostCeiling || extra > allowed || extra == 0 || cost < spec.MinCost {
		return BuiltBody{}, false
	}

	tier += extra / len(group)
	return BuiltBody{Body: body, Tier: tier, Cost: cost, ExtraCount: extra}, true
}
