package commands

import (
	"context"
	"fmt"
	"math"

	"github.com/andrescamacho/colonybot/internal/adapters/metrics"
	"github.com/andrescamacho/colonybot/internal/application/common"
	"github.com/andrescamacho/colonybot/internal/domain/spawning"
)

// ConstructSpawnRequestsCommand turns one requirement descriptor into
// production requests
type ConstructSpawnRequestsCommand struct {
	Opts spawning.SpawnRequestOpts
}

// ConstructSpawnRequestsResponse lists the enqueued requests
type ConstructSpawnRequestsResponse struct {
	Requests []*spawning.ProductionRequest
	Existing int
	Ceiling  int
	// Starved is set when the ceiling could not afford a single body
	Starved bool
}

// ConstructSpawnRequestsHandler is the unit composition allocator
type ConstructSpawnRequestsHandler struct {
	population  spawning.PopulationReader
	energy      spawning.EnergyReader
	queue       spawning.ProductionQueue
	maxBodySize int
}

// NewConstructSpawnRequestsHandler creates a new allocator handler
func NewConstructSpawnRequestsHandler(
	population spawning.PopulationReader,
	energy spawning.EnergyReader,
	queue spawning.ProductionQueue,
	maxBodySize int,
) *ConstructSpawnRequestsHandler {
	if maxBodySize <= 0 || maxBodySize > spawning.MaxBodySize {
		maxBodySize = spawning.MaxBodySize
	}

	return &ConstructSpawnRequestsHandler{
		population:  population,
		energy:      energy,
		queue:       queue,
		maxBodySize: maxBodySize,
	}
}

// Handle executes the construct spawn requests command
func (h *ConstructSpawnRequestsHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*ConstructSpawnRequestsCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ConstructSpawnRequestsCommand")
	}

	opts := &cmd.Opts
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	ceiling, err := h.resolveCeiling(ctx, opts)
	if err != nil {
		return nil, err
	}

	existing, err := h.population.Units(ctx, opts.ColonyName, opts.Filter())
	if err != nil {
		return nil, fmt.Errorf("failed to list existing units: %w", err)
	}

	response := &ConstructSpawnRequestsResponse{
		Existing: len(existing),
		Ceiling:  ceiling,
	}

	var bodies []spawning.BuiltBody
	if opts.Individually() {
		bodies, response.Starved = h.buildIndividually(opts, existing, ceiling)
	} else {
		bodies, response.Starved = h.buildByGroup(opts, existing, ceiling)
	}

	if response.Starved {
		metrics.RecordStarvation(opts.ColonyName, opts.Role)

		logger := common.LoggerFromContext(ctx)
		logger.Log("DEBUG", "No affordable body", map[string]interface{}{
			"colony":   opts.ColonyName,
			"role":     opts.Role,
			"ceiling":  ceiling,
			"min_cost": opts.MinCost,
		})
	}

	for _, built := range bodies {
		req, err := h.enqueue(ctx, opts, built)
		if err != nil {
			return nil, err
		}
		response.Requests = append(response.Requests, req)
	}

	return response, nil
}

func (h *ConstructSpawnRequestsHandler) resolveCeiling(ctx context.Context, opts *spawning.SpawnRequestOpts) (int, error) {
	energy, err := h.energy.Energy(ctx, opts.ColonyName)
	if err != nil {
		return 0, fmt.Errorf("failed to get colony energy: %w", err)
	}

	foundation, err := hasFoundation(ctx, h.population, opts.ColonyName)
	if err != nil {
		return 0, err
	}

	return DecideMaxCostPerCreep(energy, foundation, opts.MaxCostPerCreep), nil
}

// buildIndividually builds one minimal body per worker missing from
// MinCreeps. The outstanding count drops on every attempt.
func (h *ConstructSpawnRequestsHandler) buildIndividually(
	opts *spawning.SpawnRequestOpts,
	existing []spawning.Unit,
	ceiling int,
) ([]spawning.BuiltBody, bool) {
	allowed := int(math.Floor(float64(len(opts.ExtraParts)) * opts.PartsMultiplier))
	if room := h.maxBodySize - len(opts.DefaultParts); allowed > room {
		allowed = room
	}

	spec := h.bodySpec(opts, allowed, ceiling)

	var bodies []spawning.BuiltBody
	for missing := opts.MinCreeps - len(existing); missing > 0; missing-- {
		built, ok := spawning.BuildBody(spec)
		if !ok {
			return bodies, true
		}
		bodies = append(bodies, built)
	}
	return bodies, false
}

// buildByGroup spreads the unassigned extra parts over as many full bodies
// as MaxCreeps still allows
func (h *ConstructSpawnRequestsHandler) buildByGroup(
	opts *spawning.SpawnRequestOpts,
	existing []spawning.Unit,
	ceiling int,
) ([]spawning.BuiltBody, bool) {
	if len(opts.ExtraParts) == 0 {
		return nil, false
	}

	pool := int(math.Floor(float64(len(opts.ExtraParts)) * opts.PartsMultiplier))

	unassigned := pool
	for _, u := range existing {
		if assigned := u.BodyLength - len(opts.DefaultParts); assigned > 0 {
			unassigned -= assigned
		}
	}

	maxPartsPerCreep := h.maxBodySize - len(opts.DefaultParts)
	if pool < maxPartsPerCreep {
		maxPartsPerCreep = pool
	}

	if unassigned <= 0 || float64(unassigned) < opts.EffectiveThreshold()*float64(maxPartsPerCreep) {
		return nil, false
	}

	remaining := math.MaxInt
	if opts.MaxCreeps > 0 {
		remaining = opts.MaxCreeps - len(existing)
	}

	spec := h.bodySpec(opts, maxPartsPerCreep, ceiling)

	var bodies []spawning.BuiltBody
	for unassigned >= len(opts.ExtraParts) && remaining > 0 {
		built, ok := spawning.BuildBody(spec)
		if !ok {
			return bodies, len(bodies) == 0
		}
		bodies = append(bodies, built)
		unassigned -= built.ExtraCount
		remaining--
	}
	return bodies, false
}

func (h *ConstructSpawnRequestsHandler) bodySpec(opts *spawning.SpawnRequestOpts, maxExtra, ceiling int) spawning.BodySpec {
	return spawning.BodySpec{
		DefaultParts:  opts.DefaultParts,
		ExtraParts:    opts.ExtraParts,
		MaxExtraParts: maxExtra,
		CostCeiling:   ceiling,
		MinCost:       opts.MinCost,
		MaxBodySize:   h.maxBodySize,
	}
}

func (h *ConstructSpawnRequestsHandler) enqueue(
	ctx context.Context,
	opts *spawning.SpawnRequestOpts,
	built spawning.BuiltBody,
) (*spawning.ProductionRequest, error) {
	req := spawning.NewProductionRequest(opts, built)
	if err := h.queue.Enqueue(ctx, req); err != nil {
		return nil, fmt.Errorf("failed to enqueue %s: %w", req.Name, err)
	}

	metrics.RecordSpawnRequest(opts.ColonyName, opts.Role, built.Tier, built.Cost)

	logger := common.LoggerFromContext(ctx)
	logger.Log("DEBUG", "Spawn request emitted", map[string]interface{}{
		"colony":   opts.ColonyName,
		"role":     opts.Role,
		"name":     req.Name,
		"priority": req.Priority,
		"parts":    len(req.Body),
		"tier":     req.Tier,
		"cost":     req.Cost,
	})
	return req, nil
}
