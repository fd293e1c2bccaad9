package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/andrescamacho/colonybot/internal/adapters/metrics"
	"github.com/andrescamacho/colonybot/internal/application/common"
	"github.com/andrescamacho/colonybot/internal/domain/economy"
	"github.com/andrescamacho/colonybot/internal/domain/shared"
)

// PrepareOutpostsCommand runs the prepare pass over every outpost of a colony
type PrepareOutpostsCommand struct {
	ColonyName string
}

// OutpostFailure is an outpost whose cycle was aborted
type OutpostFailure struct {
	Outpost string
	Err     error
}

// PrepareOutpostsResponse summarizes the prepare pass
type PrepareOutpostsResponse struct {
	Processed  []string
	Removed    []string
	Abandoned  []string
	Propagated []string
	Unobserved []string
	Failures   []OutpostFailure
}

// Err joins every per-outpost failure, nil when there were none
func (r *PrepareOutpostsResponse) Err() error {
	if len(r.Failures) == 0 {
		return nil
	}
	errs := make([]error, len(r.Failures))
	for i, f := range r.Failures {
		errs[i] = f.Err
	}
	return errors.Join(errs...)
}

// PrepareOutpostsHandler resets, reclassifies, observes and decays the
// outpost ledgers ahead of the cycle's income events
type PrepareOutpostsHandler struct {
	ledgerRepo economy.LedgerRepository
	world      economy.WorldQuery
	ticks      shared.TickSource
	random     shared.RandomSource
	tuning     economy.Tuning
}

// NewPrepareOutpostsHandler creates a new prepare pass handler
func NewPrepareOutpostsHandler(
	ledgerRepo economy.LedgerRepository,
	world economy.WorldQuery,
	ticks shared.TickSource,
	random shared.RandomSource,
	tuning economy.Tuning,
) *PrepareOutpostsHandler {
	if random == nil {
		random = shared.NewRealRandom()
	}

	return &PrepareOutpostsHandler{
		ledgerRepo: ledgerRepo,
		world:      world,
		ticks:      ticks,
		random:     random,
		tuning:     tuning,
	}
}

// Handle executes the prepare pass
func (h *PrepareOutpostsHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*PrepareOutpostsCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *PrepareOutpostsCommand")
	}

	colony, err := h.world.Colony(ctx, cmd.ColonyName)
	if err != nil {
		return nil, fmt.Errorf("failed to get colony status: %w", err)
	}

	ledger, err := h.ledgerRepo.Load(ctx, cmd.ColonyName)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}

	response := &PrepareOutpostsResponse{}
	for _, outpost := range ledger.Outposts() {
		// An earlier outpost may have removed this one
		if _, ok := ledger.Outpost(outpost.Name()); !ok {
			continue
		}

		if err := h.prepareOutpost(ctx, colony, ledger, outpost, response); err != nil {
			h.recordFailure(ctx, colony.Name, outpost.Name(), err, response)
		}
	}

	if err := h.ledgerRepo.Save(ctx, ledger); err != nil {
		return nil, fmt.Errorf("failed to save ledger: %w", err)
	}

	return response, nil
}

func (h *PrepareOutpostsHandler) prepareOutpost(
	ctx context.Context,
	colony *economy.ColonyStatus,
	ledger *economy.Ledger,
	outpost *economy.Outpost,
	response *PrepareOutpostsResponse,
) error {
	logger := common.WithFields(common.LoggerFromContext(ctx), map[string]interface{}{
		"colony":  colony.Name,
		"outpost": outpost.Name(),
	})

	outpost.ResetCycle()

	status, err := h.world.RoomStatus(ctx, outpost.Name())
	if err != nil {
		return fmt.Errorf("failed to get status of outpost %s: %w", outpost.Name(), err)
	}

	if reason := h.removalReason(colony, status); reason != "" {
		ledger.Remove(outpost.Name())
		response.Removed = append(response.Removed, outpost.Name())
		metrics.RecordOutpostRemoved(colony.Name, reason)
		logger.Log("INFO", "Outpost removed from ledger", map[string]interface{}{
			"reason":       reason,
			"room_type":    string(status.Type),
			"owner_colony": status.OwnerColony,
		})
		return nil
	}

	if outpost.IsAbandoned() {
		h.propagate(ctx, ledger, outpost, response)
		outpost.TickAbandonment()
		return nil
	}

	if !colony.HasAnchor {
		return shared.NewMissingAnchorError(colony.Name, outpost.Name())
	}

	pathLength, err := h.world.PathLength(ctx, colony.Name, outpost.Name())
	if err != nil {
		return fmt.Errorf("failed to get path length of outpost %s: %w", outpost.Name(), err)
	}
	outpost.UpdateRoute(pathLength, outpost.PathsThrough())

	if h.random.OneIn(h.tuning.PathCheckOneIn) {
		if err := h.checkPathCache(ctx, colony.Name, ledger, outpost); err != nil {
			return err
		}
	}

	incomes, err := h.nodeIncomes(ctx, outpost)
	if err != nil {
		return err
	}
	outpost.SeedIncome(incomes, h.tuning.BaselineIncome(), h.tuning.ReserverBaseline)

	visible := h.world.IsVisible(ctx, outpost.Name())

	reservation := economy.ReservationInfo{Status: economy.ReservationNone}
	if visible {
		info, err := h.world.Reservation(ctx, outpost.Name())
		if err != nil {
			return fmt.Errorf("failed to get reservation of outpost %s: %w", outpost.Name(), err)
		}
		reservation = *info
	}
	outpost.ApplyReservation(colony.EnergyCapacity, reservation.Status, reservation.TicksRemaining, h.tuning)

	if !visible {
		// cached flags still decide whether the outpost is contested
		outpost.ApplyBlock()
		response.Unobserved = append(response.Unobserved, outpost.Name())
		response.Processed = append(response.Processed, outpost.Name())
		return nil
	}

	obs, err := h.observe(ctx, outpost, reservation.Status)
	if err != nil {
		return err
	}

	if score, hostile := outpost.Observe(obs, h.tuning); hostile {
		duration := h.random.RangeInt(score, score+h.tuning.AbandonJitter)
		if duration < 1 {
			duration = 1
		}
		outpost.Abandon(duration)
		outpost.MarkDanger(h.ticks.CurrentTick() + duration)

		response.Abandoned = append(response.Abandoned, outpost.Name())
		metrics.RecordOutpostAbandoned(colony.Name, "hostiles")
		logger.Log("WARNING", "Outpost abandoned", map[string]interface{}{
			"danger_score": score,
			"duration":     duration,
			"hostiles":     len(obs.Hostiles),
		})

		h.propagate(ctx, ledger, outpost, response)
		return nil
	}

	outpost.ApplyDecay(h.tuning)
	outpost.ApplyBlock()

	if outpost.IsBlocked() {
		logger.Log("DEBUG", "Outpost blocked", map[string]interface{}{
			"enemy_reserved":  outpost.EnemyReserved(),
			"hostile_cores":   outpost.HostileCores(),
			"dismantler_need": outpost.DismantlerNeed(),
		})
	}

	response.Processed = append(response.Processed, outpost.Name())
	return nil
}

// removalReason returns why the outpost no longer belongs in the ledger, or
// an empty string when it still does
func (h *PrepareOutpostsHandler) removalReason(colony *economy.ColonyStatus, status *economy.OutpostStatus) string {
	if status.Type != economy.RoomTypeRemote || status.OwnerColony != colony.Name {
		return "reclassified"
	}
	if status.MapStatus != colony.MapStatus {
		return "cross_status"
	}
	return ""
}

func (h *PrepareOutpostsHandler) propagate(
	ctx context.Context,
	ledger *economy.Ledger,
	outpost *economy.Outpost,
	response *PrepareOutpostsResponse,
) {
	if outpost.RecursedAbandon() {
		return
	}

	raised := ledger.PropagateAbandonment(outpost.Name())
	if len(raised) == 0 {
		return
	}

	response.Propagated = append(response.Propagated, raised...)
	for range raised {
		metrics.RecordOutpostAbandoned(ledger.ColonyName(), "propagated")
	}

	logger := common.LoggerFromContext(ctx)
	logger.Log("INFO", "Abandonment propagated", map[string]interface{}{
		"colony":     ledger.ColonyName(),
		"outpost":    outpost.Name(),
		"countdown":  outpost.AbandonCountdown(),
		"dependents": raised,
	})
}

// checkPathCache disables the cached route when it crosses a room that is
// unsafe to traverse or an outpost in abandonment
func (h *PrepareOutpostsHandler) checkPathCache(
	ctx context.Context,
	colonyName string,
	ledger *economy.Ledger,
	outpost *economy.Outpost,
) error {
	rooms, err := h.world.PathRooms(ctx, colonyName, outpost.Name())
	if err != nil {
		return fmt.Errorf("failed to get route of outpost %s: %w", outpost.Name(), err)
	}

	unsafe := false
	for _, room := range rooms {
		if other, ok := ledger.Outpost(room); ok && other.IsAbandoned() {
			unsafe = true
			break
		}

		status, err := h.world.RoomStatus(ctx, room)
		if err != nil {
			return fmt.Errorf("failed to get status of room %s: %w", room, err)
		}
		if !status.Type.IsTraversable() {
			unsafe = true
			break
		}
	}

	outpost.SetPathCacheDisabled(unsafe)
	return nil
}

func (h *PrepareOutpostsHandler) nodeIncomes(ctx context.Context, outpost *economy.Outpost) ([]float64, error) {
	incomes := make([]float64, len(outpost.Nodes()))
	for i := range incomes {
		info, err := h.world.Node(ctx, outpost.Name(), i)
		if err != nil {
			return nil, fmt.Errorf("failed to get node %d of outpost %s: %w", i, outpost.Name(), err)
		}

		incomes[i] = h.tuning.BaselineIncome()
		if info.RegenPeriod > 0 {
			incomes[i] = info.RegenCapacity / info.RegenPeriod
		}
	}
	return incomes, nil
}

func (h *PrepareOutpostsHandler) observe(
	ctx context.Context,
	outpost *economy.Outpost,
	reservation economy.ReservationStatus,
) (economy.Observation, error) {
	obs := economy.Observation{
		Containers:  make([]bool, len(outpost.Nodes())),
		Reservation: reservation,
	}

	for i := range obs.Containers {
		info, err := h.world.Node(ctx, outpost.Name(), i)
		if err != nil {
			return obs, fmt.Errorf("failed to get node %d of outpost %s: %w", i, outpost.Name(), err)
		}
		obs.Containers[i] = info.HasContainer
	}

	hostiles, err := h.world.Hostiles(ctx, outpost.Name())
	if err != nil {
		return obs, fmt.Errorf("failed to get hostiles of outpost %s: %w", outpost.Name(), err)
	}
	obs.Hostiles = hostiles

	structures, err := h.world.Structures(ctx, outpost.Name())
	if err != nil {
		return obs, fmt.Errorf("failed to get structures of outpost %s: %w", outpost.Name(), err)
	}
	obs.HostileCores = structures.HostileCores
	obs.DismantleTargets = structures.DismantleTargets

	return obs, nil
}

func (h *PrepareOutpostsHandler) recordFailure(
	ctx context.Context,
	colonyName, outpostName string,
	err error,
	response *PrepareOutpostsResponse,
) {
	response.Failures = append(response.Failures, OutpostFailure{Outpost: outpostName, Err: err})
	metrics.RecordOutpostFailure(colonyName)

	logger := common.LoggerFromContext(ctx)
	logger.Log("ERROR", "Outpost cycle aborted", map[string]interface{}{
		"colony":  colonyName,
		"outpost": outpostName,
		"error":   err.Error(),
	})
}
