package spawning

import (
	"fmt"

	"github.com/google/uuid"
)

// ProductionRequest is a fully specified, cost-bounded worker queued for the
// host's spawn mechanism
type ProductionRequest struct {
	ID         string
	Name       string
	ColonyName string
	Role       string
	Priority   float64
	Body       Body
	Tier       int
	Cost       int
	Memory     map[string]string
}

// NewProductionRequest creates a request with a fresh identity. The worker
// name follows "<role>, T<tier>, <id>".
func NewProductionRequest(opts *SpawnRequestOpts, built BuiltBody) *ProductionRequest {
	id := shortID()
	return &ProductionRequest{
		ID:         id,
		Name:       fmt.Sprintf("%s, T%d, %s", opts.Role, built.Tier, id),
		ColonyName: opts.ColonyName,
		Role:       opts.Role,
		Priority:   opts.Priority,
		Body:       built.Body,
		Tier:       built.Tier,
		Cost:       built.Cost,
		Memory:     opts.Memory(),
	}
}

func shortID() string {
	id := uuid.New()
	return id.String()[:8]
}

// String provides human-readable representation
func (r *ProductionRequest) String() string {
	return fmt.Sprintf("ProductionRequest[%s, priority=%.2f, parts=%d, cost=%d]",
		r.Name, r.Priority, len(r.Body), r.Cost)
}
