package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/andrescamacho/colonybot/internal/domain/spawning"
)

const (
	spawnStatusPending = "pending"
	spawnStatusDrained = "drained"
)

// GormProductionQueue implements ProductionQueue using GORM. Requests stay
// pending until the host drains them.
type GormProductionQueue struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormProductionQueue creates a new GORM production queue
func NewGormProductionQueue(db *gorm.DB) *GormProductionQueue {
	return &GormProductionQueue{db: db, now: time.Now}
}

// Enqueue appends a request
func (q *GormProductionQueue) Enqueue(ctx context.Context, request *spawning.ProductionRequest) error {
	model, err := requestToModel(request)
	if err != nil {
		return err
	}
	model.Status = spawnStatusPending
	model.CreatedAt = q.now()

	if err := q.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to enqueue spawn request: %w", err)
	}
	return nil
}

// ListPending returns a colony's pending requests, most urgent first
func (q *GormProductionQueue) ListPending(ctx context.Context, colonyName string) ([]*spawning.ProductionRequest, error) {
	var models []SpawnRequestModel
	if err := q.pending(ctx, colonyName).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list spawn requests: %w", err)
	}
	return modelsToRequests(models)
}

// Drain marks up to limit pending requests as handed to the host and returns
// them. A limit of 0 drains everything.
func (q *GormProductionQueue) Drain(ctx context.Context, colonyName string, limit int) ([]*spawning.ProductionRequest, error) {
	var drained []SpawnRequestModel

	err := q.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := tx.Where("colony_name = ? AND status = ?", colonyName, spawnStatusPending).
			Order("priority ASC, created_at ASC")
		if limit > 0 {
			query = query.Limit(limit)
		}
		if err := query.Find(&drained).Error; err != nil {
			return fmt.Errorf("failed to select spawn requests: %w", err)
		}
		if len(drained) == 0 {
			return nil
		}

		ids := make([]string, len(drained))
		for i, m := range drained {
			ids[i] = m.ID
		}

		if err := tx.Model(&SpawnRequestModel{}).
			Where("id IN ?", ids).
			Updates(map[string]interface{}{
				"status":     spawnStatusDrained,
				"drained_at": q.now(),
			}).Error; err != nil {
			return fmt.Errorf("failed to mark spawn requests drained: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return modelsToRequests(drained)
}

func (q *GormProductionQueue) pending(ctx context.Context, colonyName string) *gorm.DB {
	return q.db.WithContext(ctx).
		Where("colony_name = ? AND status = ?", colonyName, spawnStatusPending).
		Order("priority ASC, created_at ASC")
}

func requestToModel(request *spawning.ProductionRequest) (*SpawnRequestModel, error) {
	bodyJSON, err := json.Marshal(request.Body.Strings())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal body: %w", err)
	}

	memory := request.Memory
	if memory == nil {
		memory = map[string]string{}
	}
	memoryJSON, err := json.Marshal(memory)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal memory: %w", err)
	}

	return &SpawnRequestModel{
		ID:         request.ID,
		Name:       request.Name,
		ColonyName: request.ColonyName,
		Role:       request.Role,
		Priority:   request.Priority,
		Body:       string(bodyJSON),
		Tier:       request.Tier,
		Cost:       request.Cost,
		Memory:     string(memoryJSON),
	}, nil
}

func modelsToRequests(models []SpawnRequestModel) ([]*spawning.ProductionRequest, error) {
	requests := make([]*spawning.ProductionRequest, 0, len(models))
	for i := range models {
		req, err := modelToRequest(&models[i])
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, nil
}

func modelToRequest(model *SpawnRequestModel) (*spawning.ProductionRequest, error) {
	var parts []string
	if err := json.Unmarshal([]byte(model.Body), &parts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal body of %s: %w", model.ID, err)
	}
	body := spawning.BodyFromStrings(parts)

	var memory map[string]string
	if model.Memory != "" {
		if err := json.Unmarshal([]byte(model.Memory), &memory); err != nil {
			return nil, fmt.Errorf("failed to unmarshal memory of %s: %w", model.ID, err)
		}
	}

	return &spawning.ProductionRequest{
		ID:         model.ID,
		Name:       model.Name,
		ColonyName: model.ColonyName,
		Role:       model.Role,
		Priority:   model.Priority,
		Body:       body,
		Tier:       model.Tier,
		Cost:       model.Cost,
		Memory:     memory,
	}, nil
}
