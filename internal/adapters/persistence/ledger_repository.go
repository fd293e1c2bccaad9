package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/andrescamacho/colonybot/internal/domain/economy"
)

// GormLedgerRepository implements LedgerRepository using GORM
type GormLedgerRepository struct {
	db *gorm.DB
}

// NewGormLedgerRepository creates a new GORM ledger repository
func NewGormLedgerRepository(db *gorm.DB) *GormLedgerRepository {
	return &GormLedgerRepository{db: db}
}

// Load retrieves every outpost of a colony with its nodes. An unknown colony
// yields an empty ledger.
func (r *GormLedgerRepository) Load(ctx context.Context, colonyName string) (*economy.Ledger, error) {
	var outposts []OutpostModel
	if err := r.db.WithContext(ctx).
		Where("colony_name = ?", colonyName).
		Order("name").
		Find(&outposts).Error; err != nil {
		return nil, fmt.Errorf("failed to load outposts: %w", err)
	}

	var nodes []ResourceNodeModel
	if err := r.db.WithContext(ctx).
		Where("colony_name = ?", colonyName).
		Order("outpost_name, node_index").
		Find(&nodes).Error; err != nil {
		return nil, fmt.Errorf("failed to load resource nodes: %w", err)
	}

	nodesByOutpost := make(map[string][]ResourceNodeModel)
	for _, n := range nodes {
		nodesByOutpost[n.OutpostName] = append(nodesByOutpost[n.OutpostName], n)
	}

	ledger := economy.NewLedger(colonyName)
	for i := range outposts {
		data, err := modelToOutpostData(&outposts[i], nodesByOutpost[outposts[i].Name])
		if err != nil {
			return nil, err
		}
		ledger.Add(economy.OutpostFromData(data))
	}

	return ledger, nil
}

// Save upserts every outpost of the ledger and deletes the colony's records
// that are no longer in it
func (r *GormLedgerRepository) Save(ctx context.Context, ledger *economy.Ledger) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		names := ledger.Names()

		stale := tx.Where("colony_name = ?", ledger.ColonyName())
		if len(names) > 0 {
			stale = stale.Where("name NOT IN ?", names)
		}
		if err := stale.Delete(&OutpostModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete removed outposts: %w", err)
		}

		// Nodes are rewritten wholesale; node counts can change on re-registration
		if err := tx.Where("colony_name = ?", ledger.ColonyName()).
			Delete(&ResourceNodeModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete old resource nodes: %w", err)
		}

		now := time.Now()
		for _, outpost := range ledger.Outposts() {
			model, nodes, err := outpostToModels(outpost.ToData())
			if err != nil {
				return err
			}
			model.UpdatedAt = now

			if err := tx.Save(model).Error; err != nil {
				return fmt.Errorf("failed to save outpost %s: %w", outpost.Name(), err)
			}
			if len(nodes) > 0 {
				if err := tx.Create(&nodes).Error; err != nil {
					return fmt.Errorf("failed to save nodes of outpost %s: %w", outpost.Name(), err)
				}
			}
		}

		return nil
	})
}

func modelToOutpostData(model *OutpostModel, nodes []ResourceNodeModel) (*economy.OutpostData, error) {
	var pathsThrough []string
	if model.PathsThrough != "" {
		if err := json.Unmarshal([]byte(model.PathsThrough), &pathsThrough); err != nil {
			return nil, fmt.Errorf("failed to unmarshal paths through of outpost %s: %w", model.Name, err)
		}
	}

	data := &economy.OutpostData{
		Name:              model.Name,
		ColonyName:        model.ColonyName,
		PathLength:        model.PathLength,
		PathsThrough:      pathsThrough,
		AbandonCountdown:  model.AbandonCountdown,
		RecursedAbandon:   model.RecursedAbandon,
		PathCacheDisabled: model.PathCacheDisabled,
		DangerUntil:       model.DangerUntil,
		EnemyReserved:     model.EnemyReserved,
		HostileCores:      model.HostileCores,
		DismantlerNeed:    model.DismantlerNeed,
		CoreAttackerNeed:  model.CoreAttackerNeed,
		Reserver:          model.Reserver,
		Nodes:             make([]economy.NodeData, 0, len(nodes)),
	}

	for _, n := range nodes {
		data.Nodes = append(data.Nodes, economy.NodeData{
			Index:        n.NodeIndex,
			Credit:       n.Credit,
			CreditChange: n.CreditChange,
			MaxIncome:    n.MaxIncome,
			HasContainer: n.HasContainer,
			Hauler:       n.Hauler,
			Harvester:    n.Harvester,
		})
	}

	return data, nil
}

func outpostToModels(data *economy.OutpostData) (*OutpostModel, []ResourceNodeModel, error) {
	if data.PathsThrough == nil {
		data.PathsThrough = []string{}
	}
	pathsJSON, err := json.Marshal(data.PathsThrough)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal paths through: %w", err)
	}

	model := &OutpostModel{
		ColonyName:        data.ColonyName,
		Name:              data.Name,
		PathLength:        data.PathLength,
		PathsThrough:      string(pathsJSON),
		AbandonCountdown:  data.AbandonCountdown,
		RecursedAbandon:   data.RecursedAbandon,
		PathCacheDisabled: data.PathCacheDisabled,
		DangerUntil:       data.DangerUntil,
		EnemyReserved:     data.EnemyReserved,
		HostileCores:      data.HostileCores,
		DismantlerNeed:    data.DismantlerNeed,
		CoreAttackerNeed:  data.CoreAttackerNeed,
		Reserver:          data.Reserver,
	}

	nodes := make([]ResourceNodeModel, len(data.Nodes))
	for i, n := range data.Nodes {
		nodes[i] = ResourceNodeModel{
			ColonyName:   data.ColonyName,
			OutpostName:  data.Name,
			NodeIndex:    n.Index,
			Credit:       n.Credit,
			CreditChange: n.CreditChange,
			MaxIncome:    n.MaxIncome,
			HasContainer: n.HasContainer,
			Hauler:       n.Hauler,
			Harvester:    n.Harvester,
		}
	}

	return model, nodes, nil
}
