package helpers

import (
	"context"
	"sync"

	"github.com/andrescamacho/colonybot/internal/domain/economy"
)

// MockLedgerRepository is an in-memory LedgerRepository. Ledgers are stored
// as DTOs so every Load returns fresh entities, like the database does.
type MockLedgerRepository struct {
	mu      sync.RWMutex
	ledgers map[string][]*economy.OutpostData

	// LoadErr and SaveErr are returned when set
	LoadErr error
	SaveErr error

	SaveCount int
}

// NewMockLedgerRepository creates an empty mock ledger repository
func NewMockLedgerRepository() *MockLedgerRepository {
	return &MockLedgerRepository{
		ledgers: make(map[string][]*economy.OutpostData),
	}
}

// AddOutpost stores an outpost directly, bypassing Save
func (m *MockLedgerRepository) AddOutpost(o *economy.Outpost) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data := o.ToData()
	outposts := m.ledgers[data.ColonyName]
	for i, existing := range outposts {
		if existing.Name == data.Name {
			outposts[i] = data
			return
		}
	}
	m.ledgers[data.ColonyName] = append(outposts, data)
}

// Outpost returns a fresh copy of a stored outpost
func (m *MockLedgerRepository) Outpost(colonyName, outpostName string) (*economy.Outpost, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, data := range m.ledgers[colonyName] {
		if data.Name == outpostName {
			return economy.OutpostFromData(data), true
		}
	}
	return nil, false
}

// Load retrieves a colony's ledger
func (m *MockLedgerRepository) Load(ctx context.Context, colonyName string) (*economy.Ledger, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.LoadErr != nil {
		return nil, m.LoadErr
	}

	ledger := economy.NewLedger(colonyName)
	for _, data := range m.ledgers[colonyName] {
		ledger.Add(economy.OutpostFromData(data))
	}
	return ledger, nil
}

// Save replaces the colony's stored outposts with the ledger's
func (m *MockLedgerRepository) Save(ctx context.Context, ledger *economy.Ledger) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SaveErr != nil {
		return m.SaveErr
	}

	outposts := ledger.Outposts()
	stored := make([]*economy.OutpostData, len(outposts))
	for i, o := range outposts {
		stored[i] = o.ToData()
	}
	m.ledgers[ledger.ColonyName()] = stored
	m.SaveCount++
	return nil
}
