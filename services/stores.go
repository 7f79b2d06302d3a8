package services

import (
	"wms-ledger/models"
)

// LedgerStore is the append-only persistence behind the movement ledger.
// List returns entries ordered by occurrence time.
type LedgerStore interface {
	Append(entry *models.MovementEntry) error
	List(tenantID, whsCode string) ([]models.MovementEntry, error)
}

// Catalog resolves reference data owned by the master-data collaborator.
// Lookups are tenant-scoped and read-only.
type Catalog interface {
	Sku(tenantID, skuID string) (*models.Sku, bool)
	SkuByEpc(tenantID, epc string) (*models.Sku, bool)
	Location(tenantID, locationID string) (*models.Location, bool)
	LocationByCode(tenantID, code string) (*models.Location, bool)
	Zone(tenantID, zoneID string) (*models.Zone, bool)
	ReasonCode(tenantID, code string) bool
	VarianceConfig(tenantID string) (*models.VarianceConfig, bool)
}

// CountPlanStore persists cycle count plans. Get returns (nil, nil) when the
// code does not exist in the tenant's scope. Transition performs an atomic
// compare-and-swap on the status and reports whether it applied.
type CountPlanStore interface {
	Create(plan *models.CountPlan) error
	Get(tenantID, code string) (*models.CountPlan, error)
	Save(plan *models.CountPlan) error
	Transition(tenantID, code string, from, to models.CountPlanStatus) (bool, error)
	LastCode(tenantID string) (string, error)
	List(tenantID string) ([]models.CountPlan, error)
}

// AdjustmentStore persists adjustment requests, same contract as
// CountPlanStore.
type AdjustmentStore interface {
	Create(adj *models.Adjustment) error
	Get(tenantID, code string) (*models.Adjustment, error)
	Save(adj *models.Adjustment) error
	Transition(tenantID, code string, from, to models.AdjustmentStatus) (bool, error)
	LastCode(tenantID string) (string, error)
	List(tenantID string) ([]models.Adjustment, error)
}
