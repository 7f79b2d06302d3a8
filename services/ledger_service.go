package services

import (
	"math"

	"wms-ledger/controllers/idgen"
	"wms-ledger/models"
	"wms-ledger/types"
	"wms-ledger/utils"
)

// LedgerService is the single write surface of the stock ledger. Every
// quantity change in the system, whatever workflow produced it, lands here
// as one immutable movement entry.
type LedgerService struct {
	store   LedgerStore
	catalog Catalog
}

func NewLedgerService(store LedgerStore, catalog Catalog) *LedgerService {
	return &LedgerService{store: store, catalog: catalog}
}

type MovementFilter struct {
	SkuID        string
	LocationID   string
	MovementType models.MovementType
}

// AppendMovement validates and writes one ledger entry. Rejected entries are
// never written; accepted entries are never edited or removed afterwards.
func (s *LedgerService) AppendMovement(entry *models.MovementEntry) (types.SnowflakeID, error) {
	if entry.TenantID == "" {
		return 0, Validationf("tenant id is required")
	}
	if entry.Qty == 0 {
		return 0, Validationf("movement quantity must not be zero")
	}
	if math.IsNaN(entry.Qty) || math.IsInf(entry.Qty, 0) {
		return 0, Validationf("movement quantity must be a finite number")
	}
	if !models.ValidMovementType(entry.MovementType) {
		return 0, Validationf("unknown movement type %q", entry.MovementType)
	}

	sku, ok := s.catalog.Sku(entry.TenantID, entry.SkuID)
	if !ok {
		return 0, Validationf("unknown SKU %q", entry.SkuID)
	}
	if entry.Uom == "" {
		entry.Uom = sku.Uom
	}

	if entry.FromLocation != "" {
		if _, ok := s.catalog.Location(entry.TenantID, entry.FromLocation); !ok {
			return 0, Validationf("unknown source location %q", entry.FromLocation)
		}
	}
	if entry.ToLocation != "" {
		if _, ok := s.catalog.Location(entry.TenantID, entry.ToLocation); !ok {
			return 0, Validationf("unknown destination location %q", entry.ToLocation)
		}
	}

	if entry.MovementType == models.MovementTransfer && (entry.FromLocation == "" || entry.ToLocation == "") {
		return 0, Validationf("a transfer needs both source and destination locations")
	}
	if models.IsReservation(entry.MovementType) && entry.FromLocation == "" && entry.ToLocation == "" {
		return 0, Validationf("%s requires a location", entry.MovementType)
	}

	if models.MovementRequiresReason(entry.MovementType) {
		reason := normalizeReason(entry.ReasonCode)
		if reason == "" || !s.catalog.ReasonCode(entry.TenantID, reason) {
			return 0, Validationf("movement type %s requires a valid reason code", entry.MovementType)
		}
		entry.ReasonCode = reason
	}

	if entry.ID == 0 {
		entry.ID = types.SnowflakeID(idgen.GenerateID())
	}
	if entry.OccurredAt == "" {
		entry.OccurredAt = utils.Timestamp()
	}

	if err := s.store.Append(entry); err != nil {
		return 0, err
	}
	return entry.ID, nil
}

// ListMovements returns the tenant's ledger in time order, optionally
// narrowed by SKU, location or movement type.
func (s *LedgerService) ListMovements(tenantID, whsCode string, filter MovementFilter) ([]models.MovementEntry, error) {
	entries, err := s.store.List(tenantID, whsCode)
	if err != nil {
		return nil, err
	}

	if filter.SkuID == "" && filter.LocationID == "" && filter.MovementType == "" {
		return entries, nil
	}

	filtered := make([]models.MovementEntry, 0, len(entries))
	for _, e := range entries {
		if filter.SkuID != "" && e.SkuID != filter.SkuID {
			continue
		}
		if filter.LocationID != "" && e.FromLocation != filter.LocationID && e.ToLocation != filter.LocationID {
			continue
		}
		if filter.MovementType != "" && e.MovementType != filter.MovementType {
			continue
		}
		filtered = append(filtered, e)
	}
	return filtered, nil
}
