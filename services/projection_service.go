package services

import (
	"math"
	"strings"

	"golang.org/x/exp/slices"

	"wms-ledger/models"
)

// StockSummaryRow is the derived quantity picture for one SKU at one
// location. Rows are never stored; they are rebuilt from the ledger on every
// read, so they cannot drift from it.
type StockSummaryRow struct {
	SkuID         string  `json:"sku_id"`
	LocationID    string  `json:"location_id"`
	ZoneID        string  `json:"zone_id"`
	QtyOnhand     float64 `json:"qty_onhand"`
	QtyReserved   float64 `json:"qty_reserved"`
	QtyQuarantine float64 `json:"qty_quarantine"`
	QtyAvailable  float64 `json:"qty_available"`
}

type SummaryFilter struct {
	SkuID      string
	LocationID string
	ZoneID     string
}

type ProjectionService struct {
	store   LedgerStore
	catalog Catalog
}

func NewProjectionService(store LedgerStore, catalog Catalog) *ProjectionService {
	return &ProjectionService{store: store, catalog: catalog}
}

type summaryKey struct {
	skuID      string
	locationID string
}

// GetStockSummary folds the tenant's ledger once into per-(SKU, location)
// rows. The fold is pure: the same ledger always yields the same rows in the
// same order.
func (s *ProjectionService) GetStockSummary(tenantID, whsCode string, filter SummaryFilter) ([]StockSummaryRow, error) {
	entries, err := s.store.List(tenantID, whsCode)
	if err != nil {
		return nil, err
	}

	onhand := make(map[summaryKey]float64)
	reserved := make(map[summaryKey]float64)

	for _, e := range entries {
		if models.IsReservation(e.MovementType) {
			loc := e.ToLocation
			if loc == "" {
				loc = e.FromLocation
			}
			reserved[summaryKey{e.SkuID, loc}] += e.Qty
			continue
		}

		switch {
		case e.FromLocation != "" && e.ToLocation != "":
			qty := math.Abs(e.Qty)
			onhand[summaryKey{e.SkuID, e.FromLocation}] -= qty
			onhand[summaryKey{e.SkuID, e.ToLocation}] += qty
		case e.ToLocation != "":
			onhand[summaryKey{e.SkuID, e.ToLocation}] += e.Qty
		case e.FromLocation != "":
			onhand[summaryKey{e.SkuID, e.FromLocation}] += e.Qty
		}
	}

	keys := make(map[summaryKey]bool, len(onhand)+len(reserved))
	for k := range onhand {
		keys[k] = true
	}
	for k := range reserved {
		keys[k] = true
	}

	rows := make([]StockSummaryRow, 0, len(keys))
	for k := range keys {
		row := StockSummaryRow{
			SkuID:       k.skuID,
			LocationID:  k.locationID,
			QtyOnhand:   onhand[k],
			QtyReserved: math.Max(reserved[k], 0),
		}

		if loc, ok := s.catalog.Location(tenantID, k.locationID); ok {
			row.ZoneID = loc.ZoneID
			if zone, ok := s.catalog.Zone(tenantID, loc.ZoneID); ok && zone.ZoneType == models.ZoneTypeQuarantine {
				row.QtyQuarantine = math.Max(row.QtyOnhand, 0)
			}
		}
		row.QtyAvailable = math.Max(row.QtyOnhand-row.QtyReserved-row.QtyQuarantine, 0)

		if filter.SkuID != "" && row.SkuID != filter.SkuID {
			continue
		}
		if filter.LocationID != "" && row.LocationID != filter.LocationID {
			continue
		}
		if filter.ZoneID != "" && row.ZoneID != filter.ZoneID {
			continue
		}
		rows = append(rows, row)
	}

	slices.SortFunc(rows, func(a, b StockSummaryRow) int {
		if c := strings.Compare(a.SkuID, b.SkuID); c != 0 {
			return c
		}
		return strings.Compare(a.LocationID, b.LocationID)
	})
	return rows, nil
}
