package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wms-ledger/models"
)

func TestAppendMovementAssignsIDAndTimestamp(t *testing.T) {
	e := newTestEngine()

	entry := &models.MovementEntry{
		TenantID:     testTenant,
		MovementType: models.MovementReceive,
		SkuID:        "SKU000001",
		Qty:          10,
		ToLocation:   "LOC000001",
	}
	id, err := e.ledger.AppendMovement(entry)
	require.NoError(t, err)

	assert.NotZero(t, id)
	assert.Equal(t, id, entry.ID)
	assert.NotEmpty(t, entry.OccurredAt)
	assert.Equal(t, "PCS", entry.Uom, "uom should default from the SKU master")

	stored, err := e.ledgerStore.List(testTenant, "")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, id, stored[0].ID)
}

func TestAppendMovementRejections(t *testing.T) {
	tests := []struct {
		name  string
		entry models.MovementEntry
	}{
		{
			name:  "missing tenant",
			entry: models.MovementEntry{MovementType: models.MovementReceive, SkuID: "SKU000001", Qty: 1, ToLocation: "LOC000001"},
		},
		{
			name:  "zero quantity",
			entry: models.MovementEntry{TenantID: testTenant, MovementType: models.MovementReceive, SkuID: "SKU000001", Qty: 0, ToLocation: "LOC000001"},
		},
		{
			name:  "NaN quantity",
			entry: models.MovementEntry{TenantID: testTenant, MovementType: models.MovementReceive, SkuID: "SKU000001", Qty: math.NaN(), ToLocation: "LOC000001"},
		},
		{
			name:  "infinite quantity",
			entry: models.MovementEntry{TenantID: testTenant, MovementType: models.MovementReceive, SkuID: "SKU000001", Qty: math.Inf(1), ToLocation: "LOC000001"},
		},
		{
			name:  "unknown movement type",
			entry: models.MovementEntry{TenantID: testTenant, MovementType: "TELEPORT", SkuID: "SKU000001", Qty: 1, ToLocation: "LOC000001"},
		},
		{
			name:  "unknown sku",
			entry: models.MovementEntry{TenantID: testTenant, MovementType: models.MovementReceive, SkuID: "SKU999999", Qty: 1, ToLocation: "LOC000001"},
		},
		{
			name:  "unknown source location",
			entry: models.MovementEntry{TenantID: testTenant, MovementType: models.MovementTransfer, SkuID: "SKU000001", Qty: 1, FromLocation: "LOC999999", ToLocation: "LOC000001"},
		},
		{
			name:  "unknown destination location",
			entry: models.MovementEntry{TenantID: testTenant, MovementType: models.MovementReceive, SkuID: "SKU000001", Qty: 1, ToLocation: "LOC999999"},
		},
		{
			name:  "transfer without destination",
			entry: models.MovementEntry{TenantID: testTenant, MovementType: models.MovementTransfer, SkuID: "SKU000001", Qty: 1, FromLocation: "LOC000001"},
		},
		{
			name:  "reserve without any location",
			entry: models.MovementEntry{TenantID: testTenant, MovementType: models.MovementReserve, SkuID: "SKU000001", Qty: 1},
		},
		{
			name:  "adjustment without reason",
			entry: models.MovementEntry{TenantID: testTenant, MovementType: models.MovementAdjustment, SkuID: "SKU000001", Qty: -1, FromLocation: "LOC000001"},
		},
		{
			name:  "adjustment with unknown reason",
			entry: models.MovementEntry{TenantID: testTenant, MovementType: models.MovementAdjustment, SkuID: "SKU000001", Qty: -1, FromLocation: "LOC000001", ReasonCode: "GREMLINS"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine()
			entry := tt.entry
			_, err := e.ledger.AppendMovement(&entry)
			require.Error(t, err)
			assert.Equal(t, KindValidation, KindOf(err))

			stored, err := e.ledgerStore.List(testTenant, "")
			require.NoError(t, err)
			assert.Empty(t, stored, "a rejected entry must never reach the ledger")
		})
	}
}

func TestAppendMovementNormalizesReason(t *testing.T) {
	e := newTestEngine()

	entry := &models.MovementEntry{
		TenantID:     testTenant,
		MovementType: models.MovementAdjustment,
		SkuID:        "SKU000001",
		Qty:          -2,
		FromLocation: "LOC000001",
		ReasonCode:   "  damaged  ",
	}
	_, err := e.ledger.AppendMovement(entry)
	require.NoError(t, err)
	assert.Equal(t, "DAMAGED", entry.ReasonCode)
}

func TestListMovementsFilters(t *testing.T) {
	e := newTestEngine()
	e.mustReceive(t, "SKU000001", "LOC000001", 10)
	e.mustReceive(t, "SKU000002", "LOC000002", 20)

	_, err := e.ledger.AppendMovement(&models.MovementEntry{
		TenantID:     testTenant,
		MovementType: models.MovementTransfer,
		SkuID:        "SKU000001",
		Qty:          4,
		FromLocation: "LOC000001",
		ToLocation:   "LOC000003",
	})
	require.NoError(t, err)

	all, err := e.ledger.ListMovements(testTenant, "", MovementFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	bySku, err := e.ledger.ListMovements(testTenant, "", MovementFilter{SkuID: "SKU000001"})
	require.NoError(t, err)
	assert.Len(t, bySku, 2)

	byLoc, err := e.ledger.ListMovements(testTenant, "", MovementFilter{LocationID: "LOC000003"})
	require.NoError(t, err)
	require.Len(t, byLoc, 1)
	assert.Equal(t, models.MovementTransfer, byLoc[0].MovementType)

	byType, err := e.ledger.ListMovements(testTenant, "", MovementFilter{MovementType: models.MovementReceive})
	require.NoError(t, err)
	assert.Len(t, byType, 2)

	otherTenant, err := e.ledger.ListMovements("TNT999", "", MovementFilter{})
	require.NoError(t, err)
	assert.Empty(t, otherTenant)
}
