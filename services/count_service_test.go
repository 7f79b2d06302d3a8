package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wms-ledger/models"
)

func createZonePlan(t *testing.T, e *testEngine, zoneID string) *models.CountPlan {
	t.Helper()
	plan, err := e.counts.CreatePlan(CreatePlanInput{
		TenantID:  testTenant,
		ZoneID:    zoneID,
		ScopeType: models.ScopeFullZone,
		CreatedBy: 1,
	})
	require.NoError(t, err)
	return plan
}

func countLine(t *testing.T, e *testEngine, planCode, lineID string, qty float64) *models.CountPlan {
	t.Helper()
	plan, err := e.counts.AddEntry(AddEntryInput{
		TenantID:   testTenant,
		PlanCode:   planCode,
		LineID:     lineID,
		ScanMode:   models.ScanModeManual,
		QtyCounted: qty,
		CountedBy:  2,
	})
	require.NoError(t, err)
	return plan
}

func TestCreatePlanFreezesSystemQty(t *testing.T) {
	e := newTestEngine()
	e.mustReceive(t, "SKU000002", "LOC000002", 35)

	plan := createZonePlan(t, e, "ZN002")
	assert.Equal(t, "CC000001", plan.Code)
	assert.Equal(t, models.CountPlanDraft, plan.Status)
	require.Len(t, plan.Lines, 1)

	line := plan.Lines[0]
	assert.Equal(t, "CC000001-L01", line.LineID)
	assert.Equal(t, "SKU000002", line.SkuID)
	assert.Equal(t, "LOC000002", line.LocationID)
	assert.Equal(t, 35.0, line.SystemQty)
	assert.Equal(t, models.CountLinePending, line.Status)
	assert.Nil(t, line.CountedQty)

	// Stock moving after plan creation must not touch the frozen snapshot.
	e.mustReceive(t, "SKU000002", "LOC000002", 5)
	reloaded, err := e.counts.Get(testTenant, plan.Code)
	require.NoError(t, err)
	assert.Equal(t, 35.0, reloaded.Lines[0].SystemQty)
}

func TestCreatePlanScopeValidation(t *testing.T) {
	e := newTestEngine()
	e.mustReceive(t, "SKU000001", "LOC000001", 10)

	_, err := e.counts.CreatePlan(CreatePlanInput{TenantID: testTenant, ZoneID: "ZN999", ScopeType: models.ScopeFullZone})
	assert.Equal(t, KindValidation, KindOf(err))

	// ZN004 is a dock zone with no stock on record.
	_, err = e.counts.CreatePlan(CreatePlanInput{TenantID: testTenant, ZoneID: "ZN004", ScopeType: models.ScopeFullZone})
	assert.Equal(t, KindValidation, KindOf(err))

	_, err = e.counts.CreatePlan(CreatePlanInput{TenantID: testTenant, ZoneID: "ZN001", ScopeType: models.ScopeByLocation})
	assert.Equal(t, KindValidation, KindOf(err))

	_, err = e.counts.CreatePlan(CreatePlanInput{TenantID: testTenant, ZoneID: "ZN001", ScopeType: "BY_MOON_PHASE"})
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestCreatePlanBySkuScope(t *testing.T) {
	e := newTestEngine()
	e.mustReceive(t, "SKU000001", "LOC000001", 10)
	e.mustReceive(t, "SKU000002", "LOC000001", 20)

	plan, err := e.counts.CreatePlan(CreatePlanInput{
		TenantID:   testTenant,
		ZoneID:     "ZN001",
		ScopeType:  models.ScopeBySku,
		ScopeParam: "SKU000002",
	})
	require.NoError(t, err)
	require.Len(t, plan.Lines, 1)
	assert.Equal(t, "SKU000002", plan.Lines[0].SkuID)
}

func TestPlanCodesIncrement(t *testing.T) {
	e := newTestEngine()
	e.mustReceive(t, "SKU000001", "LOC000001", 10)

	first := createZonePlan(t, e, "ZN001")
	second := createZonePlan(t, e, "ZN001")
	assert.Equal(t, "CC000001", first.Code)
	assert.Equal(t, "CC000002", second.Code)
}

func TestAddEntryRecordsCountAndStartsPlan(t *testing.T) {
	e := newTestEngine()
	e.mustReceive(t, "SKU000002", "LOC000002", 35)
	plan := createZonePlan(t, e, "ZN002")

	updated, err := e.counts.AddEntry(AddEntryInput{
		TenantID:     testTenant,
		PlanCode:     plan.Code,
		ScanMode:     models.ScanModeManual,
		ScannedValue: "SKU000002",
		QtyCounted:   33,
		CountedBy:    2,
	})
	require.NoError(t, err)

	assert.Equal(t, models.CountPlanInProgress, updated.Status)
	require.Len(t, updated.Entries, 1)
	entry := updated.Entries[0]
	assert.Equal(t, "CC000001-L01", entry.LineID)
	assert.Equal(t, 33.0, entry.QtyCounted)
	assert.Equal(t, -2.0, entry.Delta)
	assert.NotEmpty(t, entry.RecordedAt)

	line := updated.Lines[0]
	require.NotNil(t, line.CountedQty)
	require.NotNil(t, line.VarianceQty)
	assert.Equal(t, 33.0, *line.CountedQty)
	assert.Equal(t, -2.0, *line.VarianceQty)
	assert.Equal(t, models.CountLineCounted, line.Status)
}

func TestAddEntryRecountKeepsAuditTrail(t *testing.T) {
	e := newTestEngine()
	e.mustReceive(t, "SKU000002", "LOC000002", 35)
	plan := createZonePlan(t, e, "ZN002")

	countLine(t, e, plan.Code, "CC000001-L01", 30)
	updated := countLine(t, e, plan.Code, "CC000001-L01", 34)

	assert.Len(t, updated.Entries, 2, "every count action stays on record")
	assert.Equal(t, 34.0, *updated.Lines[0].CountedQty, "the line reflects the latest count")
	assert.Equal(t, -1.0, *updated.Lines[0].VarianceQty)
}

func TestAddEntryScanResolution(t *testing.T) {
	e := newTestEngine()
	// Two lines for the same SKU in ZN001, plus one for another SKU.
	e.mustReceive(t, "SKU000001", "LOC000001", 10)
	e.mustReceive(t, "SKU000001", "LOC000003", 20)
	e.mustReceive(t, "SKU000002", "LOC000001", 5)
	plan := createZonePlan(t, e, "ZN001")
	require.Len(t, plan.Lines, 3)

	// A SKU present on two lines cannot be resolved by SKU alone.
	_, err := e.counts.AddEntry(AddEntryInput{
		TenantID:     testTenant,
		PlanCode:     plan.Code,
		ScanMode:     models.ScanModeManual,
		ScannedValue: "SKU000001",
		QtyCounted:   10,
	})
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
	assert.Contains(t, err.Error(), "more than one")

	// A1-01 (LOC000001) holds two SKUs, so the location alone is ambiguous
	// as well.
	_, err = e.counts.AddEntry(AddEntryInput{
		TenantID:     testTenant,
		PlanCode:     plan.Code,
		ScanMode:     models.ScanModeManual,
		ScannedValue: "A1-01",
		QtyCounted:   10,
	})
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))

	// A1-02 (LOC000003) holds exactly one line.
	updated, err := e.counts.AddEntry(AddEntryInput{
		TenantID:     testTenant,
		PlanCode:     plan.Code,
		ScanMode:     models.ScanModeManual,
		ScannedValue: "A1-02",
		QtyCounted:   19,
	})
	require.NoError(t, err)
	assert.Equal(t, "CC000001-L02", updated.Entries[len(updated.Entries)-1].LineID)

	// An explicit line id always wins over scan resolution.
	updated = countLine(t, e, plan.Code, "CC000001-L01", 10)
	require.NotNil(t, updated.Lines[0].CountedQty)

	// A value resolving nowhere fails the scan.
	_, err = e.counts.AddEntry(AddEntryInput{
		TenantID:     testTenant,
		PlanCode:     plan.Code,
		ScanMode:     models.ScanModeBarcode,
		ScannedValue: "XYZ-UNKNOWN",
		QtyCounted:   1,
	})
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
	assert.Contains(t, err.Error(), "does not resolve")
}

func TestAddEntryRfidResolvesByEpc(t *testing.T) {
	e := newTestEngine()
	e.mustReceive(t, "SKU000002", "LOC000002", 12)
	plan := createZonePlan(t, e, "ZN002")

	updated, err := e.counts.AddEntry(AddEntryInput{
		TenantID:     testTenant,
		PlanCode:     plan.Code,
		ScanMode:     models.ScanModeRfid,
		ScannedValue: "EPC000002",
		QtyCounted:   12,
	})
	require.NoError(t, err)
	assert.Equal(t, "SKU000002", updated.Lines[0].SkuID)
	require.NotNil(t, updated.Lines[0].CountedQty)

	// EPC lookup is an RFID-only strategy.
	e2 := newTestEngine()
	e2.mustReceive(t, "SKU000002", "LOC000002", 12)
	plan2 := createZonePlan(t, e2, "ZN002")
	_, err = e2.counts.AddEntry(AddEntryInput{
		TenantID:     testTenant,
		PlanCode:     plan2.Code,
		ScanMode:     models.ScanModeManual,
		ScannedValue: "EPC000002",
		QtyCounted:   12,
	})
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestAddEntryRejectsNegativeQty(t *testing.T) {
	e := newTestEngine()
	e.mustReceive(t, "SKU000002", "LOC000002", 12)
	plan := createZonePlan(t, e, "ZN002")

	_, err := e.counts.AddEntry(AddEntryInput{
		TenantID:   testTenant,
		PlanCode:   plan.Code,
		LineID:     "CC000001-L01",
		ScanMode:   models.ScanModeManual,
		QtyCounted: -1,
	})
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestAddEntryRejectsForeignLineID(t *testing.T) {
	e := newTestEngine()
	e.mustReceive(t, "SKU000002", "LOC000002", 12)
	plan := createZonePlan(t, e, "ZN002")

	_, err := e.counts.AddEntry(AddEntryInput{
		TenantID:   testTenant,
		PlanCode:   plan.Code,
		LineID:     "CC000099-L01",
		ScanMode:   models.ScanModeManual,
		QtyCounted: 1,
	})
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestAddEntryOnTerminalPlan(t *testing.T) {
	e := newTestEngine()
	e.mustReceive(t, "SKU000002", "LOC000002", 12)
	plan := createZonePlan(t, e, "ZN002")

	_, err := e.counts.Cancel(testTenant, plan.Code, 1, "postponed")
	require.NoError(t, err)

	_, err = e.counts.AddEntry(AddEntryInput{
		TenantID:   testTenant,
		PlanCode:   plan.Code,
		LineID:     "CC000001-L01",
		ScanMode:   models.ScanModeManual,
		QtyCounted: 12,
	})
	require.Error(t, err)
	assert.Equal(t, KindConflict, KindOf(err))
}

func TestAddEntryAllowedAfterSubmit(t *testing.T) {
	e := newTestEngine()
	e.mustReceive(t, "SKU000002", "LOC000002", 12)
	plan := createZonePlan(t, e, "ZN002")
	countLine(t, e, plan.Code, "CC000001-L01", 12)

	_, err := e.counts.Submit(testTenant, plan.Code, 2)
	require.NoError(t, err)

	// A recount between submission and approval is still a legal correction.
	updated := countLine(t, e, plan.Code, "CC000001-L01", 11)
	assert.Equal(t, 11.0, *updated.Lines[0].CountedQty)
}

func TestSubmitRequiresAllLinesCounted(t *testing.T) {
	e := newTestEngine()
	e.mustReceive(t, "SKU000001", "LOC000001", 10)
	e.mustReceive(t, "SKU000002", "LOC000001", 5)
	plan := createZonePlan(t, e, "ZN001")
	require.Len(t, plan.Lines, 2)

	countLine(t, e, plan.Code, plan.Lines[0].LineID, 10)

	_, err := e.counts.Submit(testTenant, plan.Code, 2)
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestSubmitThresholdPercent(t *testing.T) {
	t.Run("within threshold", func(t *testing.T) {
		e := newTestEngine()
		e.mustReceive(t, "SKU000002", "LOC000002", 1200)
		plan := createZonePlan(t, e, "ZN002")
		countLine(t, e, plan.Code, "CC000001-L01", 1195)

		submitted, err := e.counts.Submit(testTenant, plan.Code, 2)
		require.NoError(t, err)
		assert.Equal(t, models.CountPlanSubmitted, submitted.Status)
		assert.False(t, submitted.RequiresApproval)
		assert.NotEmpty(t, submitted.SubmittedAt)
	})

	t.Run("over threshold", func(t *testing.T) {
		e := newTestEngine()
		e.mustReceive(t, "SKU000002", "LOC000002", 1200)
		plan := createZonePlan(t, e, "ZN002")
		countLine(t, e, plan.Code, "CC000001-L01", 1100)

		submitted, err := e.counts.Submit(testTenant, plan.Code, 2)
		require.NoError(t, err)
		assert.True(t, submitted.RequiresApproval)
	})

	t.Run("zero system qty with any variance", func(t *testing.T) {
		e := newTestEngine()
		e.mustReceive(t, "SKU000002", "LOC000002", 5)
		_, err := e.ledger.AppendMovement(&models.MovementEntry{
			TenantID:     testTenant,
			MovementType: models.MovementAdjustment,
			SkuID:        "SKU000002",
			Qty:          -5,
			FromLocation: "LOC000002",
			ReasonCode:   "LOST",
		})
		require.NoError(t, err)

		plan := createZonePlan(t, e, "ZN002")
		require.Equal(t, 0.0, plan.Lines[0].SystemQty)
		countLine(t, e, plan.Code, plan.Lines[0].LineID, 3)

		submitted, err := e.counts.Submit(testTenant, plan.Code, 2)
		require.NoError(t, err)
		assert.True(t, submitted.RequiresApproval, "a find against zero system stock cannot be expressed as a percentage")
	})
}

func TestSubmitThresholdAbsolute(t *testing.T) {
	cases := []struct {
		name    string
		counted float64
		flagged bool
	}{
		{"at threshold", 1190, false},
		{"one over threshold", 1189, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEngine()
			e.catalog.config.Mode = models.ThresholdModeAbsolute
			e.mustReceive(t, "SKU000002", "LOC000002", 1200)
			plan := createZonePlan(t, e, "ZN002")
			countLine(t, e, plan.Code, "CC000001-L01", tc.counted)

			submitted, err := e.counts.Submit(testTenant, plan.Code, 2)
			require.NoError(t, err)
			assert.Equal(t, tc.flagged, submitted.RequiresApproval)
		})
	}
}

func TestSubmitWithoutConfigFlagsAnyVariance(t *testing.T) {
	e := newTestEngine()
	e.catalog.config = nil
	e.mustReceive(t, "SKU000002", "LOC000002", 1200)
	plan := createZonePlan(t, e, "ZN002")
	countLine(t, e, plan.Code, "CC000001-L01", 1199)

	submitted, err := e.counts.Submit(testTenant, plan.Code, 2)
	require.NoError(t, err)
	assert.True(t, submitted.RequiresApproval)

	e2 := newTestEngine()
	e2.catalog.config = nil
	e2.mustReceive(t, "SKU000002", "LOC000002", 1200)
	plan2 := createZonePlan(t, e2, "ZN002")
	countLine(t, e2, plan2.Code, "CC000001-L01", 1200)

	submitted, err = e2.counts.Submit(testTenant, plan2.Code, 2)
	require.NoError(t, err)
	assert.False(t, submitted.RequiresApproval, "an exact count never needs scrutiny")
}

func TestSubmitFromSubmittedConflicts(t *testing.T) {
	e := newTestEngine()
	e.mustReceive(t, "SKU000002", "LOC000002", 12)
	plan := createZonePlan(t, e, "ZN002")
	countLine(t, e, plan.Code, "CC000001-L01", 12)

	_, err := e.counts.Submit(testTenant, plan.Code, 2)
	require.NoError(t, err)
	_, err = e.counts.Submit(testTenant, plan.Code, 2)
	require.Error(t, err)
	assert.Equal(t, KindConflict, KindOf(err))
}

func TestApprovePostsVarianceExactlyOnce(t *testing.T) {
	e := newTestEngine()
	e.mustReceive(t, "SKU000002", "LOC000002", 1200)
	plan := createZonePlan(t, e, "ZN002")
	countLine(t, e, plan.Code, "CC000001-L01", 1150)
	_, err := e.counts.Submit(testTenant, plan.Code, 2)
	require.NoError(t, err)

	approved, err := e.counts.Approve(ApprovePlanInput{
		TenantID:   testTenant,
		PlanCode:   plan.Code,
		ApprovedBy: 3,
		ReasonCode: "cycle_count",
	})
	require.NoError(t, err)
	assert.Equal(t, models.CountPlanApproved, approved.Status)
	assert.Equal(t, 3, approved.ApprovedBy)
	assert.Equal(t, models.CountLineApproved, approved.Lines[0].Status)

	posted := e.ledgerStore.byType(models.MovementCycleCount)
	require.Len(t, posted, 1)
	assert.Equal(t, -50.0, posted[0].Qty)
	assert.Equal(t, "LOC000002", posted[0].FromLocation)
	assert.Empty(t, posted[0].ToLocation)
	assert.Equal(t, "CYCLE_COUNT", posted[0].RefType)
	assert.Equal(t, plan.Code, posted[0].RefID)
	assert.Equal(t, "CYCLE_COUNT", posted[0].ReasonCode)

	rows, err := e.projection.GetStockSummary(testTenant, "", SummaryFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1150.0, summaryRow(t, rows, "SKU000002", "LOC000002").QtyOnhand)

	// The duplicate approval must fail, and must not post again.
	_, err = e.counts.Approve(ApprovePlanInput{
		TenantID:   testTenant,
		PlanCode:   plan.Code,
		ApprovedBy: 4,
		ReasonCode: "CYCLE_COUNT",
	})
	require.Error(t, err)
	assert.Equal(t, KindConflict, KindOf(err))
	assert.Len(t, e.ledgerStore.byType(models.MovementCycleCount), 1)
}

func TestApprovePositiveVarianceLandsAtLocation(t *testing.T) {
	e := newTestEngine()
	e.mustReceive(t, "SKU000002", "LOC000002", 100)
	plan := createZonePlan(t, e, "ZN002")
	countLine(t, e, plan.Code, "CC000001-L01", 130)
	_, err := e.counts.Submit(testTenant, plan.Code, 2)
	require.NoError(t, err)

	_, err = e.counts.Approve(ApprovePlanInput{TenantID: testTenant, PlanCode: plan.Code, ApprovedBy: 3, ReasonCode: "FOUND"})
	require.NoError(t, err)

	posted := e.ledgerStore.byType(models.MovementCycleCount)
	require.Len(t, posted, 1)
	assert.Equal(t, 30.0, posted[0].Qty)
	assert.Equal(t, "LOC000002", posted[0].ToLocation)
	assert.Empty(t, posted[0].FromLocation)
}

func TestApproveZeroVariancePostsNothing(t *testing.T) {
	e := newTestEngine()
	e.mustReceive(t, "SKU000002", "LOC000002", 12)
	plan := createZonePlan(t, e, "ZN002")
	countLine(t, e, plan.Code, "CC000001-L01", 12)
	_, err := e.counts.Submit(testTenant, plan.Code, 2)
	require.NoError(t, err)

	approved, err := e.counts.Approve(ApprovePlanInput{TenantID: testTenant, PlanCode: plan.Code, ApprovedBy: 3, ReasonCode: "CYCLE_COUNT"})
	require.NoError(t, err)
	assert.Equal(t, models.CountPlanApproved, approved.Status)
	assert.Empty(t, e.ledgerStore.byType(models.MovementCycleCount))
}

func TestApproveRequiresValidReason(t *testing.T) {
	e := newTestEngine()
	e.mustReceive(t, "SKU000002", "LOC000002", 12)
	plan := createZonePlan(t, e, "ZN002")
	countLine(t, e, plan.Code, "CC000001-L01", 10)
	_, err := e.counts.Submit(testTenant, plan.Code, 2)
	require.NoError(t, err)

	_, err = e.counts.Approve(ApprovePlanInput{TenantID: testTenant, PlanCode: plan.Code, ApprovedBy: 3, ReasonCode: "GREMLINS"})
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))

	reloaded, err := e.counts.Get(testTenant, plan.Code)
	require.NoError(t, err)
	assert.Equal(t, models.CountPlanSubmitted, reloaded.Status, "a failed approval must leave the plan submitted")
	assert.Empty(t, e.ledgerStore.byType(models.MovementCycleCount))
}

func TestApproveFromDraftConflicts(t *testing.T) {
	e := newTestEngine()
	e.mustReceive(t, "SKU000002", "LOC000002", 12)
	plan := createZonePlan(t, e, "ZN002")

	_, err := e.counts.Approve(ApprovePlanInput{TenantID: testTenant, PlanCode: plan.Code, ApprovedBy: 3, ReasonCode: "CYCLE_COUNT"})
	require.Error(t, err)
	assert.Equal(t, KindConflict, KindOf(err))
}

func TestRejectLeavesLedgerUntouched(t *testing.T) {
	e := newTestEngine()
	e.mustReceive(t, "SKU000002", "LOC000002", 100)
	plan := createZonePlan(t, e, "ZN002")
	countLine(t, e, plan.Code, "CC000001-L01", 60)
	_, err := e.counts.Submit(testTenant, plan.Code, 2)
	require.NoError(t, err)

	rejected, err := e.counts.Reject(testTenant, plan.Code, 3, "recount looks wrong")
	require.NoError(t, err)
	assert.Equal(t, models.CountPlanRejected, rejected.Status)
	assert.Equal(t, "recount looks wrong", rejected.ApprovalNote)
	assert.Empty(t, e.ledgerStore.byType(models.MovementCycleCount))

	_, err = e.counts.Approve(ApprovePlanInput{TenantID: testTenant, PlanCode: plan.Code, ApprovedBy: 3, ReasonCode: "CYCLE_COUNT"})
	require.Error(t, err)
	assert.Equal(t, KindConflict, KindOf(err))
}

func TestCancelRecordsReason(t *testing.T) {
	e := newTestEngine()
	e.mustReceive(t, "SKU000002", "LOC000002", 12)
	plan := createZonePlan(t, e, "ZN002")

	cancelled, err := e.counts.Cancel(testTenant, plan.Code, 1, "zone closed for maintenance")
	require.NoError(t, err)
	assert.Equal(t, models.CountPlanCancelled, cancelled.Status)
	assert.Equal(t, "zone closed for maintenance", cancelled.CancelReason)
}

func TestGetUnknownPlan(t *testing.T) {
	e := newTestEngine()
	_, err := e.counts.Get(testTenant, "CC000042")
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestProgress(t *testing.T) {
	e := newTestEngine()
	e.mustReceive(t, "SKU000001", "LOC000001", 30)
	e.mustReceive(t, "SKU000002", "LOC000001", 10)
	plan := createZonePlan(t, e, "ZN001")
	require.Len(t, plan.Lines, 2)

	countLine(t, e, plan.Code, plan.Lines[0].LineID, 30)

	p, err := e.counts.Progress(testTenant, plan.Code)
	require.NoError(t, err)
	assert.Equal(t, 2, p.TotalLines)
	assert.Equal(t, 1, p.CountedLines)
	assert.Equal(t, 40.0, p.QtySystem)
	assert.Equal(t, 30.0, p.QtyCounted)
	assert.Equal(t, 50.0, p.ProgressLines)
	assert.Equal(t, 75.0, p.ProgressQty)
}
