package services

import (
	"fmt"
	"math"

	"wms-ledger/models"
	"wms-ledger/utils"
)

// CountService runs the cycle count workflow: plan creation from a frozen
// projection snapshot, scan-based entry capture, threshold-gated submission
// and an approval step that posts the variance back into the ledger exactly
// once.
type CountService struct {
	plans      CountPlanStore
	ledger     *LedgerService
	projection *ProjectionService
	catalog    Catalog
}

func NewCountService(plans CountPlanStore, ledger *LedgerService, projection *ProjectionService, catalog Catalog) *CountService {
	return &CountService{plans: plans, ledger: ledger, projection: projection, catalog: catalog}
}

type CreatePlanInput struct {
	TenantID    string
	WhsCode     string
	ZoneID      string
	ScopeType   models.CountScopeType
	ScopeParam  string
	PlannedDate string
	CreatedBy   int
}

// CreatePlan snapshots the zone's projection and freezes one line per
// (SKU, location) row. SystemQty is the on-hand quantity at this moment and
// is never re-derived afterwards.
func (s *CountService) CreatePlan(in CreatePlanInput) (*models.CountPlan, error) {
	zone, ok := s.catalog.Zone(in.TenantID, in.ZoneID)
	if !ok {
		return nil, Validationf("unknown zone %q", in.ZoneID)
	}

	filter := SummaryFilter{ZoneID: zone.ZoneID}
	switch in.ScopeType {
	case models.ScopeFullZone:
	case models.ScopeByLocation:
		if in.ScopeParam == "" {
			return nil, Validationf("scope BY_LOCATION requires a location id")
		}
		filter.LocationID = in.ScopeParam
	case models.ScopeBySku:
		if in.ScopeParam == "" {
			return nil, Validationf("scope BY_SKU requires a SKU id")
		}
		filter.SkuID = in.ScopeParam
	default:
		return nil, Validationf("unknown scope type %q", in.ScopeType)
	}

	rows, err := s.projection.GetStockSummary(in.TenantID, in.WhsCode, filter)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, Validationf("count scope matched no stock in zone %q", in.ZoneID)
	}

	last, err := s.plans.LastCode(in.TenantID)
	if err != nil {
		return nil, err
	}
	code := nextDocCode("CC", last)

	plan := &models.CountPlan{
		Code:        code,
		TenantID:    in.TenantID,
		WhsCode:     in.WhsCode,
		ZoneID:      in.ZoneID,
		PlannedDate: in.PlannedDate,
		ScopeType:   in.ScopeType,
		ScopeParam:  in.ScopeParam,
		Status:      models.CountPlanDraft,
		CreatedBy:   in.CreatedBy,
	}
	for i, row := range rows {
		plan.Lines = append(plan.Lines, models.CountLine{
			LineID:     fmt.Sprintf("%s-L%02d", code, i+1),
			SkuID:      row.SkuID,
			LocationID: row.LocationID,
			SystemQty:  row.QtyOnhand,
			Status:     models.CountLinePending,
		})
	}

	if err := s.plans.Create(plan); err != nil {
		return nil, err
	}
	return plan, nil
}

type AddEntryInput struct {
	TenantID     string
	PlanCode     string
	LineID       string
	ScanMode     models.ScanMode
	ScannedValue string
	QtyCounted   float64
	CountedBy    int
}

// AddEntry records one count action against a line, resolving the scanned
// value when no explicit line id is given. The entry itself is immutable,
// the line always reflects the latest count.
func (s *CountService) AddEntry(in AddEntryInput) (*models.CountPlan, error) {
	plan, err := s.getPlan(in.TenantID, in.PlanCode)
	if err != nil {
		return nil, err
	}
	if countPlanTerminal(plan.Status) {
		return nil, Conflictf("count plan %s is %s and no longer accepts entries", plan.Code, plan.Status)
	}
	if in.QtyCounted < 0 || math.IsNaN(in.QtyCounted) || math.IsInf(in.QtyCounted, 0) {
		return nil, Validationf("counted quantity must be zero or a positive number")
	}

	lines := make([]*models.CountLine, len(plan.Lines))
	for i := range plan.Lines {
		lines[i] = &plan.Lines[i]
	}

	var line *models.CountLine
	if in.LineID != "" {
		for _, l := range lines {
			if l.LineID == in.LineID {
				line = l
				break
			}
		}
		if line == nil {
			return nil, Validationf("line %q does not belong to plan %s", in.LineID, plan.Code)
		}
	} else {
		line, err = s.resolveLine(in.TenantID, lines, in.ScanMode, in.ScannedValue)
		if err != nil {
			return nil, err
		}
	}

	entry := models.CountEntry{
		CountPlanID:  plan.ID,
		LineID:       line.LineID,
		ScanMode:     in.ScanMode,
		ScannedValue: in.ScannedValue,
		QtyCounted:   in.QtyCounted,
		Delta:        in.QtyCounted - line.SystemQty,
		CreatedBy:    in.CountedBy,
		RecordedAt:   utils.Timestamp(),
	}
	plan.Entries = append(plan.Entries, entry)

	counted := in.QtyCounted
	variance := counted - line.SystemQty
	line.CountedQty = &counted
	line.VarianceQty = &variance
	line.Status = models.CountLineCounted

	if plan.Status == models.CountPlanDraft {
		plan.Status = models.CountPlanInProgress
	}

	if err := s.plans.Save(plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// Submit moves the plan to SUBMITTED once every line has a counted quantity
// and flags it for approval scrutiny when any line trips the tenant's
// variance threshold. The flag never bypasses approval.
func (s *CountService) Submit(tenantID, planCode string, submittedBy int) (*models.CountPlan, error) {
	plan, err := s.getPlan(tenantID, planCode)
	if err != nil {
		return nil, err
	}
	if plan.Status != models.CountPlanDraft && plan.Status != models.CountPlanInProgress {
		return nil, Conflictf("count plan %s is %s and cannot be submitted", plan.Code, plan.Status)
	}
	for _, line := range plan.Lines {
		if line.CountedQty == nil {
			return nil, Validationf("line %s has not been counted yet", line.LineID)
		}
	}

	cfg, haveCfg := s.catalog.VarianceConfig(tenantID)
	requires := false
	for _, line := range plan.Lines {
		if overThreshold(cfg, haveCfg, line) {
			requires = true
			break
		}
	}

	if err := s.transitionPlan(plan, models.CountPlanSubmitted); err != nil {
		return nil, err
	}
	plan.RequiresApproval = requires
	plan.SubmittedBy = submittedBy
	plan.SubmittedAt = utils.Timestamp()

	if err := s.plans.Save(plan); err != nil {
		return nil, err
	}
	return plan, nil
}

type ApprovePlanInput struct {
	TenantID   string
	PlanCode   string
	ApprovedBy int
	ReasonCode string
	Note       string
}

// Approve folds the counted reality back into the ledger: one CYCLE_COUNT
// entry per line with nonzero variance, for exactly the variance amount. The
// status compare-and-swap guarantees this happens at most once per plan; a
// concurrent duplicate approval fails with a state conflict.
func (s *CountService) Approve(in ApprovePlanInput) (*models.CountPlan, error) {
	plan, err := s.getPlan(in.TenantID, in.PlanCode)
	if err != nil {
		return nil, err
	}

	reason := normalizeReason(in.ReasonCode)
	if reason == "" || !s.catalog.ReasonCode(in.TenantID, reason) {
		return nil, Validationf("approval requires a valid reason code")
	}

	if err := s.transitionPlan(plan, models.CountPlanApproved); err != nil {
		return nil, err
	}

	now := utils.Timestamp()
	for i := range plan.Lines {
		line := &plan.Lines[i]
		if line.VarianceQty != nil && *line.VarianceQty != 0 {
			entry := &models.MovementEntry{
				TenantID:     plan.TenantID,
				WhsCode:      plan.WhsCode,
				MovementType: models.MovementCycleCount,
				SkuID:        line.SkuID,
				Qty:          *line.VarianceQty,
				RefType:      "CYCLE_COUNT",
				RefID:        plan.Code,
				ReasonCode:   reason,
				CreatedBy:    in.ApprovedBy,
				OccurredAt:   now,
			}
			if *line.VarianceQty > 0 {
				entry.ToLocation = line.LocationID
			} else {
				entry.FromLocation = line.LocationID
			}
			if _, err := s.ledger.AppendMovement(entry); err != nil {
				return nil, err
			}
		}
		line.Status = models.CountLineApproved
	}

	plan.ApprovedBy = in.ApprovedBy
	plan.ApprovedAt = now
	plan.ApprovalNote = in.Note

	if err := s.plans.Save(plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// Reject is a pure status transition, the counted quantities stay on record
// but nothing reaches the ledger.
func (s *CountService) Reject(tenantID, planCode string, rejectedBy int, note string) (*models.CountPlan, error) {
	plan, err := s.getPlan(tenantID, planCode)
	if err != nil {
		return nil, err
	}
	if err := s.transitionPlan(plan, models.CountPlanRejected); err != nil {
		return nil, err
	}
	plan.ApprovedBy = rejectedBy
	plan.ApprovedAt = utils.Timestamp()
	plan.ApprovalNote = note

	if err := s.plans.Save(plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *CountService) Cancel(tenantID, planCode string, cancelledBy int, reason string) (*models.CountPlan, error) {
	plan, err := s.getPlan(tenantID, planCode)
	if err != nil {
		return nil, err
	}
	if err := s.transitionPlan(plan, models.CountPlanCancelled); err != nil {
		return nil, err
	}
	plan.CancelReason = reason

	if err := s.plans.Save(plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *CountService) Get(tenantID, planCode string) (*models.CountPlan, error) {
	return s.getPlan(tenantID, planCode)
}

func (s *CountService) List(tenantID string) ([]models.CountPlan, error) {
	return s.plans.List(tenantID)
}

type PlanProgress struct {
	TotalLines    int     `json:"total_lines"`
	CountedLines  int     `json:"counted_lines"`
	QtySystem     float64 `json:"qty_system"`
	QtyCounted    float64 `json:"qty_counted"`
	ProgressLines float64 `json:"progress_lines"`
	ProgressQty   float64 `json:"progress_qty"`
}

// Progress summarises how far the physical count has come, line-wise and
// quantity-wise.
func (s *CountService) Progress(tenantID, planCode string) (*PlanProgress, error) {
	plan, err := s.getPlan(tenantID, planCode)
	if err != nil {
		return nil, err
	}

	p := &PlanProgress{TotalLines: len(plan.Lines)}
	for _, line := range plan.Lines {
		p.QtySystem += line.SystemQty
		if line.CountedQty != nil {
			p.CountedLines++
			p.QtyCounted += *line.CountedQty
		}
	}
	if p.TotalLines > 0 {
		p.ProgressLines = float64(p.CountedLines) / float64(p.TotalLines) * 100
	}
	if p.QtySystem > 0 {
		p.ProgressQty = p.QtyCounted / p.QtySystem * 100
	}
	return p, nil
}

func (s *CountService) getPlan(tenantID, planCode string) (*models.CountPlan, error) {
	plan, err := s.plans.Get(tenantID, planCode)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, NotFoundf("count plan %q not found", planCode)
	}
	return plan, nil
}

// transitionPlan validates the move against the transition table, then
// applies it through the store's compare-and-swap so a concurrent writer
// cannot slip the same transition in twice.
func (s *CountService) transitionPlan(plan *models.CountPlan, to models.CountPlanStatus) error {
	if !countPlanCanMove(plan.Status, to) {
		return Conflictf("count plan %s cannot move from %s to %s", plan.Code, plan.Status, to)
	}
	applied, err := s.plans.Transition(plan.TenantID, plan.Code, plan.Status, to)
	if err != nil {
		return err
	}
	if !applied {
		current, err := s.plans.Get(plan.TenantID, plan.Code)
		if err == nil && current != nil {
			return Conflictf("count plan %s is already %s", plan.Code, current.Status)
		}
		return Conflictf("count plan %s changed status concurrently", plan.Code)
	}
	plan.Status = to
	return nil
}

// overThreshold applies the tenant threshold to one line. A zero system
// quantity with any variance counts as over threshold in percent mode. With
// no config on file, any nonzero variance is flagged.
func overThreshold(cfg *models.VarianceConfig, haveCfg bool, line models.CountLine) bool {
	if line.VarianceQty == nil || *line.VarianceQty == 0 {
		return false
	}
	if !haveCfg {
		return true
	}
	v := math.Abs(*line.VarianceQty)
	if cfg.Mode == models.ThresholdModeAbsolute {
		return v > cfg.AbsoluteValue
	}
	if line.SystemQty == 0 {
		return true
	}
	return v/math.Abs(line.SystemQty)*100 > cfg.PercentValue
}
