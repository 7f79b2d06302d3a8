package services

import (
	"math"

	"wms-ledger/models"
	"wms-ledger/utils"
)

// AdjustmentService is the single-line mirror of the count workflow: one
// (SKU, location, delta) correction request with the same submit / approve /
// reject / cancel lifecycle and the same at-most-once approval contract.
type AdjustmentService struct {
	adjustments AdjustmentStore
	ledger      *LedgerService
	catalog     Catalog
}

func NewAdjustmentService(adjustments AdjustmentStore, ledger *LedgerService, catalog Catalog) *AdjustmentService {
	return &AdjustmentService{adjustments: adjustments, ledger: ledger, catalog: catalog}
}

type CreateAdjustmentInput struct {
	TenantID    string
	WhsCode     string
	SkuID       string
	LocationID  string
	QtyDelta    float64
	ReasonCode  string
	Note        string
	RequestedBy int
}

func (s *AdjustmentService) Create(in CreateAdjustmentInput) (*models.Adjustment, error) {
	if in.QtyDelta == 0 {
		return nil, Validationf("adjustment delta must not be zero")
	}
	if math.IsNaN(in.QtyDelta) || math.IsInf(in.QtyDelta, 0) {
		return nil, Validationf("adjustment delta must be a finite number")
	}
	if _, ok := s.catalog.Sku(in.TenantID, in.SkuID); !ok {
		return nil, Validationf("unknown SKU %q", in.SkuID)
	}
	if _, ok := s.catalog.Location(in.TenantID, in.LocationID); !ok {
		return nil, Validationf("unknown location %q", in.LocationID)
	}
	reason := normalizeReason(in.ReasonCode)
	if reason == "" || !s.catalog.ReasonCode(in.TenantID, reason) {
		return nil, Validationf("adjustment requires a valid reason code")
	}

	last, err := s.adjustments.LastCode(in.TenantID)
	if err != nil {
		return nil, err
	}

	adj := &models.Adjustment{
		Code:        nextDocCode("ADJ", last),
		TenantID:    in.TenantID,
		WhsCode:     in.WhsCode,
		SkuID:       in.SkuID,
		LocationID:  in.LocationID,
		QtyDelta:    in.QtyDelta,
		ReasonCode:  reason,
		Note:        in.Note,
		Status:      models.AdjustmentDraft,
		RequestedBy: in.RequestedBy,
	}
	if err := s.adjustments.Create(adj); err != nil {
		return nil, err
	}
	return adj, nil
}

func (s *AdjustmentService) Submit(tenantID, code string, submittedBy int) (*models.Adjustment, error) {
	adj, err := s.getAdjustment(tenantID, code)
	if err != nil {
		return nil, err
	}
	if err := s.transition(adj, models.AdjustmentSubmitted); err != nil {
		return nil, err
	}
	adj.SubmittedAt = utils.Timestamp()

	if err := s.adjustments.Save(adj); err != nil {
		return nil, err
	}
	return adj, nil
}

// Approve posts exactly one ADJUSTMENT ledger entry for the delta. The
// status compare-and-swap makes a duplicate approval fail instead of posting
// the delta twice.
func (s *AdjustmentService) Approve(tenantID, code string, approvedBy int) (*models.Adjustment, error) {
	adj, err := s.getAdjustment(tenantID, code)
	if err != nil {
		return nil, err
	}
	if err := s.transition(adj, models.AdjustmentApproved); err != nil {
		return nil, err
	}

	now := utils.Timestamp()
	entry := &models.MovementEntry{
		TenantID:     adj.TenantID,
		WhsCode:      adj.WhsCode,
		MovementType: models.MovementAdjustment,
		SkuID:        adj.SkuID,
		Qty:          adj.QtyDelta,
		RefType:      "ADJUSTMENT",
		RefID:        adj.Code,
		ReasonCode:   adj.ReasonCode,
		CreatedBy:    approvedBy,
		OccurredAt:   now,
	}
	if adj.QtyDelta > 0 {
		entry.ToLocation = adj.LocationID
	} else {
		entry.FromLocation = adj.LocationID
	}
	if _, err := s.ledger.AppendMovement(entry); err != nil {
		return nil, err
	}

	adj.ApprovedBy = approvedBy
	adj.ApprovedAt = now

	if err := s.adjustments.Save(adj); err != nil {
		return nil, err
	}
	return adj, nil
}

func (s *AdjustmentService) Reject(tenantID, code string, rejectedBy int, note string) (*models.Adjustment, error) {
	adj, err := s.getAdjustment(tenantID, code)
	if err != nil {
		return nil, err
	}
	if err := s.transition(adj, models.AdjustmentRejected); err != nil {
		return nil, err
	}
	adj.ApprovedBy = rejectedBy
	adj.ApprovedAt = utils.Timestamp()
	adj.Note = note

	if err := s.adjustments.Save(adj); err != nil {
		return nil, err
	}
	return adj, nil
}

func (s *AdjustmentService) Cancel(tenantID, code string, cancelledBy int, reason string) (*models.Adjustment, error) {
	adj, err := s.getAdjustment(tenantID, code)
	if err != nil {
		return nil, err
	}
	if err := s.transition(adj, models.AdjustmentCancelled); err != nil {
		return nil, err
	}
	adj.CancelReason = reason

	if err := s.adjustments.Save(adj); err != nil {
		return nil, err
	}
	return adj, nil
}

func (s *AdjustmentService) Get(tenantID, code string) (*models.Adjustment, error) {
	return s.getAdjustment(tenantID, code)
}

func (s *AdjustmentService) List(tenantID string) ([]models.Adjustment, error) {
	return s.adjustments.List(tenantID)
}

func (s *AdjustmentService) getAdjustment(tenantID, code string) (*models.Adjustment, error) {
	adj, err := s.adjustments.Get(tenantID, code)
	if err != nil {
		return nil, err
	}
	if adj == nil {
		return nil, NotFoundf("adjustment %q not found", code)
	}
	return adj, nil
}

func (s *AdjustmentService) transition(adj *models.Adjustment, to models.AdjustmentStatus) error {
	if !adjustmentCanMove(adj.Status, to) {
		return Conflictf("adjustment %s cannot move from %s to %s", adj.Code, adj.Status, to)
	}
	applied, err := s.adjustments.Transition(adj.TenantID, adj.Code, adj.Status, to)
	if err != nil {
		return err
	}
	if !applied {
		current, err := s.adjustments.Get(adj.TenantID, adj.Code)
		if err == nil && current != nil {
			return Conflictf("adjustment %s is already %s", adj.Code, current.Status)
		}
		return Conflictf("adjustment %s changed status concurrently", adj.Code)
	}
	adj.Status = to
	return nil
}
