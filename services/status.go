package services

import (
	"fmt"
	"strconv"
	"strings"

	"wms-ledger/models"
)

// Allowed workflow transitions, one table per entity. Every status change in
// this package goes through these tables so an allowed-status set can never
// drift between call sites.
var countPlanTransitions = map[models.CountPlanStatus][]models.CountPlanStatus{
	models.CountPlanDraft:      {models.CountPlanInProgress, models.CountPlanSubmitted, models.CountPlanCancelled},
	models.CountPlanInProgress: {models.CountPlanSubmitted, models.CountPlanCancelled},
	models.CountPlanSubmitted:  {models.CountPlanApproved, models.CountPlanRejected, models.CountPlanCancelled},
}

var adjustmentTransitions = map[models.AdjustmentStatus][]models.AdjustmentStatus{
	models.AdjustmentDraft:     {models.AdjustmentSubmitted, models.AdjustmentCancelled},
	models.AdjustmentSubmitted: {models.AdjustmentApproved, models.AdjustmentRejected, models.AdjustmentCancelled},
}

func countPlanCanMove(from, to models.CountPlanStatus) bool {
	for _, allowed := range countPlanTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func adjustmentCanMove(from, to models.AdjustmentStatus) bool {
	for _, allowed := range adjustmentTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func countPlanTerminal(status models.CountPlanStatus) bool {
	return len(countPlanTransitions[status]) == 0
}

// nextDocCode continues a fixed-prefix, zero-padded sequence: given "CC" and
// "CC000015" it yields "CC000016". An empty last code starts the sequence.
func nextDocCode(prefix, last string) string {
	seq := 0
	if strings.HasPrefix(last, prefix) {
		if n, err := strconv.Atoi(last[len(prefix):]); err == nil {
			seq = n
		}
	}
	return fmt.Sprintf("%s%06d", prefix, seq+1)
}

func normalizeReason(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
