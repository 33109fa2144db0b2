package booking

import "Gin_postgres_redis_booking_tool/models"

// Decision actions. APPROVE and REJECT are the one-shot admin decisions on a
// pending request; CANCEL is the administrative override that withdraws an
// already-granted slot.
const (
	ActionApprove = "APPROVE"
	ActionReject  = "REJECT"
	ActionCancel  = "CANCEL"
)

var transitionMap = map[string]struct {
	From string
	To   string
}{
	ActionApprove: {From: models.StatusPending, To: models.StatusApproved},
	ActionReject:  {From: models.StatusPending, To: models.StatusRejected},
	ActionCancel:  {From: models.StatusApproved, To: models.StatusRejected},
}

// ValidTransition reports whether action may be applied to a reservation
// currently in fromStatus. Nothing leaves REJECTED, and nothing re-enters
// APPROVED.
func ValidTransition(action, fromStatus string) bool {
	tr, ok := transitionMap[action]
	return ok && tr.From == fromStatus
}
