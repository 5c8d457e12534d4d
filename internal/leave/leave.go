package leave

import (
	"time"

	"github.com/frahmantamala/leave-management/internal"
	leaveDatamodel "github.com/frahmantamala/leave-management/internal/core/datamodel/leave"
)

// LeaveRecord is the domain view of one leave request row.
type LeaveRecord struct {
	ID            int64     `json:"id"`
	LeaveID       string    `json:"leave_id"`
	RequestedAt   time.Time `json:"requested_at"`
	Requester     string    `json:"requester"`
	SlackUserID   string    `json:"slack_user_id,omitempty"`
	FromDate      string    `json:"from_date"`
	ToDate        string    `json:"to_date"`
	Reason        string    `json:"reason"`
	CompOffCount  int       `json:"comp_off_count"`
	Verdict       string    `json:"verdict"`
	VerdictReason string    `json:"verdict_reason,omitempty"`
}

const (
	VerdictPending   = leaveDatamodel.VerdictPending
	VerdictApproved  = leaveDatamodel.VerdictApproved
	VerdictRejected  = leaveDatamodel.VerdictRejected
	VerdictCancelled = leaveDatamodel.VerdictCancelled
)

// verdictMarkers maps a verdict to the Slack emoji code rendered next to
// it. Unknown or empty verdicts fall back to the pending marker.
var verdictMarkers = map[string]string{
	VerdictApproved:  ":heavy_check_mark:",
	VerdictRejected:  ":x:",
	VerdictCancelled: ":no_entry:",
	VerdictPending:   ":hourglass_flowing_sand:",
}

func VerdictMarker(verdict string) string {
	if marker, ok := verdictMarkers[verdict]; ok {
		return marker
	}
	return verdictMarkers[VerdictPending]
}

func (r *LeaveRecord) IsCancelled() bool {
	return r.Verdict == VerdictCancelled
}

// Repository is the row-store abstraction over the leave request sheet.
// ScanAll returns records in storage (insertion) order; FindByID returns
// the first row matching the identifier or ErrLeaveNotFound.
type Repository interface {
	Append(record *LeaveRecord) error
	ScanAll() ([]LeaveRecord, error)
	FindByID(leaveID string) (*LeaveRecord, error)
	UpdateVerdict(leaveID, verdict, verdictReason string) error
}

var (
	ErrLeaveNotFound    = internal.NewNotFoundError("leave request not found", internal.ErrCodeLeaveNotFound)
	ErrDuplicateLeaveID = internal.NewConflictError("leave request ID already exists", internal.ErrCodeDuplicateLeaveID)
)

func ToDataModel(r *LeaveRecord) *leaveDatamodel.LeaveRecord {
	return &leaveDatamodel.LeaveRecord{
		ID:            r.ID,
		LeaveID:       r.LeaveID,
		RequestedAt:   r.RequestedAt,
		Requester:     r.Requester,
		SlackUserID:   r.SlackUserID,
		FromDate:      r.FromDate,
		ToDate:        r.ToDate,
		Reason:        r.Reason,
		CompOffCount:  r.CompOffCount,
		Verdict:       r.Verdict,
		VerdictReason: r.VerdictReason,
	}
}

func FromDataModel(r *leaveDatamodel.LeaveRecord) *LeaveRecord {
	return &LeaveRecord{
		ID:            r.ID,
		LeaveID:       r.LeaveID,
		RequestedAt:   r.RequestedAt,
		Requester:     r.Requester,
		SlackUserID:   r.SlackUserID,
		FromDate:      r.FromDate,
		ToDate:        r.ToDate,
		Reason:        r.Reason,
		CompOffCount:  r.CompOffCount,
		Verdict:       r.Verdict,
		VerdictReason: r.VerdictReason,
	}
}

func FromDataModelSlice(records []*leaveDatamodel.LeaveRecord) []LeaveRecord {
	result := make([]LeaveRecord, len(records))
	for i, r := range records {
		result[i] = *FromDataModel(r)
	}
	return result
}
