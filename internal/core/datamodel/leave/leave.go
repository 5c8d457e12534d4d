package leave

import "time"

// Verdict values mirror what a reviewer writes into the verdict column.
const (
	VerdictPending   = "Pending"
	VerdictApproved  = "Approved"
	VerdictRejected  = "Rejected"
	VerdictCancelled = "Cancelled"
)

// LeaveRecord is one leave request row. Column order mirrors the request
// sheet this service replaced, including the unused slack_user_id
// placeholder; FromDate and ToDate keep the literal DD/MM/YYYY strings
// the commands exchange.
type LeaveRecord struct {
	ID            int64     `gorm:"primaryKey"`
	LeaveID       string    `gorm:"column:leave_id;uniqueIndex;not null"`
	RequestedAt   time.Time `gorm:"column:requested_at;not null"`
	Requester     string    `gorm:"column:requester;not null"`
	SlackUserID   string    `gorm:"column:slack_user_id"`
	FromDate      string    `gorm:"column:from_date;not null"`
	ToDate        string    `gorm:"column:to_date;not null"`
	Reason        string    `gorm:"column:reason;not null"`
	CompOffCount  int       `gorm:"column:comp_off_count;not null"`
	Verdict       string    `gorm:"column:verdict;default:Pending"`
	VerdictReason string    `gorm:"column:verdict_reason"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (LeaveRecord) TableName() string {
	return "leave_requests"
}
