package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeLeaveSubmitted  = "leave.submitted"
	EventTypeLeaveCancelled  = "leave.cancelled"
	EventTypeCommandRejected = "command.rejected"
)

type LeaveSubmittedEvent struct {
	BaseEvent
	LeaveID      string `json:"leave_id"`
	Requester    string `json:"requester"`
	FromDate     string `json:"from_date"`
	ToDate       string `json:"to_date"`
	CompOffCount int    `json:"comp_off_count"`
}

func NewLeaveSubmittedEvent(leaveID, requester, fromDate, toDate string, compOffCount int) *LeaveSubmittedEvent {
	return &LeaveSubmittedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeLeaveSubmitted,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"leave_id":       leaveID,
				"requester":      requester,
				"from_date":      fromDate,
				"to_date":        toDate,
				"comp_off_count": compOffCount,
			},
		},
		LeaveID:      leaveID,
		Requester:    requester,
		FromDate:     fromDate,
		ToDate:       toDate,
		CompOffCount: compOffCount,
	}
}

type LeaveCancelledEvent struct {
	BaseEvent
	LeaveID string `json:"leave_id"`
	Reason  string `json:"reason"`
}

func NewLeaveCancelledEvent(leaveID, reason string) *LeaveCancelledEvent {
	return &LeaveCancelledEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeLeaveCancelled,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"leave_id": leaveID,
				"reason":   reason,
			},
		},
		LeaveID: leaveID,
		Reason:  reason,
	}
}

type CommandRejectedEvent struct {
	BaseEvent
	Command string `json:"command"`
	Message string `json:"message"`
}

func NewCommandRejectedEvent(command, message string) *CommandRejectedEvent {
	return &CommandRejectedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeCommandRejected,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"command": command,
				"message": message,
			},
		},
		Command: command,
		Message: message,
	}
}
