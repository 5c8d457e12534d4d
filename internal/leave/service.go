package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/frahmantamala/leave-management/internal"
	"github.com/frahmantamala/leave-management/internal/core/events"
	"github.com/frahmantamala/leave-management/internal/validation"
)

// Notifier is the one-way audit/error channel. Sends never block the
// request path and their failure never surfaces to the caller.
type Notifier interface {
	Notify(message string)
}

// EventPublisher fans lifecycle events out to in-process subscribers.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event)
}

const (
	appendAttempts    = 3
	appendBackoffBase = time.Second
)

// Service orchestrates the three leave commands against the record store,
// the snapshot cache and the notifier.
type Service struct {
	repo     Repository
	cache    *SnapshotCache
	notifier Notifier
	bus      EventPublisher
	logger   *slog.Logger

	// clock and sleep are injectable for deterministic tests
	now   func() time.Time
	sleep func(time.Duration)
}

func NewService(repo Repository, cache *SnapshotCache, notifier Notifier, bus EventPublisher, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		cache:    cache,
		notifier: notifier,
		bus:      bus,
		logger:   logger,
		now:      time.Now,
		sleep:    time.Sleep,
	}
}

// WithClock overrides the service clock and backoff sleeper. Tests use this
// to pin "today" and skip real backoff delays.
func (s *Service) WithClock(now func() time.Time, sleep func(time.Duration)) *Service {
	if now != nil {
		s.now = now
	}
	if sleep != nil {
		s.sleep = sleep
	}
	return s
}

// reportError sends a failure both to the log and to the notifier before
// handing it back to the caller. Every caller-visible failure goes through
// here so no error path skips the audit trail.
func (s *Service) reportError(appErr *internal.AppError) *internal.AppError {
	s.logger.Warn("leave command failed", "code", appErr.Code, "error", appErr.Error())
	s.notifier.Notify("Error: " + appErr.Message)
	return appErr
}

// CreateLeave handles /leave_request. An empty user name defaults to
// "Unknown User"; text must match the request grammar and pass the semantic
// checks before a Pending record is appended with bounded retry.
func (s *Service) CreateLeave(ctx context.Context, userName, text string) (string, *internal.AppError) {
	if userName == "" {
		userName = "Unknown User"
	}

	s.notifier.Notify(fmt.Sprintf("Raw leave request received from %s: %s", userName, text))

	dto, appErr := ParseCreateText(userName, text)
	if appErr != nil {
		return "", s.reportError(appErr)
	}

	if appErr := dto.Validate(s.now()); appErr != nil {
		return "", s.reportError(appErr)
	}

	now := s.now()
	record := &LeaveRecord{
		LeaveID:      fmt.Sprintf("LID-%d", now.Unix()),
		RequestedAt:  now,
		Requester:    dto.Requester,
		FromDate:     dto.FromDate,
		ToDate:       dto.ToDate,
		Reason:       dto.Reason,
		CompOffCount: dto.CompOffCount,
		Verdict:      VerdictPending,
	}

	if appErr := s.appendWithRetry(record); appErr != nil {
		return "", s.reportError(appErr)
	}

	confirmation := fmt.Sprintf(
		"*Leave Request Submitted for %s:*\n*From:* %s\n*To:* %s\n*Comp-Offs:* %d\n*Reason:* %q\n*Leave ID:* %s",
		record.Requester, record.FromDate, record.ToDate, record.CompOffCount, record.Reason, record.LeaveID,
	)

	s.notifier.Notify(confirmation)
	s.bus.Publish(ctx, events.NewLeaveSubmittedEvent(
		record.LeaveID, record.Requester, record.FromDate, record.ToDate, record.CompOffCount))

	s.logger.Info("leave request created",
		"leave_id", record.LeaveID,
		"requester", record.Requester,
		"from", record.FromDate,
		"to", record.ToDate)

	return confirmation, nil
}

// appendWithRetry appends the record, retrying transient store failures
// with exponential backoff (1s, 2s, ...). A duplicate identifier is a data
// integrity signal, not a transient fault, and is surfaced immediately.
func (s *Service) appendWithRetry(record *LeaveRecord) *internal.AppError {
	var lastErr error

	for attempt := 0; attempt < appendAttempts; attempt++ {
		err := s.repo.Append(record)
		if err == nil {
			return nil
		}

		if errors.Is(err, ErrDuplicateLeaveID) {
			return internal.NewConflictError(
				fmt.Sprintf("a leave request with ID %s already exists, please retry", record.LeaveID),
				internal.ErrCodeDuplicateLeaveID,
			)
		}

		lastErr = err
		if attempt < appendAttempts-1 {
			delay := appendBackoffBase << attempt
			s.logger.Warn("store append failed, retrying",
				"leave_id", record.LeaveID,
				"attempt", attempt+1,
				"delay", delay,
				"error", err)
			s.sleep(delay)
		}
	}

	return internal.NewExternalError(
		"failed to store the leave request after multiple attempts",
		internal.ErrCodeStoreAppendFailed,
		lastErr,
	)
}

// LeaveStatus handles /leave_status. The full-record snapshot is served
// from the cache when fresh; a miss rescans the store and repopulates the
// slot.
func (s *Service) LeaveStatus(ctx context.Context, text string) (string, *internal.AppError) {
	leaveID := strings.TrimSpace(text)

	if !validation.IsValidLeaveID(leaveID) {
		return "", s.reportError(internal.NewValidationError(
			"invalid request ID format, use the format 'LID-12345'",
			internal.ErrCodeInvalidLeaveID,
		))
	}

	records, hit := s.cache.Get()
	if !hit {
		scanned, err := s.repo.ScanAll()
		if err != nil {
			return "", s.reportError(internal.NewInternalError(
				"failed to read leave requests from the store", err))
		}
		s.cache.Put(scanned)
		records = scanned
		s.logger.Debug("status cache refreshed", "records", len(records))
	}

	for i := range records {
		if records[i].LeaveID != leaveID {
			continue
		}

		verdict := records[i].Verdict
		if verdict == "" {
			verdict = VerdictPending
		}
		verdictReason := records[i].VerdictReason
		if verdictReason == "" {
			verdictReason = "Not Provided"
		}

		return fmt.Sprintf(
			"*Leave Status for Request ID: %s*\n*Verdict:* %s %s\n*Reason for Verdict:* %q",
			leaveID, verdict, VerdictMarker(verdict), verdictReason,
		), nil
	}

	return "", s.reportError(internal.NewNotFoundError(
		fmt.Sprintf("no leave request found with ID %s", leaveID),
		internal.ErrCodeLeaveNotFound,
	))
}

// CancelLeave handles /leave_cancel. Cancellation is idempotent-reject: a
// second cancel of the same record fails rather than silently succeeding,
// and a leave whose from-date has passed can no longer be cancelled.
func (s *Service) CancelLeave(ctx context.Context, text string) (string, *internal.AppError) {
	dto, appErr := ParseCancelText(text)
	if appErr != nil {
		return "", s.reportError(appErr)
	}

	record, err := s.repo.FindByID(dto.LeaveID)
	if err != nil {
		if errors.Is(err, ErrLeaveNotFound) {
			return "", s.reportError(internal.NewNotFoundError(
				fmt.Sprintf("leave request with ID %s not found", dto.LeaveID),
				internal.ErrCodeLeaveNotFound,
			))
		}
		return "", s.reportError(internal.NewInternalError(
			"failed to look up the leave request", err))
	}

	if record.IsCancelled() {
		return "", s.reportError(internal.NewConflictError(
			fmt.Sprintf("leave request %s is already cancelled", dto.LeaveID),
			internal.ErrCodeAlreadyCancelled,
		))
	}

	if !validation.IsFutureDateAt(record.FromDate, s.now()) {
		return "", s.reportError(internal.NewValidationError(
			fmt.Sprintf("leave request %s cannot be cancelled because it has already started or is in the past", dto.LeaveID),
			internal.ErrCodeCannotCancelStarted,
		))
	}

	verdictReason := "Cancelled by user: " + dto.Reason
	if err := s.repo.UpdateVerdict(dto.LeaveID, VerdictCancelled, verdictReason); err != nil {
		return "", s.reportError(internal.NewInternalError(
			"failed to update the leave request verdict", err))
	}

	s.bus.Publish(ctx, events.NewLeaveCancelledEvent(dto.LeaveID, dto.Reason))

	s.logger.Info("leave request cancelled", "leave_id", dto.LeaveID)

	return fmt.Sprintf("Leave request %s has been successfully cancelled.", dto.LeaveID), nil
}
