package leave

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/frahmantamala/leave-management/internal"
	"github.com/frahmantamala/leave-management/internal/validation"
)

// leaveRequestRegex matches `DD/MM/YYYY-DD/MM/YYYY <count> "<reason>"`.
// The count group admits a sign so that a negative comp-off fails the count
// check with its own error instead of a generic format error.
var (
	leaveRequestRegex = regexp.MustCompile(`^(\d{2}/\d{2}/\d{4})-(\d{2}/\d{2}/\d{4})\s+(-?\d+)\s+"(.+?)"$`)
	whitespaceRuns    = regexp.MustCompile(`\s+`)
)

// CreateLeaveDTO carries a parsed /leave_request command text.
type CreateLeaveDTO struct {
	Requester    string
	FromDate     string
	ToDate       string
	CompOffCount int
	Reason       string
}

// ParseCreateText turns raw command text into a DTO. The text is
// percent-decoded once more (Slack clients double-encode slashes) without
// touching '+' again, whitespace runs are collapsed, and the result must
// match the request grammar.
func ParseCreateText(requester, text string) (*CreateLeaveDTO, *internal.AppError) {
	if decoded, err := url.PathUnescape(text); err == nil {
		text = decoded
	}
	text = strings.TrimSpace(whitespaceRuns.ReplaceAllString(text, " "))

	match := leaveRequestRegex.FindStringSubmatch(text)
	if match == nil {
		return nil, internal.NewValidationError(
			fmt.Sprintf("incorrect leave request format, received: %q, expected: DD/MM/YYYY-DD/MM/YYYY <days> \"<reason>\"", text),
			internal.ErrCodeInvalidRequestFormat,
		)
	}

	count, err := strconv.Atoi(match[3])
	if err != nil {
		return nil, internal.NewValidationError(
			"comp-off count must be a positive number",
			internal.ErrCodeInvalidCompOff,
		)
	}

	return &CreateLeaveDTO{
		Requester:    requester,
		FromDate:     match[1],
		ToDate:       match[2],
		CompOffCount: count,
		Reason:       match[4],
	}, nil
}

// Validate applies the semantic checks in protocol order: date shape, date
// range, positive count, then today-or-future for both dates against the
// supplied clock.
func (dto *CreateLeaveDTO) Validate(now time.Time) *internal.AppError {
	if !validation.IsValidDateFormat(dto.FromDate) || !validation.IsValidDateFormat(dto.ToDate) {
		return internal.NewValidationError(
			"invalid date format, use DD/MM/YYYY",
			internal.ErrCodeInvalidDateFormat,
		)
	}

	if !validation.IsValidDateRange(dto.FromDate, dto.ToDate) {
		return internal.NewValidationError(
			"'from' date must be earlier than or equal to 'to' date",
			internal.ErrCodeInvalidDateRange,
		)
	}

	if dto.CompOffCount <= 0 {
		return internal.NewValidationError(
			"comp-off count must be a positive number",
			internal.ErrCodeInvalidCompOff,
		)
	}

	if !validation.IsFutureDateAt(dto.FromDate, now) || !validation.IsFutureDateAt(dto.ToDate, now) {
		return internal.NewValidationError(
			"dates must not be in the past",
			internal.ErrCodeDateInPast,
		)
	}

	return nil
}

// CancelLeaveDTO carries a parsed /leave_cancel command text.
type CancelLeaveDTO struct {
	LeaveID string
	Reason  string
}

const minCancelReasonLen = 5

// ParseCancelText splits `<LID> <reason...>` on the first space. The reason
// must be at least five characters after trimming; the identifier must be a
// well-formed LID.
func ParseCancelText(text string) (*CancelLeaveDTO, *internal.AppError) {
	text = strings.TrimSpace(text)

	leaveID, reason, found := strings.Cut(text, " ")
	if !found {
		return nil, internal.NewValidationError(
			"invalid input, provide the request ID and a cancellation reason (e.g. LID-12345 changed my plans)",
			internal.ErrCodeInvalidRequestFormat,
		)
	}

	reason = strings.TrimSpace(reason)
	if len(reason) < minCancelReasonLen {
		return nil, internal.NewValidationError(
			"the cancellation reason is too short, please provide a more descriptive reason",
			internal.ErrCodeReasonTooShort,
		)
	}

	if !validation.IsValidLeaveID(leaveID) {
		return nil, internal.NewValidationError(
			"invalid request ID format, use the format 'LID-12345'",
			internal.ErrCodeInvalidLeaveID,
		)
	}

	return &CancelLeaveDTO{LeaveID: leaveID, Reason: reason}, nil
}
