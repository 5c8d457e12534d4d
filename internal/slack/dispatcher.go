package slack

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/leave-management/internal"
	"github.com/frahmantamala/leave-management/internal/core/events"
	"github.com/frahmantamala/leave-management/internal/leave"
)

// CommandService is the surface the dispatcher needs from the leave
// service.
type CommandService interface {
	CreateLeave(ctx context.Context, userName, text string) (string, *internal.AppError)
	LeaveStatus(ctx context.Context, text string) (string, *internal.AppError)
	CancelLeave(ctx context.Context, text string) (string, *internal.AppError)
}

const (
	CommandLeaveRequest = "/leave_request"
	CommandLeaveStatus  = "/leave_status"
	CommandLeaveCancel  = "/leave_cancel"
)

// Dispatcher routes an inbound command name to its handler. Unrecognized
// commands produce a structured error that is also reported through the
// notifier.
type Dispatcher struct {
	service  CommandService
	notifier leave.Notifier
	bus      leave.EventPublisher
	logger   *slog.Logger
}

func NewDispatcher(service CommandService, notifier leave.Notifier, bus leave.EventPublisher, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		service:  service,
		notifier: notifier,
		bus:      bus,
		logger:   logger,
	}
}

func (d *Dispatcher) Dispatch(ctx context.Context, cmd ParsedCommand) (string, *internal.AppError) {
	d.logger.Info("received slash command", "command", cmd.Command, "user_name", cmd.UserName)

	switch cmd.Command {
	case CommandLeaveRequest:
		return d.service.CreateLeave(ctx, cmd.UserName, cmd.Text)
	case CommandLeaveStatus:
		return d.service.LeaveStatus(ctx, cmd.Text)
	case CommandLeaveCancel:
		return d.service.CancelLeave(ctx, cmd.Text)
	default:
		appErr := internal.NewValidationError(
			fmt.Sprintf("invalid command received - %s", cmd.Command),
			internal.ErrCodeUnknownCommand,
		)
		d.logger.Warn("unknown slash command", "command", cmd.Command)
		d.notifier.Notify("Error: " + appErr.Message)
		d.bus.Publish(ctx, events.NewCommandRejectedEvent(cmd.Command, appErr.Message))
		return "", appErr
	}
}
