package slack_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/leave-management/internal"
	"github.com/frahmantamala/leave-management/internal/core/events"
	"github.com/frahmantamala/leave-management/internal/slack"
)

// Mock command service for testing
type mockCommandService struct {
	createResult string
	createErr    *internal.AppError
	createCalls  []string
	statusResult string
	statusErr    *internal.AppError
	statusCalls  []string
	cancelResult string
	cancelErr    *internal.AppError
	cancelCalls  []string
	panicOnCall  bool
}

func (m *mockCommandService) CreateLeave(_ context.Context, userName, text string) (string, *internal.AppError) {
	if m.panicOnCall {
		panic("service blew up")
	}
	m.createCalls = append(m.createCalls, userName+"|"+text)
	return m.createResult, m.createErr
}

func (m *mockCommandService) LeaveStatus(_ context.Context, text string) (string, *internal.AppError) {
	m.statusCalls = append(m.statusCalls, text)
	return m.statusResult, m.statusErr
}

func (m *mockCommandService) CancelLeave(_ context.Context, text string) (string, *internal.AppError) {
	m.cancelCalls = append(m.cancelCalls, text)
	return m.cancelResult, m.cancelErr
}

type mockNotifier struct {
	messages []string
}

func (m *mockNotifier) Notify(message string) {
	m.messages = append(m.messages, message)
}

type mockEventBus struct {
	published []events.Event
}

func (m *mockEventBus) Publish(_ context.Context, event events.Event) {
	m.published = append(m.published, event)
}

var _ = Describe("Dispatcher", func() {
	var (
		dispatcher *slack.Dispatcher
		service    *mockCommandService
		notifier   *mockNotifier
		bus        *mockEventBus
		ctx        context.Context
	)

	BeforeEach(func() {
		service = &mockCommandService{}
		notifier = &mockNotifier{}
		bus = &mockEventBus{}
		ctx = context.Background()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		dispatcher = slack.NewDispatcher(service, notifier, bus, logger)
	})

	It("should route /leave_request with the user name and text", func() {
		service.createResult = "submitted"

		result, appErr := dispatcher.Dispatch(ctx, slack.ParsedCommand{
			Command:  slack.CommandLeaveRequest,
			UserName: "jane.doe",
			Text:     `25/02/2026-05/03/2026 2 "Vacation"`,
		})

		Expect(appErr).To(BeNil())
		Expect(result).To(Equal("submitted"))
		Expect(service.createCalls).To(ConsistOf(`jane.doe|25/02/2026-05/03/2026 2 "Vacation"`))
	})

	It("should route /leave_status with the text only", func() {
		service.statusResult = "status"

		result, appErr := dispatcher.Dispatch(ctx, slack.ParsedCommand{
			Command: slack.CommandLeaveStatus,
			Text:    "LID-100",
		})

		Expect(appErr).To(BeNil())
		Expect(result).To(Equal("status"))
		Expect(service.statusCalls).To(ConsistOf("LID-100"))
	})

	It("should route /leave_cancel with the text only", func() {
		service.cancelResult = "cancelled"

		result, appErr := dispatcher.Dispatch(ctx, slack.ParsedCommand{
			Command: slack.CommandLeaveCancel,
			Text:    "LID-100 changed my plans",
		})

		Expect(appErr).To(BeNil())
		Expect(result).To(Equal("cancelled"))
		Expect(service.cancelCalls).To(ConsistOf("LID-100 changed my plans"))
	})

	It("should pass service errors through untouched", func() {
		service.statusErr = internal.NewNotFoundError("no leave request found with ID LID-999", internal.ErrCodeLeaveNotFound)

		_, appErr := dispatcher.Dispatch(ctx, slack.ParsedCommand{
			Command: slack.CommandLeaveStatus,
			Text:    "LID-999",
		})

		Expect(appErr).To(Equal(service.statusErr))
	})

	Context("with an unknown command", func() {
		It("should reject it, naming the command", func() {
			_, appErr := dispatcher.Dispatch(ctx, slack.ParsedCommand{Command: "/leave_report"})

			Expect(appErr).ToNot(BeNil())
			Expect(appErr.Code).To(Equal(internal.ErrCodeUnknownCommand))
			Expect(appErr.Message).To(ContainSubstring("/leave_report"))
		})

		It("should notify and publish a rejection event", func() {
			_, _ = dispatcher.Dispatch(ctx, slack.ParsedCommand{Command: "/leave_report"})

			Expect(notifier.messages).To(HaveLen(1))
			Expect(notifier.messages[0]).To(HavePrefix("Error: "))
			Expect(bus.published).To(HaveLen(1))
			Expect(bus.published[0].EventType()).To(Equal(events.EventTypeCommandRejected))
		})
	})
})

var _ = Describe("Handler", func() {
	var (
		handler  *slack.Handler
		service  *mockCommandService
		notifier *mockNotifier
	)

	BeforeEach(func() {
		service = &mockCommandService{}
		notifier = &mockNotifier{}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		dispatcher := slack.NewDispatcher(service, notifier, &mockEventBus{}, logger)
		handler = slack.NewHandler(dispatcher, notifier)
	})

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/slack/commands", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		recorder := httptest.NewRecorder()
		handler.HandleCommand(recorder, req)
		return recorder
	}

	decodeError := func(recorder *httptest.ResponseRecorder) string {
		var body struct {
			Error string `json:"error"`
		}
		Expect(json.NewDecoder(recorder.Body).Decode(&body)).To(Succeed())
		return body.Error
	}

	It("should answer a successful command with plain text", func() {
		service.createResult = "*Leave Request Submitted for jane.doe:*"

		recorder := post("command=%2Fleave_request&user_name=jane.doe&text=" +
			url.QueryEscape(`25/02/2026-05/03/2026 2 "Vacation"`))

		Expect(recorder.Code).To(Equal(http.StatusOK))
		Expect(recorder.Header().Get("Content-Type")).To(HavePrefix("text/plain"))

		body, err := io.ReadAll(recorder.Body)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(body)).To(ContainSubstring("Leave Request Submitted"))
		Expect(service.createCalls).To(ConsistOf(`jane.doe|25/02/2026-05/03/2026 2 "Vacation"`))
	})

	It("should answer a command failure with 200 and a JSON error", func() {
		service.statusErr = internal.NewValidationError(
			"invalid request ID format, use the format 'LID-12345'",
			internal.ErrCodeInvalidLeaveID,
		)

		recorder := post("command=%2Fleave_status&user_name=jane.doe&text=12345")

		Expect(recorder.Code).To(Equal(http.StatusOK))
		Expect(recorder.Header().Get("Content-Type")).To(HavePrefix("application/json"))
		Expect(decodeError(recorder)).To(ContainSubstring("invalid request ID format"))
	})

	It("should answer an empty body with 200 and a JSON error", func() {
		recorder := post("")

		Expect(recorder.Code).To(Equal(http.StatusOK))
		Expect(decodeError(recorder)).To(Equal("invalid request: no post data received"))
		Expect(notifier.messages).To(ContainElement("Error: invalid request: no post data received"))
	})

	It("should answer an unknown command with 200 and a JSON error", func() {
		recorder := post("command=%2Fleave_report&user_name=jane.doe")

		Expect(recorder.Code).To(Equal(http.StatusOK))
		Expect(decodeError(recorder)).To(ContainSubstring("/leave_report"))
	})

	It("should turn a panic into a generic 200 JSON error", func() {
		service.panicOnCall = true

		recorder := post("command=%2Fleave_request&user_name=jane.doe&text=whatever")

		Expect(recorder.Code).To(Equal(http.StatusOK))
		Expect(decodeError(recorder)).To(Equal("something went wrong, please try again later"))
		Expect(notifier.messages).To(ContainElement("Error: internal failure while handling a slash command"))
	})
})
