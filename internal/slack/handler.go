package slack

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/leave-management/internal"
	"github.com/frahmantamala/leave-management/internal/leave"
	"github.com/frahmantamala/leave-management/internal/transport"
	"github.com/frahmantamala/leave-management/pkg/logger"
)

type errorBody struct {
	Error string `json:"error"`
}

// Handler terminates the slash-command HTTP surface. Slack treats any
// non-200 as a delivery failure and shows the user a generic error, so the
// response is always 200: a plain-text success message or a JSON
// {"error": ...} body.
type Handler struct {
	*transport.BaseHandler
	dispatcher *Dispatcher
	notifier   leave.Notifier
}

func NewHandler(dispatcher *Dispatcher, notifier leave.Notifier) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		dispatcher:  dispatcher,
		notifier:    notifier,
	}
}

func (h *Handler) HandleCommand(w http.ResponseWriter, r *http.Request) {
	// Internal failures must still come back as a 200 with a generic
	// message; Slack shows raw non-200 bodies to nobody.
	defer func() {
		if rec := recover(); rec != nil {
			h.Logger.Error("panic while handling slash command", "panic", rec)
			h.notifier.Notify("Error: internal failure while handling a slash command")
			h.WriteJSON(w, http.StatusOK, errorBody{Error: "something went wrong, please try again later"})
		}
	}()

	body, err := io.ReadAll(r.Body)
	if err != nil || len(body) == 0 {
		message := "invalid request: no post data received"
		h.Logger.Warn("empty or unreadable command body", "error", err)
		h.notifier.Notify("Error: " + message)
		h.WriteJSON(w, http.StatusOK, errorBody{Error: message})
		return
	}

	cmd := ParseCommand(string(body))
	ctx := internal.ContextWithRequester(r.Context(), cmd.UserName)

	result, appErr := h.dispatcher.Dispatch(ctx, cmd)
	if appErr != nil {
		h.WriteJSON(w, http.StatusOK, errorBody{Error: appErr.Message})
		return
	}

	h.WriteText(w, http.StatusOK, result)
}
