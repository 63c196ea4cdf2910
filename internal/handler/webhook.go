// Package handler implements the HTTP endpoints of the bot.
package handler

import (
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/yoobic-labs/helpdesk-bot/internal/dialog"
	"github.com/yoobic-labs/helpdesk-bot/internal/middleware"
	"github.com/yoobic-labs/helpdesk-bot/internal/model"
	"github.com/yoobic-labs/helpdesk-bot/internal/store"
	"github.com/yoobic-labs/helpdesk-bot/pkg/logger"
	"github.com/yoobic-labs/helpdesk-bot/pkg/metrics"
)

// Notifier delivers fire-and-forget messages to a platform user.
type Notifier interface {
	Notify(recipientID, text string)
}

// WebhookHandler receives platform events and runs the dialogue engine.
type WebhookHandler struct {
	store         *store.Store
	notifier      Notifier // may be nil when no platform API is configured
	supportUserID string
	logger        *logger.Logger
}

// NewWebhookHandler creates a webhook handler.
func NewWebhookHandler(st *store.Store, notifier Notifier, supportUserID string, log *logger.Logger) *WebhookHandler {
	return &WebhookHandler{
		store:         st,
		notifier:      notifier,
		supportUserID: supportUserID,
		logger:        log,
	}
}

// Subscribe handles GET /webhook, the platform's verification handshake.
func (h *WebhookHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("hub.mode") != "subscribe" {
		writeError(w, http.StatusBadRequest, "unsupported hub.mode")
		return
	}
	writeText(w, http.StatusOK, r.URL.Query().Get("hub.challenge"))
}

// Receive handles POST /webhook. The signature middleware has already
// authenticated the body by the time this runs.
func (h *WebhookHandler) Receive(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable body")
		return
	}

	ev, err := model.ParseInboundEvent(body)
	if err != nil {
		h.logger.Warn("rejecting malformed event", zap.Error(err))
		writeError(w, http.StatusBadRequest, "invalid event payload")
		return
	}

	log := h.logger.WithRequest(middleware.GetCorrelationID(r.Context()), ev.User.UserID)

	// Serialize turns per user so parallel deliveries cannot interleave
	// the read-decide-write sequence.
	release := h.store.Lock(ev.User.UserID)
	defer release()

	state, _ := h.store.Get(ev.User.UserID)
	result := dialog.Respond(ev, state)

	if result.Next.Step == model.StepNone {
		h.store.Clear(ev.User.UserID)
	} else {
		h.store.Set(ev.User.UserID, result.Next)
	}

	if result.Fallback {
		metrics.FallbacksTotal.Inc()
	} else {
		metrics.RecordTransition(string(ev.Type), string(result.Next.Step))
	}
	if result.Ticket != nil {
		h.openTicket(result.Ticket)
	}

	log.Debug("dialogue turn",
		zap.String("event", string(ev.Type)),
		zap.String("step", string(state.Step)),
		zap.String("next_step", string(result.Next.Step)),
	)

	writeJSON(w, http.StatusOK, result.Response)
}

// openTicket records the ticket and, when a support recipient is
// configured, notifies them out of band. Delivery never affects the
// synchronous response.
func (h *WebhookHandler) openTicket(t *dialog.Ticket) {
	metrics.RecordTicket(t.Priority)

	if h.notifier == nil || h.supportUserID == "" {
		return
	}

	text := fmt.Sprintf("New helpdesk ticket from user %s", t.UserID)
	if t.Priority != "" {
		text += fmt.Sprintf(" (%s)", t.Priority)
	}
	if t.Description != "" {
		text += ": " + t.Description
	}
	h.notifier.Notify(h.supportUserID, text)
}
