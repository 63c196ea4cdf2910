// Package dialog implements the helpdesk conversation state machine.
//
// The engine is a pure function of (inbound event, current state): it never
// touches the store, does no I/O, and has no error path. Every event either
// matches a transition or falls through to the fixed fallback answer.
package dialog

import (
	"fmt"
	"strings"

	"github.com/yoobic-labs/helpdesk-bot/internal/model"
)

// Quick-reply payloads offered by the greeting.
const (
	PayloadNavigate = "NAVIGATE"
	PayloadReport   = "REPORT"
	PayloadOther    = "OTHER"
)

const (
	greetingAnswer   = "Hello I am your Helpdesk bot, What can I assist you with today?"
	askNavigation    = "Can you please describe what you are looking for?"
	askIssue         = "Can you please describe the issue?"
	askUrgency       = "How urgent is this matter? Please provide an accurate assessment."
	fallbackAnswer   = "I am sorry, I am not able to assist with that. Please contact support."
	ticketOpened     = "Thank you for you answer! A ticket has been opened and someone should be contacting you shortly to answer your query."
	ticketOpenedLink = ticketOpened + " In the meantime, please find more information here: " + helpCenterURL + "."

	helpCenterURL = "https://yoobic.zendesk.com/hc/en-gb"
)

// catalog is the fixed ordered list of navigable topics. Order matters:
// the first entry found in the question wins.
var catalog = []string{
	"Work",
	"Learn",
	"Communicate",
	"Insights",
	"Configuration",
	"Integrations",
	"Platform",
	"My account",
}

// Ticket summarizes a support ticket opened during a turn, for
// out-of-band notification. It never affects the synchronous answer.
type Ticket struct {
	UserID      string
	Description string
	Priority    string
}

// Result is the outcome of one dialogue turn. A Next with StepNone means
// the user's state is cleared. Fallback is set when no transition
// matched and Next is the unchanged incoming state.
type Result struct {
	Response model.OutboundResponse
	Next     model.ConversationState
	Ticket   *Ticket
	Fallback bool
}

type transitionFn func(ev model.InboundEvent, state model.ConversationState) Result

// anyStep and anyPayload are rule wildcards.
const (
	anyStep    model.Step = "*"
	anyPayload            = "*"
)

type rule struct {
	event   model.EventType
	step    model.Step
	payload string // "" when the rule does not inspect the payload
	fn      transitionFn
}

func (r rule) matches(ev model.InboundEvent, state model.ConversationState) bool {
	if ev.Type != r.event {
		return false
	}
	if r.step != anyStep && state.Step != r.step {
		return false
	}
	if r.payload != "" && r.payload != anyPayload && ev.QuickReply != r.payload {
		return false
	}
	return true
}

// transitions is evaluated top to bottom; the first matching rule wins.
// The priority rule must stay below the three fixed payload rules: an
// arbitrary quick reply only reaches it from EXPECTING_REPORT_STEP2,
// everything else falls through to the fallback.
var transitions = []rule{
	{event: model.EventWelcome, step: anyStep, fn: greet},
	{event: model.EventQuickReply, step: anyStep, payload: PayloadNavigate, fn: startNavigation},
	{event: model.EventQuickReply, step: anyStep, payload: PayloadReport, fn: startReport},
	{event: model.EventQuickReply, step: anyStep, payload: PayloadOther, fn: openTicket},
	{event: model.EventQuickReply, step: model.StepExpectingReport2, payload: anyPayload, fn: finishReport},
	{event: model.EventMessage, step: model.StepExpectingNavigation, fn: navigate},
	{event: model.EventMessage, step: model.StepExpectingReport1, fn: captureReport},
	{event: model.EventMessage, step: model.StepExpectingOther, fn: openTicket},
}

// Respond runs one dialogue turn. Unmatched combinations produce the
// fallback answer with the state left untouched.
func Respond(ev model.InboundEvent, state model.ConversationState) Result {
	for _, r := range transitions {
		if r.matches(ev, state) {
			return r.fn(ev, state)
		}
	}
	return Result{
		Response: model.OutboundResponse{Answer: fallbackAnswer},
		Next:     state,
		Fallback: true,
	}
}

func greet(model.InboundEvent, model.ConversationState) Result {
	return Result{
		Response: model.OutboundResponse{
			Answer: greetingAnswer,
			QuickReplies: []model.QuickReply{
				model.TextQuickReply("Help navigating the app", PayloadNavigate),
				model.TextQuickReply("Report incidence", PayloadReport),
				model.TextQuickReply("Other", PayloadOther),
			},
		},
	}
}

func startNavigation(model.InboundEvent, model.ConversationState) Result {
	return Result{
		Response: model.OutboundResponse{Answer: askNavigation},
		Next:     model.ConversationState{Step: model.StepExpectingNavigation},
	}
}

func startReport(model.InboundEvent, model.ConversationState) Result {
	return Result{
		Response: model.OutboundResponse{Answer: askIssue},
		Next:     model.ConversationState{Step: model.StepExpectingReport1},
	}
}

func openTicket(ev model.InboundEvent, _ model.ConversationState) Result {
	return Result{
		Response: model.OutboundResponse{Answer: ticketOpenedLink},
		Ticket:   &Ticket{UserID: ev.User.UserID, Description: ev.Question},
	}
}

// finishReport handles the priority quick reply. The payload is free
// text, embedded verbatim in the answer.
func finishReport(ev model.InboundEvent, state model.ConversationState) Result {
	answer := fmt.Sprintf(
		"Thank you for you answer. A ticket has been opened with a '%s' status and someone should be contacting you shortly to resolve the issue.",
		ev.QuickReply,
	)
	return Result{
		Response: model.OutboundResponse{Answer: answer},
		Ticket: &Ticket{
			UserID:      ev.User.UserID,
			Description: state.Report,
			Priority:    ev.QuickReply,
		},
	}
}

func captureReport(ev model.InboundEvent, _ model.ConversationState) Result {
	return Result{
		Response: model.OutboundResponse{
			Answer: askUrgency,
			QuickReplies: []model.QuickReply{
				model.TextQuickReply("Low priority", "Low priority"),
				model.TextQuickReply("Medium", "Medium"),
				model.TextQuickReply("Critical", "Critical"),
			},
		},
		Next: model.ConversationState{
			Step:   model.StepExpectingReport2,
			Report: ev.Question,
		},
	}
}

func navigate(ev model.InboundEvent, _ model.ConversationState) Result {
	topic, ok := lookupTopic(ev.Question)
	if !ok {
		return Result{
			Response: model.OutboundResponse{Answer: ticketOpened},
			Ticket:   &Ticket{UserID: ev.User.UserID, Description: ev.Question},
		}
	}
	answer := fmt.Sprintf(
		"Great! Please find relevant information here about %s: %s/categories/%s",
		topic, helpCenterURL, topic,
	)
	return Result{Response: model.OutboundResponse{Answer: answer}}
}

// lookupTopic returns the first catalog topic, in catalog order, whose
// name appears as a case-insensitive substring of the question. There is
// no word-boundary check and no scoring; catalog order is the only
// tie-break.
func lookupTopic(question string) (string, bool) {
	lowered := strings.ToLower(question)
	for _, topic := range catalog {
		if strings.Contains(lowered, strings.ToLower(topic)) {
			return topic, true
		}
	}
	return "", false
}
