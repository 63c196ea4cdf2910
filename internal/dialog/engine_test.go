package dialog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yoobic-labs/helpdesk-bot/internal/model"
)

var allSteps = []model.Step{
	model.StepNone,
	model.StepExpectingNavigation,
	model.StepExpectingReport1,
	model.StepExpectingReport2,
	model.StepExpectingOther,
}

func welcomeEvent() model.InboundEvent {
	return model.InboundEvent{Type: model.EventWelcome, User: model.User{UserID: "u-1"}}
}

func quickReplyEvent(payload string) model.InboundEvent {
	return model.InboundEvent{Type: model.EventQuickReply, QuickReply: payload, User: model.User{UserID: "u-1"}}
}

func messageEvent(question string) model.InboundEvent {
	return model.InboundEvent{Type: model.EventMessage, Question: question, User: model.User{UserID: "u-1"}}
}

func TestWelcomeResetsFromAnyStep(t *testing.T) {
	for _, step := range allSteps {
		state := model.ConversationState{Step: step, Report: "leftover"}
		result := Respond(welcomeEvent(), state)

		assert.Equal(t, greetingAnswer, result.Response.Answer, "step %q", step)
		require.Len(t, result.Response.QuickReplies, 3)
		assert.Equal(t, PayloadNavigate, result.Response.QuickReplies[0].Payload)
		assert.Equal(t, PayloadReport, result.Response.QuickReplies[1].Payload)
		assert.Equal(t, PayloadOther, result.Response.QuickReplies[2].Payload)
		assert.Equal(t, model.StepNone, result.Next.Step, "step %q", step)
		assert.False(t, result.Fallback)
	}
}

func TestQuickReplyStartsNavigation(t *testing.T) {
	result := Respond(quickReplyEvent(PayloadNavigate), model.ConversationState{})

	assert.Equal(t, askNavigation, result.Response.Answer)
	assert.Equal(t, model.StepExpectingNavigation, result.Next.Step)
}

func TestQuickReplyStartsReport(t *testing.T) {
	result := Respond(quickReplyEvent(PayloadReport), model.ConversationState{})

	assert.Equal(t, askIssue, result.Response.Answer)
	assert.Equal(t, model.StepExpectingReport1, result.Next.Step)
}

func TestQuickReplyOtherOpensTicket(t *testing.T) {
	result := Respond(quickReplyEvent(PayloadOther), model.ConversationState{})

	assert.Contains(t, result.Response.Answer, "Thank you for you answer! A ticket has been opened")
	assert.Contains(t, result.Response.Answer, helpCenterURL)
	assert.Equal(t, model.StepNone, result.Next.Step)
	require.NotNil(t, result.Ticket)
	assert.Equal(t, "u-1", result.Ticket.UserID)
}

func TestPriorityBranchOnlyFromReportStep2(t *testing.T) {
	// An arbitrary quick reply must fall through to the fallback from
	// every step except EXPECTING_REPORT_STEP2.
	for _, step := range allSteps {
		if step == model.StepExpectingReport2 {
			continue
		}
		state := model.ConversationState{Step: step}
		result := Respond(quickReplyEvent("Critical"), state)

		assert.True(t, result.Fallback, "step %q", step)
		assert.Equal(t, fallbackAnswer, result.Response.Answer)
		assert.Equal(t, state, result.Next, "step %q", step)
	}

	state := model.ConversationState{Step: model.StepExpectingReport2, Report: "printer broken"}
	result := Respond(quickReplyEvent("Critical"), state)

	assert.Contains(t, result.Response.Answer, "'Critical'")
	assert.Equal(t, model.StepNone, result.Next.Step)
	require.NotNil(t, result.Ticket)
	assert.Equal(t, "printer broken", result.Ticket.Description)
	assert.Equal(t, "Critical", result.Ticket.Priority)
}

func TestFixedPayloadsWinOverPriorityBranch(t *testing.T) {
	// NAVIGATE/REPORT/OTHER keep their meaning even while a priority
	// answer is expected.
	state := model.ConversationState{Step: model.StepExpectingReport2, Report: "printer broken"}
	result := Respond(quickReplyEvent(PayloadNavigate), state)

	assert.Equal(t, askNavigation, result.Response.Answer)
	assert.Equal(t, model.StepExpectingNavigation, result.Next.Step)
}

func TestReportRoundTrip(t *testing.T) {
	first := Respond(messageEvent("printer broken"), model.ConversationState{Step: model.StepExpectingReport1})

	assert.Equal(t, askUrgency, first.Response.Answer)
	require.Len(t, first.Response.QuickReplies, 3)
	assert.Equal(t, "Low priority", first.Response.QuickReplies[0].Payload)
	assert.Equal(t, "Medium", first.Response.QuickReplies[1].Payload)
	assert.Equal(t, "Critical", first.Response.QuickReplies[2].Payload)
	assert.Equal(t, model.StepExpectingReport2, first.Next.Step)
	assert.Equal(t, "printer broken", first.Next.Report)

	second := Respond(quickReplyEvent("Critical"), first.Next)

	assert.Contains(t, second.Response.Answer, "Critical")
	assert.Equal(t, model.StepNone, second.Next.Step)
}

func TestNavigationFirstMatchInCatalogOrder(t *testing.T) {
	// "Work" precedes "Learn" in the catalog, so it wins regardless of
	// position in the question.
	result := Respond(messageEvent("I want to Learn about Work"), model.ConversationState{Step: model.StepExpectingNavigation})

	assert.Contains(t, result.Response.Answer, "about Work:")
	assert.Contains(t, result.Response.Answer, helpCenterURL+"/categories/Work")
	assert.NotContains(t, result.Response.Answer, "Learn")
	assert.Equal(t, model.StepNone, result.Next.Step)
}

func TestNavigationMatchesInsideWords(t *testing.T) {
	// No word-boundary check: "working" contains "work".
	result := Respond(messageEvent("my WORKING day"), model.ConversationState{Step: model.StepExpectingNavigation})

	assert.Contains(t, result.Response.Answer, "/categories/Work")
}

func TestNavigationNoMatchOpensTicket(t *testing.T) {
	result := Respond(messageEvent("how do I fly to the moon"), model.ConversationState{Step: model.StepExpectingNavigation})

	assert.Equal(t, ticketOpened, result.Response.Answer)
	assert.Equal(t, model.StepNone, result.Next.Step)
	require.NotNil(t, result.Ticket)
	assert.Equal(t, "how do I fly to the moon", result.Ticket.Description)
}

func TestMessageAtExpectingOtherOpensTicket(t *testing.T) {
	result := Respond(messageEvent("something else entirely"), model.ConversationState{Step: model.StepExpectingOther})

	assert.Equal(t, ticketOpenedLink, result.Response.Answer)
	assert.Equal(t, model.StepNone, result.Next.Step)
	require.NotNil(t, result.Ticket)
}

func TestUnmatchedCombinationsFallBack(t *testing.T) {
	// message events only mean something inside a flow that expects one.
	for _, step := range []model.Step{model.StepNone, model.StepExpectingReport2} {
		state := model.ConversationState{Step: step, Report: "kept"}
		result := Respond(messageEvent("hello?"), state)

		assert.True(t, result.Fallback, "step %q", step)
		assert.Equal(t, fallbackAnswer, result.Response.Answer)
		assert.Equal(t, state, result.Next, "state must be untouched for step %q", step)
		assert.Nil(t, result.Ticket)
	}
}

func TestRespondIsDeterministic(t *testing.T) {
	events := []model.InboundEvent{
		welcomeEvent(),
		quickReplyEvent(PayloadNavigate),
		quickReplyEvent("Medium"),
		messageEvent("where is the Platform section"),
	}
	for _, ev := range events {
		for _, step := range allSteps {
			state := model.ConversationState{Step: step, Report: "r"}
			first := Respond(ev, state)
			second := Respond(ev, state)
			assert.Equal(t, first, second, "event %q step %q", ev.Type, step)
		}
	}
}
