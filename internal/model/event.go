// Package model defines data structures for the helpdesk bot.
package model

import (
	"encoding/json"
	"errors"
	"fmt"
)

// EventType represents the type of an inbound webhook event.
type EventType string

const (
	EventWelcome    EventType = "welcome"
	EventQuickReply EventType = "quick_reply"
	EventMessage    EventType = "message"
)

// User identifies the sender of an inbound event.
type User struct {
	UserID    string `json:"user_id"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// InboundEvent is a parsed webhook event. Only the field matching the
// event type is populated: QuickReply for quick_reply events, Question
// for message events.
type InboundEvent struct {
	Type       EventType
	QuickReply string
	Question   string
	User       User
}

// Parse errors returned by ParseInboundEvent.
var (
	ErrInvalidJSON       = errors.New("invalid JSON body")
	ErrUnknownEventType  = errors.New("unknown event type")
	ErrMissingUserID     = errors.New("missing user.user_id")
	ErrMissingQuickReply = errors.New("missing quick_reply payload")
	ErrMissingQuestion   = errors.New("missing question")
)

// wireEvent mirrors the platform's webhook body. Tag-specific fields are
// pointers so absence can be told apart from an empty string.
type wireEvent struct {
	Type       EventType `json:"type"`
	QuickReply *string   `json:"quick_reply"`
	Question   *string   `json:"question"`
	User       User      `json:"user"`
}

// ParseInboundEvent decodes and validates a webhook event body. Events
// that do not carry a known type, a sender identifier, and the field
// required by their type are rejected here, so the dialogue engine only
// ever sees well-formed events.
func ParseInboundEvent(body []byte) (InboundEvent, error) {
	var wire wireEvent
	if err := json.Unmarshal(body, &wire); err != nil {
		return InboundEvent{}, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}

	if wire.User.UserID == "" {
		return InboundEvent{}, ErrMissingUserID
	}

	ev := InboundEvent{Type: wire.Type, User: wire.User}

	switch wire.Type {
	case EventWelcome:
	case EventQuickReply:
		if wire.QuickReply == nil || *wire.QuickReply == "" {
			return InboundEvent{}, ErrMissingQuickReply
		}
		ev.QuickReply = *wire.QuickReply
	case EventMessage:
		if wire.Question == nil {
			return InboundEvent{}, ErrMissingQuestion
		}
		ev.Question = *wire.Question
	default:
		return InboundEvent{}, fmt.Errorf("%w: %q", ErrUnknownEventType, wire.Type)
	}

	return ev, nil
}

// QuickReply is a tappable option presented to the user. The payload is
// what comes back in a quick_reply event, independent of the title shown.
type QuickReply struct {
	ContentType string `json:"content_type"`
	Title       string `json:"title"`
	Payload     string `json:"payload"`
}

// TextQuickReply builds a text quick reply.
func TextQuickReply(title, payload string) QuickReply {
	return QuickReply{ContentType: "text", Title: title, Payload: payload}
}

// OutboundResponse is the synchronous reply returned for a webhook event.
// Quick replies are shown to the user in slice order.
type OutboundResponse struct {
	Answer       string       `json:"answer"`
	QuickReplies []QuickReply `json:"quick_replies,omitempty"`
}
