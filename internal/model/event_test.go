package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWelcomeEvent(t *testing.T) {
	ev, err := ParseInboundEvent([]byte(`{"type":"welcome","user":{"user_id":"u-1","first_name":"Ada"}}`))
	require.NoError(t, err)

	assert.Equal(t, EventWelcome, ev.Type)
	assert.Equal(t, "u-1", ev.User.UserID)
	assert.Equal(t, "Ada", ev.User.FirstName)
}

func TestParseQuickReplyEvent(t *testing.T) {
	ev, err := ParseInboundEvent([]byte(`{"type":"quick_reply","quick_reply":"NAVIGATE","user":{"user_id":"u-1"}}`))
	require.NoError(t, err)

	assert.Equal(t, EventQuickReply, ev.Type)
	assert.Equal(t, "NAVIGATE", ev.QuickReply)
}

func TestParseMessageEvent(t *testing.T) {
	ev, err := ParseInboundEvent([]byte(`{"type":"message","question":"where is Work?","user":{"user_id":"u-1"}}`))
	require.NoError(t, err)

	assert.Equal(t, EventMessage, ev.Type)
	assert.Equal(t, "where is Work?", ev.Question)
}

func TestParseRejectsMissingUserID(t *testing.T) {
	_, err := ParseInboundEvent([]byte(`{"type":"welcome","user":{}}`))
	assert.ErrorIs(t, err, ErrMissingUserID)

	_, err = ParseInboundEvent([]byte(`{"type":"welcome"}`))
	assert.ErrorIs(t, err, ErrMissingUserID)
}

func TestParseRejectsUnknownType(t *testing.T) {
	_, err := ParseInboundEvent([]byte(`{"type":"sticker","user":{"user_id":"u-1"}}`))
	assert.ErrorIs(t, err, ErrUnknownEventType)
}

func TestParseRejectsQuickReplyWithoutPayload(t *testing.T) {
	_, err := ParseInboundEvent([]byte(`{"type":"quick_reply","user":{"user_id":"u-1"}}`))
	assert.ErrorIs(t, err, ErrMissingQuickReply)

	_, err = ParseInboundEvent([]byte(`{"type":"quick_reply","quick_reply":"","user":{"user_id":"u-1"}}`))
	assert.ErrorIs(t, err, ErrMissingQuickReply)
}

func TestParseRejectsMessageWithoutQuestion(t *testing.T) {
	_, err := ParseInboundEvent([]byte(`{"type":"message","user":{"user_id":"u-1"}}`))
	assert.ErrorIs(t, err, ErrMissingQuestion)
}

func TestParseAllowsEmptyQuestion(t *testing.T) {
	// An empty question is present but matches nothing in the catalog;
	// the engine decides what to do with it.
	ev, err := ParseInboundEvent([]byte(`{"type":"message","question":"","user":{"user_id":"u-1"}}`))
	require.NoError(t, err)
	assert.Empty(t, ev.Question)
}

func TestParseRejectsInvalidJSON(t *testing.T) {
	_, err := ParseInboundEvent([]byte(`{not json`))
	assert.ErrorIs(t, err, ErrInvalidJSON)
}
