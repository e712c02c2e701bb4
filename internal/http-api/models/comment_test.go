package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSymbol(t *testing.T) {
	for _, raw := range []string{"BTC", "ETH", "XRP"} {
		sym, err := ParseSymbol(raw)
		assert.NoError(t, err)
		assert.Equal(t, raw, sym.String())
	}

	for _, raw := range []string{"", "btc", "DOGE", "BTC "} {
		_, err := ParseSymbol(raw)
		assert.Error(t, err, "symbol %q should be rejected", raw)
	}
}

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to CommentStatus
		ok       bool
	}{
		{StatusActive, StatusReported, true},
		{StatusActive, StatusDeleted, true},
		{StatusReported, StatusDeleted, true},
		{StatusReported, StatusActive, false},
		{StatusDeleted, StatusReported, false},
		{StatusDeleted, StatusActive, false},
		{StatusActive, StatusActive, false},
		{StatusDeleted, StatusDeleted, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.ok, tc.from.CanTransition(tc.to),
			"transition %s -> %s", tc.from, tc.to)
	}
}

func TestCommentShape(t *testing.T) {
	uid := int64(7)
	registered := Comment{UserID: &uid, Level: 0}
	assert.True(t, registered.IsTopLevel())
	assert.False(t, registered.IsAnonymous())

	anon := Comment{Level: 1}
	assert.False(t, anon.IsTopLevel())
	assert.True(t, anon.IsAnonymous())
}
