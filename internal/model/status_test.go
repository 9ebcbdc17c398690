package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStatus(t *testing.T) {
	cases := map[string]Status{
		"":            StatusPending,
		"pending":     StatusPending,
		"in_progress": StatusInProgress,
		"IN_PROGRESS": StatusInProgress,
		"delivered":   StatusDelivered,
		"DELIVERED":   StatusDelivered,
		"Delivered ":  StatusDelivered,
		"archived":    StatusPending,
		"in progress": StatusPending,
		"deliveredx":  StatusPending,
		"   ":         StatusPending,
		"\tPending\n": StatusPending,
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeStatus(in), "NormalizeStatus(%q)", in)
	}
}

func TestNormalizeStatus_alwaysKnown(t *testing.T) {
	for _, in := range []string{"x", "PENDING", "in_Progress", "done", "🚀"} {
		assert.Contains(t, Statuses, NormalizeStatus(in))
	}
}

func TestParseStatus(t *testing.T) {
	st, ok := ParseStatus("In_Progress")
	assert.True(t, ok)
	assert.Equal(t, StatusInProgress, st)

	_, ok = ParseStatus("archived")
	assert.False(t, ok)

	_, ok = ParseStatus("")
	assert.False(t, ok)
}

func TestStatusValid(t *testing.T) {
	assert.True(t, StatusDelivered.Valid())
	assert.False(t, Status("Delivered").Valid())
	assert.False(t, Status("archived").Valid())
}
