package model

import "strings"

// Status is the handling stage of a lead
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusDelivered  Status = "delivered"
)

// Statuses lists every valid status in dashboard order
var Statuses = []Status{StatusPending, StatusInProgress, StatusDelivered}

// ParseStatus matches s case-insensitively against the known statuses.
// Surrounding whitespace is ignored.
func ParseStatus(s string) (Status, bool) {
	candidate := Status(strings.ToLower(strings.TrimSpace(s)))
	for _, st := range Statuses {
		if candidate == st {
			return st, true
		}
	}
	return "", false
}

// NormalizeStatus returns the matching status, or StatusPending for empty and unrecognized input
func NormalizeStatus(s string) Status {
	if st, ok := ParseStatus(s); ok {
		return st
	}
	return StatusPending
}

// Valid reports whether s is one of the known statuses
func (s Status) Valid() bool {
	for _, st := range Statuses {
		if s == st {
			return true
		}
	}
	return false
}
