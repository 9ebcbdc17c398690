package model

import (
	"time"

	"github.com/google/uuid"
)

// Lead represents a submitted prospective-client inquiry
type Lead struct {
	ID            uuid.UUID     `json:"_id"`
	Name          string        `json:"name"`
	Email         string        `json:"email"`
	Phone         string        `json:"phone"`
	ProjectType   string        `json:"projectType"`
	BudgetRange   string        `json:"budgetRange"`
	Message       string        `json:"message"`
	Status        Status        `json:"status"`
	StatusHistory []StatusEntry `json:"statusHistory"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// StatusEntry is one immutable row of a lead's status history
type StatusEntry struct {
	Status    Status    `json:"status"`
	Note      *string   `json:"note,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// LeadSummary is the projection of a lead used by the dashboard overview
type LeadSummary struct {
	ID          uuid.UUID `json:"_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	ProjectType string    `json:"projectType"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewLead holds the already-validated fields of a lead about to be inserted
type NewLead struct {
	Name        string
	Email       string
	Phone       string
	ProjectType string
	BudgetRange string
	Message     string
}
