// Package leads implements the lead lifecycle (submission and status
// transitions) and the read-only dashboard aggregations over the lead store.
package leads

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/leadhub/server/internal/model"
	"github.com/leadhub/server/internal/repo"
)

const submittedNote = "Lead submitted"

// StatusPolicy decides what happens to status values outside the known set
type StatusPolicy int

const (
	// PermissiveStatus coerces unrecognized values to pending
	PermissiveStatus StatusPolicy = iota
	// StrictStatus rejects unrecognized values with a ValidationError
	StrictStatus
)

// Notifier is told about lead changes after they have been persisted
type Notifier interface {
	LeadSubmitted(ctx context.Context, lead model.Lead) error
	StatusChanged(ctx context.Context, lead model.Lead) error
}

// SubmitInput carries the public contact-form fields
type SubmitInput struct {
	Name        string
	Email       string
	Phone       string
	ProjectType string
	BudgetRange string
	Message     string
}

// Service is the only writer of leads
type Service struct {
	repo     repo.LeadRepo
	notifier Notifier
	policy   StatusPolicy
	now      func() time.Time
}

// NewService creates a lead service. notifier may be nil.
func NewService(leadRepo repo.LeadRepo, notifier Notifier, policy StatusPolicy) *Service {
	return &Service{
		repo:     leadRepo,
		notifier: notifier,
		policy:   policy,
		now:      time.Now,
	}
}

// Submit validates and stores a new lead with status pending and one history entry
func (s *Service) Submit(ctx context.Context, in SubmitInput) (model.Lead, error) {
	lead := model.NewLead{
		Name:        strings.TrimSpace(in.Name),
		Email:       strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:       strings.TrimSpace(in.Phone),
		ProjectType: strings.TrimSpace(in.ProjectType),
		BudgetRange: strings.TrimSpace(in.BudgetRange),
		Message:     strings.TrimSpace(in.Message),
	}

	var missing []string
	for _, f := range []struct{ name, value string }{
		{"name", lead.Name},
		{"email", lead.Email},
		{"phone", lead.Phone},
		{"projectType", lead.ProjectType},
		{"budgetRange", lead.BudgetRange},
		{"message", lead.Message},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return model.Lead{}, &ValidationError{Reason: "missing required fields", Fields: missing}
	}

	note := submittedNote
	first := model.StatusEntry{
		Status:    model.StatusPending,
		Note:      &note,
		UpdatedAt: s.now().UTC(),
	}

	created, err := s.repo.Create(ctx, lead, first)
	if err != nil {
		return model.Lead{}, fmt.Errorf("create lead: %w", err)
	}

	if s.notifier != nil {
		if err := s.notifier.LeadSubmitted(ctx, created); err != nil {
			log.Printf("Lead %s: submitted notification failed: %v", created.ID, err)
		}
	}
	return created, nil
}

// UpdateStatus sets the lead's status and appends exactly one history entry.
// Under PermissiveStatus an unrecognized status is stored as pending.
func (s *Service) UpdateStatus(ctx context.Context, leadID, status, note string) (model.Lead, error) {
	if status == "" {
		return model.Lead{}, &ValidationError{Reason: "status is required", Fields: []string{"status"}}
	}

	normalized, ok := model.ParseStatus(status)
	if !ok {
		if s.policy == StrictStatus {
			return model.Lead{}, &ValidationError{Reason: fmt.Sprintf("unknown status %q", status), Fields: []string{"status"}}
		}
		normalized = model.StatusPending
	}

	id, err := uuid.Parse(strings.TrimSpace(leadID))
	if err != nil {
		return model.Lead{}, ErrNotFound
	}

	entry := model.StatusEntry{
		Status:    normalized,
		UpdatedAt: s.now().UTC(),
	}
	if trimmed := strings.TrimSpace(note); trimmed != "" {
		entry.Note = &trimmed
	}

	updated, err := s.repo.AppendStatus(ctx, id, entry)
	if err != nil {
		if errors.Is(err, repo.ErrLeadNotFound) {
			return model.Lead{}, ErrNotFound
		}
		return model.Lead{}, fmt.Errorf("update lead status: %w", err)
	}

	if s.notifier != nil {
		if err := s.notifier.StatusChanged(ctx, updated); err != nil {
			log.Printf("Lead %s: status notification failed: %v", updated.ID, err)
		}
	}
	return updated, nil
}
