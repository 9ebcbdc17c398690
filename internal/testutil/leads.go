// Package testutil holds shared in-memory fakes used by tests across packages.
package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/leadhub/server/internal/model"
	"github.com/leadhub/server/internal/repo"
)

// MemoryLeadRepo implements repo.LeadRepo in memory.
// Set the *Err fields to inject failures for specific operations.
type MemoryLeadRepo struct {
	CreateErr       error
	GetErr          error
	AppendStatusErr error
	ListErr         error

	// Now stamps created_at/updated_at; defaults to time.Now.
	Now func() time.Time

	mu    sync.Mutex
	leads map[uuid.UUID]*model.Lead
}

// NewMemoryLeadRepo returns an empty repo
func NewMemoryLeadRepo() *MemoryLeadRepo {
	return &MemoryLeadRepo{leads: make(map[uuid.UUID]*model.Lead)}
}

func (m *MemoryLeadRepo) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}

func (m *MemoryLeadRepo) Create(_ context.Context, lead model.NewLead, first model.StatusEntry) (model.Lead, error) {
	if m.CreateErr != nil {
		return model.Lead{}, m.CreateErr
	}
	if !first.Status.Valid() {
		return model.Lead{}, fmt.Errorf("%w: %q", repo.ErrInvalidStatus, first.Status)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now().UTC()
	created := &model.Lead{
		ID:            uuid.New(),
		Name:          lead.Name,
		Email:         lead.Email,
		Phone:         lead.Phone,
		ProjectType:   lead.ProjectType,
		BudgetRange:   lead.BudgetRange,
		Message:       lead.Message,
		Status:        first.Status,
		StatusHistory: []model.StatusEntry{first},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	m.leads[created.ID] = created
	return cloneLead(created), nil
}

func (m *MemoryLeadRepo) GetByID(_ context.Context, id uuid.UUID) (model.Lead, error) {
	if m.GetErr != nil {
		return model.Lead{}, m.GetErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	lead, ok := m.leads[id]
	if !ok {
		return model.Lead{}, repo.ErrLeadNotFound
	}
	return cloneLead(lead), nil
}

func (m *MemoryLeadRepo) AppendStatus(_ context.Context, id uuid.UUID, entry model.StatusEntry) (model.Lead, error) {
	if m.AppendStatusErr != nil {
		return model.Lead{}, m.AppendStatusErr
	}
	if !entry.Status.Valid() {
		return model.Lead{}, fmt.Errorf("%w: %q", repo.ErrInvalidStatus, entry.Status)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	lead, ok := m.leads[id]
	if !ok {
		return model.Lead{}, repo.ErrLeadNotFound
	}
	lead.Status = entry.Status
	lead.StatusHistory = append(lead.StatusHistory, entry)
	if now := m.now().UTC(); now.After(lead.CreatedAt) {
		lead.UpdatedAt = now
	} else {
		lead.UpdatedAt = lead.CreatedAt
	}
	return cloneLead(lead), nil
}

func (m *MemoryLeadRepo) ListByCreated(_ context.Context) ([]model.Lead, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Lead, 0, len(m.leads))
	for _, lead := range m.leads {
		out = append(out, cloneLead(lead))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *MemoryLeadRepo) ListSummariesByUpdated(_ context.Context) ([]model.LeadSummary, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.LeadSummary, 0, len(m.leads))
	for _, lead := range m.leads {
		out = append(out, model.LeadSummary{
			ID:          lead.ID,
			Name:        lead.Name,
			Email:       lead.Email,
			ProjectType: lead.ProjectType,
			Status:      lead.Status,
			CreatedAt:   lead.CreatedAt,
			UpdatedAt:   lead.UpdatedAt,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func cloneLead(l *model.Lead) model.Lead {
	out := *l
	out.StatusHistory = append([]model.StatusEntry(nil), l.StatusHistory...)
	return out
}

var _ repo.LeadRepo = (*MemoryLeadRepo)(nil)
