package leads

import (
	"context"
	"fmt"

	"github.com/leadhub/server/internal/model"
)

// recentActivityLimit is how many of the most recently updated leads the dashboard shows
const recentActivityLimit = 5

// Overview is the dashboard status report
type Overview struct {
	Summary          map[model.Status]int                 `json:"summary"`
	ClientsByStatus  map[model.Status][]model.LeadSummary `json:"clientsByStatus"`
	RecentActivities []model.LeadSummary                  `json:"recentActivities"`
}

// ListAll returns every lead, newest first
func (s *Service) ListAll(ctx context.Context) ([]model.Lead, error) {
	all, err := s.repo.ListByCreated(ctx)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	return all, nil
}

// StatusOverview counts and groups leads by status
func (s *Service) StatusOverview(ctx context.Context) (Overview, error) {
	summaries, err := s.repo.ListSummariesByUpdated(ctx)
	if err != nil {
		return Overview{}, fmt.Errorf("list lead summaries: %w", err)
	}
	return BuildOverview(summaries), nil
}

// BuildOverview aggregates summaries already ordered by update time, most recent first.
// Every status key is present even when its bucket is empty.
func BuildOverview(summaries []model.LeadSummary) Overview {
	ov := Overview{
		Summary:         make(map[model.Status]int, len(model.Statuses)),
		ClientsByStatus: make(map[model.Status][]model.LeadSummary, len(model.Statuses)),
	}
	for _, st := range model.Statuses {
		ov.Summary[st] = 0
		ov.ClientsByStatus[st] = []model.LeadSummary{}
	}

	for _, lead := range summaries {
		st := model.NormalizeStatus(string(lead.Status))
		ov.Summary[st]++
		ov.ClientsByStatus[st] = append(ov.ClientsByStatus[st], lead)
	}

	n := min(recentActivityLimit, len(summaries))
	ov.RecentActivities = make([]model.LeadSummary, n)
	copy(ov.RecentActivities, summaries[:n])
	return ov
}
