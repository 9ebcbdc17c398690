package notify

import (
	"context"
	"errors"

	"github.com/leadhub/server/internal/leads"
	"github.com/leadhub/server/internal/model"
)

// Multi forwards every notification to each wrapped notifier and joins their errors
type Multi []leads.Notifier

func (m Multi) LeadSubmitted(ctx context.Context, lead model.Lead) error {
	var errs []error
	for _, n := range m {
		errs = append(errs, n.LeadSubmitted(ctx, lead))
	}
	return errors.Join(errs...)
}

func (m Multi) StatusChanged(ctx context.Context, lead model.Lead) error {
	var errs []error
	for _, n := range m {
		errs = append(errs, n.StatusChanged(ctx, lead))
	}
	return errors.Join(errs...)
}
