package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/leadhub/server/internal/model"
)

var (
	// ErrLeadNotFound is returned when no lead exists for the given ID
	ErrLeadNotFound = errors.New("lead not found")
	// ErrInvalidStatus is returned when a write carries a status outside the known set
	ErrInvalidStatus = errors.New("invalid lead status")
)

// LeadRepo defines the interface for lead repository operations
type LeadRepo interface {
	Create(ctx context.Context, lead model.NewLead, first model.StatusEntry) (model.Lead, error)
	GetByID(ctx context.Context, id uuid.UUID) (model.Lead, error)
	AppendStatus(ctx context.Context, id uuid.UUID, entry model.StatusEntry) (model.Lead, error)
	ListByCreated(ctx context.Context) ([]model.Lead, error)
	ListSummariesByUpdated(ctx context.Context) ([]model.LeadSummary, error)
}

type leadRepo struct {
	db *sql.DB
}

// NewLeadRepo creates a new LeadRepo instance
func NewLeadRepo(db *sql.DB) LeadRepo {
	return &leadRepo{db: db}
}

const leadColumns = `id, name, email, phone, project_type, budget_range, message, status, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (model.Lead, error) {
	var lead model.Lead
	err := row.Scan(
		&lead.ID,
		&lead.Name,
		&lead.Email,
		&lead.Phone,
		&lead.ProjectType,
		&lead.BudgetRange,
		&lead.Message,
		&lead.Status,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	)
	return lead, err
}

// Create inserts a lead together with its first status history entry in one transaction
func (r *leadRepo) Create(ctx context.Context, lead model.NewLead, first model.StatusEntry) (model.Lead, error) {
	if !first.Status.Valid() {
		return model.Lead{}, fmt.Errorf("%w: %q", ErrInvalidStatus, first.Status)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Lead{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	created, err := scanLead(tx.QueryRowContext(ctx, `
		INSERT INTO leads (name, email, phone, project_type, budget_range, message, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+leadColumns,
		lead.Name, lead.Email, lead.Phone, lead.ProjectType, lead.BudgetRange, lead.Message, first.Status,
	))
	if err != nil {
		return model.Lead{}, fmt.Errorf("insert lead: %w", err)
	}

	if err := insertHistory(ctx, tx, created.ID, first); err != nil {
		return model.Lead{}, err
	}

	if err := tx.Commit(); err != nil {
		return model.Lead{}, fmt.Errorf("commit: %w", err)
	}

	created.StatusHistory = []model.StatusEntry{first}
	return created, nil
}

// GetByID retrieves a lead with its full status history.
// No HTTP route reads a single lead; it backs store-level tests and tooling.
func (r *leadRepo) GetByID(ctx context.Context, id uuid.UUID) (model.Lead, error) {
	lead, err := scanLead(r.db.QueryRowContext(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Lead{}, ErrLeadNotFound
		}
		return model.Lead{}, fmt.Errorf("query lead: %w", err)
	}

	history, err := loadHistory(ctx, r.db, `WHERE lead_id = $1`, id)
	if err != nil {
		return model.Lead{}, err
	}
	lead.StatusHistory = history[lead.ID]
	return lead, nil
}

// AppendStatus overwrites the lead's status and appends one history entry.
// The status column is last-write-wins; history rows are only ever inserted.
func (r *leadRepo) AppendStatus(ctx context.Context, id uuid.UUID, entry model.StatusEntry) (model.Lead, error) {
	if !entry.Status.Valid() {
		return model.Lead{}, fmt.Errorf("%w: %q", ErrInvalidStatus, entry.Status)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Lead{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	lead, err := scanLead(tx.QueryRowContext(ctx, `
		UPDATE leads
		SET status = $2, updated_at = GREATEST(now(), created_at)
		WHERE id = $1
		RETURNING `+leadColumns,
		id, entry.Status,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Lead{}, ErrLeadNotFound
		}
		return model.Lead{}, fmt.Errorf("update lead status: %w", err)
	}

	if err := insertHistory(ctx, tx, id, entry); err != nil {
		return model.Lead{}, err
	}

	history, err := loadHistory(ctx, tx, `WHERE lead_id = $1`, id)
	if err != nil {
		return model.Lead{}, err
	}

	if err := tx.Commit(); err != nil {
		return model.Lead{}, fmt.Errorf("commit: %w", err)
	}

	lead.StatusHistory = history[id]
	return lead, nil
}

// ListByCreated returns every lead with its history, newest first
func (r *leadRepo) ListByCreated(ctx context.Context) ([]model.Lead, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+leadColumns+` FROM leads ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("query leads: %w", err)
	}
	defer rows.Close()

	leads := make([]model.Lead, 0)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		leads = append(leads, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leads: %w", err)
	}

	history, err := loadHistory(ctx, r.db, ``)
	if err != nil {
		return nil, err
	}
	for i := range leads {
		leads[i].StatusHistory = history[leads[i].ID]
	}
	return leads, nil
}

// ListSummariesByUpdated returns the dashboard projection of every lead, most recently updated first
func (r *leadRepo) ListSummariesByUpdated(ctx context.Context) ([]model.LeadSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, email, project_type, status, created_at, updated_at
		FROM leads
		ORDER BY updated_at DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("query lead summaries: %w", err)
	}
	defer rows.Close()

	summaries := make([]model.LeadSummary, 0)
	for rows.Next() {
		var s model.LeadSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.ProjectType, &s.Status, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan lead summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lead summaries: %w", err)
	}
	return summaries, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func insertHistory(ctx context.Context, tx execer, leadID uuid.UUID, entry model.StatusEntry) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO lead_status_history (lead_id, status, note, updated_at)
		VALUES ($1, $2, $3, $4)
	`, leadID, entry.Status, entry.Note, entry.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert status history: %w", err)
	}
	return nil
}

// loadHistory returns history entries grouped by lead ID, in append order
func loadHistory(ctx context.Context, q querier, where string, args ...any) (map[uuid.UUID][]model.StatusEntry, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT lead_id, status, note, updated_at
		FROM lead_status_history
		`+where+`
		ORDER BY lead_id, id
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("query status history: %w", err)
	}
	defer rows.Close()

	history := make(map[uuid.UUID][]model.StatusEntry)
	for rows.Next() {
		var leadID uuid.UUID
		var entry model.StatusEntry
		if err := rows.Scan(&leadID, &entry.Status, &entry.Note, &entry.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan status history: %w", err)
		}
		history[leadID] = append(history[leadID], entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate status history: %w", err)
	}
	return history, nil
}
