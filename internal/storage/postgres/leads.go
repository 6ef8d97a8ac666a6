package postgres

import (
	"context"
	"fmt"
	"log"

	"apthire/internal/models"
	"apthire/internal/storage"
	"apthire/internal/transport/dto"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LeadRepo stores contact-form submissions.
type LeadRepo struct {
	db Querier
}

// NewLeadRepo creates a new LeadRepo.
func NewLeadRepo(db *pgxpool.Pool) *LeadRepo {
	return &LeadRepo{db: db}
}

var _ storage.LeadRepository = (*LeadRepo)(nil)

// Create saves a lead.
func (r *LeadRepo) Create(ctx context.Context, req *dto.CreateLeadRequest) (*models.Lead, error) {
	var lead models.Lead
	err := r.db.QueryRow(ctx, `
		INSERT INTO leads (id, name, email, message, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, name, email, message, created_at`,
		uuid.New(), req.Name, req.Email, req.Message,
	).Scan(&lead.ID, &lead.Name, &lead.Email, &lead.Message, &lead.CreatedAt)
	if err != nil {
		log.Printf("Error creating lead: %v\n", err)
		return nil, fmt.Errorf("failed to create lead: %w", err)
	}
	return &lead, nil
}

// List returns leads newest first.
func (r *LeadRepo) List(ctx context.Context, req *dto.ListLeadsRequest) ([]models.Lead, error) {
	args := []any{}
	query := buildListQuery(`SELECT id, name, email, message, created_at FROM leads`, nil, &args,
		"created_at DESC", req.Offset, req.Limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		log.Printf("Error listing leads: %v\n", err)
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	leads, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Lead, error) {
		var l models.Lead
		err := row.Scan(&l.ID, &l.Name, &l.Email, &l.Message, &l.CreatedAt)
		return l, err
	})
	if err != nil {
		log.Printf("Error scanning leads: %v\n", err)
		return nil, fmt.Errorf("failed to scan leads: %w", err)
	}
	return leads, nil
}

// Delete removes a lead by ID.
func (r *LeadRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		log.Printf("Error deleting lead %s: %v\n", id, err)
		return fmt.Errorf("failed to delete lead: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// Count returns the number of stored leads.
func (r *LeadRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM leads`).Scan(&n); err != nil {
		log.Printf("Error counting leads: %v\n", err)
		return 0, fmt.Errorf("failed to count leads: %w", err)
	}
	return n, nil
}
