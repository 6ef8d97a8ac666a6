package postgres

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"

	"apthire/internal/models"
	"apthire/internal/storage"
	"apthire/internal/transport/dto"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const jobColumns = `id, title, company, skills, experience, location, salary, description,
	requirements, employment_type, posted_by, status, created_at, updated_at`

// JobRepo implements the storage.JobRepository interface using PostgreSQL.
type JobRepo struct {
	db Querier
}

// NewJobRepo creates a new JobRepo.
func NewJobRepo(db *pgxpool.Pool) *JobRepo {
	return &JobRepo{db: db}
}

// WithTx creates a new JobRepo with the transaction.
func (r *JobRepo) WithTx(tx pgx.Tx) storage.JobRepository {
	return &JobRepo{db: tx}
}

// Compile-time check to ensure JobRepo implements JobRepository
var _ storage.JobRepository = (*JobRepo)(nil)

func scanJob(row pgx.Row) (*models.Job, error) {
	var job models.Job
	err := row.Scan(
		&job.ID,
		&job.Title,
		&job.Company,
		&job.Skills,
		&job.Experience,
		&job.Location,
		&job.Salary,
		&job.Description,
		&job.Requirements,
		&job.EmploymentType,
		&job.PostedBy,
		&job.Status,
		&job.CreatedAt,
		&job.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if job.Skills == nil {
		job.Skills = []string{}
	}
	return &job, nil
}

// Create saves a new job posting in the active state.
func (r *JobRepo) Create(ctx context.Context, req *dto.CreateJobRequest) (*models.Job, error) {
	query := `
		INSERT INTO jobs (id, title, company, skills, experience, location, salary, description,
			requirements, employment_type, posted_by, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
		RETURNING ` + jobColumns

	job, err := scanJob(r.db.QueryRow(ctx, query,
		uuid.New(),
		req.Title,
		req.Company,
		req.Skills,
		req.Experience,
		req.Location,
		req.Salary,
		req.Description,
		req.Requirements,
		req.EmploymentType,
		req.PostedBy,
		models.JobStatusActive,
	))
	if err != nil {
		if isForeignKeyViolation(err) {
			log.Printf("Error creating job: Foreign key violation (posted_by: %s): %v\n", req.PostedBy, err)
			return nil, fmt.Errorf("failed to create job: invalid owner: %w", storage.ErrConflict)
		}
		log.Printf("Error creating job: %v\n", err)
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	log.Printf("Job created successfully with ID: %s", job.ID)
	return job, nil
}

// GetByID retrieves a specific job by its ID.
func (r *JobRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	job, err := scanJob(r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Printf("Job not found with ID: %s\n", id)
			return nil, storage.ErrNotFound
		}
		log.Printf("Error scanning job by ID %s: %v\n", id, err)
		return nil, fmt.Errorf("failed to get job by ID %s: %w", id, err)
	}
	return job, nil
}

// List retrieves jobs matching the request filters, newest first. Free-text
// skill and location filters are matched literally and case-insensitively.
// Without an explicit status only active jobs are returned.
func (r *JobRepo) List(ctx context.Context, req *dto.ListJobsRequest) ([]models.Job, error) {
	baseQuery := `SELECT ` + jobColumns + ` FROM jobs`

	status := models.JobStatusActive
	if req.Status != nil {
		status = *req.Status
	}
	args := []any{status}
	conditions := []string{"status = $1"}

	if req.Skill != "" {
		args = append(args, regexp.QuoteMeta(req.Skill))
		conditions = append(conditions, fmt.Sprintf("EXISTS (SELECT 1 FROM unnest(skills) AS s WHERE s ~* $%d)", len(args)))
	}
	if req.Location != "" {
		args = append(args, regexp.QuoteMeta(req.Location))
		conditions = append(conditions, fmt.Sprintf("location ~* $%d", len(args)))
	}
	if req.PostedBy != nil {
		args = append(args, *req.PostedBy)
		conditions = append(conditions, fmt.Sprintf("posted_by = $%d", len(args)))
	}

	query := buildListQuery(baseQuery, conditions, &args, "created_at DESC", req.Offset, req.Limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		log.Printf("Error querying jobs: %v\n", err)
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	jobs := []models.Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			log.Printf("Error scanning job row: %v\n", err)
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, *job)
	}
	if err := rows.Err(); err != nil {
		log.Printf("Error iterating job rows: %v\n", err)
		return nil, fmt.Errorf("failed to iterate jobs: %w", err)
	}
	return jobs, nil
}

// ListIDsByOwner returns the ids of every job posted by ownerID, any status.
func (r *JobRepo) ListIDsByOwner(ctx context.Context, ownerID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, `SELECT id FROM jobs WHERE posted_by = $1`, ownerID)
	if err != nil {
		log.Printf("Error listing job ids for owner %s: %v\n", ownerID, err)
		return nil, fmt.Errorf("failed to list owned jobs: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, fmt.Errorf("failed to collect owned jobs: %w", err)
	}
	return ids, nil
}

// UpdateStatus changes the status of a job.
func (r *JobRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.JobStatus) (*models.Job, error) {
	job, err := scanJob(r.db.QueryRow(ctx, `
		UPDATE jobs SET status = $2, updated_at = NOW() WHERE id = $1
		RETURNING `+jobColumns, id, status))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		log.Printf("Error updating status of job %s: %v\n", id, err)
		return nil, fmt.Errorf("failed to update job status: %w", err)
	}
	return job, nil
}

// Delete removes a job. Applications keep their rows; the FK sets job_id to NULL.
func (r *JobRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		log.Printf("Error deleting job %s: %v\n", id, err)
		return fmt.Errorf("failed to delete job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	log.Printf("Job %s deleted", id)
	return nil
}

// CountByStatus returns job counts per status, optionally for one owner.
func (r *JobRepo) CountByStatus(ctx context.Context, ownerID *uuid.UUID) (map[models.JobStatus]int, error) {
	query := `SELECT status, COUNT(*) FROM jobs GROUP BY status`
	args := []any{}
	if ownerID != nil {
		query = `SELECT status, COUNT(*) FROM jobs WHERE posted_by = $1 GROUP BY status`
		args = append(args, *ownerID)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		log.Printf("Error counting jobs: %v\n", err)
		return nil, fmt.Errorf("failed to count jobs: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.JobStatus]int)
	for rows.Next() {
		var status models.JobStatus
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("failed to scan job count: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}
