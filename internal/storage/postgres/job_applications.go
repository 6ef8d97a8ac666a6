package postgres

import (
	"context"
	"errors"
	"fmt"
	"log"

	"apthire/internal/models"
	"apthire/internal/storage"
	"apthire/internal/transport/dto"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const applicationColumns = `id, job_id, applicant_id, applicant_name, applicant_email, resume_url,
	cover_note, status, job_removed, created_at, updated_at`

// Job columns come from a LEFT JOIN and are NULL once the job is gone.
const applicationWithJobQuery = `
	SELECT a.id, a.job_id, a.applicant_id, a.applicant_name, a.applicant_email, a.resume_url,
		a.cover_note, a.status, a.job_removed, a.created_at, a.updated_at,
		COALESCE(j.title, ''), COALESCE(j.company, ''), j.posted_by
	FROM applications a
	LEFT JOIN jobs j ON j.id = a.job_id`

// JobApplicationRepo implements the storage.ApplicationRepository interface using PostgreSQL.
type JobApplicationRepo struct {
	db Querier
}

// NewJobApplicationRepo creates a new JobApplicationRepo.
func NewJobApplicationRepo(db *pgxpool.Pool) *JobApplicationRepo {
	return &JobApplicationRepo{db: db}
}

// WithTx creates a new JobApplicationRepo with the transaction.
func (r *JobApplicationRepo) WithTx(tx pgx.Tx) storage.ApplicationRepository {
	return &JobApplicationRepo{db: tx}
}

var _ storage.ApplicationRepository = (*JobApplicationRepo)(nil)

func scanApplication(row pgx.Row) (*models.Application, error) {
	var app models.Application
	err := row.Scan(
		&app.ID,
		&app.JobID,
		&app.ApplicantID,
		&app.ApplicantName,
		&app.ApplicantEmail,
		&app.ResumeURL,
		&app.CoverNote,
		&app.Status,
		&app.JobRemoved,
		&app.CreatedAt,
		&app.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func collectApplicationsWithJob(rows pgx.Rows) ([]models.ApplicationWithJob, error) {
	defer rows.Close()

	apps := []models.ApplicationWithJob{}
	for rows.Next() {
		var a models.ApplicationWithJob
		err := rows.Scan(
			&a.ID,
			&a.JobID,
			&a.ApplicantID,
			&a.ApplicantName,
			&a.ApplicantEmail,
			&a.ResumeURL,
			&a.CoverNote,
			&a.Status,
			&a.JobRemoved,
			&a.CreatedAt,
			&a.UpdatedAt,
			&a.JobTitle,
			&a.JobCompany,
			&a.JobPostedBy,
		)
		if err != nil {
			log.Printf("Error scanning application row: %v\n", err)
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, a)
	}
	if err := rows.Err(); err != nil {
		log.Printf("Error iterating application rows: %v\n", err)
		return nil, fmt.Errorf("failed to iterate applications: %w", err)
	}
	return apps, nil
}

// Create inserts an application. A second application by the same candidate
// to the same job violates the unique index and yields storage.ErrConflict.
func (r *JobApplicationRepo) Create(ctx context.Context, app *models.Application) (*models.Application, error) {
	if app.ID == uuid.Nil {
		app.ID = uuid.New()
	}
	if app.Status == "" {
		app.Status = models.ApplicationStatusApplied
	}
	query := `
		INSERT INTO applications (id, job_id, applicant_id, applicant_name, applicant_email,
			resume_url, cover_note, status, job_removed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, FALSE, NOW(), NOW())
		RETURNING ` + applicationColumns

	created, err := scanApplication(r.db.QueryRow(ctx, query,
		app.ID,
		app.JobID,
		app.ApplicantID,
		app.ApplicantName,
		app.ApplicantEmail,
		app.ResumeURL,
		app.CoverNote,
		app.Status,
	))
	if err != nil {
		if isUniqueViolation(err) {
			log.Printf("Duplicate application by %s for job %v\n", app.ApplicantID, app.JobID)
			return nil, fmt.Errorf("already applied to this job: %w", storage.ErrConflict)
		}
		if isForeignKeyViolation(err) {
			log.Printf("Application references a missing job or applicant: %v\n", err)
			return nil, storage.ErrNotFound
		}
		log.Printf("Error creating application: %v\n", err)
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	log.Printf("Application created successfully with ID: %s", created.ID)
	return created, nil
}

// GetByID retrieves an application by its ID.
func (r *JobApplicationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	app, err := scanApplication(r.db.QueryRow(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Printf("Application not found with ID: %s\n", id)
			return nil, storage.ErrNotFound
		}
		log.Printf("Error getting application %s: %v\n", id, err)
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return app, nil
}

// ListAll returns every application joined with its job.
func (r *JobApplicationRepo) ListAll(ctx context.Context) ([]models.ApplicationWithJob, error) {
	rows, err := r.db.Query(ctx, applicationWithJobQuery+` ORDER BY a.created_at DESC`)
	if err != nil {
		log.Printf("Error listing applications: %v\n", err)
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return collectApplicationsWithJob(rows)
}

// ListByJobIDs returns the applications submitted to any of jobIDs.
func (r *JobApplicationRepo) ListByJobIDs(ctx context.Context, jobIDs []uuid.UUID) ([]models.ApplicationWithJob, error) {
	if len(jobIDs) == 0 {
		return []models.ApplicationWithJob{}, nil
	}
	rows, err := r.db.Query(ctx, applicationWithJobQuery+` WHERE a.job_id = ANY($1) ORDER BY a.created_at DESC`, jobIDs)
	if err != nil {
		log.Printf("Error listing applications by job ids: %v\n", err)
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return collectApplicationsWithJob(rows)
}

// ListByApplicant returns a candidate's applications, including ones whose job was removed.
func (r *JobApplicationRepo) ListByApplicant(ctx context.Context, applicantID uuid.UUID) ([]models.ApplicationWithJob, error) {
	rows, err := r.db.Query(ctx, applicationWithJobQuery+` WHERE a.applicant_id = $1 ORDER BY a.created_at DESC`, applicantID)
	if err != nil {
		log.Printf("Error listing applications of %s: %v\n", applicantID, err)
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return collectApplicationsWithJob(rows)
}

// UpdateStatus sets the status of an application.
func (r *JobApplicationRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ApplicationStatus) (*models.Application, error) {
	app, err := scanApplication(r.db.QueryRow(ctx, `
		UPDATE applications SET status = $2, updated_at = NOW() WHERE id = $1
		RETURNING `+applicationColumns, id, status))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		log.Printf("Error updating application %s: %v\n", id, err)
		return nil, fmt.Errorf("failed to update application status: %w", err)
	}
	return app, nil
}

// MarkJobRemoved flags every application of jobID before the job is deleted.
func (r *JobApplicationRepo) MarkJobRemoved(ctx context.Context, jobID uuid.UUID) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE applications SET job_removed = TRUE, updated_at = NOW() WHERE job_id = $1`, jobID)
	if err != nil {
		log.Printf("Error marking applications of job %s as removed: %v\n", jobID, err)
		return 0, fmt.Errorf("failed to mark applications: %w", err)
	}
	return tag.RowsAffected(), nil
}

// CountByStatus returns application counts per status within the filter scope.
func (r *JobApplicationRepo) CountByStatus(ctx context.Context, filter *dto.ApplicationCountFilter) (map[models.ApplicationStatus]int, error) {
	counts := make(map[models.ApplicationStatus]int)

	var conditions []string
	var args []any
	if filter != nil {
		if filter.JobIDs != nil {
			if len(filter.JobIDs) == 0 {
				return counts, nil
			}
			args = append(args, filter.JobIDs)
			conditions = append(conditions, fmt.Sprintf("job_id = ANY($%d)", len(args)))
		}
		if filter.ApplicantID != nil {
			args = append(args, *filter.ApplicantID)
			conditions = append(conditions, fmt.Sprintf("applicant_id = $%d", len(args)))
		}
	}

	query := `SELECT status, COUNT(*) FROM applications`
	for i, c := range conditions {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}
	query += " GROUP BY status"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		log.Printf("Error counting applications: %v\n", err)
		return nil, fmt.Errorf("failed to count applications: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status models.ApplicationStatus
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("failed to scan application count: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}
