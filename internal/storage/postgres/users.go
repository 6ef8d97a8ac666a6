package postgres

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"apthire/internal/models"
	"apthire/internal/storage"
	"apthire/internal/transport/dto"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `id, name, email, password_hash, role, verified, otp_hash, otp_expires_at,
	google_id, profile, created_at, updated_at`

// UserRepo implements the storage.UserRepository interface using PostgreSQL.
type UserRepo struct {
	db Querier
}

// NewUserRepo creates a new UserRepo.
func NewUserRepo(db *pgxpool.Pool) *UserRepo {
	return &UserRepo{db: db}
}

// WithTx creates a new UserRepo bound to the transaction.
func (r *UserRepo) WithTx(tx pgx.Tx) storage.UserRepository {
	return &UserRepo{db: tx}
}

var _ storage.UserRepository = (*UserRepo)(nil)

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.Verified,
		&u.OTPHash,
		&u.OTPExpiresAt,
		&u.GoogleID,
		&u.Profile,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// queryUser runs a single-row statement and maps "no rows" to storage.ErrNotFound.
func (r *UserRepo) queryUser(ctx context.Context, op string, query string, args ...any) (*models.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		if isUniqueViolation(err) {
			log.Printf("%s: Unique violation: %v", op, err)
			return nil, storage.ErrConflict
		}
		log.Printf("%s: Query failed: %v", op, err)
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// execUser runs a statement that must touch exactly one user row.
func (r *UserRepo) execUser(ctx context.Context, op string, query string, args ...any) error {
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			log.Printf("%s: Unique violation: %v", op, err)
			return storage.ErrConflict
		}
		log.Printf("%s: Exec failed: %v", op, err)
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// GetAll retrieves all users ordered by creation time.
func (r *UserRepo) GetAll(ctx context.Context) ([]models.User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		log.Printf("GetAll: Error querying users: %v", err)
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			log.Printf("GetAll: Error scanning user row: %v", err)
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		log.Printf("GetAll: Error iterating user rows: %v", err)
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}
	return users, nil
}

// GetByID retrieves a single user by ID.
func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return r.queryUser(ctx, "UserRepo.GetByID",
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetByEmail retrieves a single user by its lower-cased email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.queryUser(ctx, "UserRepo.GetByEmail",
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

// Create inserts a user. A taken email surfaces as storage.ErrDuplicateEmail.
func (r *UserRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	query := `
		INSERT INTO users (id, name, email, password_hash, role, verified, otp_hash, otp_expires_at,
			google_id, profile, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING ` + userColumns

	created, err := scanUser(r.db.QueryRow(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.Verified,
		user.OTPHash,
		user.OTPExpiresAt,
		user.GoogleID,
		user.Profile,
	))
	if err != nil {
		if isUniqueViolation(err) {
			log.Printf("Create: Duplicate email or external id for %s: %v", user.Email, err)
			return nil, storage.ErrDuplicateEmail
		}
		log.Printf("Create: Error creating user %s: %v", user.Email, err)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	log.Printf("User created successfully with ID: %s", created.ID)
	return created, nil
}

// SetOTP stores a new OTP hash and expiry.
func (r *UserRepo) SetOTP(ctx context.Context, id uuid.UUID, otpHash string, expiresAt time.Time) error {
	return r.execUser(ctx, "UserRepo.SetOTP",
		`UPDATE users SET otp_hash = $2, otp_expires_at = $3, updated_at = NOW() WHERE id = $1`,
		id, otpHash, expiresAt)
}

// MarkVerified sets the verified flag and clears the OTP.
func (r *UserRepo) MarkVerified(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return r.queryUser(ctx, "UserRepo.MarkVerified", `
		UPDATE users SET verified = TRUE, otp_hash = NULL, otp_expires_at = NULL, updated_at = NOW()
		WHERE id = $1
		RETURNING `+userColumns, id)
}

// UpdatePassword stores a new password hash. When consumeOTP is set the
// OTP is cleared and the account marked verified in the same statement.
func (r *UserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string, consumeOTP bool) error {
	query := `UPDATE users SET password_hash = $2, updated_at = NOW() WHERE id = $1`
	if consumeOTP {
		query = `UPDATE users SET password_hash = $2, otp_hash = NULL, otp_expires_at = NULL,
			verified = TRUE, updated_at = NOW() WHERE id = $1`
	}
	return r.execUser(ctx, "UserRepo.UpdatePassword", query, id, passwordHash)
}

// UpdateRole overwrites the role unconditionally.
func (r *UserRepo) UpdateRole(ctx context.Context, id uuid.UUID, role models.Role) (*models.User, error) {
	return r.queryUser(ctx, "UserRepo.UpdateRole", `
		UPDATE users SET role = $2, updated_at = NOW() WHERE id = $1
		RETURNING `+userColumns, id, role)
}

// AssignRoleIfUnset sets the role only while it is still empty. It returns
// storage.ErrConflict when the user exists but already has a role.
func (r *UserRepo) AssignRoleIfUnset(ctx context.Context, id uuid.UUID, role models.Role) (*models.User, error) {
	u, err := r.queryUser(ctx, "UserRepo.AssignRoleIfUnset", `
		UPDATE users SET role = $2, updated_at = NOW() WHERE id = $1 AND role = ''
		RETURNING `+userColumns, id, role)
	if !errors.Is(err, storage.ErrNotFound) {
		return u, err
	}

	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, id).Scan(&exists); err != nil {
		log.Printf("AssignRoleIfUnset: Error checking user %s: %v", id, err)
		return nil, fmt.Errorf("failed to check user: %w", err)
	}
	if exists {
		return nil, storage.ErrConflict
	}
	return nil, storage.ErrNotFound
}

// LinkGoogleID attaches an external id to an account that has none.
func (r *UserRepo) LinkGoogleID(ctx context.Context, id uuid.UUID, googleID string) error {
	return r.execUser(ctx, "UserRepo.LinkGoogleID",
		`UPDATE users SET google_id = $2, updated_at = NOW() WHERE id = $1 AND google_id IS NULL`,
		id, googleID)
}

// UpdateProfile replaces the profile document and optionally the name.
func (r *UserRepo) UpdateProfile(ctx context.Context, req *dto.UpdateProfileRequest) (*models.User, error) {
	return r.queryUser(ctx, "UserRepo.UpdateProfile", `
		UPDATE users SET name = COALESCE($2, name), profile = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING `+userColumns, req.UserID, req.Name, req.Profile())
}

// Delete removes a user by ID.
func (r *UserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.execUser(ctx, "UserRepo.Delete", `DELETE FROM users WHERE id = $1`, id)
}

// CountByRole returns the number of users per role.
func (r *UserRepo) CountByRole(ctx context.Context) (map[models.Role]int, error) {
	rows, err := r.db.Query(ctx, `SELECT role, COUNT(*) FROM users GROUP BY role`)
	if err != nil {
		log.Printf("CountByRole: Error counting users: %v", err)
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.Role]int)
	for rows.Next() {
		var role models.Role
		var n int
		if err := rows.Scan(&role, &n); err != nil {
			return nil, fmt.Errorf("failed to scan user count: %w", err)
		}
		counts[role] = n
	}
	return counts, rows.Err()
}
