package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/easyhrhq/easyhr/internal/hr/domain"
)

type usersRepo struct {
	db dbtx
}

const userColumns = `id, email, full_name, job_title, role, company_id,
	password_hash, is_email_verified, verification_token_hash,
	verification_token_expires_at, created_at, updated_at`

func scanUser(row *sql.Row) (domain.User, error) {
	var (
		u            domain.User
		role         string
		tokenHash    sql.NullString
		tokenExpires sql.NullTime
	)
	err := row.Scan(
		&u.ID, &u.Email, &u.FullName, &u.JobTitle, &role, &u.CompanyID,
		&u.PasswordHash, &u.IsEmailVerified, &tokenHash, &tokenExpires,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.Role = domain.UserRole(role)
	u.VerificationTokenHash = mapNullStringPtr(tokenHash)
	u.VerificationTokenExpiresAt = mapNullTimePtr(tokenExpires)
	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	return scanUser(row)
}

func (r *usersRepo) GetUserByVerificationTokenHash(ctx context.Context, hash string) (domain.User, error) {
	// An expired token is indistinguishable from a missing one.
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users
		 WHERE verification_token_hash = ?
		   AND verification_token_expires_at > ?`,
		hash, time.Now().UTC())
	return scanUser(row)
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, email, full_name, job_title, role, company_id,
		    password_hash, is_email_verified, verification_token_hash,
		    verification_token_expires_at, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.FullName, u.JobTitle, string(u.Role), u.CompanyID,
		u.PasswordHash, u.IsEmailVerified,
		mapOptionalString(u.VerificationTokenHash),
		mapOptionalTime(u.VerificationTokenExpiresAt),
		now, now,
	)
	return mapConstraint(err)
}

func (r *usersRepo) SetVerificationToken(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error {
	return affectedOrNotFound(r.db.ExecContext(ctx,
		`UPDATE users
		 SET verification_token_hash = ?,
		     verification_token_expires_at = ?,
		     updated_at = ?
		 WHERE id = ?`,
		tokenHash, expiresAt.UTC(), time.Now().UTC(), userID,
	))
}

func (r *usersRepo) MarkEmailVerified(ctx context.Context, userID string) error {
	return affectedOrNotFound(r.db.ExecContext(ctx,
		`UPDATE users
		 SET is_email_verified = 1,
		     verification_token_hash = NULL,
		     verification_token_expires_at = NULL,
		     updated_at = ?
		 WHERE id = ?`,
		time.Now().UTC(), userID,
	))
}

func (r *usersRepo) UpdateEmail(ctx context.Context, userID, email string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users
		 SET email = ?,
		     is_email_verified = 0,
		     updated_at = ?
		 WHERE id = ?`,
		email, time.Now().UTC(), userID,
	)
	if err != nil {
		return mapConstraint(err)
	}
	return affectedOrNotFound(res, nil)
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, userID, newHash string) error {
	return affectedOrNotFound(r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`,
		newHash, time.Now().UTC(), userID,
	))
}

func (r *usersRepo) ClearExpiredVerificationTokens(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users
		 SET verification_token_hash = NULL,
		     verification_token_expires_at = NULL
		 WHERE verification_token_hash IS NOT NULL
		   AND verification_token_expires_at <= ?`,
		time.Now().UTC(),
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
