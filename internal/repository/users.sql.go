package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createUser = `
INSERT INTO users (email, password_hash, first_name, last_name, mobile, otp_code)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, email, password_hash, first_name, last_name, mobile, account_type, email_verified, otp_code, created_at, updated_at
`

type CreateUserParams struct {
	Email        string
	PasswordHash pgtype.Text
	FirstName    pgtype.Text
	LastName     pgtype.Text
	Mobile       pgtype.Text
	OtpCode      pgtype.Text
}

func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (User, error) {
	row := q.db.QueryRow(ctx, createUser,
		arg.Email, arg.PasswordHash, arg.FirstName, arg.LastName, arg.Mobile, arg.OtpCode)
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Mobile,
		&u.AccountType, &u.EmailVerified, &u.OtpCode, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

const createAdminUser = `
INSERT INTO users (email, password_hash, first_name, last_name, account_type, email_verified)
VALUES ($1, $2, $3, $4, 'admin', true)
ON CONFLICT (lower(email)) DO NOTHING
RETURNING id, email, password_hash, first_name, last_name, mobile, account_type, email_verified, otp_code, created_at, updated_at
`

type CreateAdminUserParams struct {
	Email        string
	PasswordHash pgtype.Text
	FirstName    pgtype.Text
	LastName     pgtype.Text
}

// CreateAdminUser inserts an admin account. Returns pgx.ErrNoRows when an
// account with the email already exists (the ON CONFLICT clause suppresses
// the insert).
func (q *Queries) CreateAdminUser(ctx context.Context, arg CreateAdminUserParams) (User, error) {
	row := q.db.QueryRow(ctx, createAdminUser,
		arg.Email, arg.PasswordHash, arg.FirstName, arg.LastName)
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Mobile,
		&u.AccountType, &u.EmailVerified, &u.OtpCode, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

const getUserByEmail = `
SELECT id, email, password_hash, first_name, last_name, mobile, account_type, email_verified, otp_code, created_at, updated_at
FROM users
WHERE lower(email) = lower($1)
`

func (q *Queries) GetUserByEmail(ctx context.Context, email string) (User, error) {
	row := q.db.QueryRow(ctx, getUserByEmail, email)
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Mobile,
		&u.AccountType, &u.EmailVerified, &u.OtpCode, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

const getUserByID = `
SELECT id, email, password_hash, first_name, last_name, mobile, account_type, email_verified, otp_code, created_at, updated_at
FROM users
WHERE id = $1
`

func (q *Queries) GetUserByID(ctx context.Context, id pgtype.UUID) (User, error) {
	row := q.db.QueryRow(ctx, getUserByID, id)
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Mobile,
		&u.AccountType, &u.EmailVerified, &u.OtpCode, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

const listUsers = `
SELECT id, email, password_hash, first_name, last_name, mobile, account_type, email_verified, otp_code, created_at, updated_at
FROM users
ORDER BY created_at, id
`

func (q *Queries) ListUsers(ctx context.Context) ([]User, error) {
	rows, err := q.db.Query(ctx, listUsers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Mobile,
			&u.AccountType, &u.EmailVerified, &u.OtpCode, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

const markUserVerified = `
UPDATE users
SET email_verified = true, otp_code = NULL, updated_at = now()
WHERE id = $1
`

func (q *Queries) MarkUserVerified(ctx context.Context, id pgtype.UUID) error {
	_, err := q.db.Exec(ctx, markUserVerified, id)
	return err
}
