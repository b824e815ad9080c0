package postgres

import (
	"context"
	"errors"

	"github.com/bookgraph/bookgraph/internal/errs"
	"github.com/bookgraph/bookgraph/internal/model"
	"github.com/jackc/pgx/v5"
)

// CredentialRepo implements CredentialRepository using PostgreSQL.
type CredentialRepo struct{ db *DB }

// NewCredentialRepo constructs a credential repository.
func NewCredentialRepo(db *DB) *CredentialRepo { return &CredentialRepo{db: db} }

// Create inserts a new credential row. The id is store-generated.
func (r *CredentialRepo) Create(ctx context.Context, username string, hash, salt []byte) error {
	const q = `
INSERT INTO users (username, password_hash, salt)
VALUES ($1, $2, $3)`
	_, err := r.db.Pool.Exec(ctx, q, username, hash, salt)
	if isUniqueViolation(err) {
		return errs.ErrAlreadyExists
	}
	return err
}

// GetByUsername selects a credential by username.
func (r *CredentialRepo) GetByUsername(ctx context.Context, username string) (*model.Credential, error) {
	const q = `
SELECT id, username, password_hash, salt
FROM users WHERE username=$1`
	row := r.db.Pool.QueryRow(ctx, q, username)
	var c model.Credential
	if err := row.Scan(&c.ID, &c.Username, &c.PasswordHash, &c.Salt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// List selects every credential row.
func (r *CredentialRepo) List(ctx context.Context) ([]model.Credential, error) {
	const q = `
SELECT id, username, password_hash, salt
FROM users ORDER BY id`
	rows, err := r.db.Pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Credential
	for rows.Next() {
		var c model.Credential
		if err := rows.Scan(&c.ID, &c.Username, &c.PasswordHash, &c.Salt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Delete removes a credential by primary key.
func (r *CredentialRepo) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM users WHERE id=$1`
	tag, err := r.db.Pool.Exec(ctx, q, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}
