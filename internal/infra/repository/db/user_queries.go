package db

import (
	"context"

	"github.com/RoyceAzure/lab/pos/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const userColumns = `id, username, email, password_hash, first_name, last_name, role, is_active, created_at, updated_at`

func scanUser(row pgx.Row) (model.UserModel, error) {
	var u model.UserModel
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.HashPassword,
		&u.FirstName,
		&u.LastName,
		&u.Role,
		&u.IsActive,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}

func (q *Queries) GetUserByUsername(ctx context.Context, username string) (model.UserModel, error) {
	row := q.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1 AND is_active = true`, username)
	return scanUser(row)
}

func (q *Queries) GetUserByID(ctx context.Context, id uuid.UUID) (model.UserModel, error) {
	row := q.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}
