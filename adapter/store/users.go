package store

import (
	"context"

	"github.com/google/uuid"

	"gator/domain"
)

const userColumns = `id, created_at, updated_at, name`

func scanUser(s scanner) (domain.User, error) {
	var u domain.User
	err := s.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt, &u.Name)
	return u, err
}

func (r *Repository) CreateUser(ctx context.Context, name string) (domain.User, error) {
	id, ts := uuid.NewString(), now()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, created_at, updated_at, name) VALUES ($1, $2, $3, $4)`,
		id, ts, ts, name)
	if err != nil {
		return domain.User{}, classify(err, "user "+name)
	}
	u, err := scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return domain.User{}, classify(err, "user "+name)
	}
	return u, nil
}

func (r *Repository) GetUserByName(ctx context.Context, name string) (domain.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE name = $1`, name))
	if err != nil {
		return domain.User{}, classify(err, "user "+name)
	}
	return u, nil
}

func (r *Repository) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY name ASC`)
	if err != nil {
		return nil, classify(err, "list users")
	}
	defer rows.Close()

	var out []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, classify(err, "list users")
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// DeleteAllUsers removes every user; feeds, follows and posts go with them
// through ON DELETE CASCADE.
func (r *Repository) DeleteAllUsers(ctx context.Context) (int64, error) {
	n, err := rowsAffected(r.db.ExecContext(ctx, `DELETE FROM users`))
	if err != nil {
		return 0, classify(err, "delete users")
	}
	return n, nil
}
