package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"blog/internal/models"
)

type UserStore struct {
	db *sql.DB
}

// Create inserts a new user. The password must already be hashed.
func (s *UserStore) Create(ctx context.Context, email, name, passwordHash string) (*models.User, error) {
	u := &models.User{Email: email, Name: name, PasswordHash: passwordHash, CreatedAt: time.Now()}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO users(email,name,password_hash,created_at) VALUES(?,?,?,?)`,
		u.Email, u.Name, u.PasswordHash, u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "users.email") {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	u.ID, err = res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UserStore) ByID(ctx context.Context, id int64) (*models.User, error) {
	return s.scanOne(s.db.QueryRowContext(ctx,
		`SELECT id, email, name, password_hash, created_at FROM users WHERE id = ?`, id))
}

func (s *UserStore) ByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.scanOne(s.db.QueryRowContext(ctx,
		`SELECT id, email, name, password_hash, created_at FROM users WHERE email = ?`, email))
}

func (s *UserStore) scanOne(row *sql.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
