package store

import (
	"context"
	"database/sql"
	"errors"

	"blog/internal/models"
)

type PostStore struct {
	db *sql.DB
}

// PostFields carries the author-editable part of a post.
type PostFields struct {
	Title    string
	Subtitle string
	Body     string
	ImgURL   string
}

// List returns all posts in insertion order, with the author name joined in.
func (s *PostStore) List(ctx context.Context) ([]*models.Post, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT p.id, p.user_id, p.title, p.subtitle, p.date, p.body, p.img_url, u.name
		FROM posts p JOIN users u ON u.id = p.user_id ORDER BY p.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*models.Post
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.UserID, &p.Title, &p.Subtitle, &p.Date, &p.Body, &p.ImgURL, &p.Author); err != nil {
			return nil, err
		}
		posts = append(posts, &p)
	}
	return posts, rows.Err()
}

func (s *PostStore) ByID(ctx context.Context, id int64) (*models.Post, error) {
	var p models.Post
	err := s.db.QueryRowContext(ctx,
		`SELECT p.id, p.user_id, p.title, p.subtitle, p.date, p.body, p.img_url, u.name
		FROM posts p JOIN users u ON u.id = p.user_id WHERE p.id = ?`, id).
		Scan(&p.ID, &p.UserID, &p.Title, &p.Subtitle, &p.Date, &p.Body, &p.ImgURL, &p.Author)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ByAuthor returns the posts written by the given user, in insertion order.
func (s *PostStore) ByAuthor(ctx context.Context, authorID int64) ([]*models.Post, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT p.id, p.user_id, p.title, p.subtitle, p.date, p.body, p.img_url, u.name
		FROM posts p JOIN users u ON u.id = p.user_id WHERE p.user_id = ? ORDER BY p.id`, authorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*models.Post
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.UserID, &p.Title, &p.Subtitle, &p.Date, &p.Body, &p.ImgURL, &p.Author); err != nil {
			return nil, err
		}
		posts = append(posts, &p)
	}
	return posts, rows.Err()
}

func (s *PostStore) Create(ctx context.Context, f PostFields, authorID int64, date string) (*models.Post, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO posts(user_id,title,subtitle,date,body,img_url) VALUES(?,?,?,?,?,?)`,
		authorID, f.Title, f.Subtitle, date, f.Body, f.ImgURL)
	if err != nil {
		if isUniqueViolation(err, "posts.title") {
			return nil, ErrDuplicateTitle
		}
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return s.ByID(ctx, id)
}

func (s *PostStore) Update(ctx context.Context, id int64, f PostFields) (*models.Post, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE posts SET title = ?, subtitle = ?, body = ?, img_url = ? WHERE id = ?`,
		f.Title, f.Subtitle, f.Body, f.ImgURL, id)
	if err != nil {
		if isUniqueViolation(err, "posts.title") {
			return nil, ErrDuplicateTitle
		}
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrNotFound
	}
	return s.ByID(ctx, id)
}

func (s *PostStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
