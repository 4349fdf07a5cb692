package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"blog/internal/models"
)

type CommentStore struct {
	db *sql.DB
}

// Add attaches a comment to a post. Returns ErrNotFound when either the
// post or the author does not exist.
func (s *CommentStore) Add(ctx context.Context, postID, authorID int64, body string) (*models.Comment, error) {
	if err := s.exists(ctx, `SELECT 1 FROM posts WHERE id = ?`, postID); err != nil {
		return nil, err
	}
	if err := s.exists(ctx, `SELECT 1 FROM users WHERE id = ?`, authorID); err != nil {
		return nil, err
	}

	c := &models.Comment{PostID: postID, UserID: authorID, Body: body, CreatedAt: time.Now()}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO comments(post_id,user_id,body,created_at) VALUES(?,?,?,?)`,
		c.PostID, c.UserID, c.Body, c.CreatedAt)
	if err != nil {
		return nil, err
	}
	c.ID, err = res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ByPost returns a post's comments oldest first, with author names joined in.
func (s *CommentStore) ByPost(ctx context.Context, postID int64) ([]*models.Comment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT c.id, c.post_id, c.user_id, c.body, c.created_at, u.name
		FROM comments c JOIN users u ON u.id = c.user_id
		WHERE c.post_id = ? ORDER BY c.created_at, c.id`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []*models.Comment
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.UserID, &c.Body, &c.CreatedAt, &c.Author); err != nil {
			return nil, err
		}
		comments = append(comments, &c)
	}
	return comments, rows.Err()
}

func (s *CommentStore) exists(ctx context.Context, query string, id int64) error {
	var one int
	err := s.db.QueryRowContext(ctx, query, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
