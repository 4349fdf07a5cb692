// Package store is the query layer over the sqlite database. Each entity
// gets its own service holding the shared handle; every method either
// succeeds fully or reports which constraint failed.
package store

import (
	"database/sql"
	"errors"
	"strings"
)

var (
	ErrNotFound       = errors.New("store: record not found")
	ErrDuplicateEmail = errors.New("store: email already registered")
	ErrDuplicateTitle = errors.New("store: title already used")
)

type Store struct {
	Users    *UserStore
	Posts    *PostStore
	Comments *CommentStore
}

func New(db *sql.DB) *Store {
	return &Store{
		Users:    &UserStore{db: db},
		Posts:    &PostStore{db: db},
		Comments: &CommentStore{db: db},
	}
}

// isUniqueViolation reports whether err is a sqlite UNIQUE failure on the
// given column (e.g. "users.email"). The modernc driver exposes constraint
// failures only through the error text.
func isUniqueViolation(err error, column string) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed: "+column)
}
