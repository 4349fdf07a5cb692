package models

import "time"

// AdminID is the id of the single account allowed to manage posts.
const AdminID int64 = 1

type User struct {
	ID           int64
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}

func (u *User) IsAdmin() bool {
	return u != nil && u.ID == AdminID
}

type Post struct {
	ID       int64
	UserID   int64
	Title    string
	Subtitle string
	Date     string // display string, e.g. "January 02, 2006"
	Body     string
	ImgURL   string
	Author   string
}

type Comment struct {
	ID        int64
	PostID    int64
	UserID    int64
	Body      string
	CreatedAt time.Time
	Author    string
}
