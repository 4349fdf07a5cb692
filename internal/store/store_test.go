package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog/internal/db"
	"blog/internal/models"
	"blog/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	dbc, err := db.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { dbc.Close() })
	require.NoError(t, db.Migrate(dbc))
	return store.New(dbc)
}

func seedUser(t *testing.T, st *store.Store, email string) *models.User {
	t.Helper()
	u, err := st.Users.Create(context.Background(), email, "Tester", "hash")
	require.NoError(t, err)
	return u
}

func seedPost(t *testing.T, st *store.Store, authorID int64, title string) *models.Post {
	t.Helper()
	p, err := st.Posts.Create(context.Background(), store.PostFields{
		Title:    title,
		Subtitle: "sub",
		Body:     "body",
		ImgURL:   "https://example.com/img.png",
	}, authorID, "January 01, 2025")
	require.NoError(t, err)
	return p
}

func TestUserCreate_DuplicateEmail(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	seedUser(t, st, "a@example.com")
	_, err := st.Users.Create(ctx, "a@example.com", "Other", "hash2")
	assert.ErrorIs(t, err, store.ErrDuplicateEmail)

	u, err := st.Users.ByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Tester", u.Name)
}

func TestUserByEmail_NotFound(t *testing.T) {
	st := newTestStore(t)
	_, err := st.Users.ByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestPostCreate_DuplicateTitle(t *testing.T) {
	st := newTestStore(t)
	u := seedUser(t, st, "a@example.com")

	seedPost(t, st, u.ID, "Same Title")
	_, err := st.Posts.Create(context.Background(), store.PostFields{
		Title: "Same Title", Subtitle: "s", Body: "b", ImgURL: "https://example.com/x.png",
	}, u.ID, "January 01, 2025")
	assert.ErrorIs(t, err, store.ErrDuplicateTitle)

	posts, err := st.Posts.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, posts, 1)
}

func TestPostList_InsertionOrderWithAuthor(t *testing.T) {
	st := newTestStore(t)
	u := seedUser(t, st, "a@example.com")

	seedPost(t, st, u.ID, "First")
	seedPost(t, st, u.ID, "Second")

	posts, err := st.Posts.List(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "First", posts[0].Title)
	assert.Equal(t, "Second", posts[1].Title)
	assert.Equal(t, "Tester", posts[0].Author)
}

func TestPostUpdate(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	u := seedUser(t, st, "a@example.com")
	p := seedPost(t, st, u.ID, "Before")

	updated, err := st.Posts.Update(ctx, p.ID, store.PostFields{
		Title: "After", Subtitle: "new sub", Body: "new body", ImgURL: "https://example.com/new.png",
	})
	require.NoError(t, err)
	assert.Equal(t, "After", updated.Title)
	assert.Equal(t, p.Date, updated.Date, "date is fixed at creation")

	_, err = st.Posts.Update(ctx, 9999, store.PostFields{
		Title: "X", Subtitle: "s", Body: "b", ImgURL: "https://example.com/x.png",
	})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestPostUpdate_TitleConflict(t *testing.T) {
	st := newTestStore(t)
	u := seedUser(t, st, "a@example.com")
	seedPost(t, st, u.ID, "Taken")
	p := seedPost(t, st, u.ID, "Mine")

	_, err := st.Posts.Update(context.Background(), p.ID, store.PostFields{
		Title: "Taken", Subtitle: "s", Body: "b", ImgURL: "https://example.com/x.png",
	})
	assert.ErrorIs(t, err, store.ErrDuplicateTitle)
}

func TestPostDelete_CascadesComments(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	u := seedUser(t, st, "a@example.com")
	p := seedPost(t, st, u.ID, "Doomed")

	_, err := st.Comments.Add(ctx, p.ID, u.ID, "first!")
	require.NoError(t, err)

	require.NoError(t, st.Posts.Delete(ctx, p.ID))

	_, err = st.Posts.ByID(ctx, p.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	comments, err := st.Comments.ByPost(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)

	assert.ErrorIs(t, st.Posts.Delete(ctx, p.ID), store.ErrNotFound)
}

func TestPostsByAuthor(t *testing.T) {
	st := newTestStore(t)
	a := seedUser(t, st, "a@example.com")
	b := seedUser(t, st, "b@example.com")
	seedPost(t, st, a.ID, "By A")
	seedPost(t, st, b.ID, "By B")

	posts, err := st.Posts.ByAuthor(context.Background(), a.ID)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "By A", posts[0].Title)
}

func TestCommentAdd_MissingPostOrAuthor(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	u := seedUser(t, st, "a@example.com")
	p := seedPost(t, st, u.ID, "Exists")

	_, err := st.Comments.Add(ctx, 9999, u.ID, "hello")
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = st.Comments.Add(ctx, p.ID, 9999, "hello")
	assert.ErrorIs(t, err, store.ErrNotFound)

	c, err := st.Comments.Add(ctx, p.ID, u.ID, "hello")
	require.NoError(t, err)
	assert.Equal(t, p.ID, c.PostID)
	assert.Equal(t, u.ID, c.UserID)

	comments, err := st.Comments.ByPost(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "hello", comments[0].Body)
	assert.Equal(t, "Tester", comments[0].Author)
}
