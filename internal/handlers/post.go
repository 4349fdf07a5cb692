package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"blog/internal/forms"
	"blog/internal/models"
	"blog/internal/store"
)

// dateFormat matches the display string the posts table stores.
const dateFormat = "January 02, 2006"

func pathID(path, prefix string) (int64, bool) {
	raw := strings.TrimPrefix(path, prefix)
	if raw == "" || strings.Contains(raw, "/") {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// PostByID shows a post with its comments; a POST is a comment submission.
func (h *Handler) PostByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r.URL.Path, "/post/")
	if !ok {
		h.NotFound(w, r)
		return
	}

	post, err := h.store.Posts.ByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		h.NotFound(w, r)
		return
	} else if err != nil {
		h.serverError(w, r, err)
		return
	}

	if r.Method == http.MethodPost {
		r.ParseForm()
		form := forms.Comment(r.PostForm)
		if !form.Valid() {
			h.renderPost(w, r, post, form)
			return
		}

		user := h.currentUser(r)
		if user == nil {
			setFlash(w, "You need to login or register to comment.")
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		if _, err := h.store.Comments.Add(r.Context(), post.ID, user.ID, form.Get("comment")); err != nil {
			h.serverError(w, r, err)
			return
		}
		http.Redirect(w, r, "/post/"+strconv.FormatInt(post.ID, 10), http.StatusSeeOther)
		return
	}

	h.renderPost(w, r, post, nil)
}

func (h *Handler) renderPost(w http.ResponseWriter, r *http.Request, post *models.Post, form *forms.Form) {
	comments, err := h.store.Comments.ByPost(r.Context(), post.ID)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	h.render(w, r, "post", map[string]any{
		"Title":    post.Title,
		"Post":     post,
		"Comments": comments,
		"Form":     form,
	})
}

// NewPost renders and processes the admin authoring form.
func (h *Handler) NewPost(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.render(w, r, "make_post", map[string]any{"Title": "New Post"})
		return
	case http.MethodPost:
	default:
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	r.ParseForm()
	form := forms.Post(r.PostForm)
	if !form.Valid() {
		h.render(w, r, "make_post", map[string]any{"Title": "New Post", "Form": form})
		return
	}

	user := h.currentUser(r)
	fields := store.PostFields{
		Title:    form.Get("title"),
		Subtitle: form.Get("subtitle"),
		Body:     form.Get("body"),
		ImgURL:   form.Get("img_url"),
	}
	post, err := h.store.Posts.Create(r.Context(), fields, user.ID, time.Now().Format(dateFormat))
	if errors.Is(err, store.ErrDuplicateTitle) {
		form.Fail("title", "A post with this title already exists")
		h.render(w, r, "make_post", map[string]any{"Title": "New Post", "Form": form})
		return
	} else if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.log.WithField("post_id", post.ID).Info("post created")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// EditPost pre-fills the authoring form from an existing post.
func (h *Handler) EditPost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r.URL.Path, "/edit-post/")
	if !ok {
		h.NotFound(w, r)
		return
	}

	post, err := h.store.Posts.ByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		h.NotFound(w, r)
		return
	} else if err != nil {
		h.serverError(w, r, err)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.render(w, r, "make_post", map[string]any{
			"Title":  "Edit Post",
			"IsEdit": true,
			"Post":   post,
		})
		return
	case http.MethodPost:
	default:
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	r.ParseForm()
	form := forms.Post(r.PostForm)
	if !form.Valid() {
		h.render(w, r, "make_post", map[string]any{
			"Title":  "Edit Post",
			"IsEdit": true,
			"Post":   post,
			"Form":   form,
		})
		return
	}

	fields := store.PostFields{
		Title:    form.Get("title"),
		Subtitle: form.Get("subtitle"),
		Body:     form.Get("body"),
		ImgURL:   form.Get("img_url"),
	}
	if _, err := h.store.Posts.Update(r.Context(), id, fields); err != nil {
		if errors.Is(err, store.ErrDuplicateTitle) {
			form.Fail("title", "A post with this title already exists")
			h.render(w, r, "make_post", map[string]any{
				"Title":  "Edit Post",
				"IsEdit": true,
				"Post":   post,
				"Form":   form,
			})
			return
		}
		h.serverError(w, r, err)
		return
	}

	http.Redirect(w, r, "/post/"+strconv.FormatInt(id, 10), http.StatusSeeOther)
}

// DeletePost removes a post and, through the schema, its comments. GET is
// accepted because the delete action is exposed as a plain link in the UI;
// POST works too as the state-changing verb.
func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r.URL.Path, "/delete/")
	if !ok {
		h.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	err := h.store.Posts.Delete(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		h.NotFound(w, r)
		return
	} else if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.log.WithField("post_id", id).Info("post deleted")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
