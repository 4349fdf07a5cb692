package handlers

import (
	"errors"
	"net/http"

	"blog/internal/auth"
	"blog/internal/forms"
	"blog/internal/store"
)

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.render(w, r, "register", map[string]any{"Title": "Register"})
		return
	case http.MethodPost:
	default:
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	r.ParseForm()
	form := forms.Register(r.PostForm)
	if !form.Valid() {
		h.render(w, r, "register", map[string]any{
			"Title": "Register",
			"Form":  form,
		})
		return
	}

	hash, err := auth.HashPassword(form.Get("password"))
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	user, err := h.store.Users.Create(r.Context(), form.Get("email"), form.Get("name"), hash)
	if errors.Is(err, store.ErrDuplicateEmail) {
		setFlash(w, "Email already exists. Try to login instead")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	} else if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.log.WithField("user_id", user.ID).Info("user registered")

	if err := h.sessions.Create(w, user.ID); err != nil {
		h.serverError(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.render(w, r, "login", map[string]any{"Title": "Login"})
		return
	case http.MethodPost:
	default:
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	r.ParseForm()
	form := forms.Login(r.PostForm)
	if !form.Valid() {
		h.render(w, r, "login", map[string]any{
			"Title": "Login",
			"Form":  form,
		})
		return
	}

	user, err := h.store.Users.ByEmail(r.Context(), form.Get("email"))
	if errors.Is(err, store.ErrNotFound) {
		setFlash(w, "Email doesn't exist. Try registering instead")
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	} else if err != nil {
		h.serverError(w, r, err)
		return
	}

	if !auth.CheckPassword(form.Get("password"), user.PasswordHash) {
		h.log.WithField("user_id", user.ID).Warn("login with wrong password")
		setFlash(w, "Password is wrong. Enter correct password")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := h.sessions.Create(w, user.ID); err != nil {
		h.serverError(w, r, err)
		return
	}
	h.log.WithField("user_id", user.ID).Info("user logged in")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Destroy(w, r)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
