package handlers

import (
	"bytes"
	"html/template"
	"net/http"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"blog/internal/auth"
	"blog/internal/mail"
	"blog/internal/models"
	"blog/internal/store"
)

type Handler struct {
	store    *store.Store
	sessions *auth.Manager
	mailer   mail.Mailer
	tpls     *template.Template
	log      *logrus.Logger
}

var functions = template.FuncMap{
	// post bodies are rich text authored by the admin
	"safe": func(s string) template.HTML { return template.HTML(s) },
}

func New(st *store.Store, sessions *auth.Manager, mailer mail.Mailer, tplDir string, log *logrus.Logger) *Handler {
	tpls := template.Must(template.New("").Funcs(functions).ParseGlob(filepath.Join(tplDir, "*.html")))
	return &Handler{store: st, sessions: sessions, mailer: mailer, tpls: tpls, log: log}
}

func (h *Handler) Routes(staticDir string) http.Handler {
	mux := http.NewServeMux()

	fs := http.FileServer(http.Dir(staticDir))
	mux.Handle("/static/", http.StripPrefix("/static/", fs))

	mux.HandleFunc("/", h.Home)
	mux.HandleFunc("/about", h.About)
	mux.HandleFunc("/contact", h.Contact)

	mux.HandleFunc("/register", h.Register)
	mux.HandleFunc("/login", h.Login)
	mux.HandleFunc("/logout", h.Logout)

	mux.HandleFunc("/post/", h.PostByID)
	mux.HandleFunc("/new-post", h.RequireAdmin(h.NewPost))
	mux.HandleFunc("/edit-post/", h.RequireAdmin(h.EditPost))
	mux.HandleFunc("/delete/", h.RequireAdmin(h.DeletePost))

	return WithRecover(h.LogRequests(mux))
}

// currentUser resolves the session to a user record, nil when anonymous.
func (h *Handler) currentUser(r *http.Request) *models.User {
	uid, ok := h.sessions.CurrentUserID(r)
	if !ok {
		return nil
	}
	u, err := h.store.Users.ByID(r.Context(), uid)
	if err != nil {
		return nil
	}
	return u
}

// render executes a named template with the shared page context filled in.
// Output is buffered so a template error still yields a clean 500.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	u := h.currentUser(r)
	data["CurrentUser"] = u
	data["LoggedIn"] = u != nil
	data["IsAdmin"] = u.IsAdmin()
	data["Year"] = time.Now().Year()
	if _, set := data["Flash"]; !set {
		if msg := popFlash(w, r); msg != "" {
			data["Flash"] = msg
		}
	}

	buf := new(bytes.Buffer)
	if err := h.tpls.ExecuteTemplate(buf, name, data); err != nil {
		h.serverError(w, r, err)
		return
	}
	buf.WriteTo(w)
}

func (h *Handler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	h.log.WithFields(logrus.Fields{"method": r.Method, "path": r.URL.Path}).WithError(err).Error("request failed")
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

// -------- Pages

func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		h.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	posts, err := h.store.Posts.List(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.render(w, r, "home", map[string]any{
		"Title": "Home",
		"Posts": posts,
	})
}

func (h *Handler) About(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "about", map[string]any{"Title": "About"})
}

func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNotFound)
	h.render(w, r, "notfound", map[string]any{"Title": "Not Found"})
}
