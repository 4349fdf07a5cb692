package handlers

import (
	"net/http"

	"blog/internal/forms"
)

// Contact shows the contact form and forwards submissions by mail. A
// delivery failure surfaces on the page instead of crashing the request.
func (h *Handler) Contact(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.render(w, r, "contact", map[string]any{"Title": "Contact"})
		return
	case http.MethodPost:
	default:
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	r.ParseForm()
	form := forms.Contact(r.PostForm)
	if !form.Valid() {
		h.render(w, r, "contact", map[string]any{"Title": "Contact", "Form": form})
		return
	}

	err := h.mailer.SendContactMessage(
		form.Get("name"), form.Get("email"), form.Get("phone"), form.Get("message"))
	if err != nil {
		h.log.WithError(err).Error("contact mail delivery failed")
		h.render(w, r, "contact", map[string]any{
			"Title":     "Contact",
			"Form":      form,
			"SendError": true,
		})
		return
	}

	h.render(w, r, "contact", map[string]any{"Title": "Contact", "MsgSent": true})
}
