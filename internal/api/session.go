package api

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/neexbeast/trip-planner/internal/flash"
)

const sessionCookie = "tp_session"

// session returns the caller's session id, issuing a new cookie when the
// request has none or carries a malformed one.
func (h *Handlers) session(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(sessionCookie); err == nil {
		if id, err := uuid.Parse(c.Value); err == nil {
			return id.String()
		}
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// popFlashes drains the session's messages. Store errors are logged and the
// page renders without them.
func (h *Handlers) popFlashes(w http.ResponseWriter, r *http.Request) []flash.Message {
	msgs, err := h.flash.Pop(r.Context(), h.session(w, r))
	if err != nil {
		h.log.Warn("popping flash messages", "err", err)
		return nil
	}
	return msgs
}

// redirectWithFlash queues msg for the next page and sends a 303 to target.
func (h *Handlers) redirectWithFlash(w http.ResponseWriter, r *http.Request, target string, msg flash.Message) {
	if err := h.flash.Add(r.Context(), h.session(w, r), msg); err != nil {
		h.log.Warn("adding flash message", "err", err, "text", msg.Text)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
