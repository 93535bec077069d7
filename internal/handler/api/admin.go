package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/lvargas/dulceria/internal/auth"
	"github.com/lvargas/dulceria/internal/domain"
	"github.com/lvargas/dulceria/internal/handler"
	"github.com/lvargas/dulceria/internal/middleware"
)

// AdminHandler serves the admin login/logout endpoints.
type AdminHandler struct {
	sessions *auth.SessionManager
	ttl      time.Duration
	secure   bool
	logger   *slog.Logger
}

// NewAdminHandler creates an AdminHandler. secure marks the session cookie
// Secure (set it in production).
func NewAdminHandler(sessions *auth.SessionManager, ttl time.Duration, secure bool, logger *slog.Logger) *AdminHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AdminHandler{sessions: sessions, ttl: ttl, secure: secure, logger: logger}
}

type loginRequest struct {
	Password string `json:"password"`
}

// Login handles POST /api/admin/login
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handler.RespondError(w, r, domain.Invalid("api.admin_login", "invalid JSON body"))
		return
	}

	token, ok := h.sessions.Login(req.Password)
	if !ok {
		h.logger.Warn("admin login rejected")
		handler.RespondError(w, r, domain.Unauthorized("api.admin_login", "invalid password"))
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AdminSessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.ttl.Seconds()),
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
	handler.RespondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Logout handles POST /api/admin/logout
func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.AdminSessionCookie); err == nil {
		h.sessions.Logout(cookie.Value)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AdminSessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
	handler.RespondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
