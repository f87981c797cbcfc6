package handlers

import (
	"crypto/subtle"
	"html/template"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	adminCookieName = "admin_session"
	adminSessionTTL = 24 * time.Hour
)

// AdminSessions holds the tokens handed out at admin login. Only a token
// issued here and not yet expired or logged out opens the admin pages.
type AdminSessions struct {
	mu     sync.Mutex
	tokens map[string]time.Time // token -> expiry
	now    func() time.Time
}

func NewAdminSessions() *AdminSessions {
	return &AdminSessions{tokens: map[string]time.Time{}, now: time.Now}
}

func (s *AdminSessions) issue() (string, time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for tok, exp := range s.tokens {
		if !now.Before(exp) {
			delete(s.tokens, tok)
		}
	}
	tok := uuid.NewString()
	exp := now.Add(adminSessionTTL)
	s.tokens[tok] = exp
	return tok, exp
}

func (s *AdminSessions) valid(tok string) bool {
	if tok == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	exp, ok := s.tokens[tok]
	if ok && !s.now().Before(exp) {
		delete(s.tokens, tok)
		return false
	}
	return ok
}

func (s *AdminSessions) revoke(tok string) {
	s.mu.Lock()
	delete(s.tokens, tok)
	s.mu.Unlock()
}

// RequireAdmin is middleware: blocks access unless logged in
func RequireAdmin(app *App) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, err := r.Cookie(adminCookieName)
			if err != nil || !app.Admins.valid(c.Value) {
				http.Redirect(w, r, "/admin/login?next="+r.URL.RequestURI(), http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GET /admin/login
func AdminLoginForm(view *template.Template) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render(w, view, "admin/login.tmpl", http.StatusOK, map[string]any{
			"Title": "Admin • Login",
			"Next":  r.URL.Query().Get("next"),
			"Flash": MakeFlash(r, "", ""),
		})
	}
}

// POST /admin/login
func AdminLoginSubmit(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		pw := r.FormValue("password")
		if subtle.ConstantTimeCompare([]byte(pw), []byte(app.AdminPassword)) != 1 {
			http.Redirect(w, r, "/admin/login?error=bad_login", http.StatusSeeOther)
			return
		}
		tok, exp := app.Admins.issue()
		http.SetCookie(w, &http.Cookie{
			Name:     adminCookieName,
			Value:    tok,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
			Expires:  exp,
		})
		next := r.FormValue("next")
		// only local paths
		if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
			next = "/admin/students"
		}
		http.Redirect(w, r, next, http.StatusSeeOther)
	}
}

// POST /admin/logout
func AdminLogout(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie(adminCookieName); err == nil {
			app.Admins.revoke(c.Value)
		}
		http.SetCookie(w, &http.Cookie{
			Name:     adminCookieName,
			Value:    "",
			Path:     "/",
			HttpOnly: true,
			Expires:  time.Unix(0, 0),
			MaxAge:   -1,
		})
		http.Redirect(w, r, "/?ok=logged_out", http.StatusSeeOther)
	}
}
