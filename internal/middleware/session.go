package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/vanguardgg/sitecms/internal/model"
)

type contextKey string

const (
	sessionContextKey  contextKey = "session"
	usernameContextKey contextKey = "username"
)

// SessionValidator resolves a cookie token to a live session
type SessionValidator interface {
	ValidateSession(ctx context.Context, token string) (*model.Session, error)
}

// SessionCookie describes the cookie carrying the signed session token
type SessionCookie struct {
	Name   string
	MaxAge time.Duration
	// Secure marks the cookie HTTPS-only; enabled in production
	Secure bool
}

// Read returns the token from the request, or "" if absent
func (c SessionCookie) Read(r *http.Request) string {
	cookie, err := r.Cookie(c.Name)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// Set writes the session cookie
func (c SessionCookie) Set(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(c.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear expires the session cookie
func (c SessionCookie) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Session attaches the caller's session to the request context when the
// cookie carries a valid one. Requests without a session pass through.
func Session(validator SessionValidator, cookie SessionCookie, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := cookie.Read(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			session, err := validator.ValidateSession(r.Context(), token)
			if err != nil {
				logger.Debug("session rejected",
					slog.String("request_id", chimw.GetReqID(r.Context())),
					slog.String("error", err.Error()),
				)
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
		})
	}
}

// RequireAdmin only lets requests with an admin session through; everyone
// else is redirected to loginPath with 302 Found
func RequireAdmin(loginPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := GetSession(r.Context())
			if session == nil || session.AdminID == "" {
				http.Redirect(w, r, loginPath, http.StatusFound)
				return
			}

			ctx := context.WithValue(r.Context(), usernameContextKey, session.Username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithSession returns a context carrying session
func WithSession(ctx context.Context, session *model.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, session)
}

// GetSession returns the session from the request context, or nil
func GetSession(ctx context.Context) *model.Session {
	session, _ := ctx.Value(sessionContextKey).(*model.Session)
	return session
}

// GetUsername returns the admin username set by RequireAdmin, or ""
func GetUsername(ctx context.Context) string {
	username, _ := ctx.Value(usernameContextKey).(string)
	return username
}
