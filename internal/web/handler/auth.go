package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/vanguardgg/sitecms/internal/api/apierr"
	"github.com/vanguardgg/sitecms/internal/api/request"
	"github.com/vanguardgg/sitecms/internal/api/response"
	"github.com/vanguardgg/sitecms/internal/middleware"
	"github.com/vanguardgg/sitecms/internal/services/auth"
	webmw "github.com/vanguardgg/sitecms/internal/web/middleware"
)

// Admin panel paths
const (
	LoginPath     = "/adminp/login"
	LogoutPath    = "/adminp/logout"
	DashboardPath = "/adminp/dashboard"
)

// AuthHandler handles the admin login flow
type AuthHandler struct {
	authService *auth.Service
	cookie      middleware.SessionCookie
	renderer    *Renderer
	logger      *slog.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *auth.Service, cookie middleware.SessionCookie, renderer *Renderer, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cookie:      cookie,
		renderer:    renderer,
		logger:      logger,
	}
}

// LoginPage renders the login page
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if session := middleware.GetSession(r.Context()); session != nil && session.AdminID != "" {
		// Already logged in
		http.Redirect(w, r, DashboardPath, http.StatusSeeOther)
		return
	}

	h.renderer.Render(w, r, http.StatusOK, PageLogin, PageData{Title: "Admin Login"})
}

// Login handles login form and JSON submissions
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	jsonClient := wantsJSON(r)

	var req request.LoginRequest
	if _, err := request.Decode(r, &req); err != nil {
		h.loginFailed(w, r, jsonClient, auth.ErrInvalidCredentials)
		return
	}

	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		h.loginFailed(w, r, jsonClient, auth.ErrInvalidCredentials)
		return
	}

	_, token, err := h.authService.Login(r.Context(), username, req.Password)
	if err != nil {
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			h.logger.Error("login failed",
				slog.String("request_id", chimw.GetReqID(r.Context())),
				slog.String("error", err.Error()),
			)
		}
		h.loginFailed(w, r, jsonClient, err)
		return
	}

	h.cookie.Set(w, token)
	h.logger.Info("admin logged in",
		slog.String("request_id", chimw.GetReqID(r.Context())),
		slog.String("username", username),
	)

	if jsonClient {
		response.JSON(w, http.StatusOK, response.LoginResponse{
			Success:  true,
			Redirect: DashboardPath,
			Username: username,
		})
		return
	}
	http.Redirect(w, r, DashboardPath, http.StatusSeeOther)
}

// Logout destroys the session and returns to the login page
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token := h.cookie.Read(r); token != "" {
		if err := h.authService.Logout(r.Context(), token); err != nil {
			h.logger.Error("failed to destroy session",
				slog.String("request_id", chimw.GetReqID(r.Context())),
				slog.String("error", err.Error()),
			)
		}
	}

	h.cookie.Clear(w)
	http.Redirect(w, r, LoginPath, http.StatusSeeOther)
}

func (h *AuthHandler) loginFailed(w http.ResponseWriter, r *http.Request, jsonClient bool, err error) {
	if jsonClient {
		apierr.WriteError(w, err)
		return
	}

	if errors.Is(err, auth.ErrInvalidCredentials) {
		webmw.SetFlash(w, "error", "Invalid username or password")
	} else {
		webmw.SetFlash(w, "error", "Login failed, please try again")
	}
	http.Redirect(w, r, LoginPath+"?error=1", http.StatusSeeOther)
}

// wantsJSON reports whether the client posted JSON or asked for a JSON reply
func wantsJSON(r *http.Request) bool {
	if request.MediaType(r) == "application/json" {
		return true
	}
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "application/json") && !strings.Contains(accept, "text/html")
}
