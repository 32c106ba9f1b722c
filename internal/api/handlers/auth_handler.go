package handlers

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/ArieGerard/OdersApp/internal/auth"
	"github.com/ArieGerard/OdersApp/internal/models"
	"github.com/ArieGerard/OdersApp/internal/services"
	"github.com/ArieGerard/OdersApp/internal/web"
)

// AuthHandler serves the login, logout and registration pages.
type AuthHandler struct {
	users    services.UserServiceProvider
	sessions *auth.Sessions
	views    *web.Templates
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(users services.UserServiceProvider, sessions *auth.Sessions, views *web.Templates) *AuthHandler {
	return &AuthHandler{users: users, sessions: sessions, views: views}
}

type loginPage struct {
	ErrorMessage   string
	LogoutMessage  string
	SuccessMessage string
}

type registerPage struct {
	Username string
	Errors   map[string]string
}

// Home redirects the root path to the login page.
func (h *AuthHandler) Home(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/login", http.StatusFound)
}

// ShowLogin renders the login form. The error, logout and registered
// query parameters toggle informational banners.
func (h *AuthHandler) ShowLogin(w http.ResponseWriter, r *http.Request) {
	page := loginPage{}
	q := r.URL.Query()
	if q.Has("error") {
		page.ErrorMessage = "Invalid username or password"
	}
	if q.Has("logout") {
		page.LogoutMessage = "You have been logged out successfully"
	}
	if q.Has("registered") {
		page.SuccessMessage = "Registration successful. Please login."
	}
	renderView(h.views, w, "login.html", page)
}

// Login authenticates the submitted credentials and establishes a session.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Error parsing form", http.StatusBadRequest)
		return
	}
	username := r.PostForm.Get("username")
	password := r.PostForm.Get("password")

	identity, err := h.users.Authenticate(r.Context(), username, password)
	if err != nil {
		if !errors.Is(err, services.ErrInvalidCredentials) {
			log.Error().Err(err).Str("username", username).Msg("Authentication lookup failed")
		}
		http.Redirect(w, r, "/login?error=true", http.StatusFound)
		return
	}

	token, expiration := h.sessions.Create(identity)
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    token,
		Expires:  expiration,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
	})
	http.Redirect(w, r, "/orders", http.StatusFound)
}

// Logout tears down the caller's session and clears the cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(auth.SessionCookie); err == nil {
		h.sessions.Delete(cookie.Value)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    "",
		HttpOnly: true,
		Path:     "/",
		MaxAge:   -1,
	})
	http.Redirect(w, r, "/login?logout=true", http.StatusFound)
}

// ShowRegister renders an empty registration form.
func (h *AuthHandler) ShowRegister(w http.ResponseWriter, r *http.Request) {
	renderView(h.views, w, "register.html", registerPage{})
}

// Register runs the registration workflow. Validation failures
// re-render the form with field messages; success redirects to the
// login page with a confirmation banner.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Error parsing form", http.StatusBadRequest)
		return
	}
	reg := models.Registration{
		Username:        r.PostForm.Get("username"),
		Password:        r.PostForm.Get("password"),
		ConfirmPassword: r.PostForm.Get("confirmPassword"),
	}

	_, err := h.users.Register(r.Context(), reg)
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			renderView(h.views, w, "register.html", registerPage{Username: reg.Username, Errors: verr.Fields})
			return
		}
		log.Error().Err(err).Str("username", reg.Username).Msg("Failed to register user")
		http.Error(w, "Failed to register user", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/login?registered=true", http.StatusFound)
}
