package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/ArieGerard/OdersApp/internal/models"
	"github.com/ArieGerard/OdersApp/internal/services"
	"github.com/ArieGerard/OdersApp/internal/store"
	"github.com/ArieGerard/OdersApp/internal/web"
)

// UserHandler serves the /users management surface.
type UserHandler struct {
	users services.UserServiceProvider
	views *web.Templates
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users services.UserServiceProvider, views *web.Templates) *UserHandler {
	return &UserHandler{users: users, views: views}
}

type userListPage struct {
	Title      string
	Users      []models.User
	BasePath   string
	NewPath    string
	EditPath   string
	DeletePath string
}

type userDetailPage struct {
	User models.User
}

type userFormPage struct {
	Title    string
	Action   string
	BackPath string
	User     models.User
	Errors   map[string]string
}

// List shows all users. Password hashes are blanked before the records
// reach the view.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.GetAll(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list users")
		http.Error(w, "Failed to list users", http.StatusInternalServerError)
		return
	}
	sanitizeUsers(users)

	renderView(h.views, w, "users.html", userListPage{
		Title:      "All Users",
		Users:      users,
		BasePath:   "/users",
		NewPath:    "/users/newUser",
		EditPath:   "/users/editUser",
		DeletePath: "/users/deleteUser",
	})
}

// Show displays a single user.
func (h *UserHandler) Show(w http.ResponseWriter, r *http.Request) {
	user, ok := h.lookup(w, r)
	if !ok {
		return
	}
	user.PasswordHash = ""
	renderView(h.views, w, "user.html", userDetailPage{User: user})
}

// NewForm renders an empty user form for the admin "new user" flow.
func (h *UserHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	renderView(h.views, w, "user_form.html", userFormPage{
		Title:    "New User",
		Action:   "/users/processNewUser",
		BackPath: "/users",
		User:     models.User{Role: models.RoleUser, Enabled: true},
	})
}

// ProcessNew creates a user from the submitted form.
func (h *UserHandler) ProcessNew(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Error parsing form", http.StatusBadRequest)
		return
	}
	user := models.User{
		Username: r.PostForm.Get("username"),
		Role:     r.PostForm.Get("role"),
		Enabled:  r.PostForm.Get("enabled") != "",
	}
	password := r.PostForm.Get("password")

	_, err := h.users.Create(r.Context(), user, password)
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			renderView(h.views, w, "user_form.html", userFormPage{
				Title:    "New User",
				Action:   "/users/processNewUser",
				BackPath: "/users",
				User:     user,
				Errors:   verr.Fields,
			})
			return
		}
		log.Error().Err(err).Str("username", user.Username).Msg("Failed to create user")
		http.Error(w, "Failed to create user", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/users", http.StatusFound)
}

// EditForm renders the edit form for a user. The stored hash
// round-trips through the password field as an opaque value.
func (h *UserHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	user, ok := h.lookup(w, r)
	if !ok {
		return
	}
	renderView(h.views, w, "user_form.html", userFormPage{
		Title:    "Edit User",
		Action:   "/users/processEditUser",
		BackPath: "/users",
		User:     user,
	})
}

// ProcessEdit updates a user from the submitted form.
func (h *UserHandler) ProcessEdit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Error parsing form", http.StatusBadRequest)
		return
	}
	id, err := strconv.ParseInt(r.PostForm.Get("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid user id", http.StatusBadRequest)
		return
	}
	user := models.User{
		ID:       id,
		Username: r.PostForm.Get("username"),
		Role:     r.PostForm.Get("role"),
		Enabled:  r.PostForm.Get("enabled") != "",
	}

	if _, err := h.users.Update(r.Context(), user, r.PostForm.Get("password")); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			http.NotFound(w, r)
			return
		}
		log.Error().Err(err).Int64("user_id", id).Msg("Failed to update user")
		http.Error(w, "Failed to update user", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/users", http.StatusFound)
}

// Delete removes a user and returns to the list.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid user id", http.StatusBadRequest)
		return
	}
	if err := h.users.Delete(r.Context(), id); err != nil && !errors.Is(err, store.ErrUserNotFound) {
		log.Error().Err(err).Int64("user_id", id).Msg("Failed to delete user")
		http.Error(w, "Failed to delete user", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/users", http.StatusFound)
}

func (h *UserHandler) lookup(w http.ResponseWriter, r *http.Request) (models.User, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid user id", http.StatusBadRequest)
		return models.User{}, false
	}
	user, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			http.NotFound(w, r)
			return models.User{}, false
		}
		log.Error().Err(err).Int64("user_id", id).Msg("Failed to get user")
		http.Error(w, "Failed to get user", http.StatusInternalServerError)
		return models.User{}, false
	}
	return user, true
}

func sanitizeUsers(users []models.User) {
	for i := range users {
		users[i].PasswordHash = ""
	}
}

func renderView(views *web.Templates, w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := views.Render(w, name, data); err != nil {
		log.Error().Err(err).Str("view", name).Msg("Failed to render view")
	}
}
