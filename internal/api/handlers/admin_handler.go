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

// AdminHandler serves the /admin/users panel, a parallel CRUD surface
// over the same user roster with a confirm step before deletion.
type AdminHandler struct {
	users services.UserServiceProvider
	views *web.Templates
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(users services.UserServiceProvider, views *web.Templates) *AdminHandler {
	return &AdminHandler{users: users, views: views}
}

// List shows all users in the admin panel.
func (h *AdminHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.GetAll(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list users")
		http.Error(w, "Failed to list users", http.StatusInternalServerError)
		return
	}
	sanitizeUsers(users)

	renderView(h.views, w, "users.html", userListPage{
		Title:      "User Management",
		Users:      users,
		BasePath:   "/users",
		EditPath:   "/admin/users/edit",
		DeletePath: "/admin/users/delete",
	})
}

// EditForm renders the panel edit form for a user.
func (h *AdminHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	user, ok := h.lookup(w, r)
	if !ok {
		return
	}
	renderView(h.views, w, "user_form.html", userFormPage{
		Title:    "Edit User",
		Action:   "/admin/users/edit",
		BackPath: "/admin/users",
		User:     user,
	})
}

// ProcessEdit updates a user from the panel form.
func (h *AdminHandler) ProcessEdit(w http.ResponseWriter, r *http.Request) {
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
	http.Redirect(w, r, "/admin/users", http.StatusFound)
}

// ConfirmDelete renders the delete confirmation page.
func (h *AdminHandler) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	user, ok := h.lookup(w, r)
	if !ok {
		return
	}
	user.PasswordHash = ""
	renderView(h.views, w, "user_delete.html", userDetailPage{User: user})
}

// ProcessDelete removes the user named in the confirmation form.
func (h *AdminHandler) ProcessDelete(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Error parsing form", http.StatusBadRequest)
		return
	}
	id, err := strconv.ParseInt(r.PostForm.Get("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid user id", http.StatusBadRequest)
		return
	}
	if err := h.users.Delete(r.Context(), id); err != nil && !errors.Is(err, store.ErrUserNotFound) {
		log.Error().Err(err).Int64("user_id", id).Msg("Failed to delete user")
		http.Error(w, "Failed to delete user", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/admin/users", http.StatusFound)
}

func (h *AdminHandler) lookup(w http.ResponseWriter, r *http.Request) (models.User, bool) {
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
