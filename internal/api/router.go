package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ArieGerard/OdersApp/internal/api/handlers"
	"github.com/ArieGerard/OdersApp/internal/auth"
	"github.com/ArieGerard/OdersApp/internal/services"
	"github.com/ArieGerard/OdersApp/internal/web"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(users services.UserServiceProvider, orders services.OrderServiceProvider, sessions *auth.Sessions, views *web.Templates) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Access gate: every request passes the route policy before it
	// reaches a handler.
	r.Use(auth.Gate(auth.DefaultPolicy(), sessions))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(users, sessions, views)
	userHandler := handlers.NewUserHandler(users, views)
	adminHandler := handlers.NewAdminHandler(users, views)
	orderHandler := handlers.NewOrderHandler(orders, views)

	r.Get("/", authHandler.Home)
	r.Get("/login", authHandler.ShowLogin)
	r.Post("/login", authHandler.Login)
	r.Get("/logout", authHandler.Logout)
	r.Get("/register", authHandler.ShowRegister)
	r.Post("/register", authHandler.Register)

	r.Route("/users", func(r chi.Router) {
		r.Get("/", userHandler.List)
		r.Get("/showUser/{id}", userHandler.Show)
		r.Get("/newUser", userHandler.NewForm)
		r.Post("/processNewUser", userHandler.ProcessNew)
		r.Get("/editUser/{id}", userHandler.EditForm)
		r.Post("/processEditUser", userHandler.ProcessEdit)
		r.Get("/deleteUser/{id}", userHandler.Delete)
	})

	r.Route("/admin/users", func(r chi.Router) {
		r.Get("/", adminHandler.List)
		r.Get("/edit/{id}", adminHandler.EditForm)
		r.Post("/edit", adminHandler.ProcessEdit)
		r.Get("/delete/{id}", adminHandler.ConfirmDelete)
		r.Post("/delete", adminHandler.ProcessDelete)
	})

	r.Route("/orders", func(r chi.Router) {
		r.Get("/", orderHandler.List)
		r.Get("/{id}", orderHandler.Show)
	})

	return r
}
