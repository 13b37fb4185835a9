// Package api exposes the student and admin services over HTTP.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/httprate"
	"github.com/ukane-philemon/students/internal/admin"
	"github.com/ukane-philemon/students/internal/jwt"
	"github.com/ukane-philemon/students/internal/student"
)

// Server holds the dependencies of the HTTP handlers.
type Server struct {
	students   *student.Service
	admins     *admin.Service
	jwtManager *jwt.Manager
	rateLimit  int
}

// NewServer creates a new instance of *Server. rateLimit is the number of
// requests allowed per client IP per minute.
func NewServer(students *student.Service, admins *admin.Service, jwtManager *jwt.Manager, rateLimit int) *Server {
	return &Server{
		students:   students,
		admins:     admins,
		jwtManager: jwtManager,
		rateLimit:  rateLimit,
	}
}

// Router returns the http.Handler serving all routes.
func (s *Server) Router() http.Handler {
	chiMux := chi.NewMux()
	chiMux.Use(middleware.RequestID)
	chiMux.Use(middleware.RealIP)
	chiMux.Use(middleware.Logger)
	chiMux.Use(middleware.Recoverer)
	chiMux.Use(httprate.LimitByIP(s.rateLimit, time.Minute))
	chiMux.Use(AuthMiddleware(s.jwtManager))

	chiMux.Get("/health", s.health)
	chiMux.Post("/admin/login", s.login)

	chiMux.Get("/student/{id}", s.findStudent)
	chiMux.Get("/students/name/{name}", s.findStudentsByName)
	chiMux.Post("/quantity/students", s.countStudentsByNames)
	chiMux.Get("/students/exam/{exam}/minscore/{minScore}", s.findStudentsByExamNameMinScore)

	chiMux.Group(func(r chi.Router) {
		r.Use(requireAdmin)
		r.Post("/admin", s.createAdmin)
		r.Post("/student", s.addStudent)
		r.Delete("/student/{id}", s.removeStudent)
		r.Patch("/student/{id}", s.updateStudent)
		r.Patch("/score/student/{id}", s.addScore)
	})

	return chiMux
}
