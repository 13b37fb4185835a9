package api

import (
	"fmt"
	"net/http"

	"github.com/ukane-philemon/students/internal/db"
	"github.com/ukane-philemon/students/internal/student"
)

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type idResponse struct {
	ID string `json:"id"`
}

func (s *Server) health(res http.ResponseWriter, _ *http.Request) {
	writeJSON(res, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) login(res http.ResponseWriter, req *http.Request) {
	var creds credentials
	if err := decodeBody(res, req, &creds); err != nil {
		handleError(res, err)
		return
	}

	token, err := s.admins.Login(req.Context(), creds.Username, creds.Password)
	if err != nil {
		handleError(res, err)
		return
	}

	writeJSON(res, http.StatusOK, &tokenResponse{Token: token})
}

func (s *Server) createAdmin(res http.ResponseWriter, req *http.Request) {
	var creds credentials
	if err := decodeBody(res, req, &creds); err != nil {
		handleError(res, err)
		return
	}

	id, err := s.admins.Create(req.Context(), creds.Username, creds.Password)
	if err != nil {
		handleError(res, err)
		return
	}

	writeJSON(res, http.StatusCreated, &idResponse{ID: id})
}

func (s *Server) addStudent(res http.ResponseWriter, req *http.Request) {
	var creds student.StudentCredentials
	if err := decodeBody(res, req, &creds); err != nil {
		handleError(res, err)
		return
	}

	added, err := s.students.AddStudent(req.Context(), creds)
	if err != nil {
		handleError(res, err)
		return
	}

	writeJSON(res, http.StatusOK, added)
}

func (s *Server) findStudent(res http.ResponseWriter, req *http.Request) {
	id, err := intPathParam(req, "id", 64)
	if err != nil {
		handleError(res, err)
		return
	}

	view, err := s.students.FindStudent(req.Context(), id)
	if err != nil {
		handleError(res, err)
		return
	}

	writeJSON(res, http.StatusOK, view)
}

func (s *Server) removeStudent(res http.ResponseWriter, req *http.Request) {
	id, err := intPathParam(req, "id", 64)
	if err != nil {
		handleError(res, err)
		return
	}

	view, err := s.students.RemoveStudent(req.Context(), id)
	if err != nil {
		handleError(res, err)
		return
	}

	writeJSON(res, http.StatusOK, view)
}

func (s *Server) updateStudent(res http.ResponseWriter, req *http.Request) {
	id, err := intPathParam(req, "id", 64)
	if err != nil {
		handleError(res, err)
		return
	}

	var update student.StudentUpdate
	if err := decodeBody(res, req, &update); err != nil {
		handleError(res, err)
		return
	}

	creds, err := s.students.UpdateStudent(req.Context(), id, update)
	if err != nil {
		handleError(res, err)
		return
	}

	writeJSON(res, http.StatusOK, creds)
}

func (s *Server) addScore(res http.ResponseWriter, req *http.Request) {
	id, err := intPathParam(req, "id", 64)
	if err != nil {
		handleError(res, err)
		return
	}

	var score student.Score
	if err := decodeBody(res, req, &score); err != nil {
		handleError(res, err)
		return
	}

	if score.ExamName == "" {
		handleError(res, fmt.Errorf("%w: missing exam name", db.ErrorInvalidRequest))
		return
	}

	added, err := s.students.AddScore(req.Context(), id, score)
	if err != nil {
		handleError(res, err)
		return
	}

	writeJSON(res, http.StatusOK, added)
}

func (s *Server) findStudentsByName(res http.ResponseWriter, req *http.Request) {
	name, err := pathParam(req, "name")
	if err != nil {
		handleError(res, err)
		return
	}

	views, err := s.students.FindStudentsByName(req.Context(), name)
	if err != nil {
		handleError(res, err)
		return
	}

	writeJSON(res, http.StatusOK, views)
}

func (s *Server) countStudentsByNames(res http.ResponseWriter, req *http.Request) {
	var names []string
	if err := decodeBody(res, req, &names); err != nil {
		handleError(res, err)
		return
	}

	count, err := s.students.CountStudentsByNames(req.Context(), names)
	if err != nil {
		handleError(res, err)
		return
	}

	writeJSON(res, http.StatusOK, count)
}

func (s *Server) findStudentsByExamNameMinScore(res http.ResponseWriter, req *http.Request) {
	examName, err := pathParam(req, "exam")
	if err != nil {
		handleError(res, err)
		return
	}

	minScore, err := intPathParam(req, "minScore", 0)
	if err != nil {
		handleError(res, err)
		return
	}

	views, err := s.students.FindStudentsByExamNameMinScore(req.Context(), examName, int(minScore))
	if err != nil {
		handleError(res, err)
		return
	}

	writeJSON(res, http.StatusOK, views)
}
