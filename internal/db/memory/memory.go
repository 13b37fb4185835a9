// Package memory provides an in-memory store for student and admin records.
// It is used by tests and by the server's -memory mode.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/ukane-philemon/students/internal/admin"
	"github.com/ukane-philemon/students/internal/db"
	"github.com/ukane-philemon/students/internal/student"
)

var (
	_ student.Repository = (*Store)(nil)
	_ admin.Repository   = (*Store)(nil)
)

// Store implements student.Repository and admin.Repository. Records are
// copied in and out so callers never share state with the store.
type Store struct {
	mtx      sync.RWMutex
	students map[int64]*student.Student
	admins   map[string]*admin.Admin
}

// New creates an empty *Store.
func New() *Store {
	return &Store{
		students: make(map[int64]*student.Student),
		admins:   make(map[string]*admin.Admin),
	}
}

// ExistsByID implements student.Repository.
func (s *Store) ExistsByID(_ context.Context, id int64) (bool, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	_, found := s.students[id]
	return found, nil
}

// FindByID implements student.Repository.
func (s *Store) FindByID(_ context.Context, id int64) (*student.Student, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	st, found := s.students[id]
	if !found {
		return nil, fmt.Errorf("%w: student with ID %d", db.ErrorNoRecord, id)
	}
	return st.Clone(), nil
}

// Save implements student.Repository.
func (s *Store) Save(_ context.Context, st *student.Student) (*student.Student, error) {
	if st == nil {
		return nil, fmt.Errorf("%w: missing student", db.ErrorInvalidRequest)
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()
	s.students[st.ID] = st.Clone()
	return st.Clone(), nil
}

// DeleteByID implements student.Repository.
func (s *Store) DeleteByID(_ context.Context, id int64) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	delete(s.students, id)
	return nil
}

// FindByNameIgnoreCase implements student.Repository.
func (s *Store) FindByNameIgnoreCase(_ context.Context, name string) ([]*student.Student, error) {
	return s.filter(func(st *student.Student) bool {
		return strings.EqualFold(st.Name, name)
	}), nil
}

// FindByExamScoreAtLeast implements student.Repository.
func (s *Store) FindByExamScoreAtLeast(_ context.Context, examName string, minScore int) ([]*student.Student, error) {
	return s.filter(func(st *student.Student) bool {
		score, found := st.Scores[examName]
		return found && score >= minScore
	}), nil
}

// CountByNameInIgnoreCase implements student.Repository.
func (s *Store) CountByNameInIgnoreCase(_ context.Context, names []string) (int64, error) {
	matches := s.filter(func(st *student.Student) bool {
		for _, name := range names {
			if strings.EqualFold(st.Name, name) {
				return true
			}
		}
		return false
	})
	return int64(len(matches)), nil
}

// filter returns copies of the students matching keep, ordered by ID.
func (s *Store) filter(keep func(*student.Student) bool) []*student.Student {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	students := make([]*student.Student, 0)
	for _, st := range s.students {
		if keep(st) {
			students = append(students, st.Clone())
		}
	}

	sort.Slice(students, func(i, j int) bool {
		return students[i].ID < students[j].ID
	})

	return students
}

// CreateAccount implements admin.Repository.
func (s *Store) CreateAccount(_ context.Context, a *admin.Admin) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, found := s.admins[a.Username]; found {
		return fmt.Errorf("%w: please try another username", db.ErrorInvalidRequest)
	}

	adminCopy := *a
	s.admins[a.Username] = &adminCopy
	return nil
}

// Account implements admin.Repository.
func (s *Store) Account(_ context.Context, username string) (*admin.Admin, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	a, found := s.admins[username]
	if !found {
		return nil, fmt.Errorf("%w: admin %s", db.ErrorNoRecord, username)
	}

	adminCopy := *a
	return &adminCopy, nil
}
