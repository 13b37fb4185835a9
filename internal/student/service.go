package student

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ukane-philemon/students/internal/db"
	customerror "github.com/ukane-philemon/students/internal/errors"
)

// Service implements the student record operations on top of a Repository.
// It holds no state of its own; every mutation re-reads the record first.
type Service struct {
	repo Repository
}

// NewService creates a new instance of *Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// AddStudent saves a new student with no scores. Returns false without
// writing anything if a student with the same ID already exists.
func (s *Service) AddStudent(ctx context.Context, creds StudentCredentials) (bool, error) {
	exists, err := s.repo.ExistsByID(ctx, creds.ID)
	if err != nil {
		return false, fmt.Errorf("repo.ExistsByID error: %w", err)
	}

	if exists {
		return false, nil
	}

	_, err = s.repo.Save(ctx, New(creds.ID, creds.Name, creds.Password))
	if err != nil {
		return false, fmt.Errorf("repo.Save error: %w", err)
	}

	return true, nil
}

// FindStudent returns the student that match id. Returns
// *errors.ErrorNotFound if no student is found.
func (s *Service) FindStudent(ctx context.Context, id int64) (*StudentView, error) {
	student, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	return toView(student), nil
}

// RemoveStudent deletes the student that match id and returns the deleted
// record.
func (s *Service) RemoveStudent(ctx context.Context, id int64) (*StudentView, error) {
	student, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	err = s.repo.DeleteByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("repo.DeleteByID error: %w", err)
	}

	return toView(student), nil
}

// UpdateStudent overwrites the name and/or password of the student that
// match id with any non-empty value in update.
func (s *Service) UpdateStudent(ctx context.Context, id int64, update StudentUpdate) (*StudentCredentials, error) {
	student, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil && *update.Name != "" {
		student.Name = *update.Name
	}

	if update.Password != nil && *update.Password != "" {
		student.Password = *update.Password
	}

	saved, err := s.repo.Save(ctx, student)
	if err != nil {
		return nil, fmt.Errorf("repo.Save error: %w", err)
	}

	return toCredentials(saved), nil
}

// AddScore records a new exam score for the student that match id. Returns
// false without saving if the student already has a score for the exam.
func (s *Service) AddScore(ctx context.Context, id int64, score Score) (bool, error) {
	student, err := s.find(ctx, id)
	if err != nil {
		return false, err
	}

	if !student.AddScore(score.ExamName, score.Score) {
		return false, nil
	}

	_, err = s.repo.Save(ctx, student)
	if err != nil {
		return false, fmt.Errorf("repo.Save error: %w", err)
	}

	return true, nil
}

// FindStudentsByName returns all the students named name, ignoring case.
func (s *Service) FindStudentsByName(ctx context.Context, name string) ([]*StudentView, error) {
	students, err := s.repo.FindByNameIgnoreCase(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("repo.FindByNameIgnoreCase error: %w", err)
	}

	return toViews(students), nil
}

// CountStudentsByNames counts the students whose name match any of names,
// ignoring case.
func (s *Service) CountStudentsByNames(ctx context.Context, names []string) (int64, error) {
	count, err := s.repo.CountByNameInIgnoreCase(ctx, uniqueNames(names))
	if err != nil {
		return 0, fmt.Errorf("repo.CountByNameInIgnoreCase error: %w", err)
	}

	return count, nil
}

// FindStudentsByExamNameMinScore returns all the students that scored at
// least minScore in examName.
func (s *Service) FindStudentsByExamNameMinScore(ctx context.Context, examName string, minScore int) ([]*StudentView, error) {
	students, err := s.repo.FindByExamScoreAtLeast(ctx, examName, minScore)
	if err != nil {
		return nil, fmt.Errorf("repo.FindByExamScoreAtLeast error: %w", err)
	}

	return toViews(students), nil
}

// find retrieves the student that match id and translates a missing record
// to *errors.ErrorNotFound.
func (s *Service) find(ctx context.Context, id int64) (*Student, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrorNoRecord) {
			return nil, &customerror.ErrorNotFound{ID: id}
		}
		return nil, fmt.Errorf("repo.FindByID error: %w", err)
	}

	if student == nil {
		return nil, &customerror.ErrorNotFound{ID: id}
	}

	return student, nil
}

// uniqueNames collapses names that only differ by case.
func uniqueNames(names []string) []string {
	seen := make(map[string]bool, len(names))
	unique := make([]string, 0, len(names))
	for _, name := range names {
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, name)
	}
	return unique
}
