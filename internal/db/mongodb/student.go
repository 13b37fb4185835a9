package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/ukane-philemon/students/internal/db"
	"github.com/ukane-philemon/students/internal/student"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ExistsByID implements student.Repository.
func (mdb *MongoDB) ExistsByID(ctx context.Context, id int64) (bool, error) {
	nStudent, err := mdb.studentCollection.CountDocuments(ctx, idFilter(id), options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("studentCollection.CountDocuments error: %w", err)
	}

	return nStudent > 0, nil
}

// FindByID implements student.Repository.
func (mdb *MongoDB) FindByID(ctx context.Context, id int64) (*student.Student, error) {
	var st *student.Student
	err := mdb.studentCollection.FindOne(ctx, idFilter(id)).Decode(&st)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: student with ID %d", db.ErrorNoRecord, id)
		}
		return nil, fmt.Errorf("studentCollection.FindOne error: %w", err)
	}

	return st, nil
}

// Save implements student.Repository.
func (mdb *MongoDB) Save(ctx context.Context, st *student.Student) (*student.Student, error) {
	if st == nil {
		return nil, fmt.Errorf("%w: missing student", db.ErrorInvalidRequest)
	}

	for examName := range st.Scores {
		if err := validateExamName(examName); err != nil {
			return nil, err
		}
	}

	_, err := mdb.studentCollection.ReplaceOne(ctx, idFilter(st.ID), st, options.Replace().SetUpsert(true))
	if err != nil {
		return nil, fmt.Errorf("studentCollection.ReplaceOne error: %w", err)
	}

	return st, nil
}

// DeleteByID implements student.Repository.
func (mdb *MongoDB) DeleteByID(ctx context.Context, id int64) error {
	_, err := mdb.studentCollection.DeleteOne(ctx, idFilter(id))
	if err != nil {
		return fmt.Errorf("studentCollection.DeleteOne error: %w", err)
	}

	return nil
}

// FindByNameIgnoreCase implements student.Repository.
func (mdb *MongoDB) FindByNameIgnoreCase(ctx context.Context, name string) ([]*student.Student, error) {
	opts := options.Find().SetCollation(ignoreCaseCollation()).SetSort(byIDSort())
	return mdb.findStudents(ctx, nameInFilter([]string{name}), opts)
}

// FindByExamScoreAtLeast implements student.Repository.
func (mdb *MongoDB) FindByExamScoreAtLeast(ctx context.Context, examName string, minScore int) ([]*student.Student, error) {
	filter, err := examScoreFilter(examName, minScore)
	if err != nil {
		return make([]*student.Student, 0), nil
	}

	return mdb.findStudents(ctx, filter, options.Find().SetSort(byIDSort()))
}

// CountByNameInIgnoreCase implements student.Repository.
func (mdb *MongoDB) CountByNameInIgnoreCase(ctx context.Context, names []string) (int64, error) {
	if len(names) == 0 {
		return 0, nil
	}

	opts := options.Count().SetCollation(ignoreCaseCollation())
	nStudents, err := mdb.studentCollection.CountDocuments(ctx, nameInFilter(names), opts)
	if err != nil {
		return 0, fmt.Errorf("studentCollection.CountDocuments error: %w", err)
	}

	return nStudents, nil
}

// findStudents is a helper method that decodes all the students matching
// filter.
func (mdb *MongoDB) findStudents(ctx context.Context, filter any, opts *options.FindOptions) ([]*student.Student, error) {
	cur, err := mdb.studentCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("studentCollection.Find error: %w", err)
	}

	students := make([]*student.Student, 0)
	err = cur.All(ctx, &students)
	if err != nil {
		return nil, fmt.Errorf("failed to decode students: %w", err)
	}

	return students, nil
}
