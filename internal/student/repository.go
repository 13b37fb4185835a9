package student

import "context"

type Repository interface {
	// ExistsByID checks if a student with id exists.
	ExistsByID(ctx context.Context, id int64) (bool, error)
	// FindByID returns the student that match id. Returns db.ErrorNoRecord if
	// no student is found.
	FindByID(ctx context.Context, id int64) (*Student, error)
	// Save inserts or replaces the student record and returns the saved
	// record.
	Save(ctx context.Context, student *Student) (*Student, error)
	// DeleteByID removes the student that match id.
	DeleteByID(ctx context.Context, id int64) error
	// FindByNameIgnoreCase returns all the students whose name match name,
	// ignoring case.
	FindByNameIgnoreCase(ctx context.Context, name string) ([]*Student, error)
	// FindByExamScoreAtLeast returns all the students with a score for
	// examName that is greater than or equal to minScore.
	FindByExamScoreAtLeast(ctx context.Context, examName string, minScore int) ([]*Student, error)
	// CountByNameInIgnoreCase counts the students whose name match any of
	// names, ignoring case.
	CountByNameInIgnoreCase(ctx context.Context, names []string) (int64, error)
}
