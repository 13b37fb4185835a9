package student

// StudentView is the read representation of a student. It never carries the
// student's password.
type StudentView struct {
	ID     int64          `json:"id"`
	Name   string         `json:"name"`
	Scores map[string]int `json:"scores"`
}

// StudentCredentials is the representation of a student that includes the
// password.
type StudentCredentials struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// StudentUpdate holds the fields to change on a student. Nil or empty fields
// are left unchanged.
type StudentUpdate struct {
	Name     *string `json:"name,omitempty"`
	Password *string `json:"password,omitempty"`
}

// NewStudentUpdate is a helper for building a StudentUpdate from plain
// strings. Empty values are treated as unset.
func NewStudentUpdate(name, password string) StudentUpdate {
	var update StudentUpdate
	if name != "" {
		update.Name = &name
	}
	if password != "" {
		update.Password = &password
	}
	return update
}

// Score is a single exam result.
type Score struct {
	ExamName string `json:"examName"`
	Score    int    `json:"score"`
}

func toView(s *Student) *StudentView {
	scores := make(map[string]int, len(s.Scores))
	for exam, score := range s.Scores {
		scores[exam] = score
	}

	return &StudentView{
		ID:     s.ID,
		Name:   s.Name,
		Scores: scores,
	}
}

func toViews(students []*Student) []*StudentView {
	views := make([]*StudentView, 0, len(students))
	for _, s := range students {
		views = append(views, toView(s))
	}
	return views
}

func toCredentials(s *Student) *StudentCredentials {
	return &StudentCredentials{
		ID:       s.ID,
		Name:     s.Name,
		Password: s.Password,
	}
}
