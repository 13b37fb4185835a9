package student

// Student is a learner record as persisted by a Repository.
type Student struct {
	ID       int64  `json:"id" bson:"_id"`
	Name     string `json:"name" bson:"name"`
	Password string `json:"password" bson:"password"`
	// Scores is a map of exam name to score. An exam appears at most once.
	Scores map[string]int `json:"scores" bson:"scores"`
}

// New returns a student with an empty score set.
func New(id int64, name, password string) *Student {
	return &Student{
		ID:       id,
		Name:     name,
		Password: password,
		Scores:   make(map[string]int),
	}
}

// AddScore records score for examName. Returns false and leaves the student
// unchanged if examName already has a score.
func (s *Student) AddScore(examName string, score int) bool {
	if s.Scores == nil {
		s.Scores = make(map[string]int)
	}

	if _, found := s.Scores[examName]; found {
		return false
	}

	s.Scores[examName] = score
	return true
}

// Clone returns a deep copy of s.
func (s *Student) Clone() *Student {
	c := *s
	c.Scores = make(map[string]int, len(s.Scores))
	for exam, score := range s.Scores {
		c.Scores[exam] = score
	}
	return &c
}
