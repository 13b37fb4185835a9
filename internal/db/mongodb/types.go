package mongodb

import (
	"fmt"
	"strings"

	"github.com/ukane-philemon/students/internal/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ignoreCaseCollation compares strings without regard to case, matching the
// semantics of the *IgnoreCase lookups. Diacritics are still distinguished.
func ignoreCaseCollation() *options.Collation {
	return &options.Collation{
		Locale:   "en",
		Strength: 2,
	}
}

// byIDSort orders query results by student ID.
func byIDSort() bson.D {
	return bson.D{{Key: dbIDKey, Value: 1}}
}

func idFilter(id int64) bson.M {
	return bson.M{dbIDKey: id}
}

func nameInFilter(names []string) bson.M {
	return bson.M{nameKey: bson.M{"$in": names}}
}

// examScoreFilter matches students whose score for examName is at least
// minScore. examName becomes part of a field path, so names that mongodb
// would interpret as a path or operator are rejected. Save rejects the same
// names, so no stored student can hold a score for them.
func examScoreFilter(examName string, minScore int) (bson.M, error) {
	if err := validateExamName(examName); err != nil {
		return nil, err
	}

	return bson.M{mapKey(scoresKey, examName): bson.M{"$gte": minScore}}, nil
}

func validateExamName(examName string) error {
	switch {
	case examName == "":
		return fmt.Errorf("%w: missing exam name", db.ErrorInvalidRequest)
	case strings.Contains(examName, "."), strings.HasPrefix(examName, "$"):
		return fmt.Errorf("%w: exam name %q must not contain '.' or start with '$'", db.ErrorInvalidRequest, examName)
	}
	return nil
}
