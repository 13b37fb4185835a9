package mongodb

import (
	"context"
	"fmt"
	"strings"

	"github.com/ukane-philemon/students/internal/admin"
	"github.com/ukane-philemon/students/internal/db"
	"github.com/ukane-philemon/students/internal/student"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	// Collections
	adminCollection   = "admin"
	studentCollection = "students"

	// Keys
	dbIDKey     = "_id"
	usernameKey = "username"
	nameKey     = "name"
	scoresKey   = "scores"
)

// Check that *MongoDB implements the repositories.
var (
	_ student.Repository = (*MongoDB)(nil)
	_ admin.Repository   = (*MongoDB)(nil)
)

// MongoDB implements student.Repository and admin.Repository.
type MongoDB struct {
	db                *mongo.Database
	adminCollection   *mongo.Collection
	studentCollection *mongo.Collection
}

// New connects to a mongo database and returns a new instance of *MongoDB.
func New(ctx context.Context, dbName string, connectionURL string) (*MongoDB, error) {
	mdb, err := db.NewMongoDB(ctx, dbName, connectionURL)
	if err != nil {
		return nil, err
	}

	store := newMongoDB(mdb)

	// Create a unique index on the admin collection.
	_, err = store.adminCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{
			Key:   usernameKey,
			Value: 1,
		}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("adminCollection.Indexes().CreateOne error: %w", err)
	}

	// Name lookups ignore case, so the index must share their collation to
	// be used.
	_, err = store.studentCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{
			Key:   nameKey,
			Value: 1,
		}},
		Options: options.Index().SetCollation(ignoreCaseCollation()),
	})
	if err != nil {
		return nil, fmt.Errorf("studentCollection.Indexes().CreateOne error: %w", err)
	}

	return store, nil
}

func newMongoDB(database *mongo.Database) *MongoDB {
	return &MongoDB{
		db:                database,
		adminCollection:   database.Collection(adminCollection),
		studentCollection: database.Collection(studentCollection),
	}
}

// Shutdown attempts to shutdown the database.
func (mdb *MongoDB) Shutdown(ctx context.Context) error {
	return db.ShutdownMongoDB(ctx, mdb.db)
}

// mapKey converts the provided keys to mongodb map key for easy retrieval of a
// specific map value.
func mapKey(keys ...string) string {
	return strings.Join(keys, ".")
}
