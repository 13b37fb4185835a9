package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/ukane-philemon/students/internal/admin"
	"github.com/ukane-philemon/students/internal/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// CreateAccount implements admin.Repository.
func (mdb *MongoDB) CreateAccount(ctx context.Context, adminInfo *admin.Admin) error {
	_, err := mdb.adminCollection.InsertOne(ctx, adminInfo)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: please try another username", db.ErrorInvalidRequest)
		}
		return fmt.Errorf("adminCollection.InsertOne error: %w", err)
	}

	return nil
}

// Account implements admin.Repository.
func (mdb *MongoDB) Account(ctx context.Context, username string) (*admin.Admin, error) {
	var adminInfo *admin.Admin
	err := mdb.adminCollection.FindOne(ctx, bson.M{usernameKey: username}).Decode(&adminInfo)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: admin %s", db.ErrorNoRecord, username)
		}
		return nil, fmt.Errorf("adminCollection.FindOne error: %w", err)
	}

	return adminInfo, nil
}
