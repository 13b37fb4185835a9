package admin

import "context"

type Repository interface {
	// CreateAccount saves a new admin. Returns db.ErrorInvalidRequest if the
	// username is taken.
	CreateAccount(ctx context.Context, admin *Admin) error
	// Account returns the admin that match username. Returns db.ErrorNoRecord
	// if no admin is found.
	Account(ctx context.Context, username string) (*Admin, error)
}
