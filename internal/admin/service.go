package admin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ukane-philemon/students/internal/db"
	"github.com/ukane-philemon/students/internal/jwt"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// Service manages admin accounts and their auth tokens.
type Service struct {
	repo       Repository
	jwtManager *jwt.Manager
}

// NewService creates a new instance of *Service.
func NewService(repo Repository, jwtManager *jwt.Manager) *Service {
	return &Service{
		repo:       repo,
		jwtManager: jwtManager,
	}
}

// Create creates a new admin account and returns its id.
func (s *Service) Create(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", fmt.Errorf("%w: missing username or password", db.ErrorInvalidRequest)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("bcrypt.GenerateFromPassword error: %w", err)
	}

	adminInfo := &Admin{
		ID:             primitive.NewObjectID().Hex(),
		Username:       username,
		HashedPassword: string(passwordHash),
		CreatedAt:      time.Now().Unix(),
	}

	err = s.repo.CreateAccount(ctx, adminInfo)
	if err != nil {
		return "", err
	}

	return adminInfo.ID, nil
}

// Login checks username and password against the stored account and returns
// a new auth token.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	admin, err := s.repo.Account(ctx, username)
	if err != nil {
		if errors.Is(err, db.ErrorNoRecord) {
			return "", fmt.Errorf("%w: username or password is incorrect", db.ErrorInvalidRequest)
		}
		return "", fmt.Errorf("repo.Account error: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(admin.HashedPassword), []byte(password))
	if err != nil {
		return "", fmt.Errorf("%w: username or password is incorrect", db.ErrorInvalidRequest)
	}

	token, err := s.jwtManager.GenerateJWtToken(admin.ID)
	if err != nil {
		return "", fmt.Errorf("jwtManager.GenerateJWtToken error: %w", err)
	}

	return token, nil
}

// EnsureAccount creates the account for username if it does not exist yet.
// It is used to seed the first admin at startup.
func (s *Service) EnsureAccount(ctx context.Context, username, password string) error {
	_, err := s.repo.Account(ctx, username)
	if err == nil {
		return nil
	}

	if !errors.Is(err, db.ErrorNoRecord) {
		return fmt.Errorf("repo.Account error: %w", err)
	}

	_, err = s.Create(ctx, username, password)
	return err
}
