package jwt

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/cristalhq/jwt/v4"
)

const (
	jwtIssuer = "STUDENTS"

	JWTExpiry        = 24 * time.Hour
	jwtAudienceAdmin = "admin"
	jwtAlg           = jwt.HS256

	minSecretLength = 32
)

type Manager struct {
	aud      string
	builder  *jwt.Builder
	verifier jwt.Verifier
}

// NewJWTManager returns a new manager for jwt tokens signed with secret. A
// random secret is generated if secret is empty, which means tokens do not
// survive a restart.
func NewJWTManager(secret []byte) (*Manager, error) {
	if len(secret) == 0 {
		secret = make([]byte, minSecretLength)
		_, err := rand.Read(secret)
		if err != nil {
			return nil, fmt.Errorf("rand.Read error: %w", err)
		}
	} else if len(secret) < minSecretLength {
		return nil, fmt.Errorf("jwt secret must be at least %d bytes", minSecretLength)
	}

	signer, err := jwt.NewSignerHS(jwtAlg, secret)
	if err != nil {
		return nil, fmt.Errorf("jwt.NewSignerHS error: %w", err)
	}

	verifier, err := jwt.NewVerifierHS(jwtAlg, secret)
	if err != nil {
		return nil, fmt.Errorf("jwt.NewVerifierHS error: %w", err)
	}

	return &Manager{
		aud:      jwtAudienceAdmin,
		builder:  jwt.NewBuilder(signer),
		verifier: verifier,
	}, nil
}

// GenerateJWtToken generates a new jwt token for the specified id.
func (m *Manager) GenerateJWtToken(id string) (string, error) {
	return m.generate(id, time.Now())
}

func (m *Manager) generate(id string, issuedAt time.Time) (string, error) {
	claims := &jwt.RegisteredClaims{
		ID:        id,
		Audience:  jwt.Audience{m.aud},
		Issuer:    jwtIssuer,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(JWTExpiry)),
	}

	token, err := m.builder.Build(claims)
	if err != nil {
		return "", fmt.Errorf("m.builder.Build error: %w", err)
	}

	return token.String(), nil
}

// IsValidToken checks that the provided token is valid and returns the unique
// id added to the auth token.
func (m *Manager) IsValidToken(jwtToken string) (string, bool) {
	jwtClaims := new(jwt.RegisteredClaims)
	err := jwt.ParseClaims([]byte(jwtToken), m.verifier, jwtClaims)
	if err != nil || !(jwtClaims.IsIssuer(jwtIssuer) && jwtClaims.IsValidAt(time.Now())) || !jwtClaims.IsForAudience(m.aud) {
		return "", false
	}

	return jwtClaims.ID, true
}
