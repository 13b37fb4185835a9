package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukane-philemon/students/internal/admin"
	"github.com/ukane-philemon/students/internal/db/memory"
	"github.com/ukane-philemon/students/internal/jwt"
	"github.com/ukane-philemon/students/internal/student"
)

func newTestCLI(t *testing.T) (*cli, *bytes.Buffer) {
	t.Helper()

	ctx := context.Background()
	store := memory.New()
	alice := student.New(1, "Alice", "pass1")
	alice.AddScore("Math", 95)
	alice.AddScore("Art", 70)
	_, err := store.Save(ctx, alice)
	require.NoError(t, err)
	_, err = store.Save(ctx, student.New(2, "Bob", "pass2"))
	require.NoError(t, err)

	jwtManager, err := jwt.NewJWTManager(nil)
	require.NoError(t, err)

	out := new(bytes.Buffer)
	return &cli{
		out:      out,
		students: student.NewService(store),
		admins:   admin.NewService(store, jwtManager),
	}, out
}

func TestRunFindName(t *testing.T) {
	c, out := newTestCLI(t)

	require.NoError(t, c.run(context.Background(), []string{"find-name", "alice"}))
	assert.Contains(t, out.String(), `Students named "alice"`)
	assert.Contains(t, out.String(), "Alice")
	assert.Contains(t, out.String(), "Art=70, Math=95")
	assert.NotContains(t, out.String(), "Bob")
}

func TestRunExam(t *testing.T) {
	c, out := newTestCLI(t)

	require.NoError(t, c.run(context.Background(), []string{"exam", "Math", "90"}))
	assert.Contains(t, out.String(), "Students with Math >= 90")
	assert.Contains(t, out.String(), "Alice")

	assert.Error(t, c.run(context.Background(), []string{"exam", "Math", "high"}))
}

func TestRunCount(t *testing.T) {
	c, out := newTestCLI(t)

	require.NoError(t, c.run(context.Background(), []string{"count", "alice", "bob", "carol"}))
	assert.Equal(t, "2\n", out.String())
}

func TestRunAddAdmin(t *testing.T) {
	c, out := newTestCLI(t)

	require.NoError(t, c.run(context.Background(), []string{"add-admin", "root", "toor"}))
	assert.Contains(t, out.String(), "Admin root created successfully")
	assert.Error(t, c.run(context.Background(), []string{"add-admin", "root", "toor"}))
}

func TestRunUsage(t *testing.T) {
	c, _ := newTestCLI(t)

	assert.ErrorIs(t, c.run(context.Background(), nil), errUsage)
	assert.ErrorIs(t, c.run(context.Background(), []string{"find-name"}), errUsage)
	assert.ErrorIs(t, c.run(context.Background(), []string{"drop"}), errUsage)
}

type failingStore struct{ err error }

func (s failingStore) Shutdown(context.Context) error { return s.err }

func TestShutdownReportsError(t *testing.T) {
	out := new(bytes.Buffer)
	shutdown(out, failingStore{err: errors.New("connection refused")})
	assert.Contains(t, out.String(), "mdb.Shutdown error: connection refused")

	out.Reset()
	shutdown(out, failingStore{})
	assert.Empty(t, out.String())
}

func TestFormatScores(t *testing.T) {
	assert.Equal(t, "", formatScores(nil))
	assert.Equal(t, "Art=70, Math=95", formatScores(map[string]int{"Math": 95, "Art": 70}))
}
