package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukane-philemon/students/internal/admin"
	"github.com/ukane-philemon/students/internal/db/memory"
	"github.com/ukane-philemon/students/internal/jwt"
	"github.com/ukane-philemon/students/internal/student"
)

type testServer struct {
	handler http.Handler
	store   *memory.Store
	token   string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	ctx := context.Background()
	store := memory.New()
	jwtManager, err := jwt.NewJWTManager(nil)
	require.NoError(t, err)

	admins := admin.NewService(store, jwtManager)
	require.NoError(t, admins.EnsureAccount(ctx, "root", "toor"))
	token, err := admins.Login(ctx, "root", "toor")
	require.NoError(t, err)

	alice := student.New(1, "Alice", "pass1")
	alice.AddScore("Math", 95)
	bob := student.New(2, "Bob", "pass2")
	bob.AddScore("Math", 92)
	for _, st := range []*student.Student{alice, bob} {
		_, err := store.Save(ctx, st)
		require.NoError(t, err)
	}

	server := NewServer(student.NewService(store), admins, jwtManager, 1000)
	return &testServer{
		handler: server.Router(),
		store:   store,
		token:   token,
	}
}

func (ts *testServer) do(t *testing.T, method, path, body string, authenticated bool) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	if authenticated {
		req.Header.Set(jwtHeader, ts.token)
	}

	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestAddStudent(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/student", `{"id":3,"name":"Carol","password":"pw"}`, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[bool](t, rec))

	rec = ts.do(t, http.MethodPost, "/student", `{"id":3,"name":"Other","password":"pw"}`, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[bool](t, rec))

	st, err := ts.store.FindByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Carol", st.Name)
}

func TestMutationsRequireAdmin(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/student", `{"id":3,"name":"Carol","password":"pw"}`, false)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = ts.do(t, http.MethodDelete, "/student/1", "", false)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req := httptest.NewRequest(http.MethodDelete, "/student/1", nil)
	req.Header.Set(jwtHeader, "bogus")
	res := httptest.NewRecorder()
	ts.handler.ServeHTTP(res, req)
	assert.Equal(t, http.StatusForbidden, res.Code)

	exists, err := ts.store.ExistsByID(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestFindStudent(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/student/1", "", false)
	require.Equal(t, http.StatusOK, rec.Code)
	view := decode[student.StudentView](t, rec)
	assert.Equal(t, int64(1), view.ID)
	assert.Equal(t, "Alice", view.Name)
	assert.Equal(t, 95, view.Scores["Math"])
	assert.NotContains(t, rec.Body.String(), "pass1")

	rec = ts.do(t, http.MethodGet, "/student/42", "", false)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(t, http.MethodGet, "/student/abc", "", false)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRemoveStudent(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodDelete, "/student/2", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Bob", decode[student.StudentView](t, rec).Name)

	rec = ts.do(t, http.MethodDelete, "/student/2", "", true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateStudent(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPatch, "/student/1", `{"name":"Alicia"}`, true)
	require.Equal(t, http.StatusOK, rec.Code)
	creds := decode[student.StudentCredentials](t, rec)
	assert.Equal(t, int64(1), creds.ID)
	assert.Equal(t, "Alicia", creds.Name)
	assert.Equal(t, "pass1", creds.Password)

	rec = ts.do(t, http.MethodPatch, "/student/1", `{"unknown":"x"}`, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodPatch, "/student/42", `{"name":"X"}`, true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAddScore(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPatch, "/score/student/1", `{"examName":"Physics","score":80}`, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[bool](t, rec))

	rec = ts.do(t, http.MethodPatch, "/score/student/1", `{"examName":"Physics","score":99}`, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[bool](t, rec))

	st, err := ts.store.FindByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 80, st.Scores["Physics"])

	rec = ts.do(t, http.MethodPatch, "/score/student/1", `{"score":99}`, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodPatch, "/score/student/42", `{"examName":"Physics","score":80}`, true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFindStudentsByName(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/students/name/alice", "", false)
	require.Equal(t, http.StatusOK, rec.Code)
	views := decode[[]student.StudentView](t, rec)
	require.Len(t, views, 1)
	assert.Equal(t, int64(1), views[0].ID)

	rec = ts.do(t, http.MethodGet, "/students/name/nobody", "", false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestFindStudentsByNameWithEscapedCharacters(t *testing.T) {
	ts := newTestServer(t)

	ctx := context.Background()
	for i, name := range []string{"A%2B", "50%", "A/B"} {
		_, err := ts.store.Save(ctx, student.New(int64(10+i), name, "pw"))
		require.NoError(t, err)
	}

	tests := []struct {
		path   string
		wantID int64
		want   string
	}{
		{path: "/students/name/A%252B", wantID: 10, want: "A%2B"},
		{path: "/students/name/50%25", wantID: 11, want: "50%"},
		{path: "/students/name/A%2FB", wantID: 12, want: "A/B"},
	}

	for _, test := range tests {
		rec := ts.do(t, http.MethodGet, test.path, "", false)
		require.Equal(t, http.StatusOK, rec.Code, test.path)
		views := decode[[]student.StudentView](t, rec)
		require.Len(t, views, 1, test.path)
		assert.Equal(t, test.wantID, views[0].ID)
		assert.Equal(t, test.want, views[0].Name)
	}
}

func TestCountStudentsByNames(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/quantity/students", `["alice","BOB","dave"]`, false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(2), decode[int64](t, rec))
}

func TestFindStudentsByExamNameMinScore(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/students/exam/Math/minscore/90", "", false)
	require.Equal(t, http.StatusOK, rec.Code)
	views := decode[[]student.StudentView](t, rec)
	require.Len(t, views, 2)
	assert.Equal(t, "Alice", views[0].Name)
	assert.Equal(t, "Bob", views[1].Name)

	rec = ts.do(t, http.MethodGet, "/students/exam/Math/minscore/100", "", false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = ts.do(t, http.MethodGet, "/students/exam/Math/minscore/high", "", false)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminLoginAndCreate(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/admin/login", `{"username":"root","password":"wrong"}`, false)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodPost, "/admin", `{"username":"ops","password":"secret"}`, false)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = ts.do(t, http.MethodPost, "/admin", `{"username":"ops","password":"secret"}`, true)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotEmpty(t, decode[idResponse](t, rec).ID)

	rec = ts.do(t, http.MethodPost, "/admin/login", `{"username":"ops","password":"secret"}`, false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, decode[tokenResponse](t, rec).Token)
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/health", "", false)
	assert.Equal(t, http.StatusOK, rec.Code)
}
