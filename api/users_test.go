package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/riddhisc/hrdash/internal/oauth"
	"github.com/riddhisc/hrdash/pkg/models"
	"github.com/riddhisc/hrdash/pkg/repository/mock"
)

const testSecret = "test-secret"

type fakeVerifier struct {
	claims *oauth.Claims
	err    error
}

func (f *fakeVerifier) Verify(ctx context.Context, token string) (*oauth.Claims, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.claims, nil
}

func newUsersHandler(users *mock.UserRepo, verifier oauth.TokenVerifier) *UsersHandler {
	return NewUsersHandler(users, verifier, testSecret, time.Hour)
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestRegister(t *testing.T) {
	mocks := mock.NewMocks()
	h := newUsersHandler(mocks.Users, nil)

	rec := postJSON(t, h.Register, "/api/users/register", registerRequest{
		Name: "Ana Silva", Email: "Ana@Example.com", Password: "s3cret-pw",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp authResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "ana@example.com", resp.Email, "emails are lowercased")
	assert.Equal(t, models.RoleUser, resp.Role)

	// Registering the same email again is rejected.
	rec = postJSON(t, h.Register, "/api/users/register", registerRequest{
		Name: "Ana Again", Email: "ana@example.com", Password: "other-pw",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginDoesNotRevealAccounts(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("right-pw"), bcrypt.MinCost)
	require.NoError(t, err)
	mocks := mock.NewMocks()
	mocks.Users.Stored = []models.User{{
		ID: "u1", Name: "Ana", Email: "ana@example.com",
		PasswordHash: string(hash), Role: models.RoleUser,
	}}
	h := newUsersHandler(mocks.Users, nil)

	unknown := postJSON(t, h.Login, "/api/users/login", loginRequest{Email: "ghost@example.com", Password: "whatever"})
	wrongPw := postJSON(t, h.Login, "/api/users/login", loginRequest{Email: "ana@example.com", Password: "wrong-pw"})

	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, http.StatusUnauthorized, wrongPw.Code)
	assert.Equal(t, unknown.Body.String(), wrongPw.Body.String(),
		"unknown email and wrong password must be indistinguishable")

	ok := postJSON(t, h.Login, "/api/users/login", loginRequest{Email: "ana@example.com", Password: "right-pw"})
	require.Equal(t, http.StatusOK, ok.Code, ok.Body.String())
	var resp authResponse
	require.NoError(t, json.Unmarshal(ok.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
}

func TestGoogleLoginProvisionsAccount(t *testing.T) {
	mocks := mock.NewMocks()
	verifier := &fakeVerifier{claims: &oauth.Claims{
		Subject: "google-sub-1", Email: "bob@example.com", Name: "Bob Chen",
	}}
	h := newUsersHandler(mocks.Users, verifier)

	rec := postJSON(t, h.GoogleLogin, "/api/users/google", googleLoginRequest{Token: "ext-token"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	require.Len(t, mocks.Users.Stored, 1)
	assert.Equal(t, "google-sub-1", mocks.Users.Stored[0].GoogleID)
	assert.Empty(t, mocks.Users.Stored[0].PasswordHash, "oauth accounts carry no local password")
}

func TestGoogleLoginLinksExistingAccount(t *testing.T) {
	mocks := mock.NewMocks()
	mocks.Users.Stored = []models.User{{
		ID: "u1", Name: "Bob", Email: "bob@example.com",
		PasswordHash: "some-hash", Role: models.RoleUser,
	}}
	verifier := &fakeVerifier{claims: &oauth.Claims{Subject: "google-sub-1", Email: "bob@example.com"}}
	h := newUsersHandler(mocks.Users, verifier)

	rec := postJSON(t, h.GoogleLogin, "/api/users/google", googleLoginRequest{Token: "ext-token"})
	require.Equal(t, http.StatusOK, rec.Code)

	require.Len(t, mocks.Users.Stored, 1, "no second account for the same email")
	assert.Equal(t, "google-sub-1", mocks.Users.Stored[0].GoogleID)
}

func TestGoogleLoginRejectsBadToken(t *testing.T) {
	h := newUsersHandler(mock.NewMocks().Users, &fakeVerifier{err: errors.New("expired")})

	rec := postJSON(t, h.GoogleLogin, "/api/users/google", googleLoginRequest{Token: "bad"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
