package auth

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	jwtSecret      = "hehe"
	masterPassword = "FJKqDyBvr9pAQMB3f8Uj4s"

	username    = "testusername"
	password    = "testPassword"
	newPassword = "newPassword"
)

type fakeAdmins struct {
	hashes map[string]string
}

func (f *fakeAdmins) AddAdmin(ctx context.Context, un, pwHash string) error {
	f.hashes[un] = pwHash
	return nil
}

func (f *fakeAdmins) DeleteAdmin(ctx context.Context, un string) error {
	delete(f.hashes, un)
	return nil
}

func (f *fakeAdmins) ChangePassword(ctx context.Context, un, newHash string) error {
	f.hashes[un] = newHash
	return nil
}

func (f *fakeAdmins) PasswordHashByUsername(ctx context.Context, un string) (string, error) {
	hash, ok := f.hashes[un]
	if !ok {
		return "", fmt.Errorf("admin %q not found", un)
	}
	return hash, nil
}

func TestAuth(t *testing.T) {
	ctx := context.Background()

	as := &fakeAdmins{hashes: map[string]string{}}
	c := &Config{
		JWTSecret:                jwtSecret,
		MasterPassword:           masterPassword,
		PasswordHasherSaltSize:   16,
		PasswordHasherIterations: 100000,
		JWTTTL:                   "60m",
	}
	authsrv, err := New(c, as)
	require.NoError(t, err)

	_, err = authsrv.Create(ctx, masterPassword, username, password)
	assert.NoError(t, err)

	// creating an admin requires the master password
	_, err = authsrv.Create(ctx, "wrong", "other", password)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = authsrv.ChangePassword(ctx, username, password, newPassword)
	assert.NoError(t, err)

	_, err = authsrv.Login(ctx, username, password)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	token, err := authsrv.Login(ctx, username, newPassword)
	require.NoError(t, err)

	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	handlerAuth := authsrv.WithAuth(nextHandler)

	req := httptest.NewRequest("GET", "http://testing", nil)
	req.Header.Set(authHeader, fmt.Sprintf("Bearer %s", token))
	rec := httptest.NewRecorder()
	handlerAuth.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req.Header.Set(authHeader, "bad token")
	rec = httptest.NewRecorder()
	handlerAuth.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	err = authsrv.Delete(ctx, masterPassword, username)
	assert.NoError(t, err)

	_, err = authsrv.Login(ctx, username, newPassword)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}
