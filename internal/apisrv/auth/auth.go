// Package auth issues and verifies admin session tokens.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/techstore/admin-manager/internal/auth/jwt"
	"github.com/techstore/admin-manager/internal/auth/pwhash"
	"github.com/techstore/admin-manager/internal/dependency"
)

const authHeader = "Authorization"

var ErrUnauthenticated = fmt.Errorf("not authenticated")

type Server struct {
	adminRepository dependency.Admin
	pwhash          *pwhash.PasswordHasher
	JwtAuth         *jwtauth.JWTAuth
	jwtTTL          time.Duration
	c               *Config
	masterHash      string
}

type Config struct {
	JWTSecret                string `mapstructure:"jwtSecret"`
	MasterPassword           string `mapstructure:"masterPassword"`
	PasswordHasherSaltSize   int    `mapstructure:"passwordHasherSaltSize"`
	PasswordHasherIterations int    `mapstructure:"passwordHasherIterations"`
	JWTTTL                   string `mapstructure:"jwtttl"`
}

func New(c *Config, ar dependency.Admin) (*Server, error) {
	ph, err := pwhash.New(c.PasswordHasherSaltSize, c.PasswordHasherIterations)
	if err != nil {
		return nil, err
	}
	hash, err := ph.HashPassword(c.MasterPassword)
	if err != nil {
		return nil, err
	}
	if err := ph.Validate(c.MasterPassword, hash); err != nil {
		return nil, err
	}

	ttl, err := time.ParseDuration(c.JWTTTL)
	if err != nil {
		return nil, err
	}
	return &Server{
		adminRepository: ar,
		pwhash:          ph,
		JwtAuth:         jwtauth.New("HS256", []byte(c.JWTSecret), nil),
		c:               c,
		jwtTTL:          ttl,
		masterHash:      hash,
	}, nil
}

// Login returns an auth token for the provided username and password.
func (s *Server) Login(ctx context.Context, username, password string) (string, error) {
	username = strings.ToLower(username)

	pwHash, err := s.adminRepository.PasswordHashByUsername(ctx, username)
	if err != nil {
		return "", ErrUnauthenticated
	}
	if err := s.pwhash.Validate(password, pwHash); err != nil {
		return "", ErrUnauthenticated
	}
	return jwt.NewToken(s.JwtAuth, s.jwtTTL, username)
}

// Create registers a new admin, gated by the master password.
func (s *Server) Create(ctx context.Context, masterPassword, username, password string) (string, error) {
	if err := s.pwhash.Validate(masterPassword, s.masterHash); err != nil {
		return "", ErrUnauthenticated
	}
	username = strings.ToLower(username)

	pwHash, err := s.pwhash.HashPassword(password)
	if err != nil {
		return "", err
	}
	if err := s.adminRepository.AddAdmin(ctx, username, pwHash); err != nil {
		return "", err
	}
	return jwt.NewToken(s.JwtAuth, s.jwtTTL, username)
}

// Delete removes an admin, gated by the master password.
func (s *Server) Delete(ctx context.Context, masterPassword, username string) error {
	if err := s.pwhash.Validate(masterPassword, s.masterHash); err != nil {
		return ErrUnauthenticated
	}
	return s.adminRepository.DeleteAdmin(ctx, strings.ToLower(username))
}

// ChangePassword rotates an admin's password. Accepts either the current
// password or the master password.
func (s *Server) ChangePassword(ctx context.Context, username, currentPassword, newPassword string) (string, error) {
	username = strings.ToLower(username)

	currentHash, err := s.adminRepository.PasswordHashByUsername(ctx, username)
	if err != nil {
		return "", fmt.Errorf("can't get current password hash: %w", err)
	}

	if err := s.pwhash.Validate(currentPassword, s.masterHash); err != nil {
		if err := s.pwhash.Validate(currentPassword, currentHash); err != nil {
			return "", ErrUnauthenticated
		}
	}

	newHash, err := s.pwhash.HashPassword(newPassword)
	if err != nil {
		return "", err
	}
	if err := s.adminRepository.ChangePassword(ctx, username, newHash); err != nil {
		return "", err
	}
	return jwt.NewToken(s.JwtAuth, s.jwtTTL, username)
}

// WithAuth guards a route subtree with bearer token verification.
func (s *Server) WithAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get(authHeader), "Bearer ")
		if _, err := jwt.VerifyToken(s.JwtAuth, token); err != nil {
			http.Error(w, fmt.Sprintf("invalid token %v", err.Error()), http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
