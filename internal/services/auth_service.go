package services

import (
	"crypto/subtle"
	"errors"
	"strings"

	"faceswapadmin/internal/config"
	"faceswapadmin/internal/domain"
	"faceswapadmin/internal/repos"

	"golang.org/x/crypto/bcrypt"
)

// ErrBadCreds covers both a mismatch and missing credentials.
var ErrBadCreds = errors.New("invalid username or password")

type Credentials struct {
	Username string
	Password string
}

type AuthResult struct {
	OK   bool
	User string
}

// Verifier decides whether credentials are acceptable. Swapping the
// implementation does not touch any call site.
type Verifier interface {
	Verify(Credentials) AuthResult
}

// StaticVerifier accepts one fixed username/password pair.
type StaticVerifier struct {
	Username string
	Password string
}

func (v StaticVerifier) Verify(c Credentials) AuthResult {
	userOK := subtle.ConstantTimeCompare([]byte(c.Username), []byte(v.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(c.Password), []byte(v.Password)) == 1
	if v.Username == "" || !userOK || !passOK {
		return AuthResult{}
	}
	return AuthResult{OK: true, User: v.Username}
}

// BcryptVerifier accepts one username whose password matches Hash.
type BcryptVerifier struct {
	Username string
	Hash     []byte
}

func (v BcryptVerifier) Verify(c Credentials) AuthResult {
	if v.Username == "" || c.Username != v.Username {
		return AuthResult{}
	}
	if bcrypt.CompareHashAndPassword(v.Hash, []byte(c.Password)) != nil {
		return AuthResult{}
	}
	return AuthResult{OK: true, User: v.Username}
}

// NewVerifier prefers a bcrypt hash when one is configured.
func NewVerifier(cfg config.Config) Verifier {
	if h := strings.TrimSpace(cfg.AdminPasswordHash); h != "" {
		return BcryptVerifier{Username: cfg.AdminUser, Hash: []byte(h)}
	}
	return StaticVerifier{Username: cfg.AdminUser, Password: cfg.AdminPassword}
}

type AuthService struct {
	Sessions *repos.SessionRepo
	Verifier Verifier
}

// Login authenticates the session on a match. Any failed attempt leaves the
// session Unauthenticated, even if it was logged in before.
func (s *AuthService) Login(sid, username, password string) (domain.Session, error) {
	res := AuthResult{}
	if username != "" && password != "" {
		res = s.Verifier.Verify(Credentials{Username: username, Password: password})
	}
	if !res.OK {
		if err := s.Sessions.Unbind(sid); err != nil {
			return domain.Session{ID: sid}, err
		}
		return domain.Session{ID: sid, State: domain.Unauthenticated}, ErrBadCreds
	}
	if err := s.Sessions.Bind(sid, res.User); err != nil {
		return domain.Session{ID: sid}, err
	}
	return domain.Session{ID: sid, User: res.User, State: domain.Authenticated}, nil
}

func (s *AuthService) Logout(sid string) error {
	return s.Sessions.Unbind(sid)
}

func (s *AuthService) Current(sid string) (domain.Session, error) {
	return s.Sessions.Get(sid)
}
