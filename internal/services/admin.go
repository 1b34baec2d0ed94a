package services

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"trifecta/internal/config"
	"trifecta/internal/metrics"
	"trifecta/internal/util"
)

const (
	// SessionCookieName is the admin session cookie.
	SessionCookieName = "admin-session"

	// sessionAuthenticatedValue is the single shared "authenticated" token.
	// The dashboard has no per-user identity: holding a cookie with exactly
	// this value is the entire session model.
	sessionAuthenticatedValue = "authenticated"

	sessionMaxAge = 24 * 60 * 60 // seconds
)

// ErrInvalidCredentials is returned when the admin password does not match.
var ErrInvalidCredentials = errors.New("invalid password")

// AdminService guards read access to stored submissions
type AdminService struct {
	cfg *config.AdminConfig
}

// NewAdminService creates a new admin service
func NewAdminService(cfg *config.AdminConfig) *AdminService {
	return &AdminService{cfg: cfg}
}

// IsAuthenticated reports whether the request carries a valid admin session
// cookie. Every protected read must call this independently so that a 401 is
// never confused with an empty result.
func (s *AdminService) IsAuthenticated(r *http.Request) bool {
	cookie, err := r.Cookie(SessionCookieName)
	ok := err == nil &&
		subtle.ConstantTimeCompare([]byte(cookie.Value), []byte(sessionAuthenticatedValue)) == 1
	metrics.RecordAdminAuth("check", ok)
	return ok
}

// Login verifies the shared admin credential. A bcrypt hash takes precedence
// over the plain password when both are configured.
func (s *AdminService) Login(password string) error {
	var ok bool
	switch {
	case s.cfg.PasswordHash != "":
		ok = util.CheckPasswordHash(password, s.cfg.PasswordHash)
	case s.cfg.Password != "":
		ok = subtle.ConstantTimeCompare([]byte(password), []byte(s.cfg.Password)) == 1
	default:
		// No credential configured: nobody can log in.
		ok = false
	}

	metrics.RecordAdminAuth("login", ok)
	if !ok {
		return ErrInvalidCredentials
	}
	return nil
}

// SessionCookie returns the cookie that marks the caller as authenticated
func (s *AdminService) SessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    sessionAuthenticatedValue,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   sessionMaxAge,
	}
}

// ClearSessionCookie returns the cookie that logs the caller out
func (s *AdminService) ClearSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	}
}
