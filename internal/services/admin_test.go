package services

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trifecta/internal/config"
	"trifecta/internal/util"
)

func TestLogin_PlainPassword(t *testing.T) {
	svc := NewAdminService(&config.AdminConfig{Password: "hunter2"})

	assert.NoError(t, svc.Login("hunter2"))
	assert.ErrorIs(t, svc.Login("wrong"), ErrInvalidCredentials)
	assert.ErrorIs(t, svc.Login(""), ErrInvalidCredentials)
}

func TestLogin_BcryptHashTakesPrecedence(t *testing.T) {
	hash, err := util.HashPassword("hunter2")
	require.NoError(t, err)

	svc := NewAdminService(&config.AdminConfig{Password: "ignored", PasswordHash: hash})
	assert.NoError(t, svc.Login("hunter2"))
	assert.ErrorIs(t, svc.Login("ignored"), ErrInvalidCredentials)
}

func TestLogin_NoCredentialConfigured(t *testing.T) {
	svc := NewAdminService(&config.AdminConfig{})
	assert.ErrorIs(t, svc.Login("anything"), ErrInvalidCredentials)
}

func TestIsAuthenticated(t *testing.T) {
	svc := NewAdminService(&config.AdminConfig{Password: "hunter2"})

	r := httptest.NewRequest("GET", "/api/get-submissions", nil)
	assert.False(t, svc.IsAuthenticated(r), "no cookie")

	r = httptest.NewRequest("GET", "/api/get-submissions", nil)
	r.AddCookie(svc.SessionCookie())
	assert.True(t, svc.IsAuthenticated(r), "issued session cookie")

	r = httptest.NewRequest("GET", "/api/get-submissions", nil)
	r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "forged"})
	assert.False(t, svc.IsAuthenticated(r), "wrong cookie value")
}

func TestSessionCookies(t *testing.T) {
	svc := NewAdminService(&config.AdminConfig{CookieSecure: true})

	issued := svc.SessionCookie()
	assert.Equal(t, SessionCookieName, issued.Name)
	assert.True(t, issued.HttpOnly)
	assert.True(t, issued.Secure)
	assert.Positive(t, issued.MaxAge)

	cleared := svc.ClearSessionCookie()
	assert.Equal(t, SessionCookieName, cleared.Name)
	assert.Negative(t, cleared.MaxAge)
	assert.Empty(t, cleared.Value)
}
