package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/akinalp/loqui/handlers"
	"github.com/akinalp/loqui/models"
	"github.com/akinalp/loqui/pkg"
	"github.com/akinalp/loqui/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUserRepo, tek kullanıcılık in-memory repo.
type fakeUserRepo struct {
	user *models.User
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error { return nil }

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if f.user == nil || f.user.ID != id {
		return nil, pkg.ErrNotFound
	}
	cp := *f.user
	return &cp, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return nil, pkg.ErrNotFound
}

func (f *fakeUserRepo) UpdateProfilePic(ctx context.Context, userID string, url string) (*models.User, error) {
	return nil, pkg.ErrNotFound
}

// newProtected, middleware arkasına her zaman 200 dönen bir probe koyar.
func newProtected(t *testing.T, repo *fakeUserRepo) (*services.TokenIssuer, http.Handler) {
	t.Helper()

	probe := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	issuer := services.NewTokenIssuer("test-secret", 7)
	mw := NewAuthMiddleware(issuer, repo)

	return issuer, mw.Require(probe)
}

func doRequest(h http.Handler, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/auth/check", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRequire_NoCookie(t *testing.T) {
	t.Parallel()

	_, h := newProtected(t, &fakeUserRepo{})
	rec := doRequest(h, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequire_InvalidToken(t *testing.T) {
	t.Parallel()

	_, h := newProtected(t, &fakeUserRepo{})
	rec := doRequest(h, &http.Cookie{Name: handlers.SessionCookieName, Value: "garbage"})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequire_ForgedToken(t *testing.T) {
	t.Parallel()

	user := &models.User{ID: "u1", FullName: "Ana", Email: "ana@x.com"}
	_, h := newProtected(t, &fakeUserRepo{user: user})

	// Başka bir anahtarla imzalanmış token reddedilmeli
	forger := services.NewTokenIssuer("attacker-secret", 7)
	tok, err := forger.Issue("u1")
	require.NoError(t, err)

	rec := doRequest(h, &http.Cookie{Name: handlers.SessionCookieName, Value: tok})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequire_AccountDeleted(t *testing.T) {
	t.Parallel()

	// Token geçerli ama hesap store'da yok → 401, handler çalışmaz
	issuer, h := newProtected(t, &fakeUserRepo{})
	tok, err := issuer.Issue("ghost")
	require.NoError(t, err)

	rec := doRequest(h, &http.Cookie{Name: handlers.SessionCookieName, Value: tok})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequire_Authenticated(t *testing.T) {
	t.Parallel()

	user := &models.User{ID: "u1", FullName: "Ana", Email: "ana@x.com", PasswordHash: "bcrypt-hash"}
	repo := &fakeUserRepo{user: user}

	var seen *models.User
	probe := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := r.Context().Value(handlers.UserContextKey).(*models.User)
		require.True(t, ok, "context'te user olmalı")
		seen = u
		w.WriteHeader(http.StatusOK)
	})

	issuer := services.NewTokenIssuer("test-secret", 7)
	h := NewAuthMiddleware(issuer, repo).Require(probe)

	tok, err := issuer.Issue("u1")
	require.NoError(t, err)

	rec := doRequest(h, &http.Cookie{Name: handlers.SessionCookieName, Value: tok})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, "u1", seen.ID)
	assert.Empty(t, seen.PasswordHash, "hash context'e taşınmamalı")
}
