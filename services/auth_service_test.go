package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/akinalp/loqui/models"
	"github.com/akinalp/loqui/pkg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─── test fakes ───

// fakeUserRepo, UserRepository'nin in-memory implementasyonu.
// Gerçek store gibi email uniqueness'ı KENDİSİ zorunlu kılar.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User // id → user
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == user.Email {
			return fmt.Errorf("%w: user already exists with this email", pkg.ErrAlreadyExists)
		}
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, pkg.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, pkg.ErrNotFound
}

func (f *fakeUserRepo) UpdateProfilePic(ctx context.Context, userID string, url string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return nil, pkg.ErrNotFound
	}
	u.ProfilePicURL = &url
	u.UpdatedAt = time.Now()
	cp := *u
	return &cp, nil
}

// fakeImageStore, upload edilen payload'ı kaydedip sabit URL döner.
type fakeImageStore struct {
	uploaded []string
	err      error
}

func (f *fakeImageStore) Upload(ctx context.Context, dataURL string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.uploaded = append(f.uploaded, dataURL)
	return "/api/uploads/abc123.png", nil
}

func newTestAuthService() (AuthService, *fakeUserRepo, *fakeImageStore) {
	repo := newFakeUserRepo()
	images := &fakeImageStore{}
	issuer := NewTokenIssuer("test-secret", 7)
	return NewAuthService(repo, images, issuer), repo, images
}

// ─── Signup ───

func TestSignup_Success(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestAuthService()

	user, token, err := svc.Signup(context.Background(), &models.SignupRequest{
		FullName: "Ana",
		Email:    "ana@x.com",
		Password: "secret1",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "Ana", user.FullName)
	assert.Equal(t, "ana@x.com", user.Email)
	assert.Nil(t, user.ProfilePicURL)
	assert.Empty(t, user.PasswordHash, "hash response'a sızmamalı")
	assert.NotEmpty(t, token)

	// Token gerçekten bu kullanıcı için imzalanmış olmalı
	issuer := NewTokenIssuer("test-secret", 7)
	userID, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
}

func TestSignup_Validation(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestAuthService()

	tests := []struct {
		name string
		req  models.SignupRequest
	}{
		{"missing full name", models.SignupRequest{Email: "a@x.com", Password: "secret1"}},
		{"missing email", models.SignupRequest{FullName: "Ana", Password: "secret1"}},
		{"missing password", models.SignupRequest{FullName: "Ana", Email: "a@x.com"}},
		{"invalid email", models.SignupRequest{FullName: "Ana", Email: "not-an-email", Password: "secret1"}},
		{"password too short", models.SignupRequest{FullName: "Ana", Email: "a@x.com", Password: "five5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.Signup(context.Background(), &tt.req)
			assert.ErrorIs(t, err, pkg.ErrBadRequest)
		})
	}
}

func TestSignup_PasswordLengthBoundary(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestAuthService()

	// 5 karakter → red
	_, _, err := svc.Signup(context.Background(), &models.SignupRequest{
		FullName: "Ana", Email: "a5@x.com", Password: "12345",
	})
	assert.ErrorIs(t, err, pkg.ErrBadRequest)

	// 6 karakter → kabul
	_, _, err = svc.Signup(context.Background(), &models.SignupRequest{
		FullName: "Ana", Email: "a6@x.com", Password: "123456",
	})
	assert.NoError(t, err)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	t.Parallel()

	svc, repo, _ := newTestAuthService()

	first, _, err := svc.Signup(context.Background(), &models.SignupRequest{
		FullName: "Ana", Email: "ana@x.com", Password: "secret1",
	})
	require.NoError(t, err)

	_, _, err = svc.Signup(context.Background(), &models.SignupRequest{
		FullName: "Impostor", Email: "ana@x.com", Password: "different1",
	})
	assert.ErrorIs(t, err, pkg.ErrAlreadyExists)

	// İlk hesabın verisi değişmemiş olmalı
	stored, err := repo.GetByID(context.Background(), first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", stored.FullName)
	assert.Equal(t, "ana@x.com", stored.Email)
}

func TestSignup_PasswordNeverStoredPlaintext(t *testing.T) {
	t.Parallel()

	svc, repo, _ := newTestAuthService()

	user, _, err := svc.Signup(context.Background(), &models.SignupRequest{
		FullName: "Ana", Email: "ana@x.com", Password: "secret1",
	})
	require.NoError(t, err)

	stored, err := repo.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, stored.PasswordHash)
	assert.NotEqual(t, "secret1", stored.PasswordHash)
}

// ─── Login ───

func TestLogin_Success(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestAuthService()

	created, _, err := svc.Signup(context.Background(), &models.SignupRequest{
		FullName: "Ana", Email: "ana@x.com", Password: "secret1",
	})
	require.NoError(t, err)

	user, token, err := svc.Login(context.Background(), &models.LoginRequest{
		Email: "ana@x.com", Password: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
	assert.Empty(t, user.PasswordHash)
	assert.NotEmpty(t, token)
}

func TestLogin_NoEnumerationSignal(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestAuthService()

	_, _, err := svc.Signup(context.Background(), &models.SignupRequest{
		FullName: "Ana", Email: "ana@x.com", Password: "secret1",
	})
	require.NoError(t, err)

	// Kayıtlı email + yanlış şifre
	_, _, errWrongPass := svc.Login(context.Background(), &models.LoginRequest{
		Email: "ana@x.com", Password: "wrong",
	})
	// Kayıtsız email
	_, _, errNoUser := svc.Login(context.Background(), &models.LoginRequest{
		Email: "ghost@x.com", Password: "secret1",
	})

	require.Error(t, errWrongPass)
	require.Error(t, errNoUser)
	// İki durum da AYNI error — mesaj farkı enumeration sinyali olur
	assert.Equal(t, errWrongPass.Error(), errNoUser.Error())
	assert.True(t, errors.Is(errWrongPass, pkg.ErrInvalidCredentials))
	assert.True(t, errors.Is(errNoUser, pkg.ErrInvalidCredentials))
}

func TestLogin_EmailCaseInsensitive(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestAuthService()

	_, _, err := svc.Signup(context.Background(), &models.SignupRequest{
		FullName: "Ana", Email: "Ana@X.com", Password: "secret1",
	})
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), &models.LoginRequest{
		Email: "ANA@x.COM", Password: "secret1",
	})
	assert.NoError(t, err)
}

// ─── UpdateProfilePic ───

func TestUpdateProfilePic_Success(t *testing.T) {
	t.Parallel()

	svc, _, images := newTestAuthService()

	user, _, err := svc.Signup(context.Background(), &models.SignupRequest{
		FullName: "Ana", Email: "ana@x.com", Password: "secret1",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateProfilePic(context.Background(), user.ID, "data:image/png;base64,AAAA")
	require.NoError(t, err)

	require.NotNil(t, updated.ProfilePicURL)
	assert.Equal(t, "/api/uploads/abc123.png", *updated.ProfilePicURL)
	assert.Len(t, images.uploaded, 1)
}

func TestUpdateProfilePic_EmptyPayload(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestAuthService()

	_, err := svc.UpdateProfilePic(context.Background(), "some-id", "")
	assert.ErrorIs(t, err, pkg.ErrBadRequest)
}

func TestUpdateProfilePic_StoreFailurePropagates(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	images := &fakeImageStore{err: errors.New("image host down")}
	svc := NewAuthService(repo, images, NewTokenIssuer("test-secret", 7))

	user, _, err := svc.Signup(context.Background(), &models.SignupRequest{
		FullName: "Ana", Email: "ana@x.com", Password: "secret1",
	})
	require.NoError(t, err)

	_, err = svc.UpdateProfilePic(context.Background(), user.ID, "data:image/png;base64,AAAA")
	assert.Error(t, err)

	// Başarısız upload hesapta iz bırakmamalı
	stored, err := repo.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.ProfilePicURL)
}
