package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/akinalp/loqui/models"
	"github.com/akinalp/loqui/pkg"
	"github.com/akinalp/loqui/pkg/crypto"
	"github.com/akinalp/loqui/repository"
	"github.com/google/uuid"
)

// AuthService interface'i — dışarıya açık API.
// Handler bu interface'e bağımlıdır, concrete struct'a değil.
//
// Signup ve Login, public user projection'ı ve imzalı session token'ı
// AYRI döner: token sadece cookie'ye yazılır, response body'ye asla girmez.
// Logout ve CheckAuth burada yoktur — Logout saf cookie işlemidir,
// CheckAuth middleware'ın context'e koyduğu user'ı aynen döner;
// ikisinin de iş mantığı yoktur.
type AuthService interface {
	Signup(ctx context.Context, req *models.SignupRequest) (*models.User, string, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.User, string, error)
	// UpdateProfilePic, resmi external store'a yükler, dönen kalıcı URL'i
	// hesaba yazar ve güncel public projection'ı döner.
	UpdateProfilePic(ctx context.Context, userID string, profilePic string) (*models.User, error)
}

// authService, AuthService interface'inin implementasyonu.
type authService struct {
	userRepo repository.UserRepository
	images   ImageStore
	tokens   *TokenIssuer
}

// NewAuthService, constructor.
func NewAuthService(userRepo repository.UserRepository, images ImageStore, tokens *TokenIssuer) AuthService {
	return &authService{
		userRepo: userRepo,
		images:   images,
		tokens:   tokens,
	}
}

// Signup, yeni hesap oluşturur ve session token üretir.
//
// Sıralama bilinçlidir: önce persist, sonra token.
// Token üretimi başarısız olursa yarım hesap kalmaz — tek INSERT
// atomiktir ve başarı yanıtı ancak HER adım geçince döner.
//
// Duplicate email için öncesinde lookup YAPILMAZ: store'un UNIQUE
// constraint'i tek conflict sinyalidir. Check-then-create, eşzamanlı
// iki signup'ta ikisini de geçirir — constraint geçirmez.
func (s *authService) Signup(ctx context.Context, req *models.SignupRequest) (*models.User, string, error) {
	// 1. Validation — store'a dokunmadan önce
	if err := req.Validate(); err != nil {
		return nil, "", fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	// 2. Bcrypt hash — plaintext bu satırdan sonra hiçbir yerde tutulmaz
	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		ID:           uuid.New().String(),
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: hash,
	}

	// 3. Persist — UNIQUE ihlali ErrAlreadyExists olarak gelir
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	// 4. Token
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}

	user.PasswordHash = ""
	return user, token, nil
}

// Login, credential'ları doğrular ve session token üretir.
//
// "Email yok" ve "şifre yanlış" AYNI hatayı döner — response body ve
// status code byte-byte aynıdır, enumeration sinyali yoktur.
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.User, string, error) {
	req.Normalize()

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil, "", pkg.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !crypto.CheckPassword(req.Password, user.PasswordHash) {
		return nil, "", pkg.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}

	user.PasswordHash = ""
	return user, token, nil
}

// UpdateProfilePic, profil resmini günceller.
// userID, middleware'ın çözümlediği kimlikten gelir — request body'den değil.
func (s *authService) UpdateProfilePic(ctx context.Context, userID string, profilePic string) (*models.User, error) {
	if profilePic == "" {
		return nil, fmt.Errorf("%w: profile pic is required", pkg.ErrBadRequest)
	}

	// External store yavaş ve fallible'dır — hata aynen yukarı gider,
	// retry YAPILMAZ (çağıran tekrar dener).
	url, err := s.images.Upload(ctx, profilePic)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.UpdateProfilePic(ctx, userID, url)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}
