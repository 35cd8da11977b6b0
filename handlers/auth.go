package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/akinalp/loqui/models"
	"github.com/akinalp/loqui/pkg"
	"github.com/akinalp/loqui/services"
)

// AuthHandler, auth endpoint'lerini yöneten struct.
// Service interface'i ve cookie manager constructor'dan alınır (DI).
type AuthHandler struct {
	authService services.AuthService
	cookies     *SessionCookie
}

// NewAuthHandler, constructor.
func NewAuthHandler(authService services.AuthService, cookies *SessionCookie) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cookies:     cookies,
	}
}

// Signup godoc
// POST /api/auth/signup
//
// Başarı sırası önemli: hesap persist edilir, token üretilir, cookie
// yazılır ve ANCAK ondan sonra 201 + public projection döner.
// Herhangi bir adım patlarsa client'a başarı sinyali gitmez.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest

	// json.NewDecoder: Request body'yi Go struct'ına parse eder.
	// r.Body bir io.Reader'dır — stream olarak okunur, hepsini belleğe almaz.
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := h.authService.Signup(r.Context(), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	h.cookies.Attach(w, token)
	pkg.JSON(w, http.StatusCreated, user)
}

// Login godoc
// POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	h.cookies.Attach(w, token)
	pkg.JSON(w, http.StatusOK, user)
}

// Logout godoc
// POST /api/auth/logout
//
// Idempotent: session olmasa bile başarı döner — cookie'yi ezmek
// her durumda güvenlidir. Auth middleware gerektirMEZ.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.cookies.Clear(w)
	pkg.JSON(w, http.StatusOK, map[string]string{"message": "logged out successfully"})
}

// UpdateProfile godoc
// PUT /api/auth/update-profile
// Auth middleware gerektirir — userID context'teki çözümlenmiş kimlikten gelir.
//
// Body: { "profile_pic": "data:image/png;base64,..." }
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	var req models.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.authService.UpdateProfilePic(r.Context(), user.ID, req.ProfilePic)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, updated)
}

// Check godoc
// GET /api/auth/check
// Auth middleware gerektirir — context'teki hesabı aynen döner.
// Saf okuma, side effect yok; frontend açılışta "giriş yapılı mı" diye sorar.
func (h *AuthHandler) Check(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	pkg.JSON(w, http.StatusOK, user)
}

// UserContextKey, context'te kullanıcı bilgisi taşımak için kullanılan key tipi.
//
// Go'da context.Value() any tip kabul eder — string key kullanmak çakışmaya
// neden olabilir. Özel bir tip tanımlayarak namespace collision'ı önleriz.
type contextKey string

const UserContextKey contextKey = "user"
