// Package middleware, HTTP request pipeline'ına eklenen ara katmanları barındırır.
//
// Middleware Pattern nedir?
// Her HTTP request, handler'a ulaşmadan önce bir veya daha fazla middleware'dan geçer.
//
// Go'da middleware bir fonksiyondur:
//
//	func(next http.Handler) http.Handler
//
// "next" parametresi zincirdeki bir sonraki handler'dır.
// Middleware kendi işini yapar (ör: token doğrula), sonra next'i çağırır.
// Eğer hata varsa next'i çağırmaz → request burada durur.
package middleware

import (
	"context"
	"net/http"

	"github.com/akinalp/loqui/handlers"
	"github.com/akinalp/loqui/pkg"
	"github.com/akinalp/loqui/repository"
	"github.com/akinalp/loqui/services"
)

// AuthMiddleware, session cookie'den kimlik çözümleyen middleware.
type AuthMiddleware struct {
	tokens   *services.TokenIssuer
	userRepo repository.UserRepository
}

// NewAuthMiddleware, constructor.
func NewAuthMiddleware(tokens *services.TokenIssuer, userRepo repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		tokens:   tokens,
		userRepo: userRepo,
	}
}

// Require, geçerli bir session zorunlu kılan middleware.
// Çözümleme tek adımda terminal'dir — dört durumdan biri:
//
//  1. Cookie yok            → 401, next ÇAĞRILMAZ
//  2. Token geçersiz/expire → 401, next ÇAĞRILMAZ
//  3. Hesap silinmiş        → 401, next ÇAĞRILMAZ
//  4. Geçerli               → hesap context'e eklenir, next çalışır
//
// Hesap HER request'te store'dan yeniden okunur — cache YOKTUR.
// Cache invalidation hikayemiz olmadığı için stale hesap taşımak
// yerine bir lookup'ın latency'sini öderiz.
func (m *AuthMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 1. Session cookie'yi al
		cookie, err := r.Cookie(handlers.SessionCookieName)
		if err != nil || cookie.Value == "" {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "unauthorized - no token provided")
			return
		}

		// 2. Token'ı doğrula — bozuk, sahte imzalı ve süresi dolmuş
		// token'lar tek bir "invalid" cevabında toplanır
		userID, err := m.tokens.Verify(cookie.Value)
		if err != nil {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "unauthorized - invalid token")
			return
		}

		// 3. Hesabı DB'den getir — token geçerli ama hesap silinmiş olabilir
		user, err := m.userRepo.GetByID(r.Context(), userID)
		if err != nil {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "unauthorized - user not found")
			return
		}

		// Password hash'i temizle — context'te taşınmamalı
		user.PasswordHash = ""

		// 4. Context'e kullanıcıyı ekle.
		// Downstream handler'lar r.Context().Value(UserContextKey) ile erişir.
		ctx := context.WithValue(r.Context(), handlers.UserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
