// Package services, business logic katmanını barındırır.
//
// Service Layer Pattern nedir?
// Handler (HTTP) ile Repository (DB) arasında oturan katmandır.
// Tüm iş kuralları burada yaşar:
//   - Şifre hash'leme
//   - Session token oluşturma/doğrulama
//   - Profil resmi yükleme akışı
//
// Service ASLA http.Request/Response bilmez — sadece domain modelleri alır/verir.
// Service ASLA doğrudan SQL çalıştırmaz — Repository interface'i kullanır.
package services

import (
	"fmt"
	"time"

	"github.com/akinalp/loqui/models"
	"github.com/akinalp/loqui/pkg"
	"github.com/golang-jwt/jwt/v5"
)

// TokenIssuer, session token'ları üretir ve doğrular.
//
// İmza anahtarı startup'ta config'den BİR KEZ yüklenir — gizli bir
// module-level global yerine explicit constructor parametresidir.
// Bu sayede test'te sabit key inject etmek ve ileride key rotation
// yapmak kolaydır. Anahtar asla log'lanmaz, asla response'a yazılmaz.
type TokenIssuer struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time // test'te sabitlenebilir saat
}

// NewTokenIssuer, constructor.
// expiryDays: token'ın (ve cookie'nin) ömrü — varsayılan config'de 7 gün.
func NewTokenIssuer(secret string, expiryDays int) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(secret),
		expiry: time.Duration(expiryDays) * 24 * time.Hour,
		now:    time.Now,
	}
}

// Expiry, token ömrünü döner — cookie Max-Age'i bununla hizalanır.
func (t *TokenIssuer) Expiry() time.Duration {
	return t.expiry
}

// Issue, verilen kullanıcı için imzalı, süreli bir token üretir.
func (t *TokenIssuer) Issue(userID string) (string, error) {
	now := t.now()
	claims := &models.TokenClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(t.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "loqui",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// Verify, token'ı doğrular ve içindeki kullanıcı ID'sini döner.
//
// Bozuk payload, yanlış imza ve süresi dolmuş token'ın ÜÇÜ DE aynı
// generic hatada toplanır — hangi kontrolün patladığını client'a
// söylemek saldırgana bilgi sızdırır.
func (t *TokenIssuer) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.TokenClaims{}, func(token *jwt.Token) (any, error) {
		// alg confusion saldırısına karşı: sadece HMAC kabul et.
		// Saldırgan header'da "alg":"none" veya RS256 deneyebilir.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(t.now))

	if err != nil {
		return "", fmt.Errorf("%w: invalid token", pkg.ErrUnauthorized)
	}

	claims, ok := token.Claims.(*models.TokenClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("%w: invalid token", pkg.ErrUnauthorized)
	}

	return claims.UserID, nil
}
