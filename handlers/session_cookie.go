// Package handlers, HTTP request/response işlemlerini yönetir.
//
// Handler'ın görevi çok basit ve "ince" (thin) olmalı:
// 1. Request body'yi parse et (JSON → struct)
// 2. Service katmanını çağır
// 3. Sonucu HTTP response olarak döndür
//
// Handler ASLA iş mantığı (business logic) içermez.
// Handler ASLA doğrudan DB'ye erişmez.
// Tüm akıl service'de, handler sadece köprü.
package handlers

import "net/http"

// SessionCookieName, session token'ı taşıyan cookie'nin adı.
const SessionCookieName = "jwt"

// SessionCookie, token'ın HTTP cookie yaşam döngüsünü yönetir.
//
// Token client'a SADECE bu cookie ile gider — response body'de asla
// yer almaz. Cookie attribute'ları bilinçlidir:
//   - HttpOnly: sayfa script'leri okuyamaz (XSS ile token çalma engellenir)
//   - SameSite=Strict: cross-site istekler cookie'yi taşımaz (CSRF koruması)
//   - Secure: şifreli transport'ta zorunlu (production)
type SessionCookie struct {
	maxAge int  // saniye — token expiry horizon'u ile aynı
	secure bool // production'da true (HTTPS)
}

// NewSessionCookie, constructor.
func NewSessionCookie(maxAge int, secure bool) *SessionCookie {
	return &SessionCookie{
		maxAge: maxAge,
		secure: secure,
	}
}

// Attach, token'ı session cookie olarak response'a yazar.
func (c *SessionCookie) Attach(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   c.maxAge,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// Clear, cookie'yi boş değer ve sıfır ömür ile ezer — client anında düşürür.
//
// Logout mekanizmasının TAMAMI budur; server-side state değişmez.
// Logout öncesi ele geçirilmiş bir raw token, orijinal expiry'sine
// kadar kriptografik olarak geçerli kalır — revocation list yoktur,
// bu bilinen ve kabul edilen bir sınırlamadır.
func (c *SessionCookie) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1, // net/http, MaxAge<0 için "Max-Age=0" yazar
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteStrictMode,
	})
}
