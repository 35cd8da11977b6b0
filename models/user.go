// Package models, uygulamanın domain modellerini (veri yapıları) tanımlar.
//
// Model nedir?
// Veritabanındaki bir tablonun Go karşılığıdır.
// Aynı zamanda API'den gelen/giden verilerin şeklini de belirler.
//
// Go'da `json:"email"` gibi tag'ler, struct field'larının JSON'a
// nasıl serialize/deserialize edileceğini belirler.
package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// User, bir kullanıcı hesabını temsil eder.
//
// PasswordHash `json:"-"` taşır: bu field HİÇBİR API response'una
// serialize edilmez. Client'a dönen her User değeri otomatik olarak
// "public projection"dır — id, isim, email, profil resmi.
type User struct {
	ID            string    `json:"id"`
	FullName      string    `json:"full_name"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"` // json:"-" → API response'a DAHİL ETME (güvenlik!)
	ProfilePicURL *string   `json:"profile_pic_url"` // *string = nullable — henüz resim yoksa nil
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// emailRegex, basit email format kontrolü.
// RFC 5322'nin tamamını kapsamaz — amaç bariz hatalı girdiyi elemek.
// Gerçek doğrulama zaten email'in kullanılabilmesiyle olur.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// SignupRequest, kayıt olurken frontend'den gelen veri.
// PasswordHash yerine Password alırız — hash'leme service katmanında yapılır.
type SignupRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate, SignupRequest'in geçerli olup olmadığını kontrol eder.
// Validation kuralları:
//   - Tüm alanlar zorunlu
//   - Email: geçerli format
//   - Password: minimum 6 karakter
//
// Minimum şifre kontrolü store lookup'ından ÖNCE çalışır —
// bu bir input validation'dır, enumeration leak'i değildir.
func (r *SignupRequest) Validate() error {
	r.FullName = strings.TrimSpace(r.FullName)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))

	if r.FullName == "" || r.Email == "" || r.Password == "" {
		return fmt.Errorf("all fields are required")
	}

	if !emailRegex.MatchString(r.Email) {
		return fmt.Errorf("invalid email format")
	}

	if utf8.RuneCountInString(r.Password) < 6 {
		return fmt.Errorf("password must be at least 6 characters")
	}

	return nil
}

// LoginRequest, giriş yaparken frontend'den gelen veri.
//
// Burada bilinçli olarak format validation YOKTUR: boş ya da bozuk
// email zaten store'da bulunamaz ve generic "invalid credentials"
// döner. Login'de ayrıntılı hata mesajı vermek enumeration riskidir.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Normalize, email'i lookup öncesi signup ile aynı forma getirir.
func (r *LoginRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

// UpdateProfileRequest, profil resmi güncellemesi için.
// ProfilePic, client'ın gönderdiği base64 data URL'dir
// (ör: "data:image/png;base64,iVBOR...").
type UpdateProfileRequest struct {
	ProfilePic string `json:"profile_pic"`
}
