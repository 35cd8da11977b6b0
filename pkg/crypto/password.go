// Package crypto, şifreleme ile ilgili yardımcıları barındırır.
// Bu dosya password hash'leme işlemlerini içerir.
//
// Neden bcrypt?
// SHA-256 gibi hızlı hash'ler şifre için UYGUN DEĞİLDİR — saniyede
// milyarlarca deneme yapılabilir. bcrypt kasıtlı olarak yavaştır
// (adaptive work factor) ve her hash'e otomatik random salt ekler.
// Aynı şifre iki kez hash'lendiğinde iki FARKLI çıktı üretir.
package crypto

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost, bcrypt'in work factor'ü. Her +1 süreyi ikiye katlar.
// 12, modern donanımda ~250ms — brute-force'u caydırır ama
// login latency'sini kabul edilebilir tutar.
const bcryptCost = 12

// HashPassword, plaintext şifreden saklanabilir bir hash üretir.
// Çıktı salt'ı da içerir — ayrı bir salt kolonu gerekmez.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword, plaintext şifreyi hash ile karşılaştırır.
//
// bcrypt.CompareHashAndPassword constant-time çalışır —
// kendi byte karşılaştırmamızı YAZMAYIZ, timing attack açığı olur.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
