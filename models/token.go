package models

import "github.com/golang-jwt/jwt/v5"

// TokenClaims, JWT token'ın içindeki veriler (payload).
//
// JWT (JSON Web Token) nedir?
// Kullanıcı kimliğini doğrulamak için kullanılan, imzalanmış bir token.
// 3 parçadan oluşur: header.payload.signature
//
// Payload'da kullanıcı ID'si ve token'ın expire süresi bulunur.
// Server her request'te imzayı doğrular — payload'ı sadece imza
// anahtarını bilen taraf üretebilir, ama İÇERİĞİ herkes okuyabilir.
// Bu yüzden claims'e asla gizli veri (şifre hash'i vb.) KONMAZ.
//
// Bu struct models paketinde tanımlanır çünkü hem services hem
// middleware tarafından kullanılır — circular dependency'yi önler.
type TokenClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}
