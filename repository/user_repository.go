// Package repository, veritabanı erişim katmanını tanımlar.
//
// Repository Pattern nedir?
// Veritabanı işlemlerini (CRUD) soyutlayan bir tasarım kalıbıdır.
// Service katmanı doğrudan SQL yazmaz — repository interface'i üzerinden çalışır.
//
// Neden interface?
// 1. Test: Fake repository yazarak DB olmadan test edebilirsin
// 2. Esneklik: SQLite'tan PostgreSQL'e geçmek istersen sadece yeni implementasyon yazarsın
// 3. SOLID (Dependency Inversion): Service, concrete struct'a değil interface'e bağımlı
//
// Go'da interface "implicit"tır — bir struct, interface'deki tüm method'ları
// implement ediyorsa otomatik olarak o interface'i sağlar.
package repository

import (
	"context"

	"github.com/akinalp/loqui/models"
)

// UserRepository, kullanıcı veritabanı işlemleri için interface.
//
// Email uniqueness bu katmanın ALTINDA (store'un UNIQUE index'i ile)
// garanti edilir. Create, ihlali pkg.ErrAlreadyExists olarak döner —
// service katmanı "önce lookup yap" gibi check-then-act race'ine girmez.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// UpdateProfilePic, hesabın profil resmi URL'ini günceller ve
	// güncel kaydı döner. Auth core'un mutasyona uğrattığı tek
	// profil alanı budur.
	UpdateProfilePic(ctx context.Context, userID string, url string) (*models.User, error)
}
