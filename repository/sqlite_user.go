package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/akinalp/loqui/database"
	"github.com/akinalp/loqui/models"
	"github.com/akinalp/loqui/pkg"
)

// sqliteUserRepo, UserRepository interface'inin SQLite implementasyonu.
//
// Go'da struct field'ları küçük harfle başlarsa (db) → private.
// Repository'nin DB bağlantısı dışarıya açık olmamalı — bu yüzden küçük harf.
type sqliteUserRepo struct {
	db database.TxQuerier
}

// NewSQLiteUserRepo, constructor fonksiyonu.
// UserRepository interface'i döner (concrete struct değil) — Dependency Inversion.
func NewSQLiteUserRepo(db database.TxQuerier) UserRepository {
	return &sqliteUserRepo{db: db}
}

func (r *sqliteUserRepo) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, full_name, email, password_hash, profile_pic_url)
		VALUES (?, ?, ?, ?, ?)
		RETURNING created_at, updated_at`

	// QueryRowContext: tek bir satır dönen sorgu çalıştırır.
	// Scan: sorgu sonucunu Go değişkenlerine aktarır (pointer ile).
	err := r.db.QueryRowContext(ctx, query,
		user.ID,
		user.FullName,
		user.Email,
		user.PasswordHash,
		user.ProfilePicURL,
	).Scan(&user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		// UNIQUE constraint violation → bu email ile hesap zaten var.
		// Store seviyesindeki constraint tek güvenilir conflict sinyalidir —
		// eşzamanlı iki signup'tan yalnızca biri buradan geçer.
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: user already exists with this email", pkg.ErrAlreadyExists)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *sqliteUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `
		SELECT id, full_name, email, password_hash, profile_pic_url, created_at, updated_at
		FROM users WHERE id = ?`

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.FullName, &user.Email,
		&user.PasswordHash, &user.ProfilePicURL, &user.CreatedAt, &user.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

func (r *sqliteUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, full_name, email, password_hash, profile_pic_url, created_at, updated_at
		FROM users WHERE email = ?`

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID, &user.FullName, &user.Email,
		&user.PasswordHash, &user.ProfilePicURL, &user.CreatedAt, &user.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

// UpdateProfilePic, profil resmi URL'ini yazar ve güncel satırı döner.
func (r *sqliteUserRepo) UpdateProfilePic(ctx context.Context, userID string, url string) (*models.User, error) {
	query := `
		UPDATE users SET profile_pic_url = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
		RETURNING id, full_name, email, password_hash, profile_pic_url, created_at, updated_at`

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, url, userID).Scan(
		&user.ID, &user.FullName, &user.Email,
		&user.PasswordHash, &user.ProfilePicURL, &user.CreatedAt, &user.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update profile pic: %w", err)
	}

	return user, nil
}

// isUniqueViolation, SQLite UNIQUE constraint hatasını tanır.
// modernc.org/sqlite driver'ı typed error export etmez —
// mesaj içeriğine bakmak pratikte kullanılan yöntemdir.
func isUniqueViolation(err error) bool {
	return err != nil && !errors.Is(err, sql.ErrNoRows) &&
		strings.Contains(err.Error(), "UNIQUE constraint failed")
}
