// Package main, loqui auth server'ının giriş noktasıdır.
//
// Bu dosyanın görevi — Dependency Injection "wire-up":
//  1. Config'i yükle
//  2. Database'i başlat
//  3. Upload dizinini oluştur
//  4. Repository'leri oluştur (DB bağlantısı ile)
//  5. Service'leri oluştur (repository + token issuer + image store)
//  6. Handler'ları ve middleware'ı oluştur
//  7. HTTP router'ı kur, route'ları bağla
//  8. CORS yapılandır
//  9. HTTP Server'ı başlat
// 10. Graceful shutdown
//
// Global değişken YOK — her şey bu fonksiyonda oluşturulup birbirine bağlanıyor.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/akinalp/loqui/config"
	"github.com/akinalp/loqui/database"
	"github.com/akinalp/loqui/handlers"
	"github.com/akinalp/loqui/middleware"
	"github.com/akinalp/loqui/repository"
	"github.com/akinalp/loqui/services"
	"github.com/rs/cors"
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("[main] loqui auth server starting...")

	// ─── 1. Config ───
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[main] failed to load config: %v", err)
	}
	log.Printf("[main] config loaded (port=%d env=%s)", cfg.Server.Port, cfg.Server.Env)

	// ─── 2. Database ───
	db, err := database.New(cfg.Database.Path, database.Migrations())
	if err != nil {
		log.Fatalf("[main] failed to initialize database: %v", err)
	}
	defer db.Close()

	// ─── 3. Upload Dizini ───
	if err := os.MkdirAll(cfg.Upload.Dir, 0755); err != nil {
		log.Fatalf("[main] failed to create upload directory: %v", err)
	}

	// ─── 4. Repository Layer ───
	userRepo := repository.NewSQLiteUserRepo(db.Conn)

	// ─── 5. Service Layer ───
	// TokenIssuer imza anahtarını BURADA, bir kez alır — anahtar başka
	// hiçbir katmana sızmaz, log'lanmaz, response'a yazılmaz.
	tokenIssuer := services.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.ExpiryDays)
	imageStore := services.NewLocalImageStore(cfg.Upload.Dir, cfg.Upload.MaxSize)
	authService := services.NewAuthService(userRepo, imageStore, tokenIssuer)

	// ─── 6. Handler + Middleware ───
	// Cookie ömrü token expiry horizon'u ile hizalı; Secure flag
	// sadece şifreli transport'ta (production) aktif.
	sessionCookie := handlers.NewSessionCookie(
		int(tokenIssuer.Expiry().Seconds()),
		cfg.Server.IsProduction(),
	)
	authHandler := handlers.NewAuthHandler(authService, sessionCookie)
	authMiddleware := middleware.NewAuthMiddleware(tokenIssuer, userRepo)

	// ─── 7. HTTP Router ───
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"status":"ok","service":"loqui"}`)
	})

	// Auth — public endpoint'ler (session gerekmez)
	mux.HandleFunc("POST /api/auth/signup", authHandler.Signup)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/auth/logout", authHandler.Logout)

	// Protected endpoint'ler — authMiddleware.Require() sarar
	mux.Handle("PUT /api/auth/update-profile", authMiddleware.Require(
		http.HandlerFunc(authHandler.UpdateProfile)))
	mux.Handle("GET /api/auth/check", authMiddleware.Require(
		http.HandlerFunc(authHandler.Check)))

	// Static file serving — yüklenen profil resimlerine erişim
	//
	// http.StripPrefix: URL'den "/api/uploads/" kısmını çıkarır.
	// http.FileServer: Kalan path'i upload dizininde dosya olarak arar.
	// Güvenlik: sadece düz dosya isimleri kabul edilir, subdirectory
	// traversal'ı engellenir.
	uploadsHandler := http.StripPrefix("/api/uploads/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "/") || strings.Contains(r.URL.Path, "\\") {
			http.NotFound(w, r)
			return
		}
		http.FileServer(http.Dir(cfg.Upload.Dir)).ServeHTTP(w, r)
	}))
	mux.Handle("GET /api/uploads/", uploadsHandler)

	// ─── 8. CORS ───
	// AllowCredentials: true ZORUNLU — session cookie'nin cross-origin
	// frontend'den taşınabilmesi için. Bu flag açıkken wildcard origin
	// kullanılamaz, origin listesi explicit olmalı.
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	})

	handler := corsHandler.Handler(mux)

	// ─── 9. HTTP Server ───
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// ─── 10. Graceful Shutdown ───
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("[main] server listening on %s", cfg.Server.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[main] server error: %v", err)
		}
	}()

	<-done
	log.Println("[main] shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("[main] forced shutdown: %v", err)
	}

	log.Println("[main] server stopped gracefully")
}
