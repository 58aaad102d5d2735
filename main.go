// Command memberchat runs the messaging backend: user registration and
// login with opaque bearer tokens, profile retrieval, and a shared
// message feed over HTTP backed by PostgreSQL.
//
// @title Memberchat API
// @version 1.0
// @description Multi-user messaging backend with opaque bearer-token authentication.
// @BasePath /
// @securityDefinitions.apikey TokenAuth
// @in header
// @name Authorization
// @description Type 'Token YOUR_TOKEN' to authorize
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/user/memberchat/auth"
	"github.com/user/memberchat/config"
	"github.com/user/memberchat/db"
	_ "github.com/user/memberchat/docs" // swagger spec registration
	"github.com/user/memberchat/feed"
	"github.com/user/memberchat/messages"
	"github.com/user/memberchat/users"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading it: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pool, err := db.NewPool(cfg.DB)
	if err != nil {
		log.Fatalf("Failed to create database pool: %v", err)
	}
	defer pool.Close()

	if err := db.RunMigrations(cfg.DB, "./migrations"); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	broadcaster := feed.NewBroadcaster()

	authService := auth.NewAuthService(pool, *cfg.Auth)
	authHandlers := auth.NewHandlers(authService)

	userService := users.NewUserService(pool)
	userHandlers := users.NewHandlers(userService)

	messageService := messages.NewMessageService(pool)
	messageHandlers := messages.NewHandlers(messageService, broadcaster, *cfg.Feed)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Get("/hello", handleHello)
	r.Post("/register", authHandlers.HandleRegister())
	r.Post("/login", authHandlers.HandleLogin())

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireToken(authService))
		r.Post("/logout", authHandlers.HandleLogout())
		r.Get("/profile", userHandlers.HandleGetProfile())
	})

	r.Route("/messages", func(r chi.Router) {
		r.Use(auth.RequireToken(authService))
		messageHandlers.RegisterRoutes(r)
	})

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	srv := &http.Server{
		Addr:        addr,
		Handler:     r,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
		// No WriteTimeout: /messages/stream holds its response open for
		// the lifetime of the client connection.
	}

	go func() {
		log.Printf("Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Disconnect feed subscribers first so their open responses finish
	// and Shutdown is not held up by idle streams.
	broadcaster.Close()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped gracefully")
}

// handleHello godoc
// @Summary Liveness greeting
// @Tags misc
// @Produce json
// @Success 200 {object} auth.MessageResponse
// @Router /hello [get]
func handleHello(w http.ResponseWriter, r *http.Request) {
	auth.WriteJSON(w, http.StatusOK, auth.MessageResponse{Message: "Hello from memberchat"})
}
