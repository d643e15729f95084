package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/pavlem/postflow/internal/cache"
	"github.com/pavlem/postflow/internal/config"
	"github.com/pavlem/postflow/internal/database"
	postgresrepo "github.com/pavlem/postflow/internal/repository/postgres"
	"github.com/pavlem/postflow/internal/service"
	"github.com/pavlem/postflow/internal/stream"
	"github.com/pavlem/postflow/internal/transport/http/handlers"
	"github.com/pavlem/postflow/internal/transport/http/middleware"
)

func main() {
	cfg := config.Load()

	// Database
	pool, err := database.Connect(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()
	log.Println("Connected to database")

	// Redis (cache + stream)
	redisClient, err := cache.Connect(cfg.RedisURL)
	if err != nil {
		log.Fatal(err)
	}
	defer redisClient.Close()
	log.Println("Connected to redis")

	// Repositories
	userRepo := postgresrepo.NewUserRepo(pool)
	postRepo := postgresrepo.NewPostRepo(pool)

	// Services
	authService := service.NewAuthService(cfg.JWTSecret)
	userService := service.NewUserService(userRepo, cache.NewRedisCache(redisClient))
	postService := service.NewPostService(postRepo)
	postService.SetPublisher(stream.NewProducer(redisClient))

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	postHandler := handlers.NewPostHandler(postService, userService)

	// Auth middleware
	auth := middleware.Auth(cfg.JWTSecret)

	// Routes
	mux := http.NewServeMux()

	// Public
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ok"}`))
	})
	mux.HandleFunc("POST /login", authHandler.Login)
	mux.HandleFunc("GET /users", userHandler.List)
	mux.HandleFunc("POST /users", userHandler.Create)
	mux.HandleFunc("PUT /users/{id}", userHandler.Update)
	mux.HandleFunc("GET /posts", postHandler.List)
	mux.HandleFunc("GET /posts/{userId}", postHandler.ListByUser)

	// Protected - Posts
	mux.Handle("POST /posts", auth(http.HandlerFunc(postHandler.Create)))
	mux.Handle("DELETE /posts/{id}", auth(http.HandlerFunc(postHandler.Delete)))
	mux.Handle("PUT /posts/{id}", auth(http.HandlerFunc(postHandler.Update)))

	// Start server with CORS
	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	log.Printf("Starting server on %s", addr)
	log.Fatal(http.ListenAndServe(addr, middleware.CORS(mux)))
}
