package server

import (
	"log"
	"net/http"

	"github.com/go-redis/redis/v8"
	"github.com/rs/cors"
)

// Server ties the handler, storage and HTTP listener together.
type Server struct {
	Config  Config
	Handler *Handler
}

func NewServer(cfg Config, redisClient *redis.Client) *Server {
	storage := NewStorage(redisClient)
	tokens := NewTokenManager(cfg.TokenSecret)
	return &Server{
		Config:  cfg,
		Handler: NewHandler(storage, tokens, cfg),
	}
}

func (s *Server) Run() error {
	go s.Handler.HandleBroadcast()

	router := s.Handler.SetupRouter()
	c := cors.New(cors.Options{
		AllowedOrigins:   s.Config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		MaxAge:           300,
		AllowCredentials: true,
	})

	log.Printf("chat server listening on :%s", s.Config.Port)
	return http.ListenAndServe(":"+s.Config.Port, c.Handler(router))
}
