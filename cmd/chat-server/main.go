package main

import (
	"context"
	"log"

	"github.com/alicebob/miniredis"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/vconnect/event-chat/pkg/chat"
	"github.com/vconnect/event-chat/pkg/server"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf(".env not found, using environment: %s", err)
	}

	cfg := server.LoadConfig()

	// Without a configured redis, run an embedded one for development.
	addr := cfg.RedisAddr
	if addr == "" {
		mr, err := miniredis.Run()
		if err != nil {
			log.Fatalln("error creating embedded redis: ", err)
		}
		addr = mr.Addr()
		log.Printf("using embedded redis at %s", addr)
	}

	redisClient := redis.NewClient(&redis.Options{Addr: addr})
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		log.Fatalln("cannot connect to redis: ", err)
	}

	srv := server.NewServer(cfg, redisClient)

	if cfg.RedisAddr == "" {
		seedFixture(srv)
	}

	if err := srv.Run(); err != nil {
		log.Fatalln("server exited with error: ", err)
	}
}

// seedFixture loads a couple of events and a ready-made token so the
// client has something to chat against out of the box.
func seedFixture(srv *server.Server) {
	ctx := context.Background()
	storage := srv.Handler.Storage

	for _, title := range []string{"Beach Cleanup", "Food Drive", "Tree Planting"} {
		event := chat.Event{ID: uuid.NewString(), Title: title}
		if err := storage.AddEvent(ctx, event); err != nil {
			log.Printf("could not seed event %q: %s", title, err)
		}
	}

	token, err := srv.Handler.Tokens.Generate(server.Claims{
		UserID:   "dev-volunteer",
		UserType: "volunteer",
		Name:     "Dev Volunteer",
	})
	if err != nil {
		log.Printf("could not mint dev token: %s", err)
		return
	}
	log.Printf("dev token (export as VCONNECT_TOKEN): %s", token)
}
