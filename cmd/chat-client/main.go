package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/vconnect/event-chat/pkg/client"
	"github.com/vconnect/event-chat/pkg/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf(".env not found, using environment: %s", err)
	}

	cfg := client.Config{
		APIBaseURL:  utils.GetEnv("VCONNECT_API", "http://localhost:9000"),
		Token:       os.Getenv("VCONNECT_TOKEN"),
		VolunteerID: os.Getenv("VCONNECT_VOLUNTEER_ID"),
		WSEndpoint:  os.Getenv("VCONNECT_WS"),
	}

	app, err := client.NewApp(cfg)
	if err != nil {
		log.Fatalln("could not start client: ", err)
	}
	if err := app.Run(); err != nil {
		log.Fatalln("client exited with error: ", err)
	}
}
