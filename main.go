package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/Yulian302/findit-gateway/docs"
	_ "github.com/joho/godotenv/autoload"
)

// @title FindIt API
// @version 1.0
// @description FindIt gateway: object folders, detected matches and registration
// @swagger 2.0

// @license.name Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /

// @externalDocs.description  OpenAPI
// @externalDocs.url          https://swagger.io/resources/open-api/
func main() {
	app, err := SetupApp()
	if err != nil {
		log.Fatalf("failed to initialize app: %v", err)
	}

	router := BuildRouter(app)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	defer app.Shutdown(context.Background())

	if err := app.Run(ctx, router); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
