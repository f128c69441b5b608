package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/bluelinehq/police-records-api/api/handlers"
	"github.com/bluelinehq/police-records-api/api/scheduler"
	"github.com/bluelinehq/police-records-api/config"
)

func main() {
	_ = godotenv.Load()

	a := handlers.App{}
	a.Config = *config.New()

	ctx := context.Background()
	if err := a.Initialize(ctx); err != nil {
		log.Fatal(err)
	}
	defer a.Shutdown(ctx) //nolint:errcheck

	s := scheduler.NewScheduler(a.Store.ResetTokens, a.Store.Vehicles)
	s.Start()
	defer s.Stop()

	port := a.Config.Port
	if port == "" {
		port = "8080"
	}
	zap.S().Infow("police-records-api is up and running",
		"port", port,
		"url", a.Config.BaseURL,
	)
	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%v", port), a.Router))
}
