package main

import (
	"log"

	"github.com/ferreteria-nea/cart-widget/internal/app"
	"github.com/ferreteria-nea/cart-widget/internal/app/config"
)

func main() {
	cfg := config.MustLoad()

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	application.Run()
}
