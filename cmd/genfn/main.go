package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/thumbkeeper/internal/genfn"
	"github.com/dmitrijs2005/thumbkeeper/internal/genfn/config"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}

	app, err := genfn.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		os.Exit(1)
	}
}
