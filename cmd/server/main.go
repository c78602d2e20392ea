package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/accounts/internal/server"
	"github.com/dmitrijs2005/accounts/internal/server/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := server.NewApp(ctx, cfg, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "accounts server: %v\n", err)
		os.Exit(1)
	}

	app.Run(ctx)
}
