package config_test

import (
	"context"
	"fmt"
	"log"

	"github.com/sagarc03/endpoint/config"
)

func ExampleLoad() {
	// Load with defaults only (no config file)
	cfg, err := config.Load(nil, nil)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Port: %d, Key: %s\n", cfg.Server.Port, cfg.Auth.DefaultKeyID)
	// Output: Port: 8080, Key: default
}

func ExampleWithContext() {
	cfg, _ := config.Load(nil, nil)

	ctx := config.WithContext(context.Background(), cfg)

	// Retrieve later (e.g., in a subcommand)
	retrieved, err := config.FromContext(ctx)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Retrieved log level: %s\n", retrieved.Log.Level)
	// Output: Retrieved log level: info
}
