package main

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	cli "github.com/devblox/relay/cmd/devblox"
	"github.com/devblox/relay/internal/config"
)

//go:embed etc/devblox.yaml
var embeddedConfig []byte

func main() {
	// Load .env file if present (ignore error if not found)
	_ = godotenv.Load()

	// Load embedded config (defaults, expanded against the environment)
	c, err := config.LoadFromBytes(embeddedConfig)
	if err != nil {
		fmt.Printf("Failed to load embedded config: %v\n", err)
		os.Exit(1)
	}

	if err := cli.SetupRootCmd(&c).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
