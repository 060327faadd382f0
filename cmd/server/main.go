// Command server runs the prompt vault HTTP API.
//
// Configuration is read from CONFIG_PATH (default ./config.yaml) and the
// environment.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/heartmarshall/prompt-vault/internal/app"
)

func main() {
	if err := app.Run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "prompt vault: %v\n", err)
		os.Exit(1)
	}
}
