package main

import (
	"os"

	"github.com/sharespace/backend/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
