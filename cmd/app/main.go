package main

import (
	"os"

	"github.com/Conte777/mediabot/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
