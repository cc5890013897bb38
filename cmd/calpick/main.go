package main

import (
	"os"

	"github.com/MikeBiancalana/calpick/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
