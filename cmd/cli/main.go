package main

import (
	"os"

	"github.com/campus-dev/campus/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
