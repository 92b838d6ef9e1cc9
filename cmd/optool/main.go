package main

import (
	"os"

	"github.com/markwhelan/optool/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
