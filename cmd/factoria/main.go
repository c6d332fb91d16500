package main

import (
	"os"

	"github.com/swm-sink/la-factoria-content-factory-sub010/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
