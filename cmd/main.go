package main

import (
	"os"

	"github.com/soundprediction/globescope/cmd/globescope"
)

func main() {
	if err := globescope.Execute(); err != nil {
		os.Exit(1)
	}
}
