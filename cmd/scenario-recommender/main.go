// Command scenario-recommender recommends songs for listening scenarios from
// lyric emotion profiles. It serves a web UI and JSON API, and offers CLI
// commands for one-off recommendations, mood clustering and dataset import.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	return newRootCmd().Execute()
}
