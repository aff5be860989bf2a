package main

import (
	"os"

	"filestats/cmd/statsctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
