package main

import (
	"os"

	"github.com/ecarion/voltroute/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
