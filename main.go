package main

import (
	"os"

	"github.com/altbier/mediatrack/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
