package main

import (
	"os"

	"github.com/olibartfast/vision-infra/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
