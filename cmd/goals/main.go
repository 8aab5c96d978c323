package main

import (
	"os"

	"github.com/fyzahq/fyza/cmd/goals/cmd"
)

func main() {
	if err := cmd.RootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
