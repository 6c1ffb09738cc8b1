package main

import (
	"os"

	"github.com/estatement-dev/estatement/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
