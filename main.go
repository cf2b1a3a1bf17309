package main

import (
	"os"

	"github.com/BerlinP/chutes-helper/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
