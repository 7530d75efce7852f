package main

import (
	"os"

	"github.com/bbq191/mynsis-go/cmd/mynsis/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
