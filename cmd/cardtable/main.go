package main

import (
	"os"

	"github.com/randomtoy/cardtable-go/cmd/cardtable/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
