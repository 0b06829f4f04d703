package main

import (
	"os"

	"urllistsync/cmd/urllistsync/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(commands.ExitCode(err))
	}
}
