package main

import (
	"os"

	memconcmder "github.com/LogicalGuy77/memcon/cmd/memcon"
)

func main() {
	cmd := memconcmder.NewMemconCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
