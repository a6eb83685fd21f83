package main

import (
	"os"

	"github.com/scribesearch/talent-scout/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
