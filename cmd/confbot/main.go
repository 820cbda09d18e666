package main

import (
	"os"

	"github.com/bnema/confbot/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
