package main

import (
	"os"

	"github.com/emilythestrangee/qanda/backend/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
