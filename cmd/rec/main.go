package main

import (
	"os"

	"github.com/cwbudde/go-rec/cmd/rec/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
