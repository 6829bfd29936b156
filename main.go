package main

import (
	"os"

	"github.com/lanewaylabs/bizmatch/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
