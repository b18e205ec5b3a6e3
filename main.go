package main

import (
	"os"

	"github.com/go-i2p/normtime/lib/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
