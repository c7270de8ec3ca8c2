package main

import (
	"os"

	"github.com/pfrederiksen/closest-arcade/internal/cli"
)

var version = "dev"

func main() {
	cli.Version = version
	os.Exit(cli.Execute())
}
