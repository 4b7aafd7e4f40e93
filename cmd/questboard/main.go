package main

import "github.com/obma24/Quest-Board/internal/cli"

// version is set via -ldflags "-X main.version=..." at build time.
var version = "0.1.0-dev"

func main() {
	cli.Execute(version)
}
