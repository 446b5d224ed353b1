// Package main is the entry point for the paralog CLI.
package main

import (
	"os"

	"github.com/AndreyAkinshin/paralog/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
