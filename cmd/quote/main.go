// Package main is the entry point for the quote CLI.
package main

import (
	"os"

	"cleanbook/cmd/quote/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
