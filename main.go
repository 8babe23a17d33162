// Package main provides the entry point for the boardscan command.
package main

import (
	"log"

	"boardscan/internal/cli"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	cli.Execute()
}
