// ABOUTME: Entry point for the amora CLI
// ABOUTME: Command-line tool for purchase simulation and session management

package main

import (
	"fmt"
	"os"

	"github.com/fespschulte/amora-simulator/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
