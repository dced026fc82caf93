// Command shji is the Jane language interpreter.
package main

import (
	"os"

	"github.com/janelang/shji/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
