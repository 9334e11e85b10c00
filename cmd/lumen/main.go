// Command lumen browses an encyclopedia catalog in the terminal.
package main

import (
	"os"

	"github.com/lumenpedia/lumen/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
