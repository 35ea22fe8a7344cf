// roots3 is a command-line tool for the Root S3-compatible storage gateway.
// We structure it as a single executable with subcommands, as is common for
// cloud utilities; all command wiring lives in the cmd package.
package main

import (
	"github.com/rootstorage/roots3/cmd"
)

func main() {
	cmd.Execute()
}
