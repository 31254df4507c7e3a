// Command georisk is the GeoRisk-Intelligence entry point: the worker daemon
// and the inspection subcommands.
package main

import (
	"os"

	"github.com/turtacn/GeoRisk-Intelligence/internal/interfaces/cli"
)

func main() {
	os.Exit(cli.Execute())
}
