// Command storefront manages multi-tenant business records from the shell.
package main

import (
	"os"

	"github.com/mesh-intelligence/storefront/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
