// Command sitectl manages site content through the admin API.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"

	"github.com/northwind-labs/sitecms/internal/client"
	"github.com/northwind-labs/sitecms/pkg/debug"
)

func main() {
	_ = godotenv.Load()
	debug.Reinitialize()

	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

// run executes one command line. Store failures were already shown as toasts, every
// other error is printed here.
func run(args []string, out, errOut io.Writer) error {
	root := newRootCmd(out, errOut)
	root.SetArgs(args)
	err := root.Execute()
	var re *client.RequestError
	if err != nil && !errors.As(err, &re) {
		fmt.Fprintf(errOut, "Error: %v\n", err)
	}
	return err
}
