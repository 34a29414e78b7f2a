// Package main provides the entry point for the applog CLI.
package main

import (
	"fmt"
	"os"

	"github.com/Aman-CERP/applog/cmd/applog/cmd"
	"github.com/Aman-CERP/applog/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errors.FormatForCLI(err))
		os.Exit(1)
	}
}
