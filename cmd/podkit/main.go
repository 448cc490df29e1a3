package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/podkit/cmd/podkit/commands"
	"github.com/arthur-debert/podkit/pkg/output"
)

func main() {
	rootCmd := commands.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		styles := output.NewStyles(os.Stderr)
		fmt.Fprintln(os.Stderr, styles.Error.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}
