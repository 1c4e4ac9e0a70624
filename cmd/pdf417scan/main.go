package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "pdf417scan",
		Short:   "Decode a pre-binarized PDF417 symbol from a bit-grid scan file",
		Version: fmt.Sprintf("%s (commit: %s)", version, commit),
	}
	rootCmd.AddCommand(newDecodeCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
