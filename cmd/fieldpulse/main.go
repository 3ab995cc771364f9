package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fieldpulse/internal/interfaces/cli/migrate"
	"fieldpulse/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fieldpulse",
		Short: "FieldPulse field-force presence backend",
		Long:  `FieldPulse tracks attendance punch sessions and live device locations for field teams.`,
	}

	rootCmd.AddCommand(server.NewCommand())
	rootCmd.AddCommand(migrate.NewCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
