// Command chunkmap drives a region file through the decode, assemble,
// scan, and persist pipeline and writes one tile file per region.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "chunkmap",
		Short: "Extract top-layer tiles from a Minecraft Java-edition world",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(configPath)
			if err != nil {
				return err
			}
			log := newLogger(cfg)
			return run(cfg, log)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "chunkmap.toml", "path to the TOML config file")
	return cmd
}
