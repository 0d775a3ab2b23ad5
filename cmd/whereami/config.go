package main

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/chess10kp/whereami/internal/config"
)

func newConfigCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and validate the configuration",
	}
	cmd.AddCommand(newConfigValidateCmd(opts))
	cmd.AddCommand(newConfigDefaultCmd())
	return cmd
}

func newConfigValidateCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [path]",
		Short: "Check a config file",
		Long:  `Load the config file (the --config path unless one is given) and report the first problem found.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.configPath
			if len(args) == 1 {
				path = args[0]
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Validating config: %s\n", path)
			if err := config.ValidateConfig(path); err != nil {
				return err
			}
			fmt.Fprintln(out, "Config is valid")
			return nil
		},
	}
}

func newConfigDefaultCmd() *cobra.Command {
	var write string

	cmd := &cobra.Command{
		Use:   "default",
		Short: "Print the default configuration",
		Example: `  # Start a config file from the defaults
  whereami config default --write ~/.config/whereami/config.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if write != "" {
				if err := config.SaveConfig(config.Default(), write); err != nil {
					return fmt.Errorf("failed to write config: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", write)
				return nil
			}

			data, err := toml.Marshal(config.Default())
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVarP(&write, "write", "w", "", "write to this path instead of stdout")
	return cmd
}
