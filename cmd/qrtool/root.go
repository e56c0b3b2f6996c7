package main

import "github.com/spf13/cobra"

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "qrtool",
		Short:         "Inspect published microsites and their QR codes",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.AddCommand(newEncodeCommand())
	rootCmd.AddCommand(newNormalizeCommand())
	rootCmd.AddCommand(newListCommand())

	return rootCmd
}
