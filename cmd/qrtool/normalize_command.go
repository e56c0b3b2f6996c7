package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"qrfolio-backend/internal/videolink"
)

func newNormalizeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "normalize <video-url>",
		Short: "Print the embeddable form of a video link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			embed, err := videolink.Normalize(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), embed)
			return nil
		},
	}
}
