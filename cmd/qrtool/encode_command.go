package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"qrfolio-backend/internal/qr"
)

func newEncodeCommand() *cobra.Command {
	var (
		output string
		level  string
		size   int
	)
	cmd := &cobra.Command{
		Use:   "encode <url>",
		Short: "Encode a URL as a QR code PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := qr.NewEncoder(level, size).Encode(args[0])
			if err != nil {
				return err
			}
			if output == "" {
				fmt.Fprintln(cmd.OutOrStdout(), payload.DataURL())
				return nil
			}
			if err := os.WriteFile(output, payload.PNG, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d bytes)\n", output, len(payload.PNG))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "PNG file to write; prints a data URL when empty")
	cmd.Flags().StringVar(&level, "level", "M", "Error correction level (L, M, Q, H)")
	cmd.Flags().IntVar(&size, "size", qr.DefaultSize, "Image size in pixels")
	return cmd
}
