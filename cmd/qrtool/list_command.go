package main

import (
	"fmt"
	"path"

	"github.com/spf13/cobra"

	"qrfolio-backend/internal/publish"
	"qrfolio-backend/internal/shared/storage/object/local"
)

func newListCommand() *cobra.Command {
	var (
		dir  string
		base string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List published microsites in a local content directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			infos, err := local.New(dir).List(cmd.Context(), "")
			if err != nil {
				return err
			}
			const stampLayout = "2006-01-02 15:04"
			rows := make([][]string, 0, len(infos))
			for _, info := range infos {
				if path.Dir(info.Key) != "." || !publish.IsMicrositeName(info.Key) {
					continue
				}
				link := info.Key
				if base != "" {
					link = publish.JoinURL(base, info.Key)
				}
				rows = append(rows, []string{
					info.Key,
					humanBytes(info.SizeBytes),
					info.UpdatedAt.Local().Format(stampLayout),
					link,
				})
			}
			out := cmd.OutOrStdout()
			if len(rows) == 0 {
				fmt.Fprintln(out, "Microsites: none")
				return nil
			}
			fmt.Fprintln(out, renderTable(
				[]string{"File", "Size", "Updated", "Link"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignLeft, alignLeft},
			))
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "./public", "Local content store directory")
	cmd.Flags().StringVar(&base, "base", "", "Public base URL used to print links")
	return cmd
}

func humanBytes(v int64) string {
	const unit = 1024
	if v < unit {
		return fmt.Sprintf("%d B", v)
	}
	div := int64(unit)
	exp := 0
	for n := v / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	value := float64(v) / float64(div)
	return fmt.Sprintf("%.1f %ciB", value, "KMGTPEZY"[exp])
}
