package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/aretw0/valueprop/pkg/compose"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the saved answers as a plain-text summary",
	Long: `Writes the value proposition summary to ` + compose.SummaryFilename + ` (or the file given with -o).
Use "-o -" to print it instead, and --share to print the share payload as JSON.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		w, _, closeFn, err := setup(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		data := w.Store.Data()
		out := cmd.OutOrStdout()

		if share, _ := cmd.Flags().GetBool("share"); share {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(compose.Share(data))
		}

		summary := compose.Summary(data)
		path, _ := cmd.Flags().GetString("output")
		if path == "-" {
			_, err := fmt.Fprint(out, summary)
			return err
		}
		if err := os.WriteFile(path, []byte(summary), 0644); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
		fmt.Fprintf(out, "Summary written to %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringP("output", "o", compose.SummaryFilename, `Output file, "-" for stdout`)
	exportCmd.Flags().Bool("share", false, "Print the share payload (title and text) as JSON")
}
