package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/idelchi/filecensus/internal/census"
)

const (
	// TabSpacing is the number of spaces between tabwriter columns.
	TabSpacing = 2
)

// PrintJSON outputs a scan result in JSON format.
func PrintJSON(result *census.Result, writer io.Writer) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	if _, err := fmt.Fprintln(writer, string(data)); err != nil {
		return err
	}

	return nil
}

// PrintTable outputs a scan result in human-readable table format.
func PrintTable(result *census.Result, writer io.Writer) error {
	w := tabwriter.NewWriter(writer, 0, 4, TabSpacing, ' ', 0)

	fmt.Fprintln(w, "Totals:\t")
	fmt.Fprintf(w, "  Folders:\t%s\n", humanize.Comma(result.Folders))
	fmt.Fprintf(w, "  Files:\t%s\n", humanize.Comma(result.Files))

	if len(result.Categories) > 0 {
		fmt.Fprintln(w, "\nFile type breakdown:\t")

		for _, label := range result.CategoriesByCount() {
			fmt.Fprintf(w, "  %s:\t%s\n", label, humanize.Comma(result.Categories[label]))
		}
	}

	if result.SkippedDirs > 0 {
		fmt.Fprintf(w, "\nSkipped:\t%s unreadable directories\n", humanize.Comma(result.SkippedDirs))
	}

	fmt.Fprintf(w, "\nElapsed:\t%v\n", result.Elapsed)

	return w.Flush()
}
