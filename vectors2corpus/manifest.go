package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	corpus "github.com/go-i2p/ltvcorpus"
)

func newManifestCmd() *cobra.Command {
	var checkDir string
	cmd := &cobra.Command{
		Use:   "manifest <path>",
		Short: "List the entries recorded in a manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := corpus.ReadManifest(args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			printManifest(w, m)
			if checkDir == "" {
				return nil
			}
			problems := m.Check(checkDir)
			for _, p := range problems {
				color.New(color.FgYellow).Fprint(w, "mismatch: ")
				fmt.Fprintln(w, p)
			}
			if len(problems) > 0 {
				return fmt.Errorf("%w: %d of %d entries", errVerifyFailed, len(problems), len(m.Entries))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&checkDir, "check", "", "also check the entries in this corpus directory")
	return cmd
}

// printManifest writes one aligned row per entry. Lines are shown 1-based to
// match editors and error messages.
func printManifest(w io.Writer, m *corpus.Manifest) {
	header := []string{"NAME", "SOURCE", "LINE", "SIZE", "DIGEST"}
	rows := make([][]string, 0, len(m.Entries))
	for _, e := range m.Entries {
		rows = append(rows, []string{
			e.Name,
			e.Source,
			strconv.FormatUint(uint64(e.Line)+1, 10),
			strconv.FormatUint(uint64(e.Size), 10),
			shortDigest(e.Digest[:]),
		})
	}

	widths := make([]int, len(header))
	for _, row := range append([][]string{header}, rows...) {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	bold := color.New(color.Bold)
	bold.Fprintln(w, formatRow(header, widths))
	for _, row := range rows {
		fmt.Fprintln(w, formatRow(row, widths))
	}
}

func formatRow(cells []string, widths []int) string {
	padded := make([]string, len(cells))
	for i, cell := range cells {
		if i == len(cells)-1 {
			padded[i] = cell
			continue
		}
		padded[i] = runewidth.FillRight(cell, widths[i])
	}
	return strings.Join(padded, "  ")
}
