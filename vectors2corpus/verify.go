package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	corpus "github.com/go-i2p/ltvcorpus"
)

var errVerifyFailed = errors.New("corpus does not match the vector files")

func newVerifyCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check an existing corpus against the vector files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := o.resolve(cmd)
			if err != nil {
				return err
			}
			r, err := corpus.Verify(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			warn := color.New(color.FgYellow)
			for _, p := range r.Problems {
				warn.Fprint(w, "mismatch: ")
				fmt.Fprintln(w, p)
			}
			if !r.OK() {
				return fmt.Errorf("%w: %d of %d entries", errVerifyFailed, len(r.Problems), r.Checked)
			}
			if !o.quiet {
				fmt.Fprintf(w, "%d entries in %s match\n", r.Checked, cfg.OutputDir)
			}
			return nil
		},
	}
}
